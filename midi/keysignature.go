package midi

import "github.com/pkg/errors"

// Key signature names as the gscore editor writes them.
var keySignatures = map[string]KeySignature{
	"C major / A minor": {IsMajor: true, Num: 0},

	"G major / E minor":             {IsMajor: true, Num: 1},
	"D major / B minor":             {IsMajor: true, Num: 2},
	"A major / F-sharp minor":       {IsMajor: true, Num: 3},
	"E major / C-sharp minor":       {IsMajor: true, Num: 4},
	"B major / G-sharp minor":       {IsMajor: true, Num: 5},
	"F-sharp major / D-sharp minor": {IsMajor: true, Num: 6},
	"C-sharp major / A-sharp minor": {IsMajor: true, Num: 7},

	"F major / D minor":           {IsMajor: true, Num: 1, IsFlat: true},
	"B-flat major / G minor":      {IsMajor: true, Num: 2, IsFlat: true},
	"E-flat major / C minor":      {IsMajor: true, Num: 3, IsFlat: true},
	"A-flat major / F minor":      {IsMajor: true, Num: 4, IsFlat: true},
	"D-flat major / B-flat minor": {IsMajor: true, Num: 5, IsFlat: true},
	"G-flat major / E-flat minor": {IsMajor: true, Num: 6, IsFlat: true},
	"C-flat major / A-flat minor": {IsMajor: true, Num: 7, IsFlat: true},
}

func LookupKeySignature(name string) (KeySignature, error) {
	k, ok := keySignatures[name]
	if !ok {
		return k, errors.Wrapf(ErrKeySignature, "%q", name)
	}
	return k, nil
}
