package score

import (
	"strings"
	"testing"

	"github.com/jsphweid/gscore2midi/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleScore = `<?xml version="1.0" encoding="UTF-8"?>
<gscore version="0.1">
  <score tempo="120" beatspermeasure="4" keysignature="G major / E minor">
    <metadata/>
    <tracks>
      <track velocity="0.5" program="Piano" ignorenoteoff="1">
        <block name="a" velocity="0.75"/>
        <block/>
        <block name="a" velocity="1"/>
      </track>
    </tracks>
    <blockdefs>
      <blockdef name="a" color="#ff0000">
        <message type="1" pitch="60" velocity="1.0" time="0.0"/>
        <message type="2" pitch="60" velocity="0.0" time="0.25"/>
      </blockdef>
    </blockdefs>
  </score>
</gscore>`

func TestLoadSimpleScore(t *testing.T) {
	s, err := Load(strings.NewReader(simpleScore))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("0.1", s.Version)
	assert.Equal(120, s.Tempo)
	assert.Equal(4, s.BeatsPerMeasure)
	assert.Equal("G major / E minor", s.KeySignature)
	assert.Equal(map[string]model.BlockDef{
		"a": {
			Name: "a",
			Messages: []model.MessageTemplate{
				{Type: 1, Pitch: 60, Velocity: 1.0, Time: 0.0},
				{Type: 2, Pitch: 60, Velocity: 0.0, Time: 0.25},
			},
		},
	}, s.BlockDefs)
	assert.Equal([]model.Track{{
		Velocity:      0.5,
		Program:       "Piano",
		IgnoreNoteOff: true,
		Blocks: []model.BlockSlot{
			{Name: "a", Velocity: 0.75},
			{},
			{Name: "a", Velocity: 1},
		},
	}}, s.Tracks)
	assert.True(s.Tracks[0].Blocks[1].IsSilent())
}

func TestLoadWithCharset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<gscore><score tempo="90" beatspermeasure="3"><blockdefs><blockdef name="caf` + "\xe9" + `"/></blockdefs><tracks/></score></gscore>`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	_, ok := s.BlockDefs["café"]
	assert.True(t, ok)
	assert.Empty(t, s.Tracks)
}

func TestLoadFailures(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"wrong root", `<score/>`, ErrStructure},
		{"two score children", `<gscore><score/><score/></gscore>`, ErrStructure},
		{"child is not score", `<gscore><tracks/></gscore>`, ErrStructure},
		{"missing tempo", `<gscore><score beatspermeasure="4"><blockdefs/><tracks/></score></gscore>`, ErrAttribute},
		{"non numeric tempo", `<gscore><score tempo="fast" beatspermeasure="4"><blockdefs/><tracks/></score></gscore>`, ErrAttribute},
		{"zero tempo", `<gscore><score tempo="0" beatspermeasure="4"><blockdefs/><tracks/></score></gscore>`, ErrAttribute},
		{"missing blockdefs", `<gscore><score tempo="120" beatspermeasure="4"><tracks/></score></gscore>`, ErrStructure},
		{"missing tracks", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs/></score></gscore>`, ErrStructure},
		{"two tracks", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs/><tracks/><tracks/></score></gscore>`, ErrStructure},
		{"blockdef without name", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs><blockdef/></blockdefs><tracks/></score></gscore>`, ErrAttribute},
		{"duplicate blockdef", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs><blockdef name="a"/><blockdef name="a"/></blockdefs><tracks/></score></gscore>`, ErrStructure},
		{"wrong blockdefs child", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs><block name="a"/></blockdefs><tracks/></score></gscore>`, ErrStructure},
		{"message missing pitch", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs><blockdef name="a"><message type="1" velocity="1" time="0"/></blockdef></blockdefs><tracks/></score></gscore>`, ErrAttribute},
		{"message bad time", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs><blockdef name="a"><message type="1" pitch="60" velocity="1" time="soon"/></blockdef></blockdefs><tracks/></score></gscore>`, ErrAttribute},
		{"track missing velocity", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs/><tracks><track/></tracks></score></gscore>`, ErrAttribute},
		{"wrong tracks child", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs/><tracks><block/></tracks></score></gscore>`, ErrStructure},
		{"named block without velocity", `<gscore><score tempo="120" beatspermeasure="4"><blockdefs/><tracks><track velocity="1"><block name="a"/></track></tracks></score></gscore>`, ErrAttribute},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(c.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.want), "got %v", err)
		})
	}
}

func TestLoadMalformedXML(t *testing.T) {
	_, err := Load(strings.NewReader(`<gscore><score>`))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does/not/exist.xml")
	assert.Error(t, err)
}
