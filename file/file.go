package file

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/gscore2midi/constants"
	"github.com/pkg/errors"
)

// OutputPath is where the midi file for an input score goes.
func OutputPath(input string) string {
	return input + constants.OutputSuffix
}

// WriteAtomic writes to a temp file next to path and renames it into place,
// so path either holds everything write produced or is left untouched.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.New().String()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "could not create temp file")
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "could not close temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "could not move output into place")
	}
	return nil
}
