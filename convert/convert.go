// Package convert runs the whole gscore to midi pipeline.
package convert

import (
	"io"
	"os"

	"github.com/jsphweid/gscore2midi/file"
	"github.com/jsphweid/gscore2midi/logger"
	"github.com/jsphweid/gscore2midi/midi"
	"github.com/jsphweid/gscore2midi/resolve"
	"github.com/jsphweid/gscore2midi/score"
	"github.com/jsphweid/gscore2midi/util"
	"github.com/pkg/errors"
)

type Result struct {
	Output string
	// Tracks counts the meta track too.
	Tracks int
	Events uint64
}

// Build loads, resolves and emits a score without writing anything.
func Build(r io.Reader, opts resolve.Options) (*midi.SMF, Result, error) {
	var res Result
	s, err := score.Load(r)
	if err != nil {
		return nil, res, err
	}
	logger.Get().Debug("loaded score",
		"version", s.Version,
		"tempo", s.Tempo,
		"beatspermeasure", s.BeatsPerMeasure,
		"blockdefs", len(s.BlockDefs),
		"tracks", len(s.Tracks))

	tracks, err := resolve.Resolve(s, opts)
	if err != nil {
		return nil, res, errors.Wrap(err, "could not resolve score")
	}

	c := midi.NewSMF()
	if err := midi.Emit(c, midi.HeaderFor(s), tracks); err != nil {
		return nil, res, errors.Wrap(err, "could not emit midi")
	}
	res.Tracks = c.NumTracks()
	res.Events = util.Sum(util.Lengths(tracks))
	return c, res, nil
}

// Convert writes the midi file for the score in r to w.
func Convert(r io.Reader, w io.Writer, opts resolve.Options) (Result, error) {
	c, res, err := Build(r, opts)
	if err != nil {
		return res, err
	}
	if _, err := c.WriteTo(w); err != nil {
		return res, errors.Wrap(err, "could not write midi")
	}
	return res, nil
}

// ConvertFile converts input to file.OutputPath(input). Nothing is written
// if any stage fails.
func ConvertFile(input string, opts resolve.Options) (Result, error) {
	f, err := os.Open(input)
	if err != nil {
		return Result{}, errors.Wrapf(err, "could not open %s", input)
	}
	defer f.Close()

	c, res, err := Build(f, opts)
	if err != nil {
		return res, errors.Wrapf(err, "failed to convert %s", input)
	}

	res.Output = file.OutputPath(input)
	err = file.WriteAtomic(res.Output, func(w io.Writer) error {
		_, err := c.WriteTo(w)
		return err
	})
	if err != nil {
		return res, errors.Wrapf(err, "could not write %s", res.Output)
	}
	logger.Get().Info("converted", "input", input, "output", res.Output, "tracks", res.Tracks, "events", res.Events)
	return res, nil
}
