package midi

import (
	"github.com/jsphweid/gscore2midi/constants"
	"github.com/jsphweid/gscore2midi/model"
	"github.com/pkg/errors"
)

// Header is the score-wide data the meta track is built from.
type Header struct {
	Tempo           int
	BeatsPerMeasure int
	KeySignature    string
	// Programs holds one optional instrument name per track.
	Programs []string
}

func HeaderFor(s *model.Score) Header {
	h := Header{
		Tempo:           s.Tempo,
		BeatsPerMeasure: s.BeatsPerMeasure,
		KeySignature:    s.KeySignature,
	}
	for _, t := range s.Tracks {
		h.Programs = append(h.Programs, t.Program)
	}
	return h
}

// Emit writes a meta track followed by one track per event list into c.
// Track n is played on channel n.
func Emit(c Container, h Header, tracks []model.Events) error {
	meta := c.NewTrack()
	err := c.AppendMeta(meta, 0, TimeSignature{
		Numerator:   h.BeatsPerMeasure,
		Denominator: constants.TimeSignatureDenominator,
	})
	if err != nil {
		return errors.Wrap(err, "time signature")
	}
	if err := c.AppendMeta(meta, 0, Tempo{BPM: float64(h.Tempo)}); err != nil {
		return errors.Wrap(err, "tempo")
	}
	if h.KeySignature != "" {
		key, err := LookupKeySignature(h.KeySignature)
		if err != nil {
			return err
		}
		if err := c.AppendMeta(meta, 0, key); err != nil {
			return errors.Wrap(err, "key signature")
		}
	}

	for iTrack, events := range tracks {
		tr := c.NewTrack()
		if iTrack < len(h.Programs) && h.Programs[iTrack] != "" {
			if err := c.AppendMeta(tr, 0, Instrument{Name: h.Programs[iTrack]}); err != nil {
				return errors.Wrapf(err, "track %d instrument", iTrack)
			}
		}

		var prev int64
		for i, evt := range events {
			v := Voice{
				Kind:     evt.Kind,
				Channel:  iTrack,
				Pitch:    evt.Pitch,
				Velocity: evt.Velocity,
			}
			if err := c.AppendVoice(tr, evt.Time-prev, v); err != nil {
				return errors.Wrapf(err, "track %d event %d", iTrack, i)
			}
			prev = evt.Time
		}
	}
	return nil
}
