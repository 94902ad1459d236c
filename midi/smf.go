package midi

import (
	"io"
	"math"

	"github.com/jsphweid/gscore2midi/constants"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// SMF is the Container backed by gomidi's smf writer.
type SMF struct {
	tracks []smf.Track
}

func NewSMF() *SMF {
	return &SMF{}
}

func (s *SMF) NewTrack() int {
	s.tracks = append(s.tracks, smf.Track{})
	return len(s.tracks) - 1
}

func (s *SMF) NumTracks() int {
	return len(s.tracks)
}

func (s *SMF) track(i int) (*smf.Track, error) {
	if i < 0 || i >= len(s.tracks) {
		return nil, errors.Wrapf(ErrNoTrack, "%d", i)
	}
	return &s.tracks[i], nil
}

func (s *SMF) AppendMeta(track int, delta int64, m Meta) error {
	tr, err := s.track(track)
	if err != nil {
		return err
	}
	d, err := checkDelta(delta)
	if err != nil {
		return err
	}

	switch m := m.(type) {
	case TimeSignature:
		num, err := metaByte("numerator", m.Numerator)
		if err != nil {
			return err
		}
		denom, err := metaByte("denominator", m.Denominator)
		if err != nil {
			return err
		}
		tr.Add(d, smf.MetaMeter(num, denom))
	case Tempo:
		// gomidi writes 00 00 00 for tempos that overflow three bytes
		if micros := TempoMicros(m.BPM); micros < 1 || micros > constants.MaxTempoMicros {
			return errors.Wrapf(ErrDataRange, "tempo %v bpm is %d microseconds per beat", m.BPM, micros)
		}
		tr.Add(d, smf.MetaTempo(m.BPM))
	case KeySignature:
		tr.Add(d, smf.MetaKey(0, m.IsMajor, m.Num, m.IsFlat))
	case Instrument:
		tr.Add(d, smf.MetaInstrument(m.Name))
	default:
		return errors.Errorf("unsupported meta event %T", m)
	}
	return nil
}

func (s *SMF) AppendVoice(track int, delta int64, v Voice) error {
	tr, err := s.track(track)
	if err != nil {
		return err
	}
	d, err := checkDelta(delta)
	if err != nil {
		return err
	}
	if v.Channel < 0 || v.Channel > constants.MaxChannel {
		return errors.Wrapf(ErrChannelRange, "%d", v.Channel)
	}
	ch := uint8(v.Channel)
	key, err := dataByte("pitch", v.Pitch)
	if err != nil {
		return err
	}
	vel, err := dataByte("velocity", v.Velocity)
	if err != nil {
		return err
	}

	switch v.Kind {
	// a bare note has no status byte of its own, it starts sounding
	case constants.KindNote, constants.KindNoteOn:
		tr.Add(d, gomidi.NoteOn(ch, key, vel))
	case constants.KindNoteOff:
		tr.Add(d, gomidi.NoteOffVelocity(ch, key, vel))
	default:
		return errors.Wrapf(ErrUnknownKind, "%q", v.Kind)
	}
	return nil
}

// WriteTo closes every track and writes a format 1 file at
// constants.TicksPerBeat resolution.
func (s *SMF) WriteTo(w io.Writer) (int64, error) {
	file := smf.New()
	file.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)
	for i := range s.tracks {
		tr := append(smf.Track{}, s.tracks[i]...)
		tr.Close(0)
		if err := file.Add(tr); err != nil {
			return 0, errors.Wrapf(err, "could not add track %d", i)
		}
	}
	return file.WriteTo(w)
}

func checkDelta(delta int64) (uint32, error) {
	if delta < 0 {
		return 0, errors.Wrapf(ErrNegativeDelta, "%d", delta)
	}
	if delta > int64(^uint32(0)) {
		return 0, errors.Errorf("delta %d does not fit a variable length quantity", delta)
	}
	return uint32(delta), nil
}

// TempoMicros converts beats per minute to microseconds per beat.
func TempoMicros(bpm float64) int64 {
	if bpm <= 0 {
		return 0
	}
	return int64(math.Round(60e6 / bpm))
}

// metaByte checks a meta event field, which unlike channel data may use the
// whole byte.
func metaByte(name string, v int) (uint8, error) {
	if v < 0 || v > constants.MaxMetaByte {
		return 0, errors.Wrapf(ErrDataRange, "%s %d", name, v)
	}
	return uint8(v), nil
}

func dataByte(name string, v int) (uint8, error) {
	if v < 0 || v > constants.MaxDataByte {
		return 0, errors.Wrapf(ErrDataRange, "%s %d", name, v)
	}
	return uint8(v), nil
}
