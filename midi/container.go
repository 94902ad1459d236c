package midi

import (
	"io"

	"github.com/pkg/errors"
)

var (
	ErrNegativeDelta = errors.New("negative delta time")
	ErrChannelRange  = errors.New("channel out of range")
	ErrDataRange     = errors.New("data byte out of range")
	ErrKeySignature  = errors.New("unknown key signature")
	ErrUnknownKind   = errors.New("unknown event kind")
	ErrNoTrack       = errors.New("no such track")
)

// Container is whatever turns tracks of timed events into a file. The
// emitter only decides what goes where and with which delta; range checks
// belong to the container.
type Container interface {
	NewTrack() int
	AppendMeta(track int, delta int64, m Meta) error
	AppendVoice(track int, delta int64, v Voice) error
	WriteTo(w io.Writer) (int64, error)
}

type Meta interface {
	isMeta()
}

type TimeSignature struct {
	Numerator   int
	Denominator int
}

type Tempo struct {
	BPM float64
}

// KeySignature is written as sharps or flats. The tonic follows from Num
// and IsFlat and is not stored separately.
type KeySignature struct {
	IsMajor bool
	Num     uint8
	IsFlat  bool
}

type Instrument struct {
	Name string
}

func (TimeSignature) isMeta() {}
func (Tempo) isMeta()         {}
func (KeySignature) isMeta()  {}
func (Instrument) isMeta()    {}

// Voice is a channel voice message. Values are not range checked here.
type Voice struct {
	Kind     string
	Channel  int
	Pitch    int
	Velocity int
}
