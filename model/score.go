package model

// Score is the loaded form of a gscore document. Read-only once built.
type Score struct {
	Version         string
	Tempo           int
	BeatsPerMeasure int
	KeySignature    string
	BlockDefs       map[string]BlockDef
	Tracks          []Track
}

type BlockDef struct {
	Name     string
	Messages []MessageTemplate
}

// MessageTemplate keeps a <message> as written. Type is an index into
// constants.MessageKind and is only checked at resolution time.
type MessageTemplate struct {
	Type     int
	Pitch    int
	Velocity float64
	Time     float64
}

type Track struct {
	Velocity      float64
	Program       string
	IgnoreNoteOff bool
	Blocks        []BlockSlot
}

// BlockSlot with an empty Name is silence.
type BlockSlot struct {
	Name     string
	Velocity float64
}

func (b BlockSlot) IsSilent() bool {
	return b.Name == ""
}
