package model

// NoteEvent is a resolved message at an absolute tick.
type NoteEvent struct {
	Kind     string
	Pitch    int
	Velocity int
	Time     int64
	Track    int
}

type Events = []NoteEvent
