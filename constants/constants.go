package constants

import "os"

// Resolution of the written file. High enough that block fractions land on
// whole ticks at any tempo.
const TicksPerBeat = 10000

const MeasuresPerBlock = 4

const TimeSignatureDenominator = 4

// MIDI can only carry 16 channels and 7 bit data bytes.
const MaxChannel = 15
const MaxDataByte = 127

// Meta event fields are whole bytes, tempo is three of them.
const MaxMetaByte = 255
const MaxTempoMicros = 0xFFFFFF

const OutputSuffix = ".mid"

const DefaultAddr = ":8080"

// Kind names indexed by the message `type` attribute.
const (
	KindNote    = "note"
	KindNoteOn  = "note_on"
	KindNoteOff = "note_off"
)

var messageKinds = [...]string{KindNote, KindNoteOn, KindNoteOff}

// MessageKind returns the kind for a message type index.
func MessageKind(index int) (string, bool) {
	if index < 0 || index >= len(messageKinds) {
		return "", false
	}
	return messageKinds[index], true
}

func NumMessageKinds() int {
	return len(messageKinds)
}

func GetLogLevel() string {
	level := os.Getenv("GSCORE_LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}

func GetOrder() string {
	order := os.Getenv("GSCORE_ORDER")
	if order != "" {
		return order
	}
	return "passthrough"
}

func GetAddr() string {
	addr := os.Getenv("GSCORE_ADDR")
	if addr != "" {
		return addr
	}
	return DefaultAddr
}

func GetAWSRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "us-east-1"
}
