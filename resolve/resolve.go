// Package resolve expands the block slots of every track into note events at
// absolute ticks.
package resolve

import (
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/gscore2midi/constants"
	"github.com/jsphweid/gscore2midi/model"
	"github.com/pkg/errors"
)

var (
	ErrUndefinedBlock = errors.New("undefined block")
	ErrMessageType    = errors.New("message type out of range")
	ErrUnordered      = errors.New("events out of order")
	ErrOutOfRange     = errors.New("value out of range")
)

// Order says what to do when a block's messages are not written in time
// order, which would otherwise produce negative deltas.
type Order int

const (
	// OrderPassThrough keeps document order and lets the writer decide.
	OrderPassThrough Order = iota
	// OrderSort stable-sorts each track by time.
	OrderSort
	// OrderReject fails resolution on the first decreasing time.
	OrderReject
)

var orderNames = map[string]Order{
	"passthrough": OrderPassThrough,
	"sort":        OrderSort,
	"reject":      OrderReject,
}

func ParseOrder(s string) (Order, error) {
	o, ok := orderNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown order %q, want passthrough, sort or reject", s)
	}
	return o, nil
}

func (o Order) String() string {
	for name, v := range orderNames {
		if v == o {
			return name
		}
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

type Options struct {
	Order Order
	// Strict rejects velocities and pitches outside 0..127 and block time
	// fractions outside [0,1).
	Strict bool
}

// BlockTicks is the length of one block slot. Ticks are counted per beat,
// so the length does not depend on tempo.
func BlockTicks(beatsPerMeasure int) int64 {
	return int64(constants.MeasuresPerBlock * beatsPerMeasure * constants.TicksPerBeat)
}

// Resolve returns one event list per track, in track order.
func Resolve(s *model.Score, opts Options) ([]model.Events, error) {
	blockTicks := BlockTicks(s.BeatsPerMeasure)
	res := make([]model.Events, len(s.Tracks))
	for iTrack, track := range s.Tracks {
		events, err := resolveTrack(s, iTrack, track, blockTicks, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", iTrack)
		}
		res[iTrack] = events
	}
	return res, nil
}

func resolveTrack(s *model.Score, iTrack int, track model.Track, blockTicks int64, opts Options) (model.Events, error) {
	var events model.Events
	for iBlock, slot := range track.Blocks {
		if slot.IsSilent() {
			continue
		}
		def, ok := s.BlockDefs[slot.Name]
		if !ok {
			return nil, errors.Wrapf(ErrUndefinedBlock, "block %d references %q", iBlock, slot.Name)
		}
		start := blockTicks * int64(iBlock)
		for iMessage, m := range def.Messages {
			kind, ok := constants.MessageKind(m.Type)
			if !ok {
				return nil, errors.Wrapf(ErrMessageType, "block %q message %d has type %d, want 0..%d",
					def.Name, iMessage, m.Type, constants.NumMessageKinds()-1)
			}
			if track.IgnoreNoteOff && kind == constants.KindNoteOff {
				continue
			}
			evt := model.NoteEvent{
				Kind:     kind,
				Pitch:    m.Pitch,
				Velocity: int(math.Round(constants.MaxDataByte * m.Velocity * slot.Velocity * track.Velocity)),
				Time:     start + int64(math.Round(float64(blockTicks)*m.Time)),
				Track:    iTrack,
			}
			if opts.Strict {
				if err := checkRange(evt, m); err != nil {
					return nil, errors.Wrapf(err, "block %q message %d", def.Name, iMessage)
				}
			}
			events = append(events, evt)
		}
	}

	switch opts.Order {
	case OrderSort:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Time < events[j].Time
		})
	case OrderReject:
		for i := 1; i < len(events); i++ {
			if events[i].Time < events[i-1].Time {
				return nil, errors.Wrapf(ErrUnordered, "event %d at tick %d follows tick %d",
					i, events[i].Time, events[i-1].Time)
			}
		}
	}
	return events, nil
}

func checkRange(evt model.NoteEvent, m model.MessageTemplate) error {
	if evt.Velocity < 0 || evt.Velocity > constants.MaxDataByte {
		return errors.Wrapf(ErrOutOfRange, "velocity %d", evt.Velocity)
	}
	if evt.Pitch < 0 || evt.Pitch > constants.MaxDataByte {
		return errors.Wrapf(ErrOutOfRange, "pitch %d", evt.Pitch)
	}
	if m.Time < 0 || m.Time >= 1 {
		return errors.Wrapf(ErrOutOfRange, "time fraction %v", m.Time)
	}
	return nil
}
