package resolve

import (
	"math"
	"testing"

	"github.com/jsphweid/gscore2midi/constants"
	"github.com/jsphweid/gscore2midi/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneBlockScore(messages ...model.MessageTemplate) *model.Score {
	return &model.Score{
		Tempo:           120,
		BeatsPerMeasure: 4,
		BlockDefs: map[string]model.BlockDef{
			"a": {Name: "a", Messages: messages},
		},
		Tracks: []model.Track{{
			Velocity: 1.0,
			Blocks:   []model.BlockSlot{{Name: "a", Velocity: 1.0}},
		}},
	}
}

func TestBlockTicks(t *testing.T) {
	assert.Equal(t, int64(160000), BlockTicks(4))
	assert.Equal(t, int64(120000), BlockTicks(3))
	assert.Equal(t, int64(280000), BlockTicks(7))
}

func TestBlockTimingIgnoresTempo(t *testing.T) {
	for _, bpm := range []int{1, 60, 90, 137, 700, 997} {
		s := oneBlockScore(model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1, Time: 0.5})
		s.Tempo = bpm
		s.BeatsPerMeasure = 7
		s.Tracks[0].Blocks = []model.BlockSlot{{}, {}, {Name: "a", Velocity: 1}}

		tracks, err := Resolve(s, Options{})
		require.NoError(t, err)
		assert.Equal(t, int64(2*280000+140000), tracks[0][0].Time, "bpm %d", bpm)
	}
}

func TestResolveSingleNoteOn(t *testing.T) {
	s := oneBlockScore(model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1.0, Time: 0.0})
	tracks, err := Resolve(s, Options{})
	require.NoError(t, err)
	assert.Equal(t, []model.Events{{
		{Kind: constants.KindNoteOn, Pitch: 60, Velocity: 127, Time: 0, Track: 0},
	}}, tracks)
}

func TestResolveVelocityAndTime(t *testing.T) {
	s := oneBlockScore(
		model.MessageTemplate{Type: 0, Pitch: 64, Velocity: 0.5, Time: 0.5},
		model.MessageTemplate{Type: 2, Pitch: 64, Velocity: 1.0, Time: 0.75},
	)
	s.Tracks[0].Velocity = 0.5
	s.Tracks[0].Blocks = []model.BlockSlot{{}, {Name: "a", Velocity: 0.8}}

	tracks, err := Resolve(s, Options{})
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, tracks[0], 2)
	// 127 * 0.5 * 0.8 * 0.5 = 25.4
	assert.Equal(constants.KindNote, tracks[0][0].Kind)
	assert.Equal(25, tracks[0][0].Velocity)
	assert.Equal(int64(160000+80000), tracks[0][0].Time)
	assert.Equal(constants.KindNoteOff, tracks[0][1].Kind)
	assert.Equal(51, tracks[0][1].Velocity)
	assert.Equal(int64(160000+120000), tracks[0][1].Time)
}

func TestResolveVelocityIsNotClamped(t *testing.T) {
	s := oneBlockScore(model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 2.0, Time: 0})
	tracks, err := Resolve(s, Options{})
	require.NoError(t, err)
	assert.Equal(t, 254, tracks[0][0].Velocity)

	_, err = Resolve(s, Options{Strict: true})
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestResolveStrictTimeFraction(t *testing.T) {
	s := oneBlockScore(model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1.0, Time: 1.0})
	_, err := Resolve(s, Options{})
	assert.NoError(t, err)
	_, err = Resolve(s, Options{Strict: true})
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestResolveUndefinedBlock(t *testing.T) {
	s := oneBlockScore()
	s.Tracks[0].Blocks = append(s.Tracks[0].Blocks, model.BlockSlot{Name: "missing", Velocity: 1})
	_, err := Resolve(s, Options{})
	assert.True(t, errors.Is(err, ErrUndefinedBlock))
}

func TestResolveMessageTypeOutOfRange(t *testing.T) {
	for _, typ := range []int{-1, 3} {
		s := oneBlockScore(model.MessageTemplate{Type: typ, Pitch: 60, Velocity: 1, Time: 0})
		_, err := Resolve(s, Options{})
		assert.True(t, errors.Is(err, ErrMessageType), "type %d", typ)
	}
}

func TestResolveIgnoreNoteOff(t *testing.T) {
	s := oneBlockScore(
		model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1, Time: 0},
		model.MessageTemplate{Type: 2, Pitch: 60, Velocity: 0, Time: 0.5},
	)
	s.Tracks[0].IgnoreNoteOff = true
	tracks, err := Resolve(s, Options{})
	require.NoError(t, err)
	require.Len(t, tracks[0], 1)
	assert.Equal(t, constants.KindNoteOn, tracks[0][0].Kind)
}

func TestResolveOrderPolicies(t *testing.T) {
	// the editor appends on/off pairs, so a second note starts before the
	// first one ends in document order
	s := oneBlockScore(
		model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1, Time: 0},
		model.MessageTemplate{Type: 2, Pitch: 60, Velocity: 0, Time: 0.5},
		model.MessageTemplate{Type: 1, Pitch: 62, Velocity: 1, Time: 0.25},
		model.MessageTemplate{Type: 2, Pitch: 62, Velocity: 0, Time: 0.75},
	)

	passed, err := Resolve(s, Options{Order: OrderPassThrough})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 80000, 40000, 120000}, times(passed[0]))

	sorted, err := Resolve(s, Options{Order: OrderSort})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 40000, 80000, 120000}, times(sorted[0]))
	assert.Equal(t, []int{60, 62, 60, 62}, pitches(sorted[0]))

	_, err = Resolve(s, Options{Order: OrderReject})
	assert.True(t, errors.Is(err, ErrUnordered))
}

func TestParseOrder(t *testing.T) {
	for _, o := range []Order{OrderPassThrough, OrderSort, OrderReject} {
		parsed, err := ParseOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
	_, err := ParseOrder("shuffle")
	assert.Error(t, err)
}

func TestSilentSlotsAdvanceTime(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("a note in slot n starts at n block lengths", prop.ForAll(
		func(silent int, frac float64) bool {
			s := oneBlockScore(model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1, Time: frac})
			s.Tracks[0].Blocks = append(make([]model.BlockSlot, silent), model.BlockSlot{Name: "a", Velocity: 1})
			tracks, err := Resolve(s, Options{})
			if err != nil || len(tracks[0]) != 1 {
				return false
			}
			want := int64(silent)*160000 + int64(math.Round(160000*frac))
			return tracks[0][0].Time == want
		},
		gen.IntRange(0, 64),
		gen.Float64Range(0, 0.999),
	))

	properties.TestingRun(t)
}

func TestSortedTracksNeverDecrease(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("sorted events are time ascending", prop.ForAll(
		func(fracs []float64) bool {
			var messages []model.MessageTemplate
			for _, f := range fracs {
				messages = append(messages, model.MessageTemplate{Type: 1, Pitch: 60, Velocity: 1, Time: f})
			}
			s := oneBlockScore(messages...)
			s.Tracks[0].Blocks = append(s.Tracks[0].Blocks, model.BlockSlot{Name: "a", Velocity: 1})
			tracks, err := Resolve(s, Options{Order: OrderSort})
			if err != nil {
				return false
			}
			for i := 1; i < len(tracks[0]); i++ {
				if tracks[0][i].Time < tracks[0][i-1].Time {
					return false
				}
			}
			return len(tracks[0]) == 2*len(fracs)
		},
		gen.SliceOf(gen.Float64Range(0, 0.999)),
	))

	properties.TestingRun(t)
}

func times(events model.Events) []int64 {
	var res []int64
	for _, e := range events {
		res = append(res, e.Time)
	}
	return res
}

func pitches(events model.Events) []int {
	var res []int
	for _, e := range events {
		res = append(res, e.Pitch)
	}
	return res
}
