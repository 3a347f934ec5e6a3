package shape_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
	"github.com/katalvlaran/fretwork/shape"
)

func board(t *testing.T, tuning []fretboard.Pitch, opts ...fretboard.Option) *fretboard.Fretboard {
	t.Helper()
	fb, err := fretboard.New(tuning, opts...)
	require.NoError(t, err)

	return fb
}

// bruteForce enumerates the full cross product and filters it, as a
// reference for Enumerate.
func bruteForce(fb *fretboard.Fretboard, pitches []fretboard.Pitch) []shape.Assignment {
	var out []shape.Assignment
	var rec func(i int, notes []shape.Note)
	rec = func(i int, notes []shape.Note) {
		if i == len(pitches) {
			used := map[int]bool{}
			lo, hi := 0, 0
			for _, n := range notes {
				if used[n.Position.String] {
					return
				}
				used[n.Position.String] = true
				if f := n.Position.Fret; f > 0 {
					if lo == 0 || f < lo {
						lo = f
					}
					if f > hi {
						hi = f
					}
				}
			}
			if hi-lo > fb.MaxSpan() {
				return
			}
			cp := append([]shape.Note(nil), notes...)
			out = append(out, shape.Assignment{Notes: cp})

			return
		}
		for _, pos := range fb.PositionsForPitch(pitches[i]) {
			rec(i+1, append(notes, shape.Note{Pitch: pitches[i], Position: pos}))
		}
	}
	rec(0, nil)

	return out
}

// ------------------------------------------------------------------------
// 1. Single notes
// ------------------------------------------------------------------------

func TestEnumerate_SingleNoteMatchesPositions(t *testing.T) {
	fb := board(t, fretboard.StandardTuning)
	lo, hi := fb.Range()
	for p := lo; p <= hi; p++ {
		shapes, err := shape.Enumerate(fb, score.MustEvent(0, p))
		require.NoError(t, err)
		assert.Len(t, shapes, len(fb.PositionsForPitch(p)), "pitch %s", p)
	}
}

func TestEnumerate_Unreachable(t *testing.T) {
	fb := board(t, fretboard.StandardTuning)
	_, err := shape.Enumerate(fb, score.MustEvent(7, 20))
	require.Error(t, err)
	assert.ErrorIs(t, err, shape.ErrUnplayableEvent)
	assert.ErrorIs(t, err, fretboard.ErrUnreachablePitch)

	var ue *shape.UnplayableEventError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 7, ue.Index)
}

// ------------------------------------------------------------------------
// 2. Chords and constraints
// ------------------------------------------------------------------------

func TestEnumerate_OpenDyad(t *testing.T) {
	fb := board(t, fretboard.StandardTuning)
	shapes, err := shape.Enumerate(fb, score.MustEvent(0, 40, 45))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, []shape.Note{
		{Pitch: 40, Position: fretboard.Position{String: 0, Fret: 0}},
		{Pitch: 45, Position: fretboard.Position{String: 1, Fret: 0}},
	}, shapes[0].Notes)
}

func TestEnumerate_SameStringOnly(t *testing.T) {
	// With four frets F2 and F#2 exist only on the low E string.
	fb := board(t, fretboard.StandardTuning, fretboard.WithMaxFret(4))
	_, err := shape.Enumerate(fb, score.MustEvent(2, 41, 42))
	require.Error(t, err)
	assert.ErrorIs(t, err, shape.ErrUnplayableEvent)
	assert.False(t, errors.Is(err, fretboard.ErrUnreachablePitch))
}

func TestEnumerate_SpanLimit(t *testing.T) {
	tuning := []fretboard.Pitch{40, 45}
	// F2 (s0f1) with B2 (s1f6) spans five frets.
	_, err := shape.Enumerate(board(t, tuning), score.MustEvent(0, 41, 51))
	assert.ErrorIs(t, err, shape.ErrUnplayableEvent)

	shapes, err := shape.Enumerate(board(t, tuning, fretboard.WithMaxSpan(5)), score.MustEvent(0, 41, 51))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, 5, shapes[0].Span())
}

func TestEnumerate_OpenStringsIgnoreSpan(t *testing.T) {
	fb := board(t, []fretboard.Pitch{40, 45, 50})
	shapes, err := shape.Enumerate(fb, score.MustEvent(0, 40, 57))
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	for _, a := range shapes {
		assert.Equal(t, 0, a.Span())
		assert.Equal(t, 1, a.Opens())
	}
}

func TestEnumerate_TooManyPitches(t *testing.T) {
	fb := board(t, []fretboard.Pitch{40, 45})
	_, err := shape.Enumerate(fb, score.MustEvent(0, 40, 45, 50))
	assert.ErrorIs(t, err, shape.ErrUnplayableEvent)
}

func TestEnumerate_CompleteAgainstBruteForce(t *testing.T) {
	fb := board(t, fretboard.StandardTuning)
	chords := [][]fretboard.Pitch{
		{48, 52, 55, 60, 64},     // C major, open position voicing
		{45, 52, 57, 61, 64},     // A major
		{43, 47, 50, 55, 59, 67}, // G major, six strings
		{52, 55, 59},             // E minor triad
		{60, 64},
	}
	for _, pitches := range chords {
		got, err := shape.Enumerate(fb, score.MustEvent(0, pitches...))
		require.NoError(t, err, "%v", pitches)
		want := bruteForce(fb, pitches)
		assert.Equal(t, want, got, "%v", pitches)

		// Every shape satisfies the invariants.
		for _, a := range got {
			assert.LessOrEqual(t, a.Span(), fb.MaxSpan())
			assert.Len(t, a.Strings(), len(pitches))
			seen := map[int]bool{}
			for _, s := range a.Strings() {
				assert.False(t, seen[s], "string reused in %s", a)
				seen[s] = true
			}
		}
	}
}

func TestEnumerate_Deterministic(t *testing.T) {
	fb := board(t, fretboard.StandardTuning)
	ev := score.MustEvent(0, 50, 57, 62, 66)
	a, err := shape.Enumerate(fb, ev)
	require.NoError(t, err)
	b, err := shape.Enumerate(fb, ev)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ------------------------------------------------------------------------
// 3. Assignment helpers
// ------------------------------------------------------------------------

func TestAssignment_Helpers(t *testing.T) {
	a := shape.Assignment{Notes: []shape.Note{
		{Pitch: 45, Position: fretboard.Position{String: 0, Fret: 5}},
		{Pitch: 50, Position: fretboard.Position{String: 2, Fret: 0}},
		{Pitch: 62, Position: fretboard.Position{String: 4, Fret: 3}},
	}}

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, a.Fretted())
	assert.Equal(t, 1, a.Opens())
	assert.False(t, a.IsOpen())
	assert.Equal(t, 3, a.MinFret())
	assert.Equal(t, 5, a.MaxFret())
	assert.Equal(t, 2, a.Span())
	assert.Equal(t, []int{0, 2, 4}, a.Strings())
	assert.Equal(t, 2, a.StringGaps())
	assert.Equal(t, "45:0/5,50:2/0,62:4/3", a.Key())
	assert.Equal(t, "A2@0/5 D3@2/0 D4@4/3", a.String())

	pos, ok := a.PositionOf(50)
	assert.True(t, ok)
	assert.Equal(t, fretboard.Position{String: 2, Fret: 0}, pos)
	_, ok = a.PositionOf(99)
	assert.False(t, ok)

	b := shape.Assignment{Notes: append([]shape.Note(nil), a.Notes...)}
	assert.True(t, a.Equal(b))
	b.Notes[2].Position.Fret = 4
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(shape.Assignment{}))

	open := shape.Assignment{Notes: []shape.Note{{Pitch: 40}}}
	assert.True(t, open.IsOpen())
	assert.Equal(t, 0, open.MinFret())
	assert.Equal(t, 0, open.Span())
	assert.Equal(t, 0, open.StringGaps())
}
