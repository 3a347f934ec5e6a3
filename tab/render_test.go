package tab_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fretwork/arrange"
	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
	"github.com/katalvlaran/fretwork/shape"
	"github.com/katalvlaran/fretwork/tab"
)

// step builds a Step from (pitch, string, fret) triples.
func step(index int, onset uint64, triples ...[3]int) arrange.Step {
	notes := make([]shape.Note, len(triples))
	pitches := make([]fretboard.Pitch, len(triples))
	for i, tr := range triples {
		pitches[i] = fretboard.Pitch(tr[0])
		notes[i] = shape.Note{
			Pitch:    fretboard.Pitch(tr[0]),
			Position: fretboard.Position{String: tr[1], Fret: tr[2]},
		}
	}
	ev := score.MustEvent(index, pitches...)
	ev.Onset = onset

	return arrange.Step{Event: ev, Assignment: shape.Assignment{Notes: notes}}
}

var openSteps = []arrange.Step{
	step(0, 0, [3]int{40, 0, 0}),
	step(1, 480, [3]int{45, 1, 0}),
	step(2, 960, [3]int{40, 0, 0}, [3]int{45, 1, 0}),
}

func TestRender_Numbered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tab.Render(&buf, openSteps, 6))

	want := "" +
		"1|---------|\n" +
		"2|---------|\n" +
		"3|---------|\n" +
		"4|---------|\n" +
		"5|----0--0-|\n" +
		"6|-0-----0-|\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_WideColumns(t *testing.T) {
	steps := []arrange.Step{
		step(0, 0, [3]int{55, 1, 10}, [3]int{59, 2, 9}),
		step(1, 0, [3]int{52, 3, 0}),
	}
	var buf bytes.Buffer
	require.NoError(t, tab.Render(&buf, steps, 4, tab.WithStringNames("E", "A", "D", "G")))

	want := "" +
		"G|-----0-|\n" +
		"D|--9----|\n" +
		"A|-10----|\n" +
		"E|-------|\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_Wrap(t *testing.T) {
	var buf bytes.Buffer
	names := tab.NamesFromTuning([]fretboard.Pitch{40, 45})
	require.NoError(t, tab.Render(&buf, openSteps, 2, tab.WithStringNames(names...), tab.WithWrap(2)))

	want := "" +
		"A|----0-|\n" +
		"E|-0----|\n" +
		"\n" +
		"A|-0-|\n" +
		"E|-0-|\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, tab.Render(&buf, openSteps, 0), tab.ErrBadStrings)
	assert.ErrorIs(t, tab.Render(&buf, openSteps, 6, tab.WithStringNames("E")), tab.ErrNameCount)
	assert.ErrorIs(t, tab.Render(&buf, openSteps, 1), tab.ErrStringRange)
	assert.Panics(t, func() { tab.WithWrap(-1)(&tab.Options{}) })
}

func TestListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tab.Listing(&buf, openSteps, 6))

	want := "" +
		"0 0 E2->6/0\n" +
		"1 480 A2->5/0\n" +
		"2 960 E2->6/0 A2->5/0\n"
	assert.Equal(t, want, buf.String())
	assert.ErrorIs(t, tab.Listing(&buf, openSteps, 1), tab.ErrStringRange)
}

func TestNamesFromTuning(t *testing.T) {
	assert.Equal(t, []string{"E", "A", "D", "G", "B", "E"}, tab.NamesFromTuning(fretboard.StandardTuning))
	assert.Equal(t, []string{"D#"}, tab.NamesFromTuning([]fretboard.Pitch{51}))
}
