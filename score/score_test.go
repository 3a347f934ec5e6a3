package score_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
)

// ------------------------------------------------------------------------
// 1. Event construction and validation
// ------------------------------------------------------------------------

func TestNewEvent_SortsAndDeduplicates(t *testing.T) {
	ev, err := score.NewEvent(3, []fretboard.Pitch{52, 40, 52, 45}, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, []fretboard.Pitch{40, 45, 52}, ev.Pitches)
	assert.Equal(t, 3, ev.Index)
	assert.Equal(t, uint64(10), ev.Onset)
	assert.Equal(t, uint64(20), ev.Duration)
	assert.True(t, ev.IsChord())
	assert.Equal(t, "#3[E2 A2 E3]", ev.String())
}

func TestNewEvent_Empty(t *testing.T) {
	_, err := score.NewEvent(0, nil, 0, 0)
	assert.ErrorIs(t, err, score.ErrEmptyEvent)
	assert.Panics(t, func() { score.MustEvent(1) })
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, score.Validate(nil), score.ErrNoEvents)

	good, err := score.Sequence([]fretboard.Pitch{40}, []fretboard.Pitch{45})
	require.NoError(t, err)
	assert.NoError(t, score.Validate(good))

	rest := []score.Event{score.MustEvent(0, 40), {Index: 1}}
	assert.ErrorIs(t, score.Validate(rest), score.ErrEmptyEvent)

	backwards := []score.Event{score.MustEvent(1, 40), score.MustEvent(1, 45)}
	assert.ErrorIs(t, score.Validate(backwards), score.ErrEventOrder)

	dup := []score.Event{{Index: 0, Pitches: []fretboard.Pitch{40, 40}}}
	assert.ErrorIs(t, score.Validate(dup), score.ErrDuplicatePitch)
}

func TestSequence_PropagatesEmpty(t *testing.T) {
	_, err := score.Sequence([]fretboard.Pitch{40}, nil)
	assert.ErrorIs(t, err, score.ErrEmptyEvent)
}

// ------------------------------------------------------------------------
// 2. Standard MIDI File extraction
// ------------------------------------------------------------------------

// encode writes the tracks into an in-memory SMF.
func encode(t *testing.T, tracks ...smf.Track) *bytes.Buffer {
	t.Helper()
	s := smf.New()
	for _, tr := range tracks {
		require.NoError(t, s.Add(tr))
	}
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	return &buf
}

// riff is E2, then A2, then the E2+A2 dyad.
func riff() smf.Track {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 40, 100))
	tr.Add(480, midi.NoteOff(0, 40))
	tr.Add(0, midi.NoteOn(0, 45, 100))
	tr.Add(480, midi.NoteOff(0, 45))
	tr.Add(0, midi.NoteOn(0, 40, 90))
	tr.Add(0, midi.NoteOn(0, 45, 90))
	tr.Add(960, midi.NoteOff(0, 40))
	tr.Add(0, midi.NoteOff(0, 45))
	tr.Close(0)

	return tr
}

func TestReadSMF_GroupsChords(t *testing.T) {
	events, err := score.ReadSMF(encode(t, riff()), score.DefaultReadOptions())
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, score.Event{Index: 0, Pitches: []fretboard.Pitch{40}, Onset: 0, Duration: 480}, events[0])
	assert.Equal(t, score.Event{Index: 1, Pitches: []fretboard.Pitch{45}, Onset: 480, Duration: 480}, events[1])
	assert.Equal(t, score.Event{Index: 2, Pitches: []fretboard.Pitch{40, 45}, Onset: 960, Duration: 960}, events[2])
	assert.NoError(t, score.Validate(events))
}

func TestReadSMF_ChannelFilter(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 40, 100))
	tr.Add(0, midi.NoteOn(9, 36, 100)) // drums
	tr.Add(240, midi.NoteOff(0, 40))
	tr.Add(0, midi.NoteOff(9, 36))
	tr.Close(0)

	opts := score.DefaultReadOptions()
	opts.Channel = 0
	events, err := score.ReadSMF(encode(t, tr), opts)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []fretboard.Pitch{40}, events[0].Pitches)
}

func TestReadSMF_UnreleasedNoteLastsToEnd(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 50, 100))
	tr.Add(100, midi.NoteOn(0, 55, 100))
	tr.Add(100, midi.NoteOff(0, 55))
	tr.Add(300, midi.ControlChange(0, 7, 100))
	tr.Close(0)

	events, err := score.ReadSMF(encode(t, tr), score.DefaultReadOptions())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(500), events[0].Duration)
	assert.Equal(t, uint64(100), events[1].Duration)
}

func TestReadSMF_TrackSelection(t *testing.T) {
	var other smf.Track
	other.Add(0, midi.NoteOn(0, 64, 100))
	other.Add(10, midi.NoteOff(0, 64))
	other.Close(0)

	buf := encode(t, riff(), other)
	opts := score.DefaultReadOptions()
	opts.Track = 1
	events, err := score.ReadSMF(bytes.NewReader(buf.Bytes()), opts)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []fretboard.Pitch{64}, events[0].Pitches)

	opts.Track = 7
	_, err = score.ReadSMF(bytes.NewReader(buf.Bytes()), opts)
	assert.ErrorIs(t, err, score.ErrBadTrack)
}

func TestReadSMF_NoNotes(t *testing.T) {
	var tr smf.Track
	tr.Close(0)
	_, err := score.ReadSMF(encode(t, tr), score.DefaultReadOptions())
	assert.ErrorIs(t, err, score.ErrNoEvents)
}

func TestReadSMFFile_Missing(t *testing.T) {
	_, err := score.ReadSMFFile("does-not-exist.mid", score.DefaultReadOptions())
	assert.Error(t, err)
}
