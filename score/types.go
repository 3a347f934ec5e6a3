package score

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/fretwork/fretboard"
)

// Sentinel errors returned by the score package.
var (
	// ErrNoEvents indicates an empty event sequence.
	ErrNoEvents = errors.New("score: no musical events")

	// ErrEmptyEvent indicates an event without pitches (a rest).
	ErrEmptyEvent = errors.New("score: event has no pitches")

	// ErrEventOrder indicates indices that are not strictly increasing.
	ErrEventOrder = errors.New("score: event indices must be strictly increasing")

	// ErrDuplicatePitch indicates an event listing the same pitch twice.
	ErrDuplicatePitch = errors.New("score: duplicate pitch in event")

	// ErrBadTrack indicates a track filter outside the file.
	ErrBadTrack = errors.New("score: track index out of range")
)

// Event is one immutable musical moment: a note (one pitch) or a chord.
//
// Index   – position in the piece, strictly increasing along a sequence.
// Pitches – unique pitches in ascending order, never empty.
// Onset   – start time in ticks, passed through untouched.
// Duration – length in ticks, passed through untouched.
type Event struct {
	Index    int
	Pitches  []fretboard.Pitch
	Onset    uint64
	Duration uint64
}

// NewEvent sorts and de-duplicates pitches. An empty set yields ErrEmptyEvent.
func NewEvent(index int, pitches []fretboard.Pitch, onset, duration uint64) (Event, error) {
	if len(pitches) == 0 {
		return Event{}, fmt.Errorf("%w: index %d", ErrEmptyEvent, index)
	}
	ps := slices.Clone(pitches)
	slices.Sort(ps)
	ps = slices.Compact(ps)

	return Event{Index: index, Pitches: ps, Onset: onset, Duration: duration}, nil
}

// MustEvent is NewEvent for literals in tests and examples. It panics on error.
func MustEvent(index int, pitches ...fretboard.Pitch) Event {
	ev, err := NewEvent(index, pitches, 0, 0)
	if err != nil {
		panic(err)
	}

	return ev
}

// Sequence builds events 0..n-1 from pitch sets, one set per event.
func Sequence(sets ...[]fretboard.Pitch) ([]Event, error) {
	events := make([]Event, 0, len(sets))
	for i, set := range sets {
		ev, err := NewEvent(i, set, 0, 0)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

// IsChord reports whether the event sounds more than one pitch.
func (e Event) IsChord() bool { return len(e.Pitches) > 1 }

// String renders the event as "#index[E2 A2]".
func (e Event) String() string {
	names := make([]string, len(e.Pitches))
	for i, p := range e.Pitches {
		names[i] = p.String()
	}

	return fmt.Sprintf("#%d[%s]", e.Index, strings.Join(names, " "))
}

// Validate checks the boundary contract of an event sequence.
//
// Preconditions (in order):
//  1. At least one event (ErrNoEvents).
//  2. Every event has a pitch (ErrEmptyEvent).
//  3. Indices strictly increase (ErrEventOrder).
//  4. Pitches within an event are unique (ErrDuplicatePitch).
func Validate(events []Event) error {
	if len(events) == 0 {
		return ErrNoEvents
	}
	for i, ev := range events {
		if len(ev.Pitches) == 0 {
			return fmt.Errorf("%w: index %d", ErrEmptyEvent, ev.Index)
		}
		if i > 0 && ev.Index <= events[i-1].Index {
			return fmt.Errorf("%w: %d follows %d", ErrEventOrder, ev.Index, events[i-1].Index)
		}
		seen := make(map[fretboard.Pitch]struct{}, len(ev.Pitches))
		for _, p := range ev.Pitches {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("%w: pitch %s repeated in event %d", ErrDuplicatePitch, p, ev.Index)
			}
			seen[p] = struct{}{}
		}
	}

	return nil
}

// ReadOptions selects which part of a MIDI file becomes events.
//
// Track   – track index to read, or -1 for all tracks merged.
// Channel – MIDI channel 0..15, or -1 for every channel.
type ReadOptions struct {
	Track   int
	Channel int
}

// DefaultReadOptions reads every track and channel.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Track: -1, Channel: -1}
}
