package shape

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/fretwork/fretboard"
)

// ErrUnplayableEvent indicates that an event has no valid assignment.
var ErrUnplayableEvent = errors.New("shape: event is unplayable")

// UnplayableEventError carries the index of the unplayable event and, when
// known, the underlying cause (e.g. *fretboard.UnreachablePitchError).
type UnplayableEventError struct {
	Index int
	Cause error
}

func (e *UnplayableEventError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: index %d: %v", ErrUnplayableEvent.Error(), e.Index, e.Cause)
	}

	return fmt.Sprintf("%s: index %d", ErrUnplayableEvent.Error(), e.Index)
}

// Is matches ErrUnplayableEvent.
func (e *UnplayableEventError) Is(target error) bool { return target == ErrUnplayableEvent }

// Unwrap exposes the cause.
func (e *UnplayableEventError) Unwrap() error { return e.Cause }

// Note is one pitch placed on the neck.
type Note struct {
	Pitch    fretboard.Pitch
	Position fretboard.Position
}

// Assignment is one complete fingering of an event. Notes are ordered by
// ascending pitch, matching score.Event.Pitches. Assignments are values:
// two assignments are the same shape when Equal reports true.
type Assignment struct {
	Notes []Note
}

// Len returns the number of notes.
func (a Assignment) Len() int { return len(a.Notes) }

// PositionOf returns the position assigned to p.
func (a Assignment) PositionOf(p fretboard.Pitch) (fretboard.Position, bool) {
	for _, n := range a.Notes {
		if n.Pitch == p {
			return n.Position, true
		}
	}

	return fretboard.Position{}, false
}

// Fretted returns how many notes are fingered (fret > 0).
func (a Assignment) Fretted() int {
	c := 0
	for _, n := range a.Notes {
		if n.Position.Fret > 0 {
			c++
		}
	}

	return c
}

// Opens returns how many notes are open strings.
func (a Assignment) Opens() int { return len(a.Notes) - a.Fretted() }

// IsOpen reports whether every note is an open string.
func (a Assignment) IsOpen() bool { return a.Fretted() == 0 }

// MinFret returns the lowest fretted position, or 0 when all strings are open.
func (a Assignment) MinFret() int {
	lo := 0
	for _, n := range a.Notes {
		f := n.Position.Fret
		if f > 0 && (lo == 0 || f < lo) {
			lo = f
		}
	}

	return lo
}

// MaxFret returns the highest fret used, or 0 when all strings are open.
func (a Assignment) MaxFret() int {
	hi := 0
	for _, n := range a.Notes {
		if n.Position.Fret > hi {
			hi = n.Position.Fret
		}
	}

	return hi
}

// Span returns max − min over the fretted notes (0 for open or single-finger shapes).
func (a Assignment) Span() int {
	if a.IsOpen() {
		return 0
	}

	return a.MaxFret() - a.MinFret()
}

// Strings returns the string indexes used, ascending.
func (a Assignment) Strings() []int {
	out := make([]int, len(a.Notes))
	for i, n := range a.Notes {
		out[i] = n.Position.String
	}
	slices.Sort(out)

	return out
}

// StringGaps counts the unused strings lying between the lowest and highest
// strings of the shape; a strummed chord with gaps needs muting.
func (a Assignment) StringGaps() int {
	if len(a.Notes) < 2 {
		return 0
	}
	s := a.Strings()

	return s[len(s)-1] - s[0] - (len(s) - 1)
}

// Equal reports structural equality of the pitch → position mapping.
func (a Assignment) Equal(b Assignment) bool {
	if len(a.Notes) != len(b.Notes) {
		return false
	}
	for i := range a.Notes {
		if a.Notes[i] != b.Notes[i] {
			return false
		}
	}

	return true
}

// Key is a compact structural identity usable as a map key: "40:0/0,45:1/0".
func (a Assignment) Key() string {
	var sb strings.Builder
	for i, n := range a.Notes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(n.Pitch)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(n.Position.String))
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(n.Position.Fret))
	}

	return sb.String()
}

// String renders the shape for logs: "E2@0/0 A2@1/0".
func (a Assignment) String() string {
	parts := make([]string, len(a.Notes))
	for i, n := range a.Notes {
		parts[i] = fmt.Sprintf("%s@%d/%d", n.Pitch, n.Position.String, n.Position.Fret)
	}

	return strings.Join(parts, " ")
}
