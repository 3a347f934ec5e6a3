package shape

import (
	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
)

// Enumerate returns every valid Assignment for ev on fb, in deterministic order.
//
// Steps:
//  1. Look up the candidate positions of each pitch; an empty list fails the
//     event with an UnreachablePitchError cause.
//  2. Backtrack over pitches in ascending order, trying candidates in string
//     order, keeping a used-string mask and the running fretted min/max.
//  3. Emit a copy of the partial assignment whenever all pitches are placed.
//  4. An empty result fails the event.
func Enumerate(fb *fretboard.Fretboard, ev score.Event) ([]Assignment, error) {
	return enumerate(fb, ev.Index, ev.Pitches)
}

// enumerate is Enumerate on a raw pitch set; pitches must be unique.
func enumerate(fb *fretboard.Fretboard, index int, pitches []fretboard.Pitch) ([]Assignment, error) {
	if len(pitches) == 0 {
		return nil, &UnplayableEventError{Index: index, Cause: score.ErrEmptyEvent}
	}
	if len(pitches) > fb.Strings() {
		return nil, &UnplayableEventError{Index: index}
	}

	// 1) Candidates per pitch.
	candidates := make([][]fretboard.Position, len(pitches))
	for i, p := range pitches {
		candidates[i] = fb.PositionsForPitch(p)
		if len(candidates[i]) == 0 {
			return nil, &UnplayableEventError{Index: index, Cause: fb.CheckPitch(p)}
		}
	}

	// 2) Backtracking state.
	b := &backtracker{
		pitches:    pitches,
		candidates: candidates,
		maxSpan:    fb.MaxSpan(),
		used:       make([]bool, fb.Strings()),
		partial:    make([]Note, len(pitches)),
	}
	b.place(0, 0, 0)

	// 4) Nothing survived string uniqueness and span.
	if len(b.out) == 0 {
		return nil, &UnplayableEventError{Index: index}
	}

	return b.out, nil
}

// backtracker holds the mutable state of one enumeration.
type backtracker struct {
	pitches    []fretboard.Pitch
	candidates [][]fretboard.Position
	maxSpan    int
	used       []bool // used[s] is true while string s holds a note
	partial    []Note
	out        []Assignment
}

// place assigns pitch i given the fretted window [lo, hi] so far (0 = none).
func (b *backtracker) place(i, lo, hi int) {
	if i == len(b.pitches) {
		// 3) Complete assignment: copy out the partial notes.
		notes := make([]Note, len(b.partial))
		copy(notes, b.partial)
		b.out = append(b.out, Assignment{Notes: notes})

		return
	}

	for _, pos := range b.candidates[i] {
		if b.used[pos.String] {
			continue
		}
		nlo, nhi := lo, hi
		if pos.Fret > 0 {
			if nlo == 0 || pos.Fret < nlo {
				nlo = pos.Fret
			}
			if pos.Fret > nhi {
				nhi = pos.Fret
			}
			if nhi-nlo > b.maxSpan {
				continue
			}
		}

		b.used[pos.String] = true
		b.partial[i] = Note{Pitch: b.pitches[i], Position: pos}
		b.place(i+1, nlo, nhi)
		b.used[pos.String] = false
	}
}
