package fretboard

import (
	"fmt"
	"strings"
)

// Fretboard is an immutable instrument model. Build it with New.
type Fretboard struct {
	tuning  []Pitch // open pitches with the capo applied, index 0 = lowest string
	maxFret int     // highest fret relative to the capo
	maxSpan int
	capo    int

	// positions maps every reachable pitch to its realizations ordered by string.
	positions map[Pitch][]Position
	lowest    Pitch
	highest   Pitch
}

// New validates the tuning and options and precomputes the pitch → positions table.
//
// Steps:
//  1. Apply DefaultOptions, then every functional option.
//  2. Validate tuning, fret range, span and capo.
//  3. For each string s and fret f in [0, maxFret-capo], record
//     tuning[s]+capo+f → Position{s, f}.
//
// Complexity: O(S·F) time and space, S = strings, F = frets.
func New(tuning []Pitch, opts ...Option) (*Fretboard, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(tuning) == 0 {
		return nil, ErrEmptyTuning
	}
	if cfg.MaxFret < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxFret, cfg.MaxFret)
	}
	if cfg.MaxSpan < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxSpan, cfg.MaxSpan)
	}
	if cfg.Capo < 0 || cfg.Capo > cfg.MaxFret {
		return nil, fmt.Errorf("%w: capo=%d maxFret=%d", ErrBadCapo, cfg.Capo, cfg.MaxFret)
	}

	fb := &Fretboard{
		tuning:    make([]Pitch, len(tuning)),
		maxFret:   cfg.MaxFret - cfg.Capo,
		maxSpan:   cfg.MaxSpan,
		capo:      cfg.Capo,
		positions: make(map[Pitch][]Position, len(tuning)*(cfg.MaxFret+1)),
	}
	for s, open := range tuning {
		fb.tuning[s] = open + Pitch(cfg.Capo)
	}

	fb.lowest, fb.highest = fb.tuning[0], fb.tuning[0]
	// Strings are visited in index order, so every slice ends up sorted by string.
	for s, open := range fb.tuning {
		for f := 0; f <= fb.maxFret; f++ {
			p := open + Pitch(f)
			fb.positions[p] = append(fb.positions[p], Position{String: s, Fret: f})
		}
		if open < fb.lowest {
			fb.lowest = open
		}
		if top := open + Pitch(fb.maxFret); top > fb.highest {
			fb.highest = top
		}
	}

	return fb, nil
}

// PositionsForPitch returns every (string, fret) that sounds p, ordered by
// string index. The result is empty when p is unreachable. The returned slice
// is a copy and may be modified by the caller.
func (fb *Fretboard) PositionsForPitch(p Pitch) []Position {
	src := fb.positions[p]
	if len(src) == 0 {
		return nil
	}
	out := make([]Position, len(src))
	copy(out, src)

	return out
}

// Reachable reports whether at least one string can sound p.
func (fb *Fretboard) Reachable(p Pitch) bool { return len(fb.positions[p]) > 0 }

// CheckPitch returns an *UnreachablePitchError when p cannot be played.
func (fb *Fretboard) CheckPitch(p Pitch) error {
	if fb.Reachable(p) {
		return nil
	}

	return &UnreachablePitchError{Pitch: p}
}

// Range returns the lowest and highest playable pitches.
func (fb *Fretboard) Range() (lo, hi Pitch) { return fb.lowest, fb.highest }

// Strings returns the number of strings.
func (fb *Fretboard) Strings() int { return len(fb.tuning) }

// MaxFret returns the highest usable fret, relative to the capo.
func (fb *Fretboard) MaxFret() int { return fb.maxFret }

// MaxSpan returns the hand-span limit in frets.
func (fb *Fretboard) MaxSpan() int { return fb.maxSpan }

// Capo returns the capo fret (0 when none).
func (fb *Fretboard) Capo() int { return fb.capo }

// OpenPitch returns the sounding pitch of string s played open (capo included).
func (fb *Fretboard) OpenPitch(s int) Pitch { return fb.tuning[s] }

// Tuning returns a copy of the open-string pitches without the capo.
func (fb *Fretboard) Tuning() []Pitch {
	out := make([]Pitch, len(fb.tuning))
	for i, p := range fb.tuning {
		out[i] = p - Pitch(fb.capo)
	}

	return out
}

// WithSpan returns a copy of fb whose span limit is n. The position table is
// shared, since it does not depend on the span.
func (fb *Fretboard) WithSpan(n int) (*Fretboard, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxSpan, n)
	}
	cp := *fb
	cp.maxSpan = n

	return &cp, nil
}

// Fingerprint is a stable textual key for the full configuration. Two
// fretboards with equal fingerprints enumerate identical shapes.
func (fb *Fretboard) Fingerprint() string {
	var sb strings.Builder
	for i, p := range fb.Tuning() {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", int(p))
	}
	fmt.Fprintf(&sb, "|fret=%d|span=%d|capo=%d", fb.maxFret+fb.capo, fb.maxSpan, fb.capo)

	return sb.String()
}
