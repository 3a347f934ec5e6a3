package fretboard

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the fretboard package.
var (
	// ErrEmptyTuning indicates that no open-string pitches were supplied.
	ErrEmptyTuning = errors.New("fretboard: tuning must contain at least one string")

	// ErrBadMaxFret indicates a negative fret range.
	ErrBadMaxFret = errors.New("fretboard: maxFret must be non-negative")

	// ErrBadMaxSpan indicates a negative hand span.
	ErrBadMaxSpan = errors.New("fretboard: maxSpan must be non-negative")

	// ErrBadCapo indicates a negative capo or one placed beyond the last fret.
	ErrBadCapo = errors.New("fretboard: capo must be within [0, maxFret]")

	// ErrUnreachablePitch indicates that no string can sound a pitch within range.
	ErrUnreachablePitch = errors.New("fretboard: pitch is unreachable")

	// ErrBadPitchName indicates a malformed scientific pitch name.
	ErrBadPitchName = errors.New("fretboard: malformed pitch name")
)

// Defaults applied by New when the corresponding option is not given.
const (
	DefaultMaxFret = 12
	DefaultMaxSpan = 4
)

// Pitch is an absolute pitch in semitones using MIDI numbering (C4 = 60).
type Pitch int

// StandardTuning is the six-string E standard tuning: E2 A2 D3 G3 B3 E4.
var StandardTuning = []Pitch{40, 45, 50, 55, 59, 64}

// Position is one physical place on the neck.
// String indexes the tuning (0 = lowest string); Fret 0 is the open string.
type Position struct {
	String int
	Fret   int
}

// IsOpen reports whether the position is an open string.
func (p Position) IsOpen() bool { return p.Fret == 0 }

// UnreachablePitchError reports the pitch that no string can produce.
type UnreachablePitchError struct {
	Pitch Pitch
}

func (e *UnreachablePitchError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", ErrUnreachablePitch.Error(), e.Pitch, int(e.Pitch))
}

// Unwrap lets errors.Is match ErrUnreachablePitch.
func (e *UnreachablePitchError) Unwrap() error { return ErrUnreachablePitch }

// Options configures a Fretboard.
//
// MaxFret – highest physical fret (inclusive). Must be ≥ 0.
// MaxSpan – widest fret distance between fretted notes of one shape. Must be ≥ 0.
// Capo    – fret the capo clamps. Must be in [0, MaxFret].
type Options struct {
	MaxFret int
	MaxSpan int
	Capo    int
}

// Option represents a functional option for New.
type Option func(*Options)

// WithMaxFret sets the highest playable fret.
func WithMaxFret(n int) Option {
	return func(o *Options) {
		o.MaxFret = n
	}
}

// WithMaxSpan sets the maximum fret distance one hand position may cover.
func WithMaxSpan(n int) Option {
	return func(o *Options) {
		o.MaxSpan = n
	}
}

// WithCapo places a capo at the given fret.
func WithCapo(fret int) Option {
	return func(o *Options) {
		o.Capo = fret
	}
}

// DefaultOptions returns MaxFret=12, MaxSpan=4 and no capo.
func DefaultOptions() Options {
	return Options{
		MaxFret: DefaultMaxFret,
		MaxSpan: DefaultMaxSpan,
		Capo:    0,
	}
}
