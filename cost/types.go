package cost

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by New and Validate.
var (
	// ErrNegativeWeight indicates a weight below zero.
	ErrNegativeWeight = errors.New("cost: weights must be non-negative")

	// ErrBadWeight indicates a NaN or infinite weight.
	ErrBadWeight = errors.New("cost: weights must be finite")

	// ErrBadParameter indicates a negative comfort span or fret threshold.
	ErrBadParameter = errors.New("cost: comfort span and fret threshold must be non-negative")
)

// Weights are the tunable coefficients of the cost model.
//
// Displacement – cost per fret of hand travel between consecutive shapes.
// ReuseBonus   – credit per fretted position held over from the previous shape.
// OpenBonus    – credit per open string in the next shape.
// Awkwardness  – cost per fretted note and per fret of stretch beyond ComfortSpan.
// FretHeight   – cost per fret that the highest fret exceeds FretThreshold.
// StringGap    – cost per skipped string inside a chord.
type Weights struct {
	Displacement float64
	ReuseBonus   float64
	OpenBonus    float64
	Awkwardness  float64
	FretHeight   float64
	StringGap    float64
}

// DefaultWeights returns the stock coefficients.
func DefaultWeights() Weights {
	return Weights{
		Displacement: 2,
		ReuseBonus:   1,
		OpenBonus:    0.5,
		Awkwardness:  1,
		FretHeight:   1,
		StringGap:    1,
	}
}

// Validate reports the first non-finite or negative weight.
func (w Weights) Validate() error {
	named := [...]struct {
		name string
		v    float64
	}{
		{"displacement", w.Displacement},
		{"reuse_bonus", w.ReuseBonus},
		{"open_bonus", w.OpenBonus},
		{"awkwardness", w.Awkwardness},
		{"fret_height", w.FretHeight},
		{"string_gap", w.StringGap},
	}
	for _, n := range named {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrBadWeight, n.name, n.v)
		}
		if n.v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrNegativeWeight, n.name, n.v)
		}
	}

	return nil
}

// Defaults for the shape parameters.
const (
	DefaultComfortSpan   = 3
	DefaultFretThreshold = 7
)

// Options configures the shape parameters of a Model.
type Options struct {
	ComfortSpan   int
	FretThreshold int
}

// Option represents a functional option for New.
type Option func(*Options)

// WithComfortSpan sets the fret span a hand covers without stretching.
func WithComfortSpan(n int) Option {
	return func(o *Options) {
		o.ComfortSpan = n
	}
}

// WithFretThreshold sets the fret above which height is penalized.
func WithFretThreshold(n int) Option {
	return func(o *Options) {
		o.FretThreshold = n
	}
}

// DefaultOptions returns ComfortSpan=3 and FretThreshold=7.
func DefaultOptions() Options {
	return Options{
		ComfortSpan:   DefaultComfortSpan,
		FretThreshold: DefaultFretThreshold,
	}
}
