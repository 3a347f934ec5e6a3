package cost

import (
	"fmt"

	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/shape"
)

// Model is an immutable, pure cost function. The zero value charges nothing.
type Model struct {
	weights       Weights
	comfortSpan   int
	fretThreshold int
}

// New validates w and the options and returns a Model.
func New(w Weights, opts ...Option) (Model, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := w.Validate(); err != nil {
		return Model{}, err
	}
	if cfg.ComfortSpan < 0 || cfg.FretThreshold < 0 {
		return Model{}, fmt.Errorf("%w: comfort=%d threshold=%d", ErrBadParameter, cfg.ComfortSpan, cfg.FretThreshold)
	}

	return Model{weights: w, comfortSpan: cfg.ComfortSpan, fretThreshold: cfg.FretThreshold}, nil
}

// DefaultModel returns New(DefaultWeights()).
func DefaultModel() Model {
	m, _ := New(DefaultWeights())

	return m
}

// Weights returns the model coefficients.
func (m Model) Weights() Weights { return m.weights }

// ComfortSpan returns the stretch-free span.
func (m Model) ComfortSpan() int { return m.comfortSpan }

// FretThreshold returns the fret above which height is penalized.
func (m Model) FretThreshold() int { return m.fretThreshold }

// Intra prices the awkwardness of a single shape.
func (m Model) Intra(a shape.Assignment) float64 {
	w := m.weights
	stretch := max(0, a.Span()-m.comfortSpan)
	height := max(0, a.MaxFret()-m.fretThreshold)

	return w.Awkwardness*float64(a.Fretted()+stretch) +
		w.FretHeight*float64(height) +
		w.StringGap*float64(a.StringGaps())
}

// Transition prices moving the hand from prev to next. A nil prev is the
// start marker and a nil next the goal marker; both cost 0.
func (m Model) Transition(prev, next *shape.Assignment) float64 {
	if prev == nil || next == nil {
		return 0
	}
	w := m.weights

	var displacement float64
	if !prev.IsOpen() && !next.IsOpen() {
		displacement = float64(abs(prev.MinFret() - next.MinFret()))
	}

	c := w.Displacement*displacement -
		w.ReuseBonus*float64(shared(*prev, *next)) -
		w.OpenBonus*float64(next.Opens())

	return max(0, c)
}

// Edge is the full weight of the arc prev → next: Transition plus the
// awkwardness of next, charged once on entry.
func (m Model) Edge(prev, next *shape.Assignment) float64 {
	if next == nil {
		return 0
	}

	return m.Transition(prev, next) + m.Intra(*next)
}

// shared counts fretted positions of next already held in prev.
func shared(prev, next shape.Assignment) int {
	held := make(map[fretboard.Position]struct{}, len(prev.Notes))
	for _, n := range prev.Notes {
		if n.Position.Fret > 0 {
			held[n.Position] = struct{}{}
		}
	}
	c := 0
	for _, n := range next.Notes {
		if _, ok := held[n.Position]; ok {
			c++
		}
	}

	return c
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
