package arrange

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/fretwork/astar"
	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
	"github.com/katalvlaran/fretwork/shape"
)

// Sentinel errors returned by the arrange package.
var (
	// ErrNilFretboard indicates that New received a nil fretboard.
	ErrNilFretboard = errors.New("arrange: fretboard is nil")

	// ErrBadRelaxation indicates a negative span relaxation.
	ErrBadRelaxation = errors.New("arrange: span relaxation must be non-negative")
)

// Outcome classifies the end of an arrangement run.
type Outcome int

const (
	// Success means every event received a shape.
	Success Outcome = iota

	// UnplayableEvent means an event had no valid shape.
	UnplayableEvent

	// NoPathFound means the search emptied its queue before GOAL.
	NoPathFound

	// SearchAborted means cancellation, a time limit or a budget stopped the search.
	SearchAborted

	// Invalid means the events were rejected before searching.
	Invalid
)

// String returns the outcome label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case UnplayableEvent:
		return "unplayable_event"
	case NoPathFound:
		return "no_path_found"
	case SearchAborted:
		return "search_aborted"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Step pairs an event with the shape chosen for it.
type Step struct {
	Event      score.Event
	Assignment shape.Assignment
}

// PositionOf returns the string and fret chosen for pitch p.
func (s Step) PositionOf(p fretboard.Pitch) (fretboard.Position, bool) {
	return s.Assignment.PositionOf(p)
}

// Arrangement is the result of one run.
//
// Steps          – one Step per event, in event order; nil on failure.
// Cost           – total path cost.
// TransitionCost – the part of Cost spent moving between shapes.
// Outcome        – how the run ended.
// RunID          – identifier shared with the run's log records.
// Expanded       – states expanded by the final search.
// RelaxedSpan    – frets added to maxSpan by the fallback policy.
type Arrangement struct {
	Steps          []Step
	Cost           float64
	TransitionCost float64
	Outcome        Outcome
	RunID          string
	Expanded       int
	RelaxedSpan    int
}

// Options configures an Arranger.
//
// Logger         – structured logger; records carry run_id. Default discards.
// Cache          – shared shape cache; nil means a fresh cache per run.
// Search         – options passed through to astar.Search.
// SpanRelaxation – retries with a wider span on unplayable events. Default 0.
// Tracer         – OpenTelemetry tracer. Default is the global provider's.
type Options struct {
	Logger         *slog.Logger
	Cache          *shape.Cache
	Search         []astar.Option
	SpanRelaxation int
	Tracer         trace.Tracer
}

// Option represents a functional option for New.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithCache shares a shape cache across runs.
func WithCache(c *shape.Cache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

// WithSearchOptions appends options for astar.Search.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(o *Options) {
		o.Search = append(o.Search, opts...)
	}
}

// WithSpanRelaxation enables the span fallback for up to n extra frets.
// Panics on a negative n.
func WithSpanRelaxation(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadRelaxation.Error())
		}
		o.SpanRelaxation = n
	}
}

// WithTracer sets the tracer used for the arrange.Arrange span.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

// DefaultOptions returns a discarding logger, no shared cache, default search
// options, no span relaxation and the global tracer.
func DefaultOptions() Options {
	return Options{
		Logger:         discardLogger(),
		Cache:          nil,
		Search:         nil,
		SpanRelaxation: 0,
		Tracer:         nil,
	}
}
