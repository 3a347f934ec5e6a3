package arrange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/fretwork/astar"
	"github.com/katalvlaran/fretwork/cost"
	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
	"github.com/katalvlaran/fretwork/shape"
)

const tracerName = "github.com/katalvlaran/fretwork/arrange"

// Arranger finds minimum-cost fingerings on one fretboard.
type Arranger struct {
	fb    *fretboard.Fretboard
	model cost.Model
	opts  Options
}

// New returns an Arranger for fb priced by m.
func New(fb *fretboard.Fretboard, m cost.Model, opts ...Option) (*Arranger, error) {
	if fb == nil {
		return nil, ErrNilFretboard
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(tracerName)
	}

	return &Arranger{fb: fb, model: m, opts: cfg}, nil
}

// Fretboard returns the base fretboard.
func (a *Arranger) Fretboard() *fretboard.Fretboard { return a.fb }

// Arrange computes the minimum-cost fingering of events.
//
// Steps:
//  1. Validate the events (Invalid on failure).
//  2. Search the fingering graph.
//  3. If an event is unplayable within the span limit and relaxation is
//     enabled, widen the span by one fret and search again.
//  4. Assemble the winning path into Steps.
//
// On failure the returned Arrangement carries only Outcome and RunID, and err
// classifies with OutcomeOf.
func (a *Arranger) Arrange(ctx context.Context, events []score.Event) (Arrangement, error) {
	runID := uuid.NewString()
	log := a.opts.Logger.With(slog.String("run_id", runID))
	began := time.Now()

	ctx, span := a.opts.Tracer.Start(ctx, "arrange.Arrange",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("events", len(events)),
		),
	)
	defer span.End()

	log.DebugContext(ctx, "arrangement started", slog.Int("events", len(events)))

	arr, err := a.arrange(ctx, log, events)
	arr.RunID = runID
	elapsed := time.Since(began)

	outcome := OutcomeOf(err)
	arrangementsTotal.WithLabelValues(outcome.String()).Inc()
	arrangeDuration.WithLabelValues(outcome.String()).Observe(elapsed.Seconds())
	span.SetAttributes(attribute.String("outcome", outcome.String()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome.String())
		a.logFailure(ctx, log, outcome, err, elapsed)

		return Arrangement{Outcome: outcome, RunID: runID}, err
	}

	searchExpansions.Observe(float64(arr.Expanded))
	span.SetAttributes(
		attribute.Float64("cost", arr.Cost),
		attribute.Int("expanded", arr.Expanded),
	)
	span.SetStatus(codes.Ok, "arranged")
	log.InfoContext(ctx, "arrangement finished",
		slog.Int("events", len(arr.Steps)),
		slog.Float64("cost", arr.Cost),
		slog.Int("expanded", arr.Expanded),
		slog.Int("relaxed_span", arr.RelaxedSpan),
		slog.Duration("duration", elapsed),
	)

	return arr, nil
}

// arrange runs the search with the fallback policy.
func (a *Arranger) arrange(ctx context.Context, log *slog.Logger, events []score.Event) (Arrangement, error) {
	// 1) Validate input.
	if err := score.Validate(events); err != nil {
		return Arrangement{}, err
	}

	fb := a.fb
	for relaxed := 0; ; relaxed++ {
		// 2) Search.
		g := NewGraph(fb, a.model, events, a.opts.Cache)
		path, err := astar.Search[shape.Assignment](ctx, g, a.opts.Search...)
		if err == nil {
			// 4) Assemble.
			return Arrangement{
				Steps:          Assemble(events, path),
				Cost:           path.Cost,
				TransitionCost: path.TransitionCost,
				Outcome:        Success,
				Expanded:       path.Expanded,
				RelaxedSpan:    relaxed,
			}, nil
		}

		// 3) Fallback.
		if relaxed >= a.opts.SpanRelaxation || !spanBound(err) {
			return Arrangement{}, err
		}
		wider, werr := fb.WithSpan(fb.MaxSpan() + 1)
		if werr != nil {
			return Arrangement{}, werr
		}
		log.WarnContext(ctx, "relaxing span limit",
			slog.Int("event", eventIndex(err)),
			slog.Int("from", fb.MaxSpan()),
			slog.Int("to", wider.MaxSpan()),
		)
		fb = wider
	}
}

// logFailure logs a failed run at a level matching its outcome.
func (a *Arranger) logFailure(ctx context.Context, log *slog.Logger, o Outcome, err error, elapsed time.Duration) {
	attrs := []any{
		slog.String("outcome", o.String()),
		slog.String("error", err.Error()),
		slog.Duration("duration", elapsed),
	}
	switch o {
	case NoPathFound:
		// Every layer had shapes, so GOAL should have been reachable.
		log.ErrorContext(ctx, "arrangement failed", attrs...)
	case UnplayableEvent:
		attrs = append(attrs, slog.Int("event", eventIndex(err)))
		log.WarnContext(ctx, "arrangement failed", attrs...)
	default:
		log.WarnContext(ctx, "arrangement failed", attrs...)
	}
}

// OutcomeOf classifies an error returned by Arrange.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, shape.ErrUnplayableEvent):
		return UnplayableEvent
	case errors.Is(err, astar.ErrNoPathFound):
		return NoPathFound
	case errors.Is(err, astar.ErrSearchAborted):
		return SearchAborted
	default:
		return Invalid
	}
}

// FailedEvent returns the index of the unplayable event named by err.
func FailedEvent(err error) (int, bool) {
	var ue *shape.UnplayableEventError
	if errors.As(err, &ue) {
		return ue.Index, true
	}

	return 0, false
}

// Describe renders err for people: which event failed and why.
func Describe(err error) string {
	idx, ok := FailedEvent(err)
	switch {
	case !ok:
		return err.Error()
	case errors.Is(err, fretboard.ErrUnreachablePitch):
		return fmt.Sprintf("event %d: pitch out of range of the instrument", idx)
	default:
		return fmt.Sprintf("event %d: no fingering fits the strings and span limit", idx)
	}
}

// spanBound reports whether err is an unplayable event a wider span could fix.
func spanBound(err error) bool {
	if !errors.Is(err, shape.ErrUnplayableEvent) {
		return false
	}

	return !errors.Is(err, fretboard.ErrUnreachablePitch) && !errors.Is(err, score.ErrEmptyEvent)
}

// eventIndex is FailedEvent for log attributes; -1 when unknown.
func eventIndex(err error) int {
	if idx, ok := FailedEvent(err); ok {
		return idx
	}

	return -1
}

// discardLogger returns a logger that drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
