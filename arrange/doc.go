// Package arrange turns a sequence of musical events into a playable guitar
// fingering by searching the fingering graph with A*.
//
// What:
//
//   - The fingering graph has one layer per event. The nodes of layer i are the
//     chord shapes shape.Enumerate returns for event i; arcs join every shape of
//     layer i to every shape of layer i+1 and are priced by a cost.Model.
//   - The graph is implicit. Graph adapts the events to astar.Graph and
//     enumerates a layer only when the search first reaches it.
//   - Arranger runs the search and Assemble projects the winning path back onto
//     the events as an ordered list of Steps.
//
// Outcomes:
//
//	Every call to Arrange ends in exactly one Outcome:
//	  Success         – Steps hold one shape per event, Cost is minimal.
//	  UnplayableEvent – some event has no valid shape; the error names it.
//	  NoPathFound     – every layer had shapes yet GOAL was not reached.
//	  SearchAborted   – the context, time limit or expansion budget ran out.
//	  Invalid         – the event sequence failed score.Validate.
//	A failed Arrangement carries only Outcome and RunID. No partial fingering is
//	ever returned.
//
// Fallback:
//
//	WithSpanRelaxation(n) is the only recovery policy. When an event is
//	unplayable because of the span limit, Arrange retries with maxSpan+1, up to
//	n times, and reports the extra frets in Arrangement.RelaxedSpan. Unreachable
//	pitches are never retried. The policy is off by default.
//
// Observability:
//
//	Each run gets a RunID (a UUID) attached to every log record. Arrange logs
//	through log/slog, counts runs per outcome in Prometheus
//	(fretwork_arrangements_total), records search expansions and duration, and
//	opens an OpenTelemetry span named "arrange.Arrange".
//
// Concurrency:
//
//	An Arranger is immutable after New and safe for concurrent use; a shared
//	shape.Cache synchronizes itself. Each run owns its search state.
package arrange
