// Package shape enumerates the playable fingerings of one musical event.
//
// An Assignment maps every pitch of an event to exactly one (string, fret)
// position. It is valid when:
//
//   - no two pitches share a string, and
//   - the fretted notes (fret > 0) lie within the fretboard's span:
//     max(fret) − min(fret) ≤ MaxSpan. Open strings never count against the span.
//
// Enumerate produces the complete set of valid assignments by recursive
// backtracking: pitches in ascending order, candidate positions in string
// order, pruning a branch as soon as a string repeats or the span overflows.
// The output order is therefore fully deterministic, which the search relies
// on for reproducible tie-breaking.
//
// Failure:
//
//	When a pitch is unreachable or no combination survives the filters,
//	Enumerate returns *UnplayableEventError carrying the event index. It
//	matches ErrUnplayableEvent with errors.Is, and additionally
//	fretboard.ErrUnreachablePitch when that was the cause.
//
// Complexity:
//
//	O(∏ |positions(p)|) in the worst case over the event's pitches. Chords
//	are bounded by the string count, so this stays small in practice.
//
// Caching:
//
//	Cache memoizes enumeration results across runs, keyed by the fretboard
//	fingerprint and the pitch set. A different tuning, capo, fret range or
//	span produces a different key, so stale entries are never served.
package shape
