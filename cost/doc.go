// Package cost prices fingerings: how awkward a single shape is, and how much
// effort it takes to move from one shape to the next.
//
// Model:
//
//	Intra(a) =  Awkwardness · (fretted(a) + max(0, span(a) − ComfortSpan))
//	          + FretHeight  · max(0, maxFret(a) − FretThreshold)
//	          + StringGap   · gaps(a)
//
//	Transition(p, n) = max(0, Displacement · |anchor(p) − anchor(n)|
//	                          − ReuseBonus · shared(p, n)
//	                          − OpenBonus  · opens(n))
//
//	Edge(p, n) = Transition(p, n) + Intra(n)
//
// where anchor is the lowest fretted fret of a shape, shared counts fretted
// (string, fret) positions held in both shapes, opens counts open strings in
// the next shape, and gaps counts unplayed strings inside a chord.
//
// Markers:
//
//   - A nil previous shape is the search start: Transition is 0, so the first
//     edge costs exactly Intra(next).
//   - A nil next shape is the search goal: Transition and Edge are 0.
//   - An all-open shape has no anchor; moving to or from it costs no
//     displacement, as the fretting hand is free.
//
// Every term is non-negative for non-negative weights, so Edge ≥ Intra(next)
// ≥ 0. The A* heuristic built on per-layer minimum Intra is therefore
// admissible and consistent.
//
// No default is sacred: DefaultWeights mirrors the relative emphasis of the
// classic biomechanical cost (displacement twice as heavy as shape terms) and
// every weight can be tuned through New or configuration.
package cost
