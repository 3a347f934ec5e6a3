// Package fretwork computes playable guitar fingerings for a sequence of
// notes and chords.
//
// What is fretwork?
//
//	Every pitch can usually be played in several places on the neck. fretwork
//	chooses, for each musical event, which string and fret sound each pitch,
//	so that the whole piece is as easy to play as possible: few hand shifts,
//	compact chord shapes, open strings where they help.
//
// How it works:
//
//	events ─▶ shape.Enumerate ─▶ arrange.Graph ─▶ astar.Search ─▶ arrange.Assemble
//	               (per event)     (lazy layers)    (min cost)     (steps)
//
// Packages:
//
//	fretboard/    tuning, fret range, span limit and capo; pitch ↔ position tables
//	score/        immutable musical events; Standard MIDI File extraction
//	shape/        complete enumeration of chord shapes per event, shared cache
//	cost/         the pure cost model: intra-shape and transition costs
//	astar/        generic A* over implicit layered DAGs
//	arrange/      fingering graph, Arranger, outcomes, logging, metrics, tracing
//	tab/          ASCII tablature and per-event listings
//	config/       TOML/YAML configuration and logger construction
//	cmd/fretwork  the command-line front end
//
// Quick example:
//
//	fb, _ := fretboard.New(fretboard.StandardTuning)
//	a, _ := arrange.New(fb, cost.DefaultModel())
//	events, _ := score.Sequence([]fretboard.Pitch{40}, []fretboard.Pitch{45})
//	arr, err := a.Arrange(ctx, events)
//
//	go install github.com/katalvlaran/fretwork/cmd/fretwork@latest
package fretwork
