// Package config loads fretwork settings from TOML or YAML files and turns
// them into the values the core packages consume: a *fretboard.Fretboard, a
// cost.Model, astar and arrange options, and a *slog.Logger.
//
// Keys missing from a file keep their Default() values; unknown keys are
// rejected. A TOML file looks like:
//
//	[instrument]
//	tuning = "D2 A2 D3 G3 B3 E4"
//	max_fret = 15
//	capo = 2
//
//	[weights]
//	displacement = 3.0
//
//	[search]
//	time_limit = "2s"
//	span_relaxation = 1
//
//	[log]
//	level = "debug"
//	format = "json"
package config
