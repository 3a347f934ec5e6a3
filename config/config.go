package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fretwork/arrange"
	"github.com/katalvlaran/fretwork/astar"
	"github.com/katalvlaran/fretwork/cost"
	"github.com/katalvlaran/fretwork/fretboard"
)

// Sentinel errors returned by the config package.
var (
	// ErrUnsupportedFormat indicates a file extension other than .toml, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrUnknownKey indicates a key the configuration does not define.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrInvalid indicates a value that fails validation.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the full set of fretwork settings.
type Config struct {
	Instrument Instrument `toml:"instrument" yaml:"instrument"`
	Weights    Weights    `toml:"weights" yaml:"weights"`
	Cost       Cost       `toml:"cost" yaml:"cost"`
	Search     Search     `toml:"search" yaml:"search"`
	Log        Log        `toml:"log" yaml:"log"`
}

// Instrument describes the fretboard.
type Instrument struct {
	Tuning  string `toml:"tuning" yaml:"tuning"` // open strings, lowest first: "E2 A2 D3 G3 B3 E4"
	MaxFret int    `toml:"max_fret" yaml:"max_fret"`
	MaxSpan int    `toml:"max_span" yaml:"max_span"`
	Capo    int    `toml:"capo" yaml:"capo"`
}

// Weights mirrors cost.Weights.
type Weights struct {
	Displacement float64 `toml:"displacement" yaml:"displacement"`
	ReuseBonus   float64 `toml:"reuse_bonus" yaml:"reuse_bonus"`
	OpenBonus    float64 `toml:"open_bonus" yaml:"open_bonus"`
	Awkwardness  float64 `toml:"awkwardness" yaml:"awkwardness"`
	FretHeight   float64 `toml:"fret_height" yaml:"fret_height"`
	StringGap    float64 `toml:"string_gap" yaml:"string_gap"`
}

// Cost holds the cost model thresholds.
type Cost struct {
	ComfortSpan   int `toml:"comfort_span" yaml:"comfort_span"`
	FretThreshold int `toml:"fret_threshold" yaml:"fret_threshold"`
}

// Search holds the pathfinder budget and the fallback policy.
type Search struct {
	Heuristic      string `toml:"heuristic" yaml:"heuristic"`   // "min-node-cost" or "zero"
	TimeLimit      string `toml:"time_limit" yaml:"time_limit"` // Go duration; empty disables
	MaxExpansions  int    `toml:"max_expansions" yaml:"max_expansions"`
	SpanRelaxation int    `toml:"span_relaxation" yaml:"span_relaxation"`
}

// Log selects the log level and handler format.
type Log struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
}

// Default returns standard tuning, the default cost model, an unbounded
// search and info-level text logs.
func Default() Config {
	w := cost.DefaultWeights()

	return Config{
		Instrument: Instrument{
			Tuning:  fretboard.FormatTuning(fretboard.StandardTuning),
			MaxFret: fretboard.DefaultMaxFret,
			MaxSpan: fretboard.DefaultMaxSpan,
			Capo:    0,
		},
		Weights: Weights{
			Displacement: w.Displacement,
			ReuseBonus:   w.ReuseBonus,
			OpenBonus:    w.OpenBonus,
			Awkwardness:  w.Awkwardness,
			FretHeight:   w.FretHeight,
			StringGap:    w.StringGap,
		},
		Cost: Cost{
			ComfortSpan:   cost.DefaultComfortSpan,
			FretThreshold: cost.DefaultFretThreshold,
		},
		Search: Search{
			Heuristic: astar.MinNodeCost.String(),
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over Default() and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return cfg, fmt.Errorf("%w: %s in %s", ErrUnknownKey, extra[0], path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			if strings.Contains(err.Error(), "not found in type") {
				return cfg, fmt.Errorf("%w: %s: %v", ErrUnknownKey, path, err)
			}
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate reports every invalid value, joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(field string, err error) {
		errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalid, field, err))
	}

	if _, err := c.Fretboard(); err != nil {
		invalid("instrument", err)
	}
	if _, err := c.CostModel(); err != nil {
		invalid("cost", err)
	}
	if _, err := c.heuristic(); err != nil {
		invalid("search.heuristic", err)
	}
	if _, err := c.timeLimit(); err != nil {
		invalid("search.time_limit", err)
	}
	if c.Search.MaxExpansions < 0 {
		invalid("search.max_expansions", fmt.Errorf("%d is negative", c.Search.MaxExpansions))
	}
	if c.Search.SpanRelaxation < 0 {
		invalid("search.span_relaxation", fmt.Errorf("%d is negative", c.Search.SpanRelaxation))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		invalid("log.level", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		invalid("log.format", fmt.Errorf("%q is neither text nor json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Fretboard builds the configured fretboard.
func (c Config) Fretboard() (*fretboard.Fretboard, error) {
	tuning, err := fretboard.ParseTuning(c.Instrument.Tuning)
	if err != nil {
		return nil, err
	}

	return fretboard.New(tuning,
		fretboard.WithMaxFret(c.Instrument.MaxFret),
		fretboard.WithMaxSpan(c.Instrument.MaxSpan),
		fretboard.WithCapo(c.Instrument.Capo),
	)
}

// CostModel builds the configured cost model.
func (c Config) CostModel() (cost.Model, error) {
	w := cost.Weights{
		Displacement: c.Weights.Displacement,
		ReuseBonus:   c.Weights.ReuseBonus,
		OpenBonus:    c.Weights.OpenBonus,
		Awkwardness:  c.Weights.Awkwardness,
		FretHeight:   c.Weights.FretHeight,
		StringGap:    c.Weights.StringGap,
	}

	return cost.New(w, cost.WithComfortSpan(c.Cost.ComfortSpan), cost.WithFretThreshold(c.Cost.FretThreshold))
}

// SearchOptions returns the astar options for the configured budget.
func (c Config) SearchOptions() ([]astar.Option, error) {
	h, err := c.heuristic()
	if err != nil {
		return nil, err
	}
	d, err := c.timeLimit()
	if err != nil {
		return nil, err
	}
	if c.Search.MaxExpansions < 0 {
		return nil, fmt.Errorf("%w: max_expansions=%d", astar.ErrBadMaxExpansions, c.Search.MaxExpansions)
	}

	return []astar.Option{
		astar.WithHeuristic(h),
		astar.WithTimeLimit(d),
		astar.WithMaxExpansions(c.Search.MaxExpansions),
	}, nil
}

// ArrangerOptions returns the arrange options for the configured search and
// fallback policy, plus any extra options.
func (c Config) ArrangerOptions(extra ...arrange.Option) ([]arrange.Option, error) {
	search, err := c.SearchOptions()
	if err != nil {
		return nil, err
	}
	if c.Search.SpanRelaxation < 0 {
		return nil, fmt.Errorf("%w: span_relaxation=%d", arrange.ErrBadRelaxation, c.Search.SpanRelaxation)
	}
	opts := []arrange.Option{
		arrange.WithSearchOptions(search...),
		arrange.WithSpanRelaxation(c.Search.SpanRelaxation),
	}

	return append(opts, extra...), nil
}

// heuristic parses Search.Heuristic; empty selects MinNodeCost.
func (c Config) heuristic() (astar.Heuristic, error) {
	switch c.Search.Heuristic {
	case "", astar.MinNodeCost.String():
		return astar.MinNodeCost, nil
	case astar.Zero.String():
		return astar.Zero, nil
	default:
		return 0, fmt.Errorf("%w: %q", astar.ErrBadHeuristic, c.Search.Heuristic)
	}
}

// timeLimit parses Search.TimeLimit; empty means no limit.
func (c Config) timeLimit() (time.Duration, error) {
	if c.Search.TimeLimit == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Search.TimeLimit)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s", astar.ErrBadTimeLimit, d)
	}

	return d, nil
}
