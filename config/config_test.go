package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fretwork/arrange"
	"github.com/katalvlaran/fretwork/astar"
	"github.com/katalvlaran/fretwork/config"
	"github.com/katalvlaran/fretwork/cost"
	"github.com/katalvlaran/fretwork/fretboard"
)

// write stores content under name in a fresh temp dir and returns the path.
func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// applied folds astar options into Options.
func applied(opts []astar.Option) astar.Options {
	o := astar.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

const tomlFile = `
[instrument]
tuning = "D2 A2 D3 G3 B3 E4"
capo = 2

[weights]
displacement = 3.0

[search]
heuristic = "zero"
time_limit = "2s"
span_relaxation = 1

[log]
level = "debug"
format = "json"
`

const yamlFile = `
instrument:
  tuning: "D2 A2 D3 G3 B3 E4"
  capo: 2
weights:
  displacement: 3
search:
  heuristic: zero
  time_limit: 2s
  span_relaxation: 1
log:
  level: debug
  format: json
`

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	fb, err := cfg.Fretboard()
	require.NoError(t, err)
	std, err := fretboard.New(fretboard.StandardTuning)
	require.NoError(t, err)
	assert.Equal(t, std.Fingerprint(), fb.Fingerprint())

	m, err := cfg.CostModel()
	require.NoError(t, err)
	assert.Equal(t, cost.DefaultModel(), m)

	opts, err := cfg.SearchOptions()
	require.NoError(t, err)
	assert.Equal(t, astar.DefaultOptions(), applied(opts))
}

func TestLoad_Formats(t *testing.T) {
	for _, path := range []string{
		write(t, "fretwork.toml", tomlFile),
		write(t, "fretwork.yaml", yamlFile),
		write(t, "fretwork.yml", yamlFile),
	} {
		cfg, err := config.Load(path)
		require.NoError(t, err, path)

		// Set keys.
		assert.Equal(t, 2, cfg.Instrument.Capo, path)
		assert.Equal(t, 3.0, cfg.Weights.Displacement, path)
		assert.Equal(t, "debug", cfg.Log.Level, path)
		// Missing keys keep defaults.
		assert.Equal(t, fretboard.DefaultMaxFret, cfg.Instrument.MaxFret, path)
		assert.Equal(t, cost.DefaultWeights().ReuseBonus, cfg.Weights.ReuseBonus, path)
		assert.Equal(t, cost.DefaultComfortSpan, cfg.Cost.ComfortSpan, path)

		fb, err := cfg.Fretboard()
		require.NoError(t, err)
		assert.Equal(t, 2, fb.Capo())
		assert.Equal(t, fretboard.Pitch(40), fb.OpenPitch(0), "drop D with a capo on 2 sounds E2")

		opts, err := cfg.SearchOptions()
		require.NoError(t, err)
		o := applied(opts)
		assert.Equal(t, astar.Zero, o.Heuristic)
		assert.Equal(t, 2*time.Second, o.TimeLimit)

		aopts, err := cfg.ArrangerOptions()
		require.NoError(t, err)
		ao := arrange.DefaultOptions()
		for _, opt := range aopts {
			opt(&ao)
		}
		assert.Equal(t, 1, ao.SpanRelaxation)
		assert.Len(t, ao.Search, 3)
	}
}

func TestLoad_EmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(write(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(write(t, "fretwork.json", `{}`))
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(write(t, "bad.toml", "[instrument]\nfrets = 22\n"))
	assert.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = config.Load(write(t, "bad.yaml", "instrument:\n  frets: 22\n"))
	assert.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = config.Load(write(t, "broken.toml", "[instrument\n"))
	assert.Error(t, err)
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Instrument.Tuning = "X9"
	cfg.Search.TimeLimit = "soon"
	cfg.Log.Format = "xml"
	cfg.Weights.OpenBonus = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, cost.ErrNegativeWeight)
	assert.Contains(t, err.Error(), "instrument")
	assert.Contains(t, err.Error(), "search.time_limit")
	assert.Contains(t, err.Error(), "log.format")

	cfg = config.Default()
	cfg.Search.Heuristic = "greedy"
	assert.ErrorIs(t, cfg.Validate(), astar.ErrBadHeuristic)
	_, err = cfg.SearchOptions()
	assert.ErrorIs(t, err, astar.ErrBadHeuristic)

	cfg = config.Default()
	cfg.Search.SpanRelaxation = -1
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
	_, err = cfg.ArrangerOptions()
	assert.ErrorIs(t, err, arrange.ErrBadRelaxation)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := config.NewLogger("warn", "json", &buf)
	log.Info("dropped")
	log.Warn("kept", "event", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, 3.0, rec["event"])

	buf.Reset()
	config.NewLogger("nonsense", "text", &buf).Info("hello")
	assert.Contains(t, buf.String(), "level=INFO msg=hello")

	_, err := config.ParseLevel("loud")
	assert.Error(t, err)
}
