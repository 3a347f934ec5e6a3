// Command fretwork arranges a Standard MIDI File for guitar and prints the
// fingering as tablature or as a per-event listing.
//
// Usage:
//
//	fretwork [flags] song.mid
//
// Exit status is 0 on success, 2 when an event cannot be fingered and 1 on
// any other failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/katalvlaran/fretwork/arrange"
	"github.com/katalvlaran/fretwork/config"
	"github.com/katalvlaran/fretwork/score"
	"github.com/katalvlaran/fretwork/tab"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitUnplayable = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process: it parses args, arranges the file and
// writes the result to stdout, logs and usage to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fretwork", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "TOML or YAML configuration file")
	track := fs.Int("track", -1, "MIDI track to read (-1 for all)")
	channel := fs.Int("channel", -1, "MIDI channel to read (-1 for all)")
	format := fs.String("format", "tab", "output format: tab or list")
	wrap := fs.Int("wrap", 16, "events per tablature line (0 for one line)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	timeout := fs.Duration("timeout", 0, "abort the search after this long (0 for no limit)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fretwork [flags] song.mid")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitFailure
	}
	if *format != "tab" && *format != "list" {
		fmt.Fprintf(stderr, "fretwork: unknown format %q\n", *format)
		return exitFailure
	}
	if *wrap < 0 || *timeout < 0 {
		fmt.Fprintln(stderr, "fretwork: -wrap and -timeout must be non-negative")
		return exitFailure
	}

	// 1) Configuration.
	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(stderr, "fretwork: %v\n", err)
			return exitFailure
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logger := cfg.Logger(stderr)

	fb, err := cfg.Fretboard()
	if err != nil {
		logger.Error("building fretboard", "err", err)
		return exitFailure
	}
	model, err := cfg.CostModel()
	if err != nil {
		logger.Error("building cost model", "err", err)
		return exitFailure
	}
	opts, err := cfg.ArrangerOptions(arrange.WithLogger(logger))
	if err != nil {
		logger.Error("building search options", "err", err)
		return exitFailure
	}
	arranger, err := arrange.New(fb, model, opts...)
	if err != nil {
		logger.Error("building arranger", "err", err)
		return exitFailure
	}

	// 2) Score.
	path := fs.Arg(0)
	events, err := score.ReadSMFFile(path, score.ReadOptions{Track: *track, Channel: *channel})
	if err != nil {
		logger.Error("reading score", "path", path, "err", err)
		return exitFailure
	}
	logger.Debug("score loaded", "path", path, "events", len(events), "tuning", cfg.Instrument.Tuning)

	// 3) Arrange.
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	began := time.Now()
	arr, err := arranger.Arrange(ctx, events)
	if err != nil {
		fmt.Fprintf(stderr, "fretwork: %s\n", arrange.Describe(err))
		if arrange.OutcomeOf(err) == arrange.UnplayableEvent {
			return exitUnplayable
		}
		return exitFailure
	}
	logger.Debug("arranged", "run_id", arr.RunID, "cost", arr.Cost, "elapsed", time.Since(began))

	// 4) Render.
	switch *format {
	case "list":
		err = tab.Listing(stdout, arr.Steps, fb.Strings())
	default:
		err = tab.Render(stdout, arr.Steps, fb.Strings(),
			tab.WithStringNames(tab.NamesFromTuning(fb.Tuning())...),
			tab.WithWrap(*wrap),
		)
	}
	if err != nil {
		logger.Error("writing output", "err", err)
		return exitFailure
	}

	return exitOK
}
