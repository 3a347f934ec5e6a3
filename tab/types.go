package tab

import (
	"errors"
	"strings"

	"github.com/katalvlaran/fretwork/fretboard"
)

// Sentinel errors returned by Render and Listing.
var (
	// ErrBadStrings indicates a non-positive string count.
	ErrBadStrings = errors.New("tab: string count must be positive")

	// ErrNameCount indicates string names that do not match the string count.
	ErrNameCount = errors.New("tab: one name per string required")

	// ErrStringRange indicates a note on a string the tablature does not have.
	ErrStringRange = errors.New("tab: string index out of range")

	// ErrBadWrap indicates a negative wrap width.
	ErrBadWrap = errors.New("tab: wrap must be non-negative")
)

// Options configures Render.
//
// Names – row labels, lowest string first; nil labels rows 1..n from the top.
// Wrap  – events per line block; 0 never wraps.
type Options struct {
	Names []string
	Wrap  int
}

// Option represents a functional option for Render.
type Option func(*Options)

// WithStringNames labels the rows, lowest string first.
func WithStringNames(names ...string) Option {
	return func(o *Options) {
		o.Names = names
	}
}

// WithWrap starts a new block of rows every n events.
// Panics on a negative n.
func WithWrap(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadWrap.Error())
		}
		o.Wrap = n
	}
}

// DefaultOptions returns numbered rows and no wrapping.
func DefaultOptions() Options {
	return Options{Names: nil, Wrap: 0}
}

// NamesFromTuning returns the pitch-class name of every open string: E A D G B E.
func NamesFromTuning(tuning []fretboard.Pitch) []string {
	names := make([]string, len(tuning))
	for i, p := range tuning {
		names[i] = strings.TrimRight(p.String(), "-0123456789")
	}

	return names
}
