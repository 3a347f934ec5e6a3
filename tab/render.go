package tab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/fretwork/arrange"
)

// Render writes steps as ASCII tablature for an instrument with the given
// number of strings.
//
// Each column is "-" + fret + "-", the fret right-aligned with dashes to the
// widest fret of the column; a string without a note is all dashes.
func Render(w io.Writer, steps []arrange.Step, stringCount int, opts ...Option) error {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if stringCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadStrings, stringCount)
	}
	names := cfg.Names
	if names == nil {
		names = numbered(stringCount)
	}
	if len(names) != stringCount {
		return fmt.Errorf("%w: %d names for %d strings", ErrNameCount, len(names), stringCount)
	}
	if err := checkStrings(steps, stringCount); err != nil {
		return err
	}

	label := 0
	for _, n := range names {
		label = max(label, len(n))
	}

	wrap := cfg.Wrap
	if wrap == 0 || wrap > len(steps) {
		wrap = len(steps)
	}

	bw := bufio.NewWriter(w)
	if len(steps) == 0 {
		writeBlock(bw, nil, names, label)

		return bw.Flush()
	}
	for lo := 0; lo < len(steps); lo += wrap {
		if lo > 0 {
			bw.WriteByte('\n')
		}
		writeBlock(bw, steps[lo:min(lo+wrap, len(steps))], names, label)
	}

	return bw.Flush()
}

// writeBlock writes one row per string, highest string first.
func writeBlock(bw *bufio.Writer, steps []arrange.Step, names []string, label int) {
	widths := make([]int, len(steps))
	for i, st := range steps {
		widths[i] = 1
		for _, n := range st.Assignment.Notes {
			widths[i] = max(widths[i], len(strconv.Itoa(n.Position.Fret)))
		}
	}

	for s := len(names) - 1; s >= 0; s-- {
		bw.WriteString(names[s])
		bw.WriteString(strings.Repeat(" ", label-len(names[s])))
		bw.WriteByte('|')
		for i, st := range steps {
			cell := strings.Repeat("-", widths[i])
			if f, ok := fretOn(st, s); ok {
				txt := strconv.Itoa(f)
				cell = strings.Repeat("-", widths[i]-len(txt)) + txt
			}
			bw.WriteByte('-')
			bw.WriteString(cell)
			bw.WriteByte('-')
		}
		bw.WriteString("|\n")
	}
}

// Listing writes one line per event: index, onset and every note as
// pitch->string/fret with strings numbered 1..n from the highest.
func Listing(w io.Writer, steps []arrange.Step, stringCount int) error {
	if stringCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadStrings, stringCount)
	}
	if err := checkStrings(steps, stringCount); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, st := range steps {
		fmt.Fprintf(bw, "%d %d", st.Event.Index, st.Event.Onset)
		for _, n := range st.Assignment.Notes {
			fmt.Fprintf(bw, " %s->%d/%d", n.Pitch, stringCount-n.Position.String, n.Position.Fret)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// fretOn returns the fret played on string s, if any.
func fretOn(st arrange.Step, s int) (int, bool) {
	for _, n := range st.Assignment.Notes {
		if n.Position.String == s {
			return n.Position.Fret, true
		}
	}

	return 0, false
}

// checkStrings rejects notes on strings outside [0, n).
func checkStrings(steps []arrange.Step, n int) error {
	for _, st := range steps {
		for _, note := range st.Assignment.Notes {
			if s := note.Position.String; s < 0 || s >= n {
				return fmt.Errorf("%w: event %d uses string %d of %d", ErrStringRange, st.Event.Index, s, n)
			}
		}
	}

	return nil
}

// numbered labels the lowest string n and the highest 1.
func numbered(n int) []string {
	names := make([]string, n)
	for s := range names {
		names[s] = strconv.Itoa(n - s)
	}

	return names
}
