package score

import (
	"fmt"
	"io"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/katalvlaran/fretwork/fretboard"
)

// noteKey identifies a sounding note for matching its release.
type noteKey struct {
	channel uint8
	key     uint8
}

// onsetGroup accumulates the notes that start on one tick.
type onsetGroup struct {
	pitches []fretboard.Pitch
	end     uint64 // latest release among the group
}

// ReadSMFFile opens a Standard MIDI File and extracts its events.
func ReadSMFFile(path string, opts ReadOptions) ([]Event, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("score: reading %q: %w", path, err)
	}

	return fromSMF(s, opts)
}

// ReadSMF extracts events from a Standard MIDI File stream.
func ReadSMF(r io.Reader, opts ReadOptions) ([]Event, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("score: parsing SMF: %w", err)
	}

	return fromSMF(s, opts)
}

// fromSMF groups note starts by absolute tick.
//
// Steps:
//  1. Pick tracks per opts.Track.
//  2. Walk each track accumulating absolute ticks; record starts per tick and
//     match releases per (channel, key) to extend the group's end.
//  3. Close notes never released at the last tick of the file.
//  4. Emit one Event per onset tick in ascending order.
func fromSMF(s *smf.SMF, opts ReadOptions) ([]Event, error) {
	tracks := s.Tracks
	if opts.Track >= 0 {
		if opts.Track >= len(tracks) {
			return nil, fmt.Errorf("%w: %d (file has %d)", ErrBadTrack, opts.Track, len(tracks))
		}
		tracks = tracks[opts.Track : opts.Track+1]
	}

	groups := make(map[uint64]*onsetGroup)
	var (
		lastTick   uint64
		unreleased []uint64
	)
	for _, track := range tracks {
		var (
			abs      uint64
			sounding = make(map[noteKey][]uint64) // stacked onsets of re-struck notes
			ch, key  uint8
			vel      uint8
		)
		for _, ev := range track {
			abs += uint64(ev.Delta)
			msg := midi.Message(ev.Message)

			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				if opts.Channel >= 0 && int(ch) != opts.Channel {
					continue
				}
				g := groups[abs]
				if g == nil {
					g = &onsetGroup{end: abs}
					groups[abs] = g
				}
				g.pitches = append(g.pitches, fretboard.Pitch(key))
				k := noteKey{channel: ch, key: key}
				sounding[k] = append(sounding[k], abs)

			case msg.GetNoteEnd(&ch, &key):
				k := noteKey{channel: ch, key: key}
				starts := sounding[k]
				if len(starts) == 0 {
					continue
				}
				onset := starts[0]
				sounding[k] = starts[1:]
				if g := groups[onset]; g != nil && abs > g.end {
					g.end = abs
				}
			}
		}
		if abs > lastTick {
			lastTick = abs
		}
		for _, starts := range sounding {
			unreleased = append(unreleased, starts...)
		}
	}
	for _, onset := range unreleased {
		if g := groups[onset]; g != nil && lastTick > g.end {
			g.end = lastTick
		}
	}

	if len(groups) == 0 {
		return nil, ErrNoEvents
	}

	onsets := make([]uint64, 0, len(groups))
	for tick := range groups {
		onsets = append(onsets, tick)
	}
	slices.Sort(onsets)

	events := make([]Event, 0, len(onsets))
	for i, tick := range onsets {
		g := groups[tick]
		ev, err := NewEvent(i, g.pitches, tick, g.end-tick)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}
