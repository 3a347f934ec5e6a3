// Package fretboard models a fixed-tuning fretted instrument: the open-string
// pitches, the playable fret range, the hand-span limit and an optional capo.
//
// Overview:
//
//   - A Fretboard is built once with New and is read-only afterwards. It is safe
//     to share by pointer between goroutines and between arrangement runs.
//   - For every pitch that at least one string can sound within range, the
//     (string, fret) realizations are precomputed at construction time, so
//     PositionsForPitch is a constant-time lookup.
//   - String 0 is the lowest-pitched string; fret 0 is the open string (or the
//     capo, when one is set).
//
// Capo:
//
//	With WithCapo(c) every open pitch is raised by c semitones and frets are
//	reported relative to the capo. The usable fret range shrinks to
//	[0, maxFret-c], so a capo never reaches past the physical neck.
//
// Pitch notation:
//
//	Pitches are MIDI note numbers (C4 = 60, E2 = 40). ParsePitch and
//	ParseTuning accept scientific pitch names ("E2", "C#4", "Bb3"), and
//	Pitch.String renders sharps.
//
// Errors (sentinel):
//
//   - ErrEmptyTuning      tuning has no strings.
//   - ErrBadMaxFret       maxFret is negative.
//   - ErrBadMaxSpan       maxSpan is negative.
//   - ErrBadCapo          capo is negative or leaves no playable fret.
//   - ErrUnreachablePitch a pitch has no realization (carried by UnreachablePitchError).
//   - ErrBadPitchName     a pitch name could not be parsed.
//
// Example:
//
//	fb, err := fretboard.New(fretboard.StandardTuning, fretboard.WithMaxFret(12))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fb.PositionsForPitch(45)) // [{0 5} {1 0}]
package fretboard
