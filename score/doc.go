// Package score defines the musical events handed to the arranger and a
// reader that extracts them from Standard MIDI Files.
//
// An Event is one onset in the piece: a single note or a chord, with its
// position in the sequence and a timing tag. Timing is carried through to the
// output and never influences fingering cost.
//
// Rests never become events. ReadSMF only emits onsets, and Validate rejects
// an event whose pitch set is empty with ErrEmptyEvent, so the arranger never
// sees a passthrough layer.
//
// SMF extraction rules:
//
//   - Every note-on (velocity > 0) starting on the same absolute tick joins the
//     same chord; duplicate pitches collapse.
//   - A note-on with velocity 0 is a note-off.
//   - Duration is the longest sounding note of the chord, in ticks; a note that
//     is never released lasts until the last tick of the file.
//   - ReadOptions.Track and ReadOptions.Channel restrict the source; -1 merges
//     all tracks or channels.
package score
