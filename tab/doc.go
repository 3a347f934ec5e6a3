// Package tab renders arrangements as text.
//
// Render draws ASCII tablature: one row per string with the highest string on
// top, one column per event, and each column as wide as its widest fret
// number. Listing prints one line per event, naming strings 1-based from the
// highest string, which is the numbering tablature notation uses.
package tab
