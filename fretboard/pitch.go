package fretboard

import (
	"fmt"
	"strconv"
	"strings"
)

// sharpNames spells the twelve pitch classes with sharps.
var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// letterClass maps natural note letters to pitch classes.
var letterClass = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// String renders p in scientific pitch notation with sharps, e.g. 61 → "C#4".
func (p Pitch) String() string {
	n := int(p)
	octave := n/12 - 1
	class := n % 12
	if class < 0 {
		class += 12
		octave--
	}

	return sharpNames[class] + strconv.Itoa(octave)
}

// ParsePitch parses a scientific pitch name: a letter A–G, any number of
// accidentals ('#' or 'b'), and a signed octave. "E2" → 40, "Bb3" → 58,
// "C#-1" → 1. A bare integer is accepted as a MIDI number.
func ParsePitch(name string) (Pitch, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadPitchName)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Pitch(n), nil
	}

	class, ok := letterClass[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadPitchName, name)
	}
	i := 1
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			class++
			continue
		case 'b':
			class--
			continue
		}
		break
	}

	octave, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadPitchName, name)
	}

	return Pitch((octave+1)*12 + class), nil
}

// ParseTuning parses a whitespace- or comma-separated list of pitch names,
// lowest string first: "E2 A2 D3 G3 B3 E4".
func ParseTuning(s string) ([]Pitch, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, ErrEmptyTuning
	}

	tuning := make([]Pitch, 0, len(fields))
	for _, f := range fields {
		p, err := ParsePitch(f)
		if err != nil {
			return nil, err
		}
		tuning = append(tuning, p)
	}

	return tuning, nil
}

// FormatTuning is the inverse of ParseTuning.
func FormatTuning(tuning []Pitch) string {
	names := make([]string, len(tuning))
	for i, p := range tuning {
		names[i] = p.String()
	}

	return strings.Join(names, " ")
}
