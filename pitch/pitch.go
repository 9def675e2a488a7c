// Package pitch converts between the ways a pitch gets named: midipitch
// (69 = A4 = 440Hz), pitch class (0..11 with 0 = C), scientific notation
// ("C4", "Bb-2") and abc notation ("^c'", "_B,").
package pitch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	A4Midipitch = 69
	A4Freq      = 440.0

	// MaxAccidentals bounds how many sharps or flats a spelled pitch
	// may carry.
	MaxAccidentals = 3
)

type AccidentalStyle uint8

const (
	Sharps AccidentalStyle = iota
	Flats
)

const pitchLetters = "CDEFGAB"

var whiteKeyClasses = [7]uint8{0, 2, 4, 5, 7, 9, 11}
var blackKeyClasses = [5]uint8{1, 3, 6, 8, 10}

var scientificPattern = regexp.MustCompile(`^([A-G])(b{0,3}|#{0,3})(-?[0-9]+)$`)

// SpelledClasses maps every letter+accidental spelling up to
// MaxAccidentals to its pitch class, e.g. "F##" -> 7.
var SpelledClasses = map[string]uint8{}

// spellingFor[n][style] maps a pitch class to the letter spelling it
// with exactly n accidentals of that style.
var spellingFor [MaxAccidentals + 1][2]map[uint8]byte

func init() {
	for s := range spellingFor {
		spellingFor[s][Sharps] = make(map[uint8]byte)
		spellingFor[s][Flats] = make(map[uint8]byte)
	}
	for i := 0; i < len(pitchLetters); i++ {
		letter := pitchLetters[i]
		base := whiteKeyClasses[i]
		SpelledClasses[string(letter)] = base
		spellingFor[0][Sharps][base] = letter
		spellingFor[0][Flats][base] = letter
		for n := 1; n <= MaxAccidentals; n++ {
			sharped := uint8((int(base) + n) % 12)
			SpelledClasses[string(letter)+strings.Repeat("#", n)] = sharped
			spellingFor[n][Sharps][sharped] = letter

			flatted := uint8(((int(base)-n)%12 + 12) % 12)
			SpelledClasses[string(letter)+strings.Repeat("b", n)] = flatted
			spellingFor[n][Flats][flatted] = letter
		}
	}
}

func MidipitchToFreq(midipitch float64) float64 {
	return math.Pow(2, (midipitch-A4Midipitch)/12) * A4Freq
}

func FreqToMidipitch(freq float64) float64 {
	return 12*math.Log2(freq/A4Freq) + A4Midipitch
}

// MidipitchToClass rounds to the nearest integer midipitch and returns
// its pitch class.
func MidipitchToClass(midipitch float64) uint8 {
	mp := int(math.Round(midipitch))
	return uint8(((mp % 12) + 12) % 12)
}

// MidipitchToOctave rounds to the nearest integer midipitch and returns
// its octave number. C4 is midipitch 60, midipitch 0 is C-1.
func MidipitchToOctave(midipitch float64) int {
	mp := int(math.Round(midipitch))
	return floorDiv(mp-12, 12)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// MidipitchToScientific spells a midipitch in scientific notation using
// at most one accidental, e.g. 61 -> "C#4" with Sharps, "Db4" with Flats.
func MidipitchToScientific(midipitch int, style AccidentalStyle) string {
	octave := MidipitchToOctave(float64(midipitch))
	class := MidipitchToClass(float64(midipitch))

	for i, c := range whiteKeyClasses {
		if c == class {
			return fmt.Sprintf("%c%v", pitchLetters[i], octave)
		}
	}

	// black keys: C#/Db, D#/Eb, F#/Gb, G#/Ab, A#/Bb
	sharpLetters := "CDFGA"
	flatLetters := "DEGAB"
	for i, c := range blackKeyClasses {
		if c == class {
			if style == Flats {
				return fmt.Sprintf("%cb%v", flatLetters[i], octave)
			}
			return fmt.Sprintf("%c#%v", sharpLetters[i], octave)
		}
	}
	// unreachable, every class is a white or black key
	return ""
}

// SpellMidipitch spells a midipitch with exactly nrAcc accidentals of the
// given style. The octave printed is the one the natural letter sits in,
// so midipitch 60 with one sharp comes out "B#3".
func SpellMidipitch(midipitch int, style AccidentalStyle, nrAcc int) (string, error) {
	if nrAcc < 0 || nrAcc > MaxAccidentals {
		return "", fmt.Errorf("nrAcc must be in 0..%v, got %v", MaxAccidentals, nrAcc)
	}
	if nrAcc == 0 {
		class := MidipitchToClass(float64(midipitch))
		if _, ok := spellingFor[0][style][class]; !ok {
			return "", fmt.Errorf("pitch class %v cannot be spelled without accidentals", class)
		}
		return MidipitchToScientific(midipitch, style), nil
	}

	class := MidipitchToClass(float64(midipitch))
	letter, ok := spellingFor[nrAcc][style][class]
	if !ok {
		return "", fmt.Errorf("pitch class %v cannot be spelled with %v accidentals", class, nrAcc)
	}

	var accChr string
	natural := midipitch
	if style == Sharps {
		accChr = "#"
		natural -= nrAcc
	} else {
		accChr = "b"
		natural += nrAcc
	}
	octave := MidipitchToOctave(float64(natural))
	return fmt.Sprintf("%c%v%v", letter, strings.Repeat(accChr, nrAcc), octave), nil
}

// ParseScientific splits a scientific pitch string into its letter,
// accidentals and octave.
func ParseScientific(s string) (letter string, accidentals string, octave int, err error) {
	m := scientificPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", 0, fmt.Errorf("not a valid scientific pitch: %q", s)
	}
	octave, err = strconv.Atoi(m[3])
	if err != nil {
		return "", "", 0, fmt.Errorf("not a valid scientific pitch: %q", s)
	}
	return m[1], m[2], octave, nil
}

func ScientificToMidipitch(s string) (int, error) {
	letter, accidentals, octave, err := ParseScientific(s)
	if err != nil {
		return 0, err
	}
	idx := strings.Index(pitchLetters, letter)
	midipitch := 12*(octave+1) + int(whiteKeyClasses[idx])
	if strings.Contains(accidentals, "#") {
		midipitch += len(accidentals)
	} else {
		midipitch -= len(accidentals)
	}
	return midipitch, nil
}

func ScientificToClass(s string) (uint8, error) {
	midipitch, err := ScientificToMidipitch(s)
	if err != nil {
		return 0, err
	}
	return MidipitchToClass(float64(midipitch)), nil
}
