package pitch

import (
	"fmt"
	"regexp"
	"strings"
)

// In abc notation "C" is C4 and "c" is C5. Accidentals come first
// (^ sharp, _ flat, = natural) and octave marks last (' up, , down).
const (
	abcSharp      = "^"
	abcFlat       = "_"
	abcNatural    = "="
	abcOctaveUp   = "'"
	abcOctaveDown = ","
	abcMaxOctaves = 8
)

var abcPattern = regexp.MustCompile(
	fmt.Sprintf(`^(\^{0,%[1]v}|_{0,%[1]v}|={0,%[1]v})([A-Ga-g])('{0,%[2]v}|,{0,%[2]v})$`,
		MaxAccidentals, abcMaxOctaves))

// ParseABC splits an abc pitch string into its accidentals, letter and
// octave marks.
func ParseABC(s string) (accidentals string, letter string, octaveMarks string, err error) {
	m := abcPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", fmt.Errorf("not a valid abc pitch: %q", s)
	}
	return m[1], m[2], m[3], nil
}

func ABCToMidipitch(s string) (int, error) {
	accidentals, letter, octaveMarks, err := ParseABC(s)
	if err != nil {
		return 0, err
	}

	base := 4
	if letter == strings.ToLower(letter) {
		base = 5
	}
	idx := strings.Index(pitchLetters, strings.ToUpper(letter))
	midipitch := 12*(base+1) + int(whiteKeyClasses[idx])

	if strings.Contains(accidentals, abcSharp) {
		midipitch += len(accidentals)
	} else if strings.Contains(accidentals, abcFlat) {
		midipitch -= len(accidentals)
	}
	if strings.Contains(octaveMarks, abcOctaveUp) {
		midipitch += 12 * len(octaveMarks)
	} else if strings.Contains(octaveMarks, abcOctaveDown) {
		midipitch -= 12 * len(octaveMarks)
	}
	return midipitch, nil
}

// ABCToScientific keeps the spelling of the abc pitch, so "_d" comes out
// "Db5" rather than "C#5".
func ABCToScientific(s string) (string, error) {
	accidentals, _, _, err := ParseABC(s)
	if err != nil {
		return "", err
	}
	midipitch, err := ABCToMidipitch(s)
	if err != nil {
		return "", err
	}

	style := Sharps
	nrAcc := len(accidentals)
	if strings.Contains(accidentals, abcFlat) {
		style = Flats
	} else if strings.Contains(accidentals, abcNatural) {
		nrAcc = 0
	}
	return SpellMidipitch(midipitch, style, nrAcc)
}

func ScientificToABC(s string) (string, error) {
	letter, accidentals, octave, err := ParseScientific(s)
	if err != nil {
		return "", err
	}

	var chr, octStr string
	switch {
	case octave <= 3:
		octStr = strings.Repeat(abcOctaveDown, 4-octave)
		chr = strings.ToUpper(letter)
	case octave == 4:
		chr = strings.ToUpper(letter)
	case octave == 5:
		chr = strings.ToLower(letter)
	default:
		octStr = strings.Repeat(abcOctaveUp, octave-5)
		chr = strings.ToLower(letter)
	}

	var accStr string
	if strings.Contains(accidentals, "#") {
		accStr = strings.Repeat(abcSharp, len(accidentals))
	} else if strings.Contains(accidentals, "b") {
		accStr = strings.Repeat(abcFlat, len(accidentals))
	}
	return accStr + chr + octStr, nil
}

func MidipitchToABC(midipitch int, style AccidentalStyle) (string, error) {
	return ScientificToABC(MidipitchToScientific(midipitch, style))
}
