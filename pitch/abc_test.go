package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseABCRejectsInvalid(t *testing.T) {
	invalid := []string{
		"x",      // invalid letter
		"=^C",    // mix of accidental kinds
		"C',",    // mix of octave marks
		"'C",     // octave marks before letter
		"C^",     // accidentals after letter
		"^^^^C",  // too many accidentals
		"B#4",    // scientific, not abc
	}
	assert := assert.New(t)
	for _, s := range invalid {
		_, _, _, err := ParseABC(s)
		assert.Error(err, "expected %q to be rejected", s)
	}
}

func TestABCToMidipitch(t *testing.T) {
	cases := map[string]int{
		"C":       60,
		"c":       72,
		"B":       71,
		"A,,":     45,
		"^C":      61,
		"__D":     60,
		"=F":      65,
		"_b'":     94,
		"^^g,,":   57,
	}
	assert := assert.New(t)
	for abc, midipitch := range cases {
		got, err := ABCToMidipitch(abc)
		assert.NoError(err)
		assert.Equal(midipitch, got, "abc %q", abc)
	}
}

func TestABCToScientific(t *testing.T) {
	cases := map[string]string{
		"^C":  "C#4",
		"_D":  "Db4",
		"c":   "C5",
		"=F":  "F4",
		"_b'": "Bb6",
		"A,,": "A2",
	}
	assert := assert.New(t)
	for abc, sci := range cases {
		got, err := ABCToScientific(abc)
		assert.NoError(err)
		assert.Equal(sci, got, "abc %q", abc)
	}
}

func TestScientificToABC(t *testing.T) {
	cases := map[string]string{
		"C#4":  "^C",
		"Db4":  "_D",
		"C5":   "c",
		"Bb6":  "_b'",
		"A2":   "A,,",
		"F#7":  "^f''",
		"Eb-1": "_E,,,,,",
	}
	assert := assert.New(t)
	for sci, abc := range cases {
		got, err := ScientificToABC(sci)
		assert.NoError(err)
		assert.Equal(abc, got, "scientific %q", sci)
	}
}

func TestMidipitchToABC(t *testing.T) {
	assert := assert.New(t)

	abc, err := MidipitchToABC(61, Sharps)
	assert.NoError(err)
	assert.Equal("^C", abc)

	abc, err = MidipitchToABC(61, Flats)
	assert.NoError(err)
	assert.Equal("_D", abc)

	abc, err = MidipitchToABC(60, Sharps)
	assert.NoError(err)
	assert.Equal("C", abc)
}
