package window

import (
	"testing"

	"github.com/jsphweid/setscan/model"
	"github.com/jsphweid/setscan/setclass"
	"github.com/stretchr/testify/assert"
)

func note(onsetMs uint32, pitch uint8, durMs uint32) model.NoteEvent {
	return model.NoteEvent{OnsetMs: onsetMs, Pitch: pitch, DurationMs: durMs, Velocity: 64}
}

// a C major triad for one second, then an F for one second
func cMajorThenF() []model.NoteEvent {
	return []model.NoteEvent{
		note(0, 60, 1000),
		note(0, 64, 1000),
		note(0, 67, 1000),
		note(1000, 65, 1000),
	}
}

func TestGenerateSingleScale(t *testing.T) {
	windows, err := Generate(cMajorThenF(), Params{HopMs: 500, Scales: 1})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]Window{
		{StartMs: 0, Scale: 1, Set: setclass.New(0, 4, 7)},
		{StartMs: 500, Scale: 1, Set: setclass.New(0, 4, 7)},
		{StartMs: 1000, Scale: 1, Set: setclass.New(5)},
		{StartMs: 1500, Scale: 1, Set: setclass.New(5)},
	}, windows)
}

func TestGenerateFullScape(t *testing.T) {
	windows, err := Generate(cMajorThenF(), Params{HopMs: 500})

	assert := assert.New(t)
	assert.NoError(err)
	// 4 hops -> 4 + 3 + 2 + 1 windows
	assert.Len(windows, 10)

	// the top window covers the whole piece
	top := windows[len(windows)-1]
	assert.Equal(uint32(0), top.StartMs)
	assert.Equal(4, top.Scale)
	assert.Equal(setclass.New(0, 4, 5, 7), top.Set)

	// a scale-2 window straddling the change hears both harmonies
	var straddle Window
	for _, w := range windows {
		if w.Scale == 2 && w.StartMs == 500 {
			straddle = w
		}
	}
	assert.Equal(setclass.New(0, 4, 5, 7), straddle.Set)
}

func TestGenerateSilenceIsEmptySet(t *testing.T) {
	notes := []model.NoteEvent{
		note(0, 60, 400),
		note(1200, 62, 300),
	}
	windows, err := Generate(notes, Params{HopMs: 500, Scales: 1})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(windows, 3)
	assert.Equal(setclass.PCSet(0), windows[1].Set)
	assert.Equal("0-1", windows[1].Set.Forte())
}

func TestGenerateShortPieceGetsOneWindow(t *testing.T) {
	notes := []model.NoteEvent{note(0, 60, 120)}
	windows, err := Generate(notes, Params{HopMs: 500})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(windows, 1)
	assert.Equal(setclass.New(0), windows[0].Set)
}

func TestGenerateNoteSpanningManyHops(t *testing.T) {
	// pedal tone under moving thirds
	notes := []model.NoteEvent{
		note(0, 36, 2000),
		note(0, 64, 500),
		note(500, 65, 500),
		note(1000, 67, 500),
		note(1500, 69, 500),
	}
	windows, err := Generate(notes, Params{HopMs: 500, Scales: 1})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(windows, 4)
	for _, w := range windows {
		assert.True(w.Set.Contains(0), "pedal C missing at %vms", w.StartMs)
		assert.Equal(2, w.Set.Cardinality())
	}
}

func TestGenerateRejectsZeroHop(t *testing.T) {
	_, err := Generate(cMajorThenF(), Params{})
	assert.Error(t, err)
}

func TestScalesCapsScapeHeight(t *testing.T) {
	windows, err := Generate(cMajorThenF(), Params{HopMs: 500, Scales: 2})

	assert := assert.New(t)
	assert.NoError(err)
	// 4 + 3 windows
	assert.Len(windows, 7)
	for _, w := range windows {
		assert.LessOrEqual(w.Scale, 2)
	}
}
