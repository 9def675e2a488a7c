package midifile

import (
	"bytes"
	"os"
	"testing"

	"github.com/jsphweid/setscan/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// 960 ticks per quarter at 120bpm = 500ms per quarter
func makeTestSMF(t *testing.T, build func(tr *smf.Track)) *smf.SMF {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	build(&tr)
	tr.Close(0)
	s.Add(tr)

	// round-trip through the wire format so extraction sees exactly
	// what a file read would
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	assert.NoError(t, err)
	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	return parsed
}

func TestExtractNotesPairsOnAndOff(t *testing.T) {
	s := makeTestSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(0, midi.NoteOn(0, 64, 90))
		tr.Add(960, midi.NoteOff(0, 60))
		tr.Add(0, midi.NoteOff(0, 64))
		tr.Add(0, midi.NoteOn(0, 65, 80))
		tr.Add(960, midi.NoteOff(0, 65))
	})

	notes, err := ExtractNotes(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.NoteEvent{
		{OnsetMs: 0, Track: 0, Pitch: 60, DurationMs: 500, Velocity: 100},
		{OnsetMs: 0, Track: 0, Pitch: 64, DurationMs: 500, Velocity: 90},
		{OnsetMs: 500, Track: 0, Pitch: 65, DurationMs: 500, Velocity: 80},
	}, notes)
	assert.Equal(uint32(1000), SpanMs(notes))
}

func TestExtractNotesClosesHangingNotes(t *testing.T) {
	s := makeTestSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(960, midi.NoteOn(0, 62, 100))
		tr.Add(960, midi.NoteOff(0, 62))
		// note 60 never gets an off
	})

	notes, err := ExtractNotes(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(notes, 2)
	assert.Equal(uint8(60), notes[0].Pitch)
	assert.Equal(uint32(1000), notes[0].DurationMs)
}

func TestExtractNotesCutsOffRestruckNotes(t *testing.T) {
	s := makeTestSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(960, midi.NoteOn(0, 60, 80))
		tr.Add(960, midi.NoteOff(0, 60))
	})

	notes, err := ExtractNotes(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.NoteEvent{
		{OnsetMs: 0, Track: 0, Pitch: 60, DurationMs: 500, Velocity: 100},
		{OnsetMs: 500, Track: 0, Pitch: 60, DurationMs: 500, Velocity: 80},
	}, notes)
}

func TestExtractNotesTreatsZeroVelocityOnAsOff(t *testing.T) {
	s := makeTestSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(960, midi.NoteOn(0, 60, 0))
	})

	notes, err := ExtractNotes(s)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(notes, 1)
	assert.Equal(uint32(500), notes[0].DurationMs)
}

func TestExtractNotesErrorsOnEmptyFile(t *testing.T) {
	s := makeTestSMF(t, func(tr *smf.Track) {})

	_, err := ExtractNotes(s)
	assert.Error(t, err)
}

func TestReadRejectsMissingAndBogusFiles(t *testing.T) {
	assert := assert.New(t)

	_, err := Read("does/not/exist.mid")
	assert.Error(err)

	bogus := t.TempDir() + "/bogus.mid"
	assert.NoError(os.WriteFile(bogus, []byte("not a midi file"), 0666))
	_, err = Read(bogus)
	assert.Error(err)
}
