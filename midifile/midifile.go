// Package midifile reads SMF files and flattens them into time-ordered
// note events, the input to windowed set-class analysis.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/setscan/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func Read(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file: %w", err)
	}

	return res, nil
}

// ExtractNotes pairs note on/off messages across all tracks into note
// events sorted by onset, then track, then pitch. Notes left hanging at
// the end of a track are closed at the track's last event time.
func ExtractNotes(s *smf.SMF) ([]model.NoteEvent, error) {
	var notes []model.NoteEvent

	for trackNum, events := range s.Tracks {
		// onset microseconds of currently sounding notes per key
		pressed := make(map[uint8]int64)
		velocities := make(map[uint8]uint8)
		var absTicks int64
		var lastTime int64

		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			lastTime = absTime

			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				// note on with velocity 0 is a note off in disguise
				if velocity == 0 {
					if onset, ok := pressed[key]; ok {
						notes = append(notes, makeNote(trackNum, key, onset, absTime, velocities[key]))
						delete(pressed, key)
					}
					continue
				}
				// a restrike cuts the sounding note off
				if onset, ok := pressed[key]; ok {
					notes = append(notes, makeNote(trackNum, key, onset, absTime, velocities[key]))
				}
				pressed[key] = absTime
				velocities[key] = velocity
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				onset, ok := pressed[key]
				if !ok {
					continue
				}
				notes = append(notes, makeNote(trackNum, key, onset, absTime, velocities[key]))
				delete(pressed, key)
			}
		}

		for key, onset := range pressed {
			notes = append(notes, makeNote(trackNum, key, onset, lastTime, velocities[key]))
		}
	}

	if len(notes) == 0 {
		return nil, errors.New("midi file contains no notes")
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].OnsetMs != notes[j].OnsetMs {
			return notes[i].OnsetMs < notes[j].OnsetMs
		}
		if notes[i].Track != notes[j].Track {
			return notes[i].Track < notes[j].Track
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes, nil
}

func makeNote(trackNum int, key uint8, onsetMicros, offMicros int64, velocity uint8) model.NoteEvent {
	// storing millis for space savings (32 vs. 64 bits). Millis is
	// accurate enough and gives us 1200 hours of max length
	onsetMs := uint32(onsetMicros / 1000)
	durMs := uint32((offMicros - onsetMicros) / 1000)
	if durMs == 0 {
		// zero-length notes still sound in the window they start in
		durMs = 1
	}
	return model.NoteEvent{
		OnsetMs:    onsetMs,
		Track:      uint8(trackNum),
		Pitch:      key,
		DurationMs: durMs,
		Velocity:   velocity,
	}
}

// SpanMs is the offset of the last note end, the analyzed length of the
// piece.
func SpanMs(notes []model.NoteEvent) uint32 {
	var span uint32
	for _, n := range notes {
		if end := n.OnsetMs + n.DurationMs; end > span {
			span = end
		}
	}
	return span
}
