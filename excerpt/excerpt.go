// Package excerpt clips an SMF down to one contextual window so a
// classified passage can be auditioned.
package excerpt

import (
	"os"

	"github.com/jsphweid/setscan/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Create keeps the note events sounding between startMs and endMs.
// Non-note events (tempo, program changes) are kept with their deltas
// collapsed so the excerpt starts immediately.
func Create(mf *smf.SMF, startMs uint32, endMs uint32) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks int64
		keptNote := false
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			switch {
			case evt.Message.Is(midi.NoteOnMsg),
				evt.Message.Is(midi.NoteOffMsg):
				ms := uint32(mf.TimeAt(absTicks) / 1000)
				if ms >= startMs && ms < endMs {
					e := evt
					if !keptNote {
						e.Delta = 0
						keptNote = true
					}
					newTrack = append(newTrack, e)
				}
			default:
				e := evt
				e.Delta = util.Min(evt.Delta, 1)
				newTrack = append(newTrack, e)
			}
		}

		res.Tracks = append(res.Tracks, newTrack)
	}

	return &res
}

// WriteFile saves an excerpt as a standard midi file.
func WriteFile(mf *smf.SMF, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = mf.WriteTo(f)
	return err
}
