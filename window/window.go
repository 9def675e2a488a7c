// Package window slices time-ordered note events into the multi-scale
// contextual windows of set-class analysis. Scale s at hop h means a
// window h*s milliseconds long starting on a hop boundary; generating
// every scale up to the full span yields the triangular scape of a
// piece.
package window

import (
	"errors"

	"github.com/jsphweid/setscan/midifile"
	"github.com/jsphweid/setscan/model"
	"github.com/jsphweid/setscan/setclass"
)

type Params struct {
	HopMs uint32
	// Scales caps the scape height. 0 means every scale up to the one
	// window covering the whole piece.
	Scales int
}

type Window struct {
	StartMs uint32
	Scale   int
	Set     setclass.PCSet
}

// NumHops is how many hop cells the notes span, at least 1.
func NumHops(notes []model.NoteEvent, hopMs uint32) int {
	span := midifile.SpanMs(notes)
	n := int((span + hopMs - 1) / hopMs)
	if n < 1 {
		n = 1
	}
	return n
}

// Generate produces every contextual window of every requested scale.
// A note sounds in a window iff onset < windowEnd && onset+duration >
// windowStart. Windows of silence carry the empty set.
func Generate(notes []model.NoteEvent, p Params) ([]Window, error) {
	if p.HopMs == 0 {
		return nil, errors.New("hop must be positive")
	}

	numHops := NumHops(notes, p.HopMs)
	maxScale := numHops
	if p.Scales > 0 && p.Scales < numHops {
		maxScale = p.Scales
	}

	cells := hopCells(notes, p.HopMs, numHops)

	var res []Window
	// counts of sounding notes per pitch class slide along each scale
	for scale := 1; scale <= maxScale; scale++ {
		var counts [12]int
		for cell := 0; cell < scale; cell++ {
			addCell(&counts, cells[cell], 1)
		}
		for pos := 0; pos+scale <= numHops; pos++ {
			if pos > 0 {
				addCell(&counts, cells[pos-1], -1)
				addCell(&counts, cells[pos+scale-1], 1)
			}
			res = append(res, Window{
				StartMs: uint32(pos) * p.HopMs,
				Scale:   scale,
				Set:     countsToSet(counts),
			})
		}
	}
	return res, nil
}

// hopCells computes the pitch-class multiset sounding in each hop cell.
func hopCells(notes []model.NoteEvent, hopMs uint32, numHops int) [][12]int {
	cells := make([][12]int, numHops)
	for _, n := range notes {
		first := int(n.OnsetMs / hopMs)
		last := first
		if n.DurationMs > 0 {
			last = int((n.OnsetMs + n.DurationMs - 1) / hopMs)
		}
		if last >= numHops {
			last = numHops - 1
		}
		pc := n.Pitch % 12
		for cell := first; cell <= last; cell++ {
			cells[cell][pc]++
		}
	}
	return cells
}

func addCell(counts *[12]int, cell [12]int, sign int) {
	for pc := 0; pc < 12; pc++ {
		counts[pc] += sign * cell[pc]
	}
}

func countsToSet(counts [12]int) setclass.PCSet {
	var s setclass.PCSet
	for pc := 0; pc < 12; pc++ {
		if counts[pc] > 0 {
			s |= 1 << pc
		}
	}
	return s
}
