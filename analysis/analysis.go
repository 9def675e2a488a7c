// Package analysis runs the full pipeline over MIDI files and persists
// results: per-window set-class records packed into binary .dat files
// with a gob index, one file per analyzed source.
package analysis

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jsphweid/setscan/constants"
	"github.com/jsphweid/setscan/midifile"
	"github.com/jsphweid/setscan/model"
	"github.com/jsphweid/setscan/setclass"
	"github.com/jsphweid/setscan/util"
	"github.com/jsphweid/setscan/window"
)

// Result is one analyzed file, records grouped by scale.
type Result struct {
	SourcePath string
	HopMs      uint32
	Scales     int
	NumNotes   int
	ByScale    map[uint8][]model.WindowRecord
}

func (r Result) NumWindows() int {
	total := 0
	for _, recs := range r.ByScale {
		total += len(recs)
	}
	return total
}

// SortedScales returns the scales present, ascending.
func (r Result) SortedScales() []uint8 {
	scales := make([]uint8, 0, len(r.ByScale))
	for s := range r.ByScale {
		scales = append(scales, s)
	}
	sort.Slice(scales, func(i, j int) bool {
		return scales[i] < scales[j]
	})
	return scales
}

// Run analyzes a single MIDI file: extract notes, window them at every
// requested scale, classify each window.
func Run(path string, p window.Params) (Result, error) {
	res := Result{
		SourcePath: path,
		HopMs:      p.HopMs,
		ByScale:    make(map[uint8][]model.WindowRecord),
	}

	parsed, err := midifile.Read(path)
	if err != nil {
		return res, err
	}
	notes, err := midifile.ExtractNotes(parsed)
	if err != nil {
		return res, err
	}
	res.NumNotes = len(notes)

	windows, err := window.Generate(notes, p)
	if err != nil {
		return res, err
	}

	for _, w := range windows {
		// scales beyond 255 hops don't fit the index key; in practice
		// the scale cap keeps scapes far below that
		if w.Scale > 255 {
			continue
		}
		scale := uint8(w.Scale)
		res.ByScale[scale] = append(res.ByScale[scale], model.WindowRecord{
			StartMs: w.StartMs,
			Set:     uint16(w.Set),
			Class:   setclass.ClassIndex(w.Set),
		})
		if w.Scale > res.Scales {
			res.Scales = w.Scale
		}
	}
	return res, nil
}

// RunAll analyzes every file in the map and writes one .dat per file
// into the analysis dir. Files that fail to parse are skipped.
func RunAll(m model.FileNumToMidiPath, p window.Params) []model.AnalysisOverview {
	var overviews []model.AnalysisOverview

	nums := util.GetKeys(m)
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	for i, num := range nums {
		fmt.Printf("Analyzing %v of %v midi files\n", i+1, len(nums))
		res, err := Run(m[num], p)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", m[num], err)
			continue
		}
		filename, err := WriteFile(res, constants.GetAnalysisDir())
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", m[num], err)
			continue
		}
		overviews = append(overviews, model.AnalysisOverview{
			FileNum:    num,
			SourcePath: res.SourcePath,
			Filename:   filename,
			HopMs:      res.HopMs,
			Scales:     res.Scales,
			NumNotes:   res.NumNotes,
			NumWindows: res.NumWindows(),
		})
	}
	return overviews
}

// ClassStats accumulates how often a set class was heard and for how
// long. Windows of different scales have different lengths, so the
// duration is what weighs a class fairly across the scape.
type ClassStats struct {
	Windows    int64
	DurationMs int64
}

// ClassHistogram tallies windows and sounding duration per set class.
type ClassHistogram map[uint16]ClassStats

func (h ClassHistogram) Add(scale uint8, hopMs uint32, recs []model.WindowRecord) {
	lengthMs := int64(scale) * int64(hopMs)
	for _, r := range recs {
		s := h[r.Class]
		s.Windows++
		s.DurationMs += lengthMs
		h[r.Class] = s
	}
}

type ClassCount struct {
	Name       string
	Windows    int64
	DurationMs int64
	Share      float32 // of total window duration
}

// Top returns the n classes covering the most window duration, longest
// first.
func (h ClassHistogram) Top(n int) []ClassCount {
	var totalMs int64
	for _, s := range h {
		totalMs += s.DurationMs
	}

	res := make([]ClassCount, 0, len(h))
	for class, s := range h {
		res = append(res, ClassCount{
			Name:       setclass.ByIndex(class).Name,
			Windows:    s.Windows,
			DurationMs: s.DurationMs,
			Share:      float32(s.DurationMs) / float32(totalMs),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].DurationMs != res[j].DurationMs {
			return res[i].DurationMs > res[j].DurationMs
		}
		return res[i].Name < res[j].Name
	})
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res
}

// CreateFileNumMap assigns stable numbers to the gathered paths.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

func AllAnalysesPath() string {
	return filepath.Join(constants.GetAnalysisDir(), constants.AllAnalysesFile)
}
