package constants

import "os"

func GetAnalysisDir() string {
	path := os.Getenv("ANALYSIS_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

// 4 for window start ms, 2 for pitch classes, 2 for catalog index
const RecordSize = 8

const AllAnalysesFile = "allAnalyses.dat"

// DefaultHopMs is the window hop when none is given. Half a second is
// one beat at 120bpm, which tracks harmonic rhythm well enough for
// most of the corpus.
const DefaultHopMs = 500
