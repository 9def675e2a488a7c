package model

// WindowRecord is one classified contextual window. The window length is
// not stored per record; records live under a scale in the file index and
// length = scale * hop.
type WindowRecord struct {
	StartMs uint32
	Set     uint16 // pitch-class bitmask, bit 0 = C
	Class   uint16 // set-class catalog index
}

type Pair struct {
	Start uint32
	End   uint32
}

// ScaleIndex maps a scale (window length in hops) to the byte range of
// its records in the data section of an analysis file.
type ScaleIndex = map[uint8]Pair

type AnalysisOverview struct {
	FileNum    uint32
	SourcePath string
	Filename   string
	HopMs      uint32
	Scales     int
	NumNotes   int
	NumWindows int
}

type FileNumToMidiPath = map[uint32]string
