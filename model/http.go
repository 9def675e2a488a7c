package model

// pitches travel as ints, json turns []uint8 into base64
type ClassifyRequestBody struct {
	Notes []int `json:"notes"`
}

type ClassifyResponse struct {
	PitchClasses   []int  `json:"pitch_classes"`
	NormalForm     []int  `json:"normal_form"`
	PrimeForm      []int  `json:"prime_form"`
	Forte          string `json:"forte"`
	IntervalVector [6]int `json:"interval_vector"`
}

type AnalysisSummary struct {
	FileNum    uint32        `json:"file_num"`
	SourcePath string        `json:"source_path"`
	HopMs      uint32        `json:"hop_ms"`
	Scales     int           `json:"scales"`
	NumNotes   int           `json:"num_notes"`
	NumWindows int           `json:"num_windows"`
	Metadata   *MidiMetadata `json:"metadata"`
}

type ScaleWindow struct {
	StartMs      uint32 `json:"start_ms"`
	PitchClasses []int  `json:"pitch_classes"`
	Forte        string `json:"forte"`
}

type ScaleResponse struct {
	FileNum  uint32        `json:"file_num"`
	Scale    int           `json:"scale"`
	LengthMs uint32        `json:"length_ms"`
	Windows  []ScaleWindow `json:"windows"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
