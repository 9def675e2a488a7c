package model

// NoteEvent is one sounding note flattened out of an SMF file.
type NoteEvent struct {
	OnsetMs    uint32
	Track      uint8
	Pitch      uint8
	DurationMs uint32
	Velocity   uint8
}

type MidiMetadata struct {
	Artist  string
	Release string
	Title   string
	Year    uint
}
