package model

type Notes = []uint8

// Occurrence is one place a chord sounds: which file, which measure, and how far into
// the measure in quarter beats.
type Occurrence struct {
	FileNum      uint32
	Measure      uint32
	BeatQuarters uint32
}

func (o Occurrence) Beat() float32 {
	return float32(o.BeatQuarters) / 4
}

type FileNumToSheetPath = map[uint32]string

// ChordKeyToOccurrences groups every occurrence under its pitch-class set key.
type ChordKeyToOccurrences = map[string][]Occurrence
