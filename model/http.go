package model

type SearchRequestBody struct {
	Chords []Notes `json:"chords"`
}

type SongMetadata struct {
	Title    string `json:"title" toml:"title"`
	Composer string `json:"composer" toml:"composer"`
	Year     uint   `json:"year,omitempty" toml:"year"`
}

type SearchResult struct {
	FileId       uint32        `json:"file_id"`
	Filename     string        `json:"filename"`
	Measures     []uint32      `json:"measures"`
	Beats        []float32     `json:"beats"`
	SongMetadata *SongMetadata `json:"metadata"`
}

type SearchResponse struct {
	Key        string         `json:"key"`
	NumMatches int            `json:"num_matches"`
	NumFiles   int            `json:"num_files"`
	Results    []SearchResult `json:"results"`
}

type ChordRequestBody struct {
	Symbol string  `json:"symbol"`
	Beat   float64 `json:"beat"`
}

type ChordResponse struct {
	Symbol      string   `json:"symbol"`
	Canonical   string   `json:"canonical"`
	Quality     string   `json:"quality"`
	PitchClass  []int    `json:"pitch_classes"`
	NoteNames   []string `json:"note_names"`
	Beat        float64  `json:"beat"`
	PitchSetKey string   `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
