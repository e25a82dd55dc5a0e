package sample

import (
	"fmt"

	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/jsphweid/chordsheet/midi"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	DefaultCount = 4
	DefaultBPM   = 100
)

// Create renders count measures of song starting at measure from. Asking for more
// measures than remain just returns the tail of the song.
func Create(song *leadsheet.Song, from, count int, bpm float64) (*smf.SMF, error) {
	if count == 0 {
		count = DefaultCount
	}
	if bpm == 0 {
		bpm = DefaultBPM
	}
	excerpt, err := song.Excerpt(from, count)
	if err != nil {
		return nil, fmt.Errorf("could not create sample: %w", err)
	}
	return midi.SongToSMF(excerpt, bpm)
}
