package chord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/chordsheet/pitch"
)

// Chord is a resolved chord symbol placed at a beat offset inside its measure.
type Chord struct {
	Name  string
	Root  pitch.Class
	Notes []pitch.Class
	Beat  float64
}

// ParseChord parses and resolves symbol with the default tables.
func ParseChord(symbol string, beat float64) (Chord, error) {
	sym, err := DefaultParser.Parse(symbol)
	if err != nil {
		return Chord{}, err
	}
	return DefaultResolver.Resolve(sym, beat)
}

func (c Chord) NoteNames() []string {
	names := make([]string, len(c.Notes))
	for i, n := range c.Notes {
		names[i] = n.String()
	}
	return names
}

func (c Chord) String() string {
	return fmt.Sprintf("%s (%s): %s", c.Name, strconv.FormatFloat(c.Beat, 'f', -1, 64), strings.Join(c.NoteNames(), " "))
}

// PitchClassSet is the distinct notes of c in ascending order.
func (c Chord) PitchClassSet() []uint8 {
	seen := make(map[pitch.Class]bool, len(c.Notes))
	var set []uint8
	for _, n := range c.Notes {
		if seen[n] {
			continue
		}
		seen[n] = true
		set = append(set, uint8(n))
	}
	sort.Slice(set, func(i, j int) bool {
		return set[i] < set[j]
	})
	return set
}

func (c Chord) Key() string {
	return CreateChordKey(c.PitchClassSet())
}

// CreateChordKey joins sorted, zero-padded notes with dashes so keys compare in note order.
func CreateChordKey(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%02d", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}
