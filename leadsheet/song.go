package leadsheet

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordsheet/chord"
)

// A Song consists of sections, which contain measures, which contain chords.
type Song struct {
	TimeSignature TimeSignature
	Key           chord.Chord
	Sections      []Section
	TotalMeasures int
}

type Section struct {
	Number   int
	Measures []Measure
}

type Measure struct {
	Number int
	Chords []chord.Chord
}

type TimeSignature struct {
	Beats int
	Unit  int
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Beats, ts.Unit)
}

// GetSection is 1-based.
func (s *Song) GetSection(n int) (Section, error) {
	if n < 1 || n > len(s.Sections) {
		return Section{}, &RangeError{Kind: "section", Index: n, Max: len(s.Sections)}
	}
	return s.Sections[n-1], nil
}

// GetMeasure looks up a measure by its song-wide number, starting at 1.
func (s *Song) GetMeasure(n int) (Measure, error) {
	if n < 1 || n > s.TotalMeasures {
		return Measure{}, &RangeError{Kind: "measure", Index: n, Max: s.TotalMeasures}
	}
	offset := 0
	for _, section := range s.Sections {
		if n <= offset+len(section.Measures) {
			return section.Measures[n-offset-1], nil
		}
		offset += len(section.Measures)
	}
	return Measure{}, &RangeError{Kind: "measure", Index: n, Max: s.TotalMeasures}
}

// Measures returns every measure in song order.
func (s *Song) Measures() []Measure {
	res := make([]Measure, 0, s.TotalMeasures)
	for _, section := range s.Sections {
		res = append(res, section.Measures...)
	}
	return res
}

// Excerpt copies count measures starting at measure from into a new single-section song.
func (s *Song) Excerpt(from, count int) (*Song, error) {
	if count < 1 {
		return nil, &RangeError{Kind: "measure count", Index: count, Max: s.TotalMeasures}
	}
	if _, err := s.GetMeasure(from); err != nil {
		return nil, err
	}
	last := from + count - 1
	if last > s.TotalMeasures {
		last = s.TotalMeasures
	}
	all := s.Measures()
	measures := append([]Measure(nil), all[from-1:last]...)
	return &Song{
		TimeSignature: s.TimeSignature,
		Key:           s.Key,
		Sections:      []Section{{Number: 1, Measures: measures}},
		TotalMeasures: len(measures),
	}, nil
}

func (m Measure) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tMeasure %d: \n", m.Number)
	for _, c := range m.Chords {
		b.WriteString("\t\t" + c.String() + "\n")
	}
	return b.String()
}

func (s Section) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section %d: \n", s.Number)
	for _, m := range s.Measures {
		b.WriteString(m.String())
	}
	return b.String()
}

func (s *Song) String() string {
	var b strings.Builder
	for _, section := range s.Sections {
		b.WriteString(section.String())
	}
	return b.String()
}
