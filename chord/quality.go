package chord

import (
	"sort"

	"github.com/jsphweid/chordsheet/pitch"
)

type Quality int

const (
	Dominant Quality = iota
	Major
	Minor
	Diminished
	HalfDiminished
	Augmented
	MajorSeventh
	SixNine
	Suspended
)

var qualityNames = map[Quality]string{
	Dominant:       "dominant",
	Major:          "major",
	Minor:          "minor",
	Diminished:     "diminished",
	HalfDiminished: "half-diminished",
	Augmented:      "augmented",
	MajorSeventh:   "major-seventh",
	SixNine:        "six-nine",
	Suspended:      "suspended",
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return "unknown"
}

// Alias is the spelling used when a symbol is rendered back to text.
func (q Quality) Alias() string {
	switch q {
	case Major:
		return "M"
	case Minor:
		return "m"
	case Diminished:
		return "dim"
	case HalfDiminished:
		return "ø"
	case Augmented:
		return "aug"
	case MajorSeventh:
		return "Δ"
	case SixNine:
		return "6/9"
	case Suspended:
		return "sus"
	}
	return ""
}

var aliases = map[string]Quality{
	"M":   Major,
	"m":   Minor,
	"dim": Diminished,
	"o":   Diminished,
	"°":   Diminished,
	"ø":   HalfDiminished,
	"O":   HalfDiminished,
	"0":   HalfDiminished,
	"aug": Augmented,
	"+":   Augmented,
	"t":   MajorSeventh,
	"Δ":   MajorSeventh,
	"^":   MajorSeventh,
	"6/9": SixNine,
	"6-9": SixNine,
	"69":  SixNine,
	"sus": Suspended,
}

var formulas = map[Quality][]string{
	Dominant:       {"1", "3", "5"},
	Major:          {"1", "3", "5"},
	Minor:          {"1", "b3", "5"},
	Diminished:     {"1", "b3", "b5"},
	HalfDiminished: {"1", "b3", "b5", "b7"},
	Augmented:      {"1", "3", "#5"},
	MajorSeventh:   {"1", "3", "5", "7"},
	SixNine:        {"1", "3", "5", "6", "9"},
	Suspended:      {"1", "3", "5"},
}

// QualityTable is the alias and formula configuration shared by parsers and resolvers.
// It is read-only once built.
type QualityTable struct {
	aliases  map[string]Quality
	ordered  []string
	formulas map[Quality][]pitch.Degree
}

var DefaultQualities = NewQualityTable()

func NewQualityTable() *QualityTable {
	t := &QualityTable{
		aliases:  make(map[string]Quality, len(aliases)),
		formulas: make(map[Quality][]pitch.Degree, len(formulas)),
	}
	for alias, q := range aliases {
		t.aliases[alias] = q
		t.ordered = append(t.ordered, alias)
	}
	// longest alias first so "dim" wins over a shorter prefix
	sort.Slice(t.ordered, func(i, j int) bool {
		if len(t.ordered[i]) != len(t.ordered[j]) {
			return len(t.ordered[i]) > len(t.ordered[j])
		}
		return t.ordered[i] < t.ordered[j]
	})

	for q, tokens := range formulas {
		degrees := make([]pitch.Degree, 0, len(tokens))
		for _, token := range tokens {
			d, err := pitch.ParseDegree(token)
			if err != nil {
				panic("bad built-in chord formula: " + err.Error())
			}
			degrees = append(degrees, d)
		}
		t.formulas[q] = degrees
	}
	return t
}

// Match returns the longest alias prefixing s.
func (t *QualityTable) Match(s string) (Quality, string, bool) {
	for _, alias := range t.ordered {
		if len(alias) <= len(s) && s[:len(alias)] == alias {
			return t.aliases[alias], alias, true
		}
	}
	return Dominant, "", false
}

// Formula returns a copy of the base formula for q.
func (t *QualityTable) Formula(q Quality) []pitch.Degree {
	base, ok := t.formulas[q]
	if !ok {
		base = t.formulas[Dominant]
	}
	res := make([]pitch.Degree, len(base))
	copy(res, base)
	return res
}
