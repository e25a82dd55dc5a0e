package chord

import (
	"github.com/jsphweid/chordsheet/pitch"
)

// Resolver turns parsed symbols into notes. Each step of the formula pipeline returns a
// fresh slice; nothing is shared between calls.
type Resolver struct {
	qualities *QualityTable
}

func NewResolver(qualities *QualityTable) *Resolver {
	return &Resolver{qualities: qualities}
}

var DefaultResolver = NewResolver(DefaultQualities)

func (r *Resolver) Resolve(sym Symbol, beat float64) (Chord, error) {
	formula := r.Formula(sym)

	notes := make([]pitch.Class, 0, len(formula)+1)
	if sym.HasBass {
		notes = append(notes, sym.Bass.Normalize())
	}
	for _, d := range formula {
		if !d.Valid() {
			return Chord{}, &SyntaxError{Symbol: sym.Text, Reason: "degree out of range: " + d.String()}
		}
		notes = append(notes, pitch.Resolve(sym.Root, d))
	}

	return Chord{
		Name:  sym.Text,
		Root:  sym.Root.Normalize(),
		Notes: notes,
		Beat:  beat,
	}, nil
}

// Formula is the final list of degrees for sym, in formula order.
func (r *Resolver) Formula(sym Symbol) []pitch.Degree {
	formula := r.qualities.Formula(sym.Quality)
	if sym.Quality == Suspended {
		formula = withSuspension(formula, sym.TopNote)
	} else {
		formula = withExtensions(formula, sym.Quality, sym.TopNote)
	}
	return withModifiers(formula, implicitModifiers(sym.Quality, formula), sym.Modifiers)
}

func lastNumber(formula []pitch.Degree) int {
	if len(formula) == 0 {
		return 1
	}
	return formula[len(formula)-1].Number
}

// withExtensions stacks thirds (7, 9, 11, 13) up to the top note.
func withExtensions(base []pitch.Degree, q Quality, top int) []pitch.Degree {
	res := append([]pitch.Degree(nil), base...)
	if top == 0 {
		if q == Diminished {
			res = append(res, pitch.D(6))
		}
		return res
	}
	if top == 6 {
		return append(res, pitch.D(6))
	}

	for n := lastNumber(res); n < top; {
		n += 2
		res = append(res, pitch.D(n))
	}
	return res
}

func withSuspension(base []pitch.Degree, degree int) []pitch.Degree {
	if degree == 0 {
		degree = 4
	}
	return withModifiers(base, nil, []Modifier{{Kind: Sus, Degree: pitch.D(degree)}})
}

// A seventh on anything but plain major is a dominant (flatted) seventh.
func implicitModifiers(q Quality, formula []pitch.Degree) []Modifier {
	if q == Major {
		return nil
	}
	for _, d := range formula {
		if d == pitch.D(7) {
			return []Modifier{{Kind: Alter, Degree: pitch.Flatted(7)}}
		}
	}
	return nil
}

func withModifiers(base []pitch.Degree, implicit, explicit []Modifier) []pitch.Degree {
	res := append([]pitch.Degree(nil), base...)
	for _, list := range [][]Modifier{implicit, explicit} {
		for _, m := range list {
			res = applyModifier(res, m)
		}
	}
	return res
}

func applyModifier(formula []pitch.Degree, m Modifier) []pitch.Degree {
	target := m.Degree.Number
	if m.Kind == Add {
		return append(formula, m.Degree)
	}
	if m.Kind == Sus {
		target = 3
	}

	for i, d := range formula {
		if d.Number == target {
			formula[i] = m.Degree
			return formula
		}
	}
	return append(formula, m.Degree)
}
