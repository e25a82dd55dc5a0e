package pitch

import (
	"fmt"
	"strconv"
)

type Accidental int

const (
	Natural Accidental = iota
	Flat
	Sharp
)

func (a Accidental) String() string {
	switch a {
	case Flat:
		return "b"
	case Sharp:
		return "#"
	}
	return ""
}

const MaxDegree = 13

// Degree is a scale position relative to a chord root, e.g. b3 or #11.
type Degree struct {
	Number     int
	Accidental Accidental
}

func D(number int) Degree {
	return Degree{Number: number}
}

func Flatted(number int) Degree {
	return Degree{Number: number, Accidental: Flat}
}

func Sharped(number int) Degree {
	return Degree{Number: number, Accidental: Sharp}
}

func (d Degree) Valid() bool {
	return d.Number >= 1 && d.Number <= MaxDegree
}

func (d Degree) String() string {
	return d.Accidental.String() + strconv.Itoa(d.Number)
}

// ParseDegree reads tokens like "5", "b3" or "#11".
func ParseDegree(text string) (Degree, error) {
	var d Degree
	rest := text
	if len(rest) > 0 {
		switch rest[0] {
		case 'b':
			d.Accidental = Flat
			rest = rest[1:]
		case '#':
			d.Accidental = Sharp
			rest = rest[1:]
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || rest[0] == '+' || rest[0] == '-' {
		return Degree{}, fmt.Errorf("invalid degree %q", text)
	}
	d.Number = n
	if !d.Valid() {
		return Degree{}, fmt.Errorf("degree %q out of range 1-%d", text, MaxDegree)
	}
	return d, nil
}

// whole = 2, half = 1
var majorScaleSteps = [7]int{2, 2, 1, 2, 2, 2, 1}

// Resolve walks the major scale up from root. Degrees past 7 keep cycling the same
// pattern, so 9 lands where 2 does.
func Resolve(root Class, d Degree) Class {
	note := root.Normalize()
	for i := 0; i < d.Number-1; i++ {
		note = note.Transpose(majorScaleSteps[i%7])
	}

	switch d.Accidental {
	case Flat:
		note = note.Transpose(-1)
	case Sharp:
		note = note.Transpose(1)
	}
	return note
}
