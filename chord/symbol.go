package chord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/chordsheet/pitch"
)

type ModifierKind int

const (
	Add ModifierKind = iota
	Sus
	Alter
)

type Modifier struct {
	Kind   ModifierKind
	Degree pitch.Degree
}

func (m Modifier) String() string {
	switch m.Kind {
	case Add:
		return "add" + strconv.Itoa(m.Degree.Number)
	case Sus:
		return "sus" + strconv.Itoa(m.Degree.Number)
	}
	return m.Degree.String()
}

// Symbol is a parsed chord symbol whose notes have not been worked out yet.
type Symbol struct {
	Text      string
	Root      pitch.Class
	Quality   Quality
	TopNote   int // 0 when absent; the suspended degree for Suspended
	Modifiers []Modifier
	Bass      pitch.Class
	HasBass   bool
}

// String renders a canonical spelling that parses back to the same notes.
func (s Symbol) String() string {
	var b strings.Builder
	b.WriteString(s.Root.String())
	b.WriteString(s.Quality.Alias())
	if s.TopNote != 0 {
		b.WriteString(strconv.Itoa(s.TopNote))
	}
	if len(s.Modifiers) > 0 {
		b.WriteByte('(')
		for _, m := range s.Modifiers {
			b.WriteString(m.String())
		}
		b.WriteByte(')')
	}
	if s.HasBass {
		b.WriteByte('/')
		b.WriteString(s.Bass.String())
	}
	return b.String()
}

type SyntaxError struct {
	Symbol string
	Reason string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not parse chord symbol %q: %s: %v", e.Symbol, e.Reason, e.Err)
	}
	return fmt.Sprintf("could not parse chord symbol %q: %s", e.Symbol, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
