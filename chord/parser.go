package chord

import (
	"strconv"
	"strings"

	"github.com/jsphweid/chordsheet/pitch"
)

// Any chord modifiers must be placed within parentheses, e.g. CbM7(b5#11)/Eb.
type Parser struct {
	notes     *pitch.Table
	qualities *QualityTable
}

func NewParser(notes *pitch.Table, qualities *QualityTable) *Parser {
	return &Parser{notes: notes, qualities: qualities}
}

var DefaultParser = NewParser(pitch.Default, DefaultQualities)

var topNotes = map[int]bool{5: true, 6: true, 7: true, 9: true, 11: true, 13: true}

var susDegrees = map[int]bool{2: true, 4: true}

var modifierPrefixes = []struct {
	prefix string
	kind   ModifierKind
	acc    pitch.Accidental
}{
	{"add", Add, pitch.Natural},
	{"sus", Sus, pitch.Natural},
	{"b", Alter, pitch.Flat},
	{"#", Alter, pitch.Sharp},
}

// symbolScanner walks the symbol text once, left to right.
type symbolScanner struct {
	text string
	rest string
}

func (s *symbolScanner) fail(reason string) error {
	return &SyntaxError{Symbol: s.text, Reason: reason}
}

func (s *symbolScanner) digits(max int) string {
	n := 0
	for n < len(s.rest) && n < max && s.rest[n] >= '0' && s.rest[n] <= '9' {
		n++
	}
	d := s.rest[:n]
	s.rest = s.rest[n:]
	return d
}

func (p *Parser) Parse(text string) (Symbol, error) {
	sc := &symbolScanner{text: text, rest: text}
	sym := Symbol{Text: text}

	root, err := p.note(sc)
	if err != nil {
		return Symbol{}, err
	}
	sym.Root = root

	if q, alias, ok := p.qualities.Match(sc.rest); ok {
		sym.Quality = q
		sc.rest = sc.rest[len(alias):]
	}

	if err := p.topNote(sc, &sym); err != nil {
		return Symbol{}, err
	}

	if strings.HasPrefix(sc.rest, "(") {
		mods, err := p.modifiers(sc)
		if err != nil {
			return Symbol{}, err
		}
		sym.Modifiers = mods
	}

	if strings.HasPrefix(sc.rest, "/") {
		sc.rest = sc.rest[1:]
		bass, err := p.note(sc)
		if err != nil {
			return Symbol{}, err
		}
		sym.Bass = bass
		sym.HasBass = true
	}

	if sc.rest != "" {
		return Symbol{}, sc.fail("unexpected trailing " + strconv.Quote(sc.rest))
	}
	return sym, nil
}

func (p *Parser) note(sc *symbolScanner) (pitch.Class, error) {
	if sc.rest == "" {
		return 0, sc.fail("expected a note letter A-G")
	}
	n := 1
	if len(sc.rest) > 1 && (sc.rest[1] == 'b' || sc.rest[1] == '#') {
		n = 2
	}
	c, err := p.notes.Parse(sc.rest[:n])
	if err != nil {
		return 0, &SyntaxError{Symbol: sc.text, Reason: "bad note", Err: err}
	}
	sc.rest = sc.rest[n:]
	return c, nil
}

func (p *Parser) topNote(sc *symbolScanner, sym *Symbol) error {
	digits := sc.digits(2)
	if digits == "" {
		return nil
	}
	n, _ := strconv.Atoi(digits)

	if sym.Quality == Suspended {
		if !susDegrees[n] {
			return sc.fail("suspended degree must be 2 or 4, got " + digits)
		}
	} else if !topNotes[n] {
		return sc.fail("unsupported extension " + digits)
	}
	sym.TopNote = n
	return nil
}

func (p *Parser) modifiers(sc *symbolScanner) ([]Modifier, error) {
	end := strings.IndexByte(sc.rest, ')')
	if end == -1 {
		return nil, sc.fail("unclosed modifier list")
	}
	body := sc.rest[1:end]
	sc.rest = sc.rest[end+1:]
	if body == "" {
		return nil, sc.fail("empty modifier list")
	}

	var mods []Modifier
	inner := &symbolScanner{text: sc.text, rest: body}
	for inner.rest != "" {
		matched := false
		for _, mp := range modifierPrefixes {
			if !strings.HasPrefix(inner.rest, mp.prefix) {
				continue
			}
			inner.rest = inner.rest[len(mp.prefix):]
			digits := inner.digits(2)
			n, err := strconv.Atoi(digits)
			if err != nil {
				return nil, sc.fail("modifier " + mp.prefix + " needs a degree")
			}
			d := pitch.Degree{Number: n, Accidental: mp.acc}
			if !d.Valid() {
				return nil, sc.fail("modifier degree out of range: " + d.String())
			}
			mods = append(mods, Modifier{Kind: mp.kind, Degree: d})
			matched = true
			break
		}
		if !matched {
			return nil, sc.fail("unknown modifier at " + strconv.Quote(inner.rest))
		}
	}
	return mods, nil
}
