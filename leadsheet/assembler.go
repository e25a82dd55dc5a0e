package leadsheet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/chordsheet/chord"
)

// Spacer values are kept in quarter beats so that beat math stays exact.
var timeSpacers = map[string]int{
	"=": 8,
	"-": 4,
	"*": 2,
	"'": 1,
}

func IsSpacer(token string) bool {
	_, ok := timeSpacers[token]
	return ok
}

type Assembler struct {
	parser   *chord.Parser
	resolver *chord.Resolver
}

func NewAssembler(parser *chord.Parser, resolver *chord.Resolver) *Assembler {
	return &Assembler{parser: parser, resolver: resolver}
}

var DefaultAssembler = NewAssembler(chord.DefaultParser, chord.DefaultResolver)

// BuildSong assembles body lines (no header) with the default tables.
func BuildSong(ts TimeSignature, keySymbol string, lines []string) (*Song, error) {
	key, err := chord.DefaultParser.Parse(keySymbol)
	if err != nil {
		return nil, err
	}
	return DefaultAssembler.Assemble(ts, key, lines)
}

// Assemble builds a song from body lines. A blank line closes the current section; the
// last section is appended at the end of input.
func (a *Assembler) Assemble(ts TimeSignature, keySig chord.Symbol, lines []string) (*Song, error) {
	return a.assemble(ts, keySig, lines, 0)
}

// lineOffset is added to reported line numbers when the body follows a header.
func (a *Assembler) assemble(ts TimeSignature, keySig chord.Symbol, lines []string, lineOffset int) (*Song, error) {
	if err := ts.validate(); err != nil {
		return nil, err
	}
	key, err := a.resolver.Resolve(keySig, 0)
	if err != nil {
		return nil, err
	}

	song := &Song{TimeSignature: ts, Key: key}
	section := Section{Number: 1}
	measureCount := 0

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			song.Sections = append(song.Sections, section)
			section = Section{Number: section.Number + 1}
			continue
		}

		measure, err := a.measure(ts, measureCount+1, lineOffset+i+1, line)
		if err != nil {
			return nil, err
		}
		section.Measures = append(section.Measures, measure)
		measureCount++
	}

	song.Sections = append(song.Sections, section)
	song.TotalMeasures = measureCount
	return song, nil
}

func (a *Assembler) measure(ts TimeSignature, number, line int, text string) (Measure, error) {
	tokens := strings.Fields(text)
	quarters, err := spacerValue(ts, line, text, tokens)
	if err != nil {
		return Measure{}, err
	}

	expected := ts.Beats * 4 / quarters
	if len(tokens) != expected {
		return Measure{}, &CountMismatchError{Line: line, Measure: number, Expected: expected, Received: len(tokens)}
	}

	m := Measure{Number: number}
	for i, token := range tokens {
		if IsSpacer(token) {
			continue
		}
		beat := float64(i*quarters) / 4
		sym, err := a.parser.Parse(token)
		if err != nil {
			return Measure{}, fmt.Errorf("line %d: %w", line, err)
		}
		c, err := a.resolver.Resolve(sym, beat)
		if err != nil {
			return Measure{}, fmt.Errorf("line %d: %w", line, err)
		}
		m.Chords = append(m.Chords, c)
	}
	return m, nil
}

func spacerValue(ts TimeSignature, line int, text string, tokens []string) (int, error) {
	found := make(map[string]bool)
	value := 0
	for _, token := range tokens {
		q, ok := timeSpacers[token]
		if !ok {
			continue
		}
		found[token] = true
		value = q
	}

	if len(found) > 1 {
		spacers := make([]string, 0, len(found))
		for s := range found {
			spacers = append(spacers, s)
		}
		sort.Strings(spacers)
		return 0, &MixedSpacerError{Line: line, Spacers: spacers}
	}
	if value == 0 {
		return 0, &FormatError{Line: line, Text: text, Reason: "no valid spacer found"}
	}
	if ts.Beats*4%value != 0 {
		return 0, &FormatError{Line: line, Text: text,
			Reason: fmt.Sprintf("spacer %s can't evenly divide a %s measure, use a smaller spacer", spacerName(value), ts)}
	}
	return value, nil
}

func spacerName(quarters int) string {
	for s, q := range timeSpacers {
		if q == quarters {
			return s
		}
	}
	return "?"
}
