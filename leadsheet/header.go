package leadsheet

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/chordsheet/chord"
)

// ParseTimeSignature reads "<beats>/<unit>", e.g. "3/4".
func ParseTimeSignature(text string) (TimeSignature, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return TimeSignature{}, &FormatError{Line: 1, Text: text, Reason: "time signature must look like 4/4"}
	}
	beats, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeSignature{}, &FormatError{Line: 1, Text: text, Reason: "bad time signature numerator"}
	}
	unit, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeSignature{}, &FormatError{Line: 1, Text: text, Reason: "bad time signature denominator"}
	}
	ts := TimeSignature{Beats: beats, Unit: unit}
	if err := ts.validate(); err != nil {
		return TimeSignature{}, err
	}
	return ts, nil
}

func (ts TimeSignature) validate() error {
	if ts.Beats < 1 {
		return &FormatError{Line: 1, Text: ts.String(), Reason: "numerator must be positive"}
	}
	if ts.Unit < 1 {
		return &FormatError{Line: 1, Text: ts.String(), Reason: "denominator must be positive"}
	}
	return nil
}

// ParseHeader reads the first line of a lead sheet: "<time signature> <key symbol>".
func ParseHeader(line string) (TimeSignature, chord.Symbol, error) {
	return DefaultAssembler.parseHeader(line)
}

func (a *Assembler) parseHeader(line string) (TimeSignature, chord.Symbol, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return TimeSignature{}, chord.Symbol{}, &FormatError{Line: 1, Text: line,
			Reason: "header must be a time signature and a key signature, e.g. 4/4 C"}
	}
	ts, err := ParseTimeSignature(fields[0])
	if err != nil {
		return TimeSignature{}, chord.Symbol{}, err
	}
	key, err := a.parser.Parse(fields[1])
	if err != nil {
		return TimeSignature{}, chord.Symbol{}, err
	}
	return ts, key, nil
}

// Read parses a whole lead sheet, header line first.
func (a *Assembler) Read(r io.Reader) (*Song, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, &FormatError{Line: 1, Reason: "missing header line"}
	}

	ts, key, err := a.parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	return a.assemble(ts, key, lines[1:], 1)
}

func Read(r io.Reader) (*Song, error) {
	return DefaultAssembler.Read(r)
}
