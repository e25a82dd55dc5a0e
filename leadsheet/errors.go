package leadsheet

import (
	"fmt"
	"strings"
)

// FormatError reports a header or measure line that breaks the structural rules.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("%q: %s", e.Text, e.Reason)
}

type MixedSpacerError struct {
	Line    int
	Spacers []string
}

func (e *MixedSpacerError) Error() string {
	return fmt.Sprintf("line %d: multiple time spacers (%s) in a single measure, avoid mixing time spacers",
		e.Line, strings.Join(e.Spacers, " "))
}

type CountMismatchError struct {
	Line     int
	Measure  int
	Expected int
	Received int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("in measure %d (line %d): expected %d tokens, received %d tokens",
		e.Measure, e.Line, e.Expected, e.Received)
}

type RangeError struct {
	Kind  string
	Index int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s number %d, expected 1-%d", e.Kind, e.Index, e.Max)
}
