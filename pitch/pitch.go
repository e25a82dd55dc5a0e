package pitch

import (
	"fmt"
)

// Class is one of the twelve chromatic tones, C = 0.
type Class int

func (c Class) Normalize() Class {
	return ((c % 12) + 12) % 12
}

// Transpose moves c by semitones, wrapping around the octave.
func (c Class) Transpose(semitones int) Class {
	return (c + Class(semitones)).Normalize()
}

func (c Class) String() string {
	return Default.Name(c)
}

type NoteError struct {
	Text string
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("invalid note name %q", e.Text)
}

// Table maps note names to pitch classes and back. Flat spellings are canonical.
type Table struct {
	names [12]string
	index map[string]Class
}

var canonicalNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Default is built once at startup and never mutated.
var Default = NewTable()

func NewTable() *Table {
	t := &Table{names: canonicalNames, index: make(map[string]Class, len(canonicalNames))}
	for i, name := range canonicalNames {
		t.index[name] = Class(i)
	}
	return t
}

func (t *Table) Name(c Class) string {
	return t.names[c.Normalize()]
}

// Parse resolves a letter with an optional b or # accidental. Spellings missing from the
// table (C#, Cb, E#, ...) are the bare letter moved one semitone.
func (t *Table) Parse(text string) (Class, error) {
	if c, ok := t.index[text]; ok {
		return c, nil
	}
	if len(text) != 2 {
		return 0, &NoteError{Text: text}
	}

	letter, ok := t.index[text[:1]]
	if !ok {
		return 0, &NoteError{Text: text}
	}
	switch text[1] {
	case '#':
		return letter.Transpose(1), nil
	case 'b':
		return letter.Transpose(-1), nil
	}
	return 0, &NoteError{Text: text}
}
