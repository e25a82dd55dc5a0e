package pitch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalNamesRoundTrip(t *testing.T) {
	table := NewTable()
	for i, name := range canonicalNames {
		c, err := table.Parse(name)
		assert.NoError(t, err)
		assert.Equal(t, Class(i), c)
		assert.Equal(t, name, table.Name(c))
	}
}

func TestEnharmonicSpellings(t *testing.T) {
	cases := map[string]Class{
		"C#": 1,
		"D#": 3,
		"E#": 5,
		"Fb": 4,
		"F#": 6,
		"G#": 8,
		"A#": 10,
		"B#": 0,
		"Cb": 11,
	}

	table := NewTable()
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := table.Parse(name)
			assert.NoError(t, err)
			assert.Equal(t, want, c)
		})
	}
}

func TestRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "H", "c", "C##", "Cx", "Hb", "Db7"} {
		_, err := Default.Parse(name)
		var noteErr *NoteError
		assert.True(t, errors.As(err, &noteErr), name)
	}
}

func TestClassNormalize(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Class(11), Class(-1).Normalize())
	assert.Equal(Class(0), Class(12).Normalize())
	assert.Equal(Class(11), Class(0).Transpose(-1))
	assert.Equal(Class(1), Class(11).Transpose(2))
	assert.Equal("Bb", Class(22).String())
}

func TestResolveDegree(t *testing.T) {
	cases := []struct {
		root Class
		d    Degree
		want Class
	}{
		{0, D(1), 0},
		{0, D(2), 2},
		{0, D(3), 4},
		{0, Flatted(3), 3},
		{0, D(4), 5},
		{0, D(5), 7},
		{0, Sharped(5), 8},
		{0, D(6), 9},
		{0, D(7), 11},
		{0, Flatted(7), 10},
		{0, D(9), 2},
		{0, Flatted(9), 1},
		{0, D(11), 5},
		{0, Sharped(11), 6},
		{0, D(13), 9},
		{7, D(3), 11},
		{11, D(7), 10},
		{1, Flatted(1), 0},
		{0, Flatted(1), 11},
		{11, Sharped(7), 11},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Resolve(c.root, c.d), "%v of %v", c.d, c.root)
	}
}

func TestNinthMatchesSecond(t *testing.T) {
	for root := Class(0); root < 12; root++ {
		assert.Equal(t, Resolve(root, D(2)), Resolve(root, D(9)))
		assert.Equal(t, Resolve(root, D(4)), Resolve(root, D(11)))
		assert.Equal(t, Resolve(root, D(6)), Resolve(root, D(13)))
	}
}

func TestParseDegree(t *testing.T) {
	d, err := ParseDegree("b13")
	assert.NoError(t, err)
	assert.Equal(t, Flatted(13), d)

	d, err = ParseDegree("5")
	assert.NoError(t, err)
	assert.Equal(t, D(5), d)

	for _, bad := range []string{"", "b", "x3", "14", "0", "#+5", "-3"} {
		_, err := ParseDegree(bad)
		assert.Error(t, err, bad)
	}
}
