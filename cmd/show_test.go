package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testSong(t *testing.T) *leadsheet.Song {
	song, err := leadsheet.Read(strings.NewReader("4/4 C\nC - G7 -\n\nAm * * * * * F *\n"))
	require.NoError(t, err)
	return song
}

func TestRenderSongText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSong(&buf, testSong(t), 0, 0, "text"))
	assert.True(t, strings.HasPrefix(buf.String(), "Section 1: \n\tMeasure 1: \n\t\tC (0): C E G\n"))

	buf.Reset()
	require.NoError(t, renderSong(&buf, testSong(t), 2, 0, ""))
	assert.Equal(t, "\tMeasure 2: \n\t\tAm (0): A C E\n\t\tF (3): F A C\n", buf.String())
}

func TestRenderSongJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSong(&buf, testSong(t), 0, 0, "json"))

	var v songView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "4/4", v.TimeSignature)
	assert.Equal(t, 2, v.TotalMeasures)
	require.Len(t, v.Sections, 2)
	assert.Equal(t, chordView{Name: "G7", Beat: 2, Notes: []string{"G", "B", "D", "F"}, PitchClasses: []int{7, 11, 2, 5}},
		v.Sections[0].Measures[0].Chords[1])
}

func TestRenderSongYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSong(&buf, testSong(t), 0, 2, "yaml"))

	var v sectionView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, 2, v.Number)
	require.Len(t, v.Measures, 1)
	assert.Equal(t, 2, v.Measures[0].Number)
	assert.Equal(t, "F", v.Measures[0].Chords[1].Name)
}

func TestRenderSongErrors(t *testing.T) {
	var buf bytes.Buffer
	err := renderSong(&buf, testSong(t), 3, 0, "text")
	var rangeErr *leadsheet.RangeError
	assert.True(t, errors.As(err, &rangeErr))

	assert.Error(t, renderSong(&buf, testSong(t), 1, 1, "text"))
	assert.Error(t, renderSong(&buf, testSong(t), 0, 0, "xml"))
}
