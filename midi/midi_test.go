package midi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoicing(t *testing.T) {
	c, err := chord.ParseChord("C/E", 0)
	require.NoError(t, err)
	assert.Equal(t, []uint8{52, 60, 64, 67}, Voicing(c))

	c, err = chord.ParseChord("Am", 0)
	require.NoError(t, err)
	assert.Equal(t, []uint8{57, 60, 64}, Voicing(c))
}

func TestBeatTicks(t *testing.T) {
	assert.Equal(t, uint32(960), BeatTicks(leadsheet.TimeSignature{Beats: 4, Unit: 4}))
	assert.Equal(t, uint32(480), BeatTicks(leadsheet.TimeSignature{Beats: 6, Unit: 8}))
	assert.Equal(t, uint32(1920), BeatTicks(leadsheet.TimeSignature{Beats: 2, Unit: 2}))
}

func TestWriteSongRoundTrip(t *testing.T) {
	song, err := leadsheet.Read(strings.NewReader("4/4 C\nC - G -\n\nF * * * * * * *\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSong(&buf, song, 120))

	s, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	starts := NoteStarts(s)
	assert.Equal(t, []NoteStart{
		{0, 0, 48}, {0, 0, 64}, {0, 0, 67},
		{0, 1920, 55}, {0, 1920, 71}, {0, 1920, 62},
		{0, 3840, 53}, {0, 3840, 69}, {0, 3840, 60},
	}, starts)
}

func TestExcerptStartsAtZero(t *testing.T) {
	song, err := leadsheet.Read(strings.NewReader("3/4 G\nG - -\nD - -\nEm - -\n"))
	require.NoError(t, err)
	excerpt, err := song.Excerpt(3, 1)
	require.NoError(t, err)

	s, err := SongToSMF(excerpt, 90)
	require.NoError(t, err)
	starts := NoteStarts(s)
	require.NotEmpty(t, starts)
	assert.Equal(t, uint64(0), starts[0].Tick)
	assert.Equal(t, uint8(52), starts[0].Key)
}

func TestSongToSMFRejectsBadTempo(t *testing.T) {
	song, err := leadsheet.Read(strings.NewReader("4/4 C\nC - - -\n"))
	require.NoError(t, err)
	_, err = SongToSMF(song, 0)
	assert.Error(t, err)
}

func TestSongToSMFRejectsOddDenominator(t *testing.T) {
	song, err := leadsheet.Read(strings.NewReader("4/3 C\nC - - -\n"))
	require.NoError(t, err)
	_, err = SongToSMF(song, 120)
	assert.Error(t, err)
}

func TestReadGarbage(t *testing.T) {
	_, err := Read(strings.NewReader("not a midi file"))
	assert.Error(t, err)
}
