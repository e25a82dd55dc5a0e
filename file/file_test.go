package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFileNumMap(t *testing.T) {
	m := CreateFileNumMap([]string{"a.txt", "b.txt"})
	assert.Equal(t, "a.txt", m[0])
	assert.Equal(t, "b.txt", m[1])
}

func TestLoadSong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.txt")
	require.NoError(t, os.WriteFile(path, []byte("3/4 G\nG - -\nD7 - -\n"), 0644))

	song, err := LoadSong(path)
	require.NoError(t, err)
	assert.Equal(t, 2, song.TotalMeasures)
}

func TestLoadSongKeepsErrorKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("4/4 C\nC - G\n"), 0644))

	_, err := LoadSong(path)
	var mismatch *leadsheet.CountMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Contains(t, err.Error(), path)

	_, err = LoadSong(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
