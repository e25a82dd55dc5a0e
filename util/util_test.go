package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKeysSorted(t *testing.T) {
	keys := GetKeys(map[string]int{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestSumMinUnique(t *testing.T) {
	assert.Equal(t, uint64(6), Sum([]int{1, 2, 3}))
	assert.Equal(t, 2, Min(5, 2))
	assert.Equal(t, []uint8{4, 0, 7}, Unique([]uint8{4, 0, 4, 7}))
}

func TestGatherAllSheetPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "jazz"), 0755))
	for _, name := range []string{"a.txt", "jazz/b.chords", "jazz/c.mid", "d.sheet"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("4/4 C\n"), 0644))
	}

	paths, err := GatherAllSheetPaths(root, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "d.sheet", filepath.Join("jazz", "b.chords")}, paths)

	paths, err = GatherAllSheetPaths(root, 2)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.dat")
	in := map[uint32]string{1: "a.txt", 2: "b.txt"}
	require.NoError(t, CreateBinary(path, in))

	out, err := ReadBinary[map[uint32]string](path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
