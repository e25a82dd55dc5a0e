package file

import (
	"fmt"
	"os"

	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/jsphweid/chordsheet/model"
)

func CreateFileNumMap(paths []string) model.FileNumToSheetPath {
	res := make(model.FileNumToSheetPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// LoadSong reads and assembles the lead sheet at path.
func LoadSong(path string) (*leadsheet.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading lead sheet: %w", err)
	}
	defer f.Close()

	song, err := leadsheet.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return song, nil
}
