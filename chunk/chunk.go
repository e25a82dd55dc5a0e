package chunk

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/util"
)

// A chunk file is laid out as
//
//	[uint32 index length][gob ChunkIndex][occurrence records]
//
// where each record is fileNum, measure, beat quarters as little endian uint32s and
// the index maps a chord key to its byte range in the record section.

func makeChunkOverview(sortedKeys []string) model.ChunkOverview {
	var c model.ChunkOverview
	c.Filename = uuid.New().String() + ".dat"
	c.Start = sortedKeys[0]
	c.End = sortedKeys[len(sortedKeys)-1]
	return c
}

func makeChunk(dir string, m model.ChordKeyToOccurrences, sortedKeys []string) (model.ChunkOverview, error) {
	c := makeChunkOverview(sortedKeys)
	chunkIndex := make(model.ChunkIndex)
	dataOffset := 0

	dataBuf := new(bytes.Buffer)
	for _, key := range sortedKeys {
		p := model.Pair{Start: uint32(dataOffset)}
		for _, o := range m[key] {
			binary.Write(dataBuf, binary.LittleEndian, o.FileNum)
			binary.Write(dataBuf, binary.LittleEndian, o.Measure)
			binary.Write(dataBuf, binary.LittleEndian, o.BeatQuarters)
			dataOffset += constants.OccurrenceSize
		}
		p.End = uint32(dataOffset)
		chunkIndex[key] = p
	}

	indexBuf := new(bytes.Buffer)
	if err := gob.NewEncoder(indexBuf).Encode(chunkIndex); err != nil {
		return c, fmt.Errorf("error making chunk, couldn't encode index: %w", err)
	}

	var finalBytes []byte
	finalBytes = binary.LittleEndian.AppendUint32(finalBytes, uint32(indexBuf.Len()))
	finalBytes = append(finalBytes, indexBuf.Bytes()...)
	finalBytes = append(finalBytes, dataBuf.Bytes()...)

	if err := os.WriteFile(filepath.Join(dir, c.Filename), finalBytes, 0644); err != nil {
		return c, fmt.Errorf("write failed for chunk file: %w", err)
	}
	return c, nil
}

// CreateAll splits m into chunks of roughly maxSize bytes, keys in sorted order, so a key
// can be located by comparing against each chunk's Start and End.
func CreateAll(dir string, m model.ChordKeyToOccurrences, maxSize int) ([]model.ChunkOverview, error) {
	var size int
	var currKeys []string
	var created []model.ChunkOverview

	sortedKeys := util.GetKeys(m)
	for i, key := range sortedKeys {
		currKeys = append(currKeys, key)
		size += len(m[key]) * constants.OccurrenceSize
		// NOTE: approximate, gob adds some framing per entry
		size += len(key) + 8

		isLast := len(sortedKeys)-1 == i
		if size > maxSize || isLast {
			c, err := makeChunk(dir, m, currKeys)
			if err != nil {
				return nil, err
			}
			created = append(created, c)
			size = 0
			currKeys = currKeys[:0]
		}
	}
	return created, nil
}

// ReadIndex reads the index header, leaving r at the start of the record section.
func ReadIndex(r io.Reader) (model.ChunkIndex, uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, fmt.Errorf("could not read index length: %w", err)
	}
	indexLength := binary.LittleEndian.Uint32(buf)

	buf = make([]byte, indexLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, fmt.Errorf("could not read index: %w", err)
	}

	var index model.ChunkIndex
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&index); err != nil {
		return nil, 0, fmt.Errorf("could not decode index: %w", err)
	}
	return index, indexLength, nil
}

func parseOccurrences(buf []byte) []model.Occurrence {
	var res []model.Occurrence
	for i := 0; i+constants.OccurrenceSize <= len(buf); i += constants.OccurrenceSize {
		res = append(res, model.Occurrence{
			FileNum:      binary.LittleEndian.Uint32(buf[i : i+4]),
			Measure:      binary.LittleEndian.Uint32(buf[i+4 : i+8]),
			BeatQuarters: binary.LittleEndian.Uint32(buf[i+8 : i+12]),
		})
	}
	return res
}

func findInChunk(path string, chordKey string) ([]model.Occurrence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open chunk: %w", err)
	}
	defer f.Close()

	index, _, err := ReadIndex(f)
	if err != nil {
		return nil, err
	}
	val, ok := index[chordKey]
	if !ok {
		return nil, nil
	}

	// record offsets are relative to the end of the index
	if _, err := f.Seek(int64(val.Start), io.SeekCurrent); err != nil {
		return nil, err
	}
	buf := make([]byte, val.End-val.Start)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("could not read from seeked position: %w", err)
	}
	return parseOccurrences(buf), nil
}

// Find returns every occurrence of chordKey, or nil when it was never indexed.
func Find(dir string, chunks []model.ChunkOverview, chordKey string) ([]model.Occurrence, error) {
	for _, c := range chunks {
		if chordKey >= c.Start && chordKey <= c.End {
			return findInChunk(filepath.Join(dir, c.Filename), chordKey)
		}
	}
	return nil, nil
}
