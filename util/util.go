package util

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

var SheetExtensions = []string{".txt", ".chords", ".sheet"}

func RecreateOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("could not clear output dir: %w", err)
	}
	return os.MkdirAll(dir, 0755)
}

func IsSheetPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SheetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// GatherAllSheetPaths walks root for lead sheet files, stopping at maxNum when it is non-zero.
// Paths are relative to root.
func GatherAllSheetPaths(root string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSheetPath(s) {
			return nil
		}
		if maxNum != 0 && len(res) >= maxNum {
			return filepath.SkipAll
		}
		rel, err := filepath.Rel(root, s)
		if err != nil {
			return err
		}
		res = append(res, rel)
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return res, nil
}

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func CreateBinary(filename string, data any) error {
	buf := new(bytes.Buffer)
	encoder := gob.NewEncoder(buf)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

func ReadBinary[A any](path string) (A, error) {
	var data A
	f, err := os.Open(path)
	if err != nil {
		return data, fmt.Errorf("could not load binary file: %w", err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		return data, fmt.Errorf("could not decode binary file %s: %w", path, err)
	}
	return data, nil
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// Unique keeps the first occurrence of each value.
func Unique[A comparable](values []A) []A {
	seen := make(map[A]bool, len(values))
	var res []A
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			res = append(res, v)
		}
	}
	return res
}
