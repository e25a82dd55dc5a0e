package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordsheet/chunk"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/midi"
	"github.com/jsphweid/chordsheet/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <chunk|file.mid>",
	Short: "Inspects a chunk or an exported MIDI file",
	Long: `Prints every chord key in a chunk file with its byte range and occurrence count.
Given a .mid file, prints its note starts instead, e.g. to check an export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mid" || ext == ".midi" {
		return inspectMidi(w, f)
	}

	index, _, err := chunk.ReadIndex(f)
	if err != nil {
		return err
	}
	for _, key := range util.GetKeys(index) {
		val := index[key]
		fmt.Fprintf(w, "key: %v\n", key)
		fmt.Fprintf(w, "val: %v (%d occurrences)\n", val, (val.End-val.Start)/constants.OccurrenceSize)
	}
	return nil
}

func inspectMidi(w io.Writer, r io.Reader) error {
	s, err := midi.Read(r)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "tracks: %d\n", len(s.Tracks))
	for _, n := range midi.NoteStarts(s) {
		fmt.Fprintf(w, "track %d tick %d key %d\n", n.Track, n.Tick, n.Key)
	}
	return nil
}
