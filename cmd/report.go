package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jsphweid/chordsheet/chunk"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports on the index",
	Long:  `Summarizes the chunk files under INDEX_PATH: how many there are and how much of each is index overhead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := analyzeChunks(constants.GetIndexDir())
		if err != nil {
			return err
		}
		r.print(cmd.OutOrStdout())
		return nil
	},
}

var chunkFilename = regexp.MustCompile("^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}.dat$")

type chunksReport struct {
	avgIndexPercent     float32
	indexPercents       []float32
	occurrencesInChunks []uint64
	numFiles            int64
	numKeys             int64
	totalBytes          int64
	dataBytes           int64
}

func analyzeChunk(path string, report *chunksReport) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open chunk: %w", err)
	}
	defer f.Close()

	index, indexLength, err := chunk.ReadIndex(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var occurrences uint64
	for _, v := range index {
		occurrences += uint64(v.End-v.Start) / constants.OccurrenceSize
	}
	report.occurrencesInChunks = append(report.occurrencesInChunks, occurrences)
	report.numKeys += int64(len(index))

	stats, err := f.Stat()
	if err != nil {
		return fmt.Errorf("could not get file stats: %w", err)
	}
	report.totalBytes += stats.Size()
	report.indexPercents = append(report.indexPercents, float32(indexLength+4)/float32(stats.Size()))
	report.dataBytes += stats.Size() - int64(indexLength+4)
	return nil
}

func analyzeChunks(dir string) (chunksReport, error) {
	var report chunksReport
	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("could not read index dir: %w", err)
	}

	for _, entry := range entries {
		if !chunkFilename.MatchString(entry.Name()) {
			continue
		}
		report.numFiles++
		if err := analyzeChunk(filepath.Join(dir, entry.Name()), &report); err != nil {
			return report, err
		}
	}
	if report.totalBytes > 0 {
		report.avgIndexPercent = float32(report.totalBytes-report.dataBytes) / float32(report.totalBytes)
	}
	return report, nil
}

func (r chunksReport) print(w io.Writer) {
	fmt.Fprintf(w, "chunks: %v\n", r.numFiles)
	fmt.Fprintf(w, "chord keys: %v\n", r.numKeys)
	fmt.Fprintf(w, "occurrences: %v\n", util.Sum(r.occurrencesInChunks))
	fmt.Fprintf(w, "occurrences per chunk: %v\n", r.occurrencesInChunks)
	fmt.Fprintf(w, "index percent per chunk: %v\n", r.indexPercents)
	fmt.Fprintf(w, "avg index percent: %v\n", r.avgIndexPercent)
	fmt.Fprintf(w, "total bytes: %v\n", r.totalBytes)
	fmt.Fprintf(w, "data bytes: %v\n", r.dataBytes)
}
