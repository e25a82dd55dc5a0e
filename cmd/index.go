package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/chordsheet/bucket"
	"github.com/jsphweid/chordsheet/chunk"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [max]",
	Short: "Creates index",
	Long: `Parses every lead sheet under SHEET_PATH and writes a chord index to INDEX_PATH.
Pass max to only index the first max lead sheets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid max %q: %w", args[0], err)
			}
			maxNum = arg1
		}
		return Index(cmd.Context(), maxNum)
	},
}

// Index rebuilds the index directory from scratch. maxNum of 0 means no limit.
func Index(ctx context.Context, maxNum int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sheetDir, err := constants.GetSheetDir()
	if err != nil {
		return err
	}
	outDir := constants.GetIndexDir()
	if err := util.RecreateOutputDir(outDir); err != nil {
		return err
	}

	paths, err := util.GatherAllSheetPaths(sheetDir, maxNum)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d lead sheets in %s\n", len(paths), sheetDir)

	fileNumMap := file.CreateFileNumMap(paths)
	occurrences, err := bucket.ProcessAllSheets(ctx, sheetDir, fileNumMap, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Bucketed %d distinct chords\n", len(occurrences))

	chunks, err := chunk.CreateAll(outDir, occurrences, constants.PreferredChunkSize)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d chunks to %s\n", len(chunks), outDir)

	if err := util.CreateBinary(filepath.Join(outDir, constants.AllChunksFilename), chunks); err != nil {
		return err
	}
	return util.CreateBinary(filepath.Join(outDir, constants.FileNumToNameFilename), fileNumMap)
}
