package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/midi"
	"github.com/jsphweid/chordsheet/sample"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	exportFrom  int
	exportCount int
	exportBPM   float64
)

func init() {
	exportCmd.Flags().IntVar(&exportFrom, "from", 0, "First measure to export (default: whole song)")
	exportCmd.Flags().IntVar(&exportCount, "count", sample.DefaultCount, "Number of measures to export with --from")
	exportCmd.Flags().Float64Var(&exportBPM, "bpm", sample.DefaultBPM, "Tempo in beats of the time signature's unit")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file> <out.mid>",
	Short: "Writes a lead sheet as a MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return export(args[0], args[1], exportFrom, exportCount, exportBPM)
	},
}

func export(in, out string, from, count int, bpm float64) error {
	song, err := file.LoadSong(in)
	if err != nil {
		return err
	}

	var s *smf.SMF
	if from == 0 {
		s, err = midi.SongToSMF(song, bpm)
	} else {
		s, err = sample.Create(song, from, count, bpm)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", out, err)
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("could not write %s: %w", out, err)
	}
	logger.Info("exported lead sheet", "in", in, "out", out, "measures", song.TotalMeasures)
	return nil
}

