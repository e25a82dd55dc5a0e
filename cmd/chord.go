package cmd

import (
	"fmt"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/spf13/cobra"
)

var chordBeat float64

func init() {
	chordCmd.Flags().Float64Var(&chordBeat, "beat", 0, "Beat position to report")
	rootCmd.AddCommand(chordCmd)
}

var chordCmd = &cobra.Command{
	Use:   "chord <symbol>...",
	Short: "Resolves chord symbols",
	Long: `Resolves each chord symbol and prints its notes.

Examples:
  chordsheet chord Cm7 'CbM7(b5#11)/Eb'
  chordsheet chord --beat 2.5 'G7(sus4)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, symbol := range args {
			c, err := chord.ParseChord(symbol, chordBeat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.String())
		}
		return nil
	},
}
