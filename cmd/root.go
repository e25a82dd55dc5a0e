package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/jsphweid/chordsheet/constants"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "chordsheet",
	Short: "Chord symbols and lead sheets",
	Long: `Resolves chord symbols like CbM7(b5#11)/Eb into pitch classes, assembles lead sheets
into songs and indexes a directory of lead sheets for chord search.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := constants.Load("."); err != nil {
			return err
		}
		logger = newLogger(os.Stderr, constants.GetLogLevel(), verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	if verbose {
		l = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
