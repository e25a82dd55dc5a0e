package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/chordsheet/file"
	"github.com/spf13/cobra"
)

var watchDelay time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 200*time.Millisecond, "Wait this long after the last change before re-rendering")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-renders a lead sheet whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchFile(ctx, args[0], cmd.OutOrStdout(), watchDelay)
	},
}

func renderOnce(path string, w io.Writer) {
	song, err := file.LoadSong(path)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprint(w, song.String())
}

// watchFile watches the parent directory since editors often save by replacing the file.
func watchFile(ctx context.Context, path string, w io.Writer, delay time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("could not watch %s: %w", path, err)
	}

	renderOnce(abs, w)
	debounced := debounce.New(delay)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("lead sheet changed", "path", path, "op", ev.Op.String())
			debounced(func() { renderOnce(abs, w) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
