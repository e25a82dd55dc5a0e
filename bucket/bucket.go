package bucket

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/util"
	"golang.org/x/sync/errgroup"
)

// SongOccurrences buckets every chord of song under its pitch-class set key.
func SongOccurrences(fileNum uint32, song *leadsheet.Song) model.ChordKeyToOccurrences {
	res := make(model.ChordKeyToOccurrences)
	for _, m := range song.Measures() {
		for _, c := range m.Chords {
			key := c.Key()
			res[key] = append(res[key], model.Occurrence{
				FileNum:      fileNum,
				Measure:      uint32(m.Number),
				BeatQuarters: uint32(c.Beat * 4),
			})
		}
	}
	return res
}

// ProcessAllSheets parses every lead sheet in m concurrently. Sheets that fail to parse
// are logged and skipped; only cancellation stops the run.
func ProcessAllSheets(ctx context.Context, root string, m model.FileNumToSheetPath, log *slog.Logger) (model.ChordKeyToOccurrences, error) {
	keys := util.GetKeys(m)
	results := make([]model.ChordKeyToOccurrences, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, num := range keys {
		i, num := i, num // per-iteration copy; go directive is 1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			song, err := file.LoadSong(filepath.Join(root, m[num]))
			if err != nil {
				log.Warn("skipping lead sheet", "path", m[num], "error", err)
				return nil
			}
			log.Debug("processed lead sheet", "path", m[num], "measures", song.TotalMeasures)
			results[i] = SongOccurrences(num, song)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// merge in file order so occurrence lists stay sorted by file
	merged := make(model.ChordKeyToOccurrences)
	for _, r := range results {
		for key, occurrences := range r {
			merged[key] = append(merged[key], occurrences...)
		}
	}
	return merged, nil
}
