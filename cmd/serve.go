package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/chunk"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/db"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/leadsheet"
	"github.com/jsphweid/chordsheet/metrics"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/sample"
	"github.com/jsphweid/chordsheet/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	allChunks     []model.ChunkOverview
	fileNumToName model.FileNumToSheetPath
	metadataStore db.Store
	sentryMetrics *metrics.SentryMetrics
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the search API",
	Long:  `Serves chord search over the index in INDEX_PATH, plus chord resolution and MIDI samples.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// LoadServeFiles loads the index overview and metadata store the handlers read from.
func LoadServeFiles() error {
	dir := constants.GetIndexDir()
	chunks, err := util.ReadBinary[[]model.ChunkOverview](filepath.Join(dir, constants.AllChunksFilename))
	if err != nil {
		return err
	}
	names, err := util.ReadBinary[model.FileNumToSheetPath](filepath.Join(dir, constants.FileNumToNameFilename))
	if err != nil {
		return err
	}
	store, err := newMetadataStore()
	if err != nil {
		return err
	}
	m, err := metrics.NewSentryMetrics(constants.GetSentryDSN())
	if err != nil {
		return err
	}

	allChunks, fileNumToName, metadataStore, sentryMetrics = chunks, names, store, m
	return nil
}

func newMetadataStore() (db.Store, error) {
	if endpoint := constants.GetMetadataEndpoint(); endpoint != "" {
		return db.NewDynamoStore(endpoint, constants.GetMetadataRegion(), constants.GetMetadataTable())
	}
	sheetDir, err := constants.GetSheetDir()
	if err != nil {
		return nil, err
	}
	return &db.SidecarStore{Root: sheetDir}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		sentryMetrics.CaptureError(err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// searchKey reduces notes, which may be MIDI note numbers, to a pitch-class set key.
func searchKey(notes model.Notes) string {
	classes := make([]uint8, 0, len(notes))
	for _, n := range notes {
		classes = append(classes, n%12)
	}
	return chord.CreateChordKey(util.Unique(classes))
}

// groupResults folds occurrences, which arrive ordered by file, into one result per file.
func groupResults(occurrences []model.Occurrence, names model.FileNumToSheetPath) []model.SearchResult {
	res := make([]model.SearchResult, 0)
	for _, o := range occurrences {
		if len(res) == 0 || res[len(res)-1].FileId != o.FileNum {
			res = append(res, model.SearchResult{FileId: o.FileNum, Filename: names[o.FileNum]})
		}
		last := &res[len(res)-1]
		last.Measures = append(last.Measures, o.Measure)
		last.Beats = append(last.Beats, o.Beat())
	}
	return res
}

func attachMetadata(results []model.SearchResult) error {
	if metadataStore == nil || len(results) == 0 {
		return nil
	}
	filenames := make([]string, len(results))
	for i, r := range results {
		filenames[i] = r.Filename
	}
	metadatas, err := metadataStore.GetSongMetadatas(filenames)
	if err != nil {
		return err
	}
	for i := range results {
		if m, ok := metadatas[results[i].Filename]; ok {
			results[i].SongMetadata = &m
		}
	}
	return nil
}

func HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, finish := sentryMetrics.StartTransaction(r.Context(), "chordsheet.search")
	defer finish()

	var input model.SearchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}
	if len(input.Chords) != 1 || len(input.Chords[0]) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("exactly one non-empty chord is supported"))
		return
	}

	start := time.Now()
	key := searchKey(input.Chords[0])
	occurrences, err := chunk.Find(constants.GetIndexDir(), allChunks, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sentryMetrics.RecordSearch(ctx, key, len(occurrences), time.Since(start))

	results := groupResults(occurrences, fileNumToName)
	if err := attachMetadata(results); err != nil {
		// results are still useful without titles
		logger.Warn("metadata lookup failed", "error", err)
		sentryMetrics.CaptureError(err)
	}

	logger.Debug("search", "key", key, "matches", len(occurrences))
	writeJSON(w, http.StatusOK, model.SearchResponse{
		Key:        key,
		NumMatches: len(occurrences),
		NumFiles:   len(results),
		Results:    results,
	})
}

func HandleChord(w http.ResponseWriter, r *http.Request) {
	var input model.ChordRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}

	sym, err := chord.DefaultParser.Parse(input.Symbol)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := chord.DefaultResolver.Resolve(sym, input.Beat)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	set := c.PitchClassSet()
	classes := make([]int, len(set))
	for i, n := range set {
		classes[i] = int(n)
	}

	writeJSON(w, http.StatusOK, model.ChordResponse{
		Symbol:      input.Symbol,
		Canonical:   sym.String(),
		Quality:     sym.Quality.String(),
		PitchClass:  classes,
		NoteNames:   c.NoteNames(),
		Beat:        c.Beat,
		PitchSetKey: c.Key(),
	})
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

func HandleSample(w http.ResponseWriter, r *http.Request) {
	fileNum, err := strconv.ParseUint(mux.Vars(r)["fileNum"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid file number: %w", err))
		return
	}
	name, ok := fileNumToName[uint32(fileNum)]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no lead sheet with file number %d", fileNum))
		return
	}

	measure, err := intParam(r, "measure", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	count, err := intParam(r, "count", sample.DefaultCount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sheetDir, err := constants.GetSheetDir()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	song, err := file.LoadSong(filepath.Join(sheetDir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s, err := sample.Create(song, measure, count, sample.DefaultBPM)
	if err != nil {
		var rangeErr *leadsheet.RangeError
		if errors.As(err, &rangeErr) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	if _, err := s.WriteTo(w); err != nil {
		logger.Error("could not write sample", "error", err)
	}
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "chunks": len(allChunks), "files": len(fileNumToName)})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/search", HandleSearch).Methods("POST")
	router.HandleFunc("/chord", HandleChord).Methods("POST")
	router.HandleFunc("/songs/{fileNum}/sample", HandleSample).Methods("GET")
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func serve() error {
	if err := LoadServeFiles(); err != nil {
		return err
	}
	defer sentryMetrics.Flush()

	addr := ":" + constants.GetPort()
	logger.Info("serving", "addr", addr, "chunks", len(allChunks), "files", len(fileNumToName))
	return http.ListenAndServe(addr, NewRouter())
}
