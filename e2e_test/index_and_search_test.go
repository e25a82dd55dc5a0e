//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/chordsheet/cmd"
	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	outDir, err := os.MkdirTemp("", "chordsheet-e2e")
	if err != nil {
		panic(err)
	}
	constants.Set(constants.IndexPathKey, outDir)
	constants.Set(constants.SheetPathKey, "testdata/sheets")

	if err := cmd.Index(context.Background(), 0); err != nil {
		panic(err)
	}
	if err := cmd.LoadServeFiles(); err != nil {
		panic(err)
	}

	exitVal := m.Run()
	os.RemoveAll(outDir)
	os.Exit(exitVal)
}

func createSearchReqBody(notes model.Notes) io.Reader {
	sr := model.SearchRequestBody{Chords: []model.Notes{notes}}
	data, err := json.Marshal(sr)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func search(t *testing.T, notes model.Notes) model.SearchResponse {
	req := httptest.NewRequest(http.MethodPost, "/search", createSearchReqBody(notes))
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var searchResponse model.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&searchResponse))
	return searchResponse
}

func TestBasicCChordE2E(t *testing.T) {
	res := search(t, model.Notes{60, 64, 67})

	assert.Equal(t, model.SearchResponse{
		Key:        "00-04-07",
		NumMatches: 3,
		NumFiles:   2,
		Results: []model.SearchResult{
			{
				FileId:       0,
				Filename:     "autumn.txt",
				Measures:     []uint32{3},
				Beats:        []float32{0},
				SongMetadata: &model.SongMetadata{Title: "Autumn", Composer: "Traditional", Year: 1945},
			},
			{
				FileId:   2,
				Filename: "simple.txt",
				Measures: []uint32{1, 2},
				Beats:    []float32{0, 2},
			},
		},
	}, res)
}

func TestBasicFChordE2E(t *testing.T) {
	res := search(t, model.Notes{65, 69, 72})

	assert.Equal(t, 1, res.NumMatches)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "simple.txt", res.Results[0].Filename)
	assert.Equal(t, []uint32{2}, res.Results[0].Measures)
	assert.Equal(t, []float32{0}, res.Results[0].Beats)
}

func TestSeventhChordE2E(t *testing.T) {
	res := search(t, model.Notes{5, 9, 0, 3})

	assert.Equal(t, "00-03-05-09", res.Key)
	require.Len(t, res.Results, 1)
	assert.Equal(t, []float32{2}, res.Results[0].Beats)
}

func TestUnknownChordE2E(t *testing.T) {
	res := search(t, model.Notes{0, 1, 2})
	assert.Equal(t, 0, res.NumMatches)
	assert.Empty(t, res.Results)
}

func TestSampleE2E(t *testing.T) {
	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		cmd.NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/songs/0/sample?measure=2&count=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/midi", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("MThd")))

	assert.Equal(t, http.StatusBadRequest, get("/songs/0/sample?measure=9").Code)
	assert.Equal(t, http.StatusNotFound, get("/songs/99/sample").Code)
}
