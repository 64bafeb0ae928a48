package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statboard/statboard/internal/api/live"
	"github.com/statboard/statboard/internal/dataset"
	"github.com/statboard/statboard/internal/schema"
	"github.com/statboard/statboard/pkg/config"
	"github.com/statboard/statboard/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		MaxUploadBytes: 1 << 20,
		UploadRPS:      100,
		UploadBurst:    100,
		LogLevel:       "error",
		LogFormat:      "json",
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) (*DatasetHandler, *dataset.Store) {
	t.Helper()

	log := logger.New(cfg)
	store := dataset.NewStore()
	hub := live.NewHub(log)
	return NewDatasetHandler(store, hub, schema.Default(), cfg, log), store
}

func uploadRequest(t *testing.T, csv string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "scores.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	h, store := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,date,value\nA,2024-01-02,10\nA,2024-01-03,20\nB,2024-01-04,5\n"))

	require.Equal(t, http.StatusOK, rec.Code)

	var result dataset.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))

	assert.True(t, result.OK())
	assert.Equal(t, 3, result.Rows)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 11.67, result.Summary.Overall.Average)

	require.NotNil(t, store.Latest())
	assert.Equal(t, result.ID, store.Latest().ID)
}

func TestUploadRejectedDataset(t *testing.T) {
	h, store := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,score\nA,10\n"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var result dataset.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.OK())
	assert.Nil(t, result.Summary)

	// Even a rejected upload replaces the stored state
	require.NotNil(t, store.Latest())
	assert.False(t, store.Latest().OK())
}

func TestUploadReplacesPreviousResult(t *testing.T) {
	h, store := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,date,value\nA,2024-01-02,10\n"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, store.Latest().OK())

	rec = httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,date,value\nA,bad-date,10\n"))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The earlier metrics are gone; only the new error remains
	latest := store.Latest()
	require.NotNil(t, latest)
	assert.False(t, latest.OK())
	assert.Nil(t, latest.Summary)
}

func TestUploadMissingFile(t *testing.T) {
	h, _ := newTestHandler(t, testConfig())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.UploadRPS = 1
	cfg.UploadBurst = 1
	h, _ := newTestHandler(t, cfg)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,date,value\nA,2024-01-02,10\n"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,date,value\nA,2024-01-02,10\n"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLatestBeforeFirstUpload(t *testing.T) {
	h, _ := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	h.Latest(rec, httptest.NewRequest(http.MethodGet, "/api/datasets/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestAfterUpload(t *testing.T) {
	h, _ := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "name,date,value\nA,2024-01-02,10\n"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Latest(rec, httptest.NewRequest(http.MethodGet, "/api/datasets/latest", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var result dataset.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.OK())
	assert.Equal(t, 1, result.Rows)
}
