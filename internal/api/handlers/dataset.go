package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/statboard/statboard/internal/api/live"
	"github.com/statboard/statboard/internal/dataset"
	"github.com/statboard/statboard/internal/schema"
	"github.com/statboard/statboard/pkg/config"
	"github.com/statboard/statboard/pkg/logger"
)

// DatasetHandler handles dataset upload and retrieval endpoints.
type DatasetHandler struct {
	store    *dataset.Store
	hub      *live.Hub
	schema   schema.Config
	limiter  *rate.Limiter
	maxBytes int64
	logger   *logger.Logger
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(
	store *dataset.Store,
	hub *live.Hub,
	schemaCfg schema.Config,
	cfg *config.Config,
	log *logger.Logger,
) *DatasetHandler {
	return &DatasetHandler{
		store:    store,
		hub:      hub,
		schema:   schemaCfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadBurst),
		maxBytes: cfg.MaxUploadBytes,
		logger:   log,
	}
}

// Upload processes one CSV upload
// POST /api/datasets
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		respondError(w, http.StatusTooManyRequests, "Too many uploads, slow down")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		respondError(w, http.StatusBadRequest, "A CSV file is required in the 'file' form field")
		return
	}
	defer file.Close()

	result := dataset.ProcessUpload(header.Filename, file, h.schema)

	// Every upload replaces the previous state, accepted or not, and every
	// open page hears about it.
	h.store.Replace(result)
	h.hub.Broadcast(result)

	if !result.OK() {
		h.logger.WithFields(map[string]interface{}{
			"file":   header.Filename,
			"reason": result.Error,
		}).Warn("Dataset rejected")
		respondJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"file": header.Filename,
		"rows": result.Rows,
	}).Info("Dataset uploaded")
	respondJSON(w, http.StatusOK, result)
}

// Latest returns the most recent upload result
// GET /api/datasets/latest
func (h *DatasetHandler) Latest(w http.ResponseWriter, r *http.Request) {
	result := h.store.Latest()
	if result == nil {
		respondError(w, http.StatusNotFound, "No dataset uploaded yet")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
