package donestate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"mcqreview/internal/app/apiresp"
)

type Handler struct {
	svc doneService
}

type doneService interface {
	Load(ctx context.Context) []string
	Save(ctx context.Context, ids []string) error
	Toggle(ctx context.Context, id string) (bool, []string, error)
}

type doneResponse struct {
	DoneFiles []string `json:"done_files"`
}

type saveResponse struct {
	Success   bool     `json:"success"`
	DoneFiles []string `json:"done_files"`
}

type toggleRequest struct {
	FilePath *string `json:"file_path"`
}

type toggleResponse struct {
	Success   bool     `json:"success"`
	FilePath  string   `json:"file_path"`
	IsDone    bool     `json:"is_done"`
	DoneFiles []string `json:"done_files"`
}

func NewHandler(store *Store) *Handler {
	return &Handler{svc: store}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	apiresp.WriteJSON(w, r, http.StatusOK, doneResponse{DoneFiles: h.svc.Load(r.Context())})
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		apiresp.WriteError(w, r, http.StatusBadRequest, "Invalid data")
		return
	}
	raw, ok := body["done_files"]
	if !ok {
		apiresp.WriteError(w, r, http.StatusBadRequest, "Invalid data")
		return
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		apiresp.WriteError(w, r, http.StatusBadRequest, "done_files must be an array")
		return
	}
	ids := []string{}
	if err := json.Unmarshal(raw, &ids); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "done_files must be an array of strings")
		return
	}

	if err := h.svc.Save(r.Context(), ids); err != nil {
		writeStoreError(w, r, err)
		return
	}
	apiresp.WriteJSON(w, r, http.StatusOK, saveResponse{Success: true, DoneFiles: ids})
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiresp.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FilePath == nil || *req.FilePath == "" {
		apiresp.WriteError(w, r, http.StatusBadRequest, "file_path is required")
		return
	}

	isDone, ids, err := h.svc.Toggle(r.Context(), *req.FilePath)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	apiresp.WriteJSON(w, r, http.StatusOK, toggleResponse{
		Success:   true,
		FilePath:  *req.FilePath,
		IsDone:    isDone,
		DoneFiles: ids,
	})
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrPersist) {
		apiresp.WriteError(w, r, http.StatusInternalServerError, "Failed to save done state")
		return
	}
	apiresp.WriteError(w, r, http.StatusInternalServerError, err.Error())
}
