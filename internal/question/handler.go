package question

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mcqreview/internal/app/apiresp"
)

type Handler struct {
	svc questionService
}

type questionService interface {
	ListTree(ctx context.Context) (*Folder, error)
	LoadQuestions(ctx context.Context, ids []string) (*QuestionSet, error)
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.ListTree(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	apiresp.WriteJSON(w, r, http.StatusOK, tree)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("files"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	set, err := h.svc.LoadQuestions(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	apiresp.WriteJSON(w, r, http.StatusOK, set)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoFiles):
		apiresp.WriteError(w, r, http.StatusBadRequest, "No files specified")
	case errors.Is(err, ErrDataRootNotFound):
		apiresp.WriteError(w, r, http.StatusNotFound, "Data folder not found")
	default:
		apiresp.WriteError(w, r, http.StatusInternalServerError, err.Error())
	}
}
