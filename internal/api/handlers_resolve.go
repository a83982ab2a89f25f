package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/dgallion1/docstruct/internal/resolver"
	"github.com/go-chi/chi/v5"
)

// resolveRequest is the body of POST /api/documents/{docID}/resolve.
type resolveRequest struct {
	Selections []resolver.Selection `json:"selections"`
}

// handleResolve maps named selections onto a cached extraction and
// returns the concatenated passages in request order. Resolution is
// fail-fast: the first unresolvable entry aborts the whole batch.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	doc, err := s.orchestrator.Cache().Load(docID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	passages, err := resolver.Resolve(doc, req.Selections)
	if err != nil {
		var notFound *resolver.SectionNotFoundError
		var badOverride *resolver.InvalidOverrideError
		switch {
		case errors.As(err, &notFound):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &badOverride):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, "resolution failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   docID,
		"passages": passages,
	})
}
