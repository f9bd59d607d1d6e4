package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hkanaan/factsheet/internal/library"
	"github.com/hkanaan/factsheet/internal/store"
)

func (s *Server) lookupReport(w http.ResponseWriter, r *http.Request) (*library.Record, bool) {
	rec, ok := s.orchestrator.Library().Get(chi.URLParam(r, "reportID"))
	if !ok {
		jsonError(w, "report not found", http.StatusNotFound)
		return nil, false
	}
	return rec, true
}

// handleGetSection returns one section by number or title.
func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupReport(w, r)
	if !ok {
		return
	}

	sec, err := rec.Store.Section(chi.URLParam(r, "ref"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sec)
}

// handleGetField returns one scalar field value.
func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupReport(w, r)
	if !ok {
		return
	}

	ref := chi.URLParam(r, "ref")
	label := chi.URLParam(r, "label")
	value, err := rec.Store.Field(ref, label)
	if err != nil {
		var mismatch *store.TypeMismatchError
		if errors.As(err, &mismatch) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"section": ref,
		"label":   label,
		"value":   value,
	})
}

// handleSearch runs a keyword search over the report.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupReport(w, r)
	if !ok {
		return
	}

	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, 16)
	for m := range rec.Store.Search(keyword) {
		results = append(results, map[string]any{
			"section_number": m.Section.Number,
			"section_title":  m.Section.Title,
			"path":           m.Path,
			"entry":          m.Entry,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"keyword": keyword,
		"count":   len(results),
		"results": results,
	})
}
