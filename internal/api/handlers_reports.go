package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hkanaan/factsheet/internal/ingest"
	"github.com/hkanaan/factsheet/internal/parser"
)

// handleUpload ingests one fact sheet synchronously: parse is fast and
// in-memory, so the caller gets the report metadata in the response.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	meta, err := s.orchestrator.Ingest(data, filename)
	if err != nil {
		var dup *ingest.DuplicateError
		if errors.As(err, &dup) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{
				"error":     "duplicate report",
				"report_id": dup.ReportID,
				"title":     dup.Title,
			})
			return
		}
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(meta)
}

// handleListReports lists metadata for all loaded reports.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	metas := s.orchestrator.Library().List()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"reports": metas})
}

// handleGetReport returns a report's metadata and section headers.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.orchestrator.Library().Get(chi.URLParam(r, "reportID"))
	if !ok {
		jsonError(w, "report not found", http.StatusNotFound)
		return
	}

	rep := rec.Store.Report()
	sections := make([]map[string]any, 0, len(rep.Sections))
	for _, sec := range rep.Sections {
		sections = append(sections, map[string]any{
			"number": sec.Number,
			"title":  sec.Title,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"report":   rec.Meta,
		"sections": sections,
	})
}

// handleDeleteReport removes a report from the library and archive.
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	existed, err := s.orchestrator.Remove(id)
	if err != nil {
		jsonError(w, "failed to delete from archive: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !existed {
		jsonError(w, "report not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": id})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
