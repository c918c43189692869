package web

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lcftools/ndaforge/internal/core"
)

// Form field names accepted by the generate and preview endpoints.
const (
	fieldEmployeesFile    = "employees_file"
	fieldTemplateFile     = "template_file"
	fieldFilenameTemplate = "filename_template"
	fieldPreviewCount     = "preview_count"
)

// handleIndex serves the upload form page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("load index page: %w", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleGenerate runs a full batch: renders a document per spreadsheet row,
// converts each to PDF, and returns the run summary with a download id.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseBatchForm(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	defer form.Close()

	if form.template == nil {
		s.respondError(w, r, fmt.Errorf("missing upload: %s", fieldTemplateFile), http.StatusBadRequest)
		return
	}

	result, _, err := s.service.Generate(r.Context(), form.employees, form.template, form.pattern)
	if err != nil {
		s.respondError(w, r, err, generateStatus(err))
		return
	}

	writeJSON(w, result)
}

// handlePreview resolves filenames for the first rows without generating
// anything. The template file is not needed and is ignored if sent.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseBatchForm(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	defer form.Close()

	count := core.ParsePreviewCount(r.FormValue(fieldPreviewCount))

	resp, err := s.service.Preview(form.employees, form.pattern, count)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, resp)
}

// handleDownload streams a stored archive as a ZIP attachment. Downloads are
// repeatable until the archive expires.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	zipID := chi.URLParam(r, "zipID")

	data, err := s.service.OpenArchive(zipID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.respondError(w, r, fmt.Errorf("archive not found: %s", zipID), http.StatusNotFound)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.ArchiveDownloadName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// batchForm carries the parsed multipart fields shared by generate and
// preview. Close releases both uploads.
type batchForm struct {
	employees multipart.File
	template  multipart.File
	pattern   string
}

func (f *batchForm) Close() {
	if f.employees != nil {
		f.employees.Close()
	}
	if f.template != nil {
		f.template.Close()
	}
}

// parseBatchForm validates the multipart request and extracts the
// spreadsheet, the optional template, and the filename pattern.
func (s *Server) parseBatchForm(w http.ResponseWriter, r *http.Request) (*batchForm, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("parse upload form: %w", err)
	}

	employees, _, err := r.FormFile(fieldEmployeesFile)
	if err != nil {
		return nil, fmt.Errorf("missing upload: %s", fieldEmployeesFile)
	}

	form := &batchForm{employees: employees}

	// The preview endpoint works without a template, so its absence is not
	// an error here.
	if template, _, err := r.FormFile(fieldTemplateFile); err == nil {
		form.template = template
	}

	form.pattern = strings.TrimSpace(r.FormValue(fieldFilenameTemplate))
	if form.pattern == "" {
		form.pattern = core.DefaultPattern
	}

	return form, nil
}

// generateStatus maps a generate failure to an HTTP status.
func generateStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrTooManyRuns):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadRequest
	}
}
