package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Routes builds the service's HTTP router.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "agent": s.agent.Identity()})
	})
	r.Post("/process", s.handleProcess)
	r.Get("/results/{job_id}", s.handleResults)
	return r
}

// handleProcess accepts a multipart submission: one or more "file" parts
// (page images in page order, or a single PDF) plus a comma-separated
// "fields" form value. It registers a queued job, kicks off background
// processing, and returns the job id with its poll URL.
func (s *Service) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)
	if err := r.ParseMultipartForm(s.config.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return
	}

	fields := splitFields(r.FormValue("fields"))

	uploads := r.MultipartForm.File["file"]
	if len(uploads) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no file submitted"))
		return
	}

	jobID := uuid.NewString()
	paths, err := s.saveUploads(jobID, uploads)
	if err != nil {
		removeAll(paths)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.checkSubmission(paths); err != nil {
		removeAll(paths)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	if err := s.store.Create(jobID, fields); err != nil {
		removeAll(paths)
		s.logger.Error("job.create.failed", "job_id", jobID, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("could not register job"))
		return
	}

	s.logger.Info("job.queued", "job_id", jobID, "files", len(paths), "fields", len(fields))
	go s.run(jobID, paths)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id":   jobID,
		"poll_url": "/results/" + jobID,
	})
}

// handleResults returns the polling view of one job.
func (s *Service) handleResults(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, err := s.store.Get(jobID)
	if errors.Is(err, ErrJobNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.logger.Error("job.read.failed", "job_id", jobID, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("could not read job"))
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// saveUploads copies the submitted parts into the upload directory under
// job-scoped names, preserving part order (page order).
func (s *Service) saveUploads(jobID string, uploads []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for i, hdr := range uploads {
		src, err := hdr.Open()
		if err != nil {
			return paths, fmt.Errorf("open upload %d: %w", i, err)
		}

		name := fmt.Sprintf("%s_%03d%s", jobID, i, strings.ToLower(filepath.Ext(hdr.Filename)))
		path := filepath.Join(s.config.UploadDir, name)
		dst, err := os.Create(path)
		if err != nil {
			src.Close()
			return paths, fmt.Errorf("store upload %d: %w", i, err)
		}
		paths = append(paths, path)

		_, err = io.Copy(dst, src)
		src.Close()
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return paths, fmt.Errorf("store upload %d: %w", i, err)
		}
	}
	return paths, nil
}

// checkSubmission validates the file mix before queueing: a PDF must be the
// only file, must pass pdfcpu validation, and needs a rasterizer to be
// processable.
func (s *Service) checkSubmission(paths []string) error {
	pdfCount := 0
	for _, path := range paths {
		if isPDF(path) {
			pdfCount++
		}
	}
	if pdfCount == 0 {
		return nil
	}
	if pdfCount > 1 || len(paths) > 1 {
		return errors.New("a PDF must be submitted on its own")
	}

	pages, err := api.PageCountFile(paths[0])
	if err != nil {
		return fmt.Errorf("invalid PDF: %w", err)
	}
	if s.rasterizer == nil {
		return fmt.Errorf("PDF rasterization is not available; submit the %d page(s) as images", pages)
	}
	return nil
}

// splitFields parses the comma-separated field list, trimming whitespace
// and dropping empties.
func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func removeAll(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
