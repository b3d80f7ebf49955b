package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/rodrigoplimafreire/ats-resume/internal/extract"
	"github.com/rodrigoplimafreire/ats-resume/internal/ingestion"
	"github.com/rodrigoplimafreire/ats-resume/internal/pipeline"
	"github.com/rodrigoplimafreire/ats-resume/internal/types"
)

const (
	maxRequestBytes = 1 << 20  // 1MB for JSON bodies
	maxUploadBytes  = 10 << 20 // 10MB for resume uploads
)

// handleCreateScan runs a scan synchronously and returns the stored result
func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeScanRequest(w, r)
	if !ok {
		return
	}

	s.runScan(w, r, s.scanOptions(req))
}

// handleUploadScan accepts a multipart form with a resume file plus the
// job description fields, extracts the resume text, and runs a scan
func (s *Server) handleUploadScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	format, err := uploadFormat(header)
	if err != nil {
		s.errorResponse(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	resumeText, err := extract.FromReader(file, format)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "resume extraction failed: "+err.Error())
		return
	}

	req := types.ScanRequest{
		JobDescription: r.FormValue("job_description"),
		JobURL:         r.FormValue("job_url"),
		ResumeText:     ingestion.CleanText(resumeText),
		Language:       r.FormValue("language"),
	}
	if msg := validateScanRequest(&req); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	s.runScan(w, r, s.scanOptions(req))
}

// handleStreamScan runs a scan and streams progress via SSE
func (s *Server) handleStreamScan(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeScanRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.scanOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			log.Printf("[SERVER] error writing SSE event: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ScanTimeout)
	defer cancel()

	result, err := s.runner.Scan(ctx, opts)
	if err != nil {
		log.Printf("[SERVER] streaming scan failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	s.store.Put(result)
	sse.WriteComplete(result)
}

// handleGetScan returns a stored scan result by ID
func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id, ok := s.scanID(w, r)
	if !ok {
		return
	}

	result, found := s.store.Get(id)
	if !found {
		s.errorResponse(w, http.StatusNotFound, "Scan not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListScans returns summaries of all stored scans
func (s *Server) handleListScans(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.List())
}

// handleDeleteScan removes a stored scan result
func (s *Server) handleDeleteScan(w http.ResponseWriter, r *http.Request) {
	id, ok := s.scanID(w, r)
	if !ok {
		return
	}

	if !s.store.Delete(id) {
		s.errorResponse(w, http.StatusNotFound, "Scan not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeScanRequest decodes and validates the JSON scan request body.
// On failure it writes the error response and returns ok=false.
func (s *Server) decodeScanRequest(w http.ResponseWriter, r *http.Request) (types.ScanRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req types.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}

	if msg := validateScanRequest(&req); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return req, false
	}

	return req, true
}

// validateScanRequest returns an empty string when the request is valid,
// otherwise a client-facing message.
func validateScanRequest(req *types.ScanRequest) string {
	if req.JobDescription == "" && req.JobURL == "" {
		return "Either job_description or job_url is required"
	}
	if req.JobDescription != "" && req.JobURL != "" {
		return "job_description and job_url are mutually exclusive"
	}
	if req.ResumeText == "" {
		return "resume_text is required"
	}
	if err := req.Validate(); err != nil {
		return "Invalid request: " + err.Error()
	}
	return ""
}

// scanOptions builds pipeline options from a validated request.
func (s *Server) scanOptions(req types.ScanRequest) pipeline.ScanOptions {
	return pipeline.ScanOptions{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		Language:       types.Language(req.Language),
		APIKey:         s.cfg.APIKey,
		Models:         s.cfg.Models,
	}
}

// runScan executes the pipeline, stores the result, and writes it back.
func (s *Server) runScan(w http.ResponseWriter, r *http.Request, opts pipeline.ScanOptions) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ScanTimeout)
	defer cancel()

	result, err := s.runner.Scan(ctx, opts)
	if err != nil {
		log.Printf("[SERVER] scan failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.store.Put(result)
	s.jsonResponse(w, http.StatusCreated, result)
}

// scanID parses the {id} path value. On failure it writes the error
// response and returns ok=false.
func (s *Server) scanID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Scan ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid scan ID format")
		return uuid.Nil, false
	}

	return id, true
}

// uploadFormat resolves the document format of an uploaded resume from its
// filename, falling back to the part's Content-Type.
func uploadFormat(header *multipart.FileHeader) (extract.Format, error) {
	if format, err := extract.DetectFormat(header.Filename); err == nil {
		return format, nil
	}
	if format, ok := extract.FormatFromMIME(header.Header.Get("Content-Type")); ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, header.Filename)
}
