// Package server provides the HTTP REST API for running and retrieving
// resume scans.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rodrigoplimafreire/ats-resume/internal/analysis"
	"github.com/rodrigoplimafreire/ats-resume/internal/extract"
	"github.com/rodrigoplimafreire/ats-resume/internal/ingestion"
	"github.com/rodrigoplimafreire/ats-resume/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for a scan error.
// Pipeline errors arrive wrapped, so matching goes through errors.Is/As.
func HTTPStatus(err error) int {
	var validationErr *analysis.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var apiErr *analysis.APICallError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	var parseErr *analysis.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, pipeline.ErrMissingResume),
		errors.Is(err, pipeline.ErrMissingJob),
		errors.Is(err, ingestion.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extract.ErrEmptyDocument),
		errors.Is(err, ingestion.ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
