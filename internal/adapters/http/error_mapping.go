package httpadapter

import (
	"net/http"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrProviderTimeout),
		domain.IsKind(err, domain.ErrProvider),
		domain.IsKind(err, domain.ErrMalformedResponse),
		domain.IsKind(err, domain.ErrMalformedCandidate):
		return http.StatusServiceUnavailable
	case domain.IsKind(err, domain.ErrInvalidModelOutput),
		domain.IsKind(err, domain.ErrSchemaViolation):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func isModelOutputError(err error) bool {
	return domain.IsKind(err, domain.ErrInvalidModelOutput) ||
		domain.IsKind(err, domain.ErrSchemaViolation)
}
