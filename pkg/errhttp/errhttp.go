// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/procurement/pkg/httpx"
	procdomain "github.com/ghuser/procurement/services/procurement/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors; validation
// failures land on 4xx so callers can tell them from retryable infrastructure
// failures.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, procdomain.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, procdomain.ErrDuplicateKey),
		errors.Is(err, procdomain.ErrIDConflict):
		return http.StatusConflict // 409
	case errors.Is(err, procdomain.ErrInvalidChecksum),
		errors.Is(err, procdomain.ErrUnknownSku),
		errors.Is(err, procdomain.ErrMissingPrice),
		errors.Is(err, procdomain.ErrMissingExpiry),
		errors.Is(err, procdomain.ErrQuantityMismatch),
		errors.Is(err, procdomain.ErrIncompleteUpls):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, procdomain.ErrInvalidTransition),
		errors.Is(err, procdomain.ErrInvalidState):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
