package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/procurement/services/procurement/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrNotFound", domain.ErrNotFound, http.StatusNotFound},
		{"ErrDuplicateKey", domain.ErrDuplicateKey, http.StatusConflict},
		{"ErrIDConflict", domain.ErrIDConflict, http.StatusConflict},
		{"ErrInvalidTransition", domain.ErrInvalidTransition, http.StatusConflict},
		{"ErrInvalidState", domain.ErrInvalidState, http.StatusConflict},
		{"ErrInvalidChecksum", domain.ErrInvalidChecksum, http.StatusUnprocessableEntity},
		{"ErrUnknownSku", domain.ErrUnknownSku, http.StatusUnprocessableEntity},
		{"ErrMissingPrice", domain.ErrMissingPrice, http.StatusUnprocessableEntity},
		{"ErrMissingExpiry", domain.ErrMissingExpiry, http.StatusUnprocessableEntity},
		{"ErrQuantityMismatch", domain.ErrQuantityMismatch, http.StatusUnprocessableEntity},
		{"ErrIncompleteUpls", domain.ErrIncompleteUpls, http.StatusUnprocessableEntity},
		{"wrapped ErrNotFound", fmt.Errorf("get procurement: %w", domain.ErrNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidChecksum", fmt.Errorf("%w: upl id 1234", domain.ErrInvalidChecksum), http.StatusUnprocessableEntity},
		{"ErrInternal", domain.ErrInternal, http.StatusInternalServerError},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, domain.ErrNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, domain.ErrNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
