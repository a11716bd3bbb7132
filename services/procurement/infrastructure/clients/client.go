// Package clients holds the typed HTTP façades for the remote collaborator
// services: unit-load registry, product catalog, pricing and notification.
// All façades are bulk request/response JSON, carry no retry policy, and wrap
// every transport failure as ErrInternal so callers can tell infrastructure
// failures from business-rule violations.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	procdomain "github.com/ghuser/procurement/services/procurement/domain"
)

// httpClient is the shared JSON-over-HTTP plumbing for all façades.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string) httpClient {
	return httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
}

// postJSON sends body to path and decodes the response into out (skipped when
// out is nil). Any non-2xx status or transport failure comes back wrapped as
// ErrInternal.
func (c httpClient) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode request for %s: %w", procdomain.ErrInternal, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %w", procdomain.ErrInternal, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: call %s: %w", procdomain.ErrInternal, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", procdomain.ErrInternal, path, resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response from %s: %w", procdomain.ErrInternal, path, err)
	}
	return nil
}
