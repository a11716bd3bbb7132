package clients

import (
	"context"

	"github.com/ghuser/procurement/services/procurement/domain/repositories"
)

// UnitLoadClient implements repositories.UnitLoadRegistry against the
// unit-load registry service.
type UnitLoadClient struct {
	httpClient
}

// NewUnitLoadClient returns a registry façade rooted at baseURL.
func NewUnitLoadClient(baseURL string) *UnitLoadClient {
	return &UnitLoadClient{newHTTPClient(baseURL)}
}

type existsBulkRequest struct {
	UplIDs []string `json:"upl_ids"`
}

type existsBulkResponse struct {
	Upls []repositories.ExistingUnitLoad `json:"upls"`
}

// ExistsBulk returns the registry records matching any of the given ids.
func (c *UnitLoadClient) ExistsBulk(ctx context.Context, ids []string) ([]repositories.ExistingUnitLoad, error) {
	var resp existsBulkResponse
	if err := c.postJSON(ctx, "/upl/bulk-exists", existsBulkRequest{UplIDs: ids}, &resp); err != nil {
		return nil, err
	}
	return resp.Upls, nil
}

type createBulkRequest struct {
	Requests []repositories.UnitLoadCreationRequest `json:"requests"`
}

type createBulkResponse struct {
	CreatedIDs []string `json:"created_ids"`
}

// CreateBulk submits creation requests and returns the ids actually created.
// The registry may create fewer unit-loads than requested; the caller decides
// what a shortfall means.
func (c *UnitLoadClient) CreateBulk(ctx context.Context, requests []repositories.UnitLoadCreationRequest) ([]string, error) {
	var resp createBulkResponse
	if err := c.postJSON(ctx, "/upl/bulk-create", createBulkRequest{Requests: requests}, &resp); err != nil {
		return nil, err
	}
	return resp.CreatedIDs, nil
}
