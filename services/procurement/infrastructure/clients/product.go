package clients

import (
	"context"

	"github.com/ghuser/procurement/services/procurement/domain/repositories"
)

// ProductClient implements repositories.ProductCatalog against the product
// catalog service.
type ProductClient struct {
	httpClient
}

// NewProductClient returns a catalog façade rooted at baseURL.
func NewProductClient(baseURL string) *ProductClient {
	return &ProductClient{newHTTPClient(baseURL)}
}

type productBulkRequest struct {
	Skus []uint32 `json:"skus"`
}

type productBulkResponse struct {
	Products []repositories.ProductRecord `json:"products"`
}

// GetBulk fetches product metadata for the given skus. Skus unknown to the
// catalog are simply missing from the response.
func (c *ProductClient) GetBulk(ctx context.Context, skus []uint32) ([]repositories.ProductRecord, error) {
	var resp productBulkResponse
	if err := c.postJSON(ctx, "/product/bulk", productBulkRequest{Skus: skus}, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
