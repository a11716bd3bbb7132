package clients

import (
	"context"

	"github.com/ghuser/procurement/services/procurement/domain/repositories"
)

// PriceClient implements repositories.PricingService against the pricing
// service.
type PriceClient struct {
	httpClient
}

// NewPriceClient returns a pricing façade rooted at baseURL.
func NewPriceClient(baseURL string) *PriceClient {
	return &PriceClient{newHTTPClient(baseURL)}
}

type priceBulkRequest struct {
	Skus []uint32 `json:"skus"`
}

type priceBulkResponse struct {
	Prices []repositories.PriceRecord `json:"prices"`
}

// GetBulk fetches current selling prices for the given skus. Skus without a
// price are missing from the response.
func (c *PriceClient) GetBulk(ctx context.Context, skus []uint32) ([]repositories.PriceRecord, error) {
	var resp priceBulkResponse
	if err := c.postJSON(ctx, "/price/bulk", priceBulkRequest{Skus: skus}, &resp); err != nil {
		return nil, err
	}
	return resp.Prices, nil
}
