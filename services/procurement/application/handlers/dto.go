package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/procurement/pkg/httpx"
	"github.com/ghuser/procurement/services/procurement/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"not found: procurement 42"`
} // @name ErrorResponse

// ItemResponse is one sku line of a procurement.
type ItemResponse struct {
	Sku              uint32 `json:"sku"                example:"5"`
	OrderedAmount    uint32 `json:"ordered_amount"     example:"2"`
	ExpectedNetPrice uint32 `json:"expected_net_price" example:"100"`
} // @name ItemResponse

// UplCandidateResponse is one unit-load candidate of a procurement.
type UplCandidateResponse struct {
	UplID      string     `json:"upl_id"                example:"79927398713"`
	Sku        uint32     `json:"sku"                   example:"5"`
	UplPiece   uint32     `json:"upl_piece"             example:"1"`
	OpenedSku  bool       `json:"opened_sku"            example:"false"`
	BestBefore *time.Time `json:"best_before,omitempty"`
} // @name UplCandidateResponse

// ProcurementResponse is the full procurement object.
type ProcurementResponse struct {
	ID                    uint32                 `json:"id"         example:"1"`
	SourceID              uint32                 `json:"source_id"  example:"10"`
	Reference             string                 `json:"reference"  example:"PO-2026-031"`
	EstimatedDeliveryDate *time.Time             `json:"estimated_delivery_date,omitempty"`
	Items                 []ItemResponse         `json:"items"`
	UplCandidates         []UplCandidateResponse `json:"upl_candidates"`
	Status                string                 `json:"status"     example:"processing"`
	CreatedAt             time.Time              `json:"created_at"`
	CreatedBy             uint32                 `json:"created_by" example:"1"`
} // @name ProcurementResponse

// toProcurementResponse maps a domain snapshot onto the wire shape.
func toProcurementResponse(p *models.Procurement) ProcurementResponse {
	items := make([]ItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = ItemResponse{
			Sku:              item.Sku,
			OrderedAmount:    item.OrderedAmount,
			ExpectedNetPrice: item.ExpectedNetPrice,
		}
	}
	candidates := make([]UplCandidateResponse, len(p.UplCandidates))
	for i, c := range p.UplCandidates {
		candidates[i] = UplCandidateResponse{
			UplID:      c.UplID.String(),
			Sku:        c.Sku,
			UplPiece:   c.UplPiece,
			OpenedSku:  c.OpenedSku,
			BestBefore: c.BestBefore,
		}
	}
	return ProcurementResponse{
		ID:                    p.ID,
		SourceID:              p.SourceID,
		Reference:             p.Reference,
		EstimatedDeliveryDate: p.EstimatedDeliveryDate,
		Items:                 items,
		UplCandidates:         candidates,
		Status:                p.Status.String(),
		CreatedAt:             p.CreatedAt,
		CreatedBy:             p.CreatedBy,
	}
}

// uintParam parses a numeric chi URL parameter. Writes a 400 and returns
// false when the parameter is not a valid unsigned 32-bit integer.
func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint32, bool) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint32(v), true
}

// parseDeliveryDate interprets the wire convention for optional dates: an
// empty string means unknown, anything else must be RFC3339.
func parseDeliveryDate(w http.ResponseWriter, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid date, expected RFC3339 or empty string")
		return nil, false
	}
	utc := t.UTC()
	return &utc, true
}
