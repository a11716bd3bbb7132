package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/procurement/pkg/errhttp"
	"github.com/ghuser/procurement/pkg/httpx"
	pkgvalidator "github.com/ghuser/procurement/pkg/validator"
	appsvcs "github.com/ghuser/procurement/services/procurement/application/services"
)

// CreateProcurementRequest is the request body for POST /procurement.
type CreateProcurementRequest struct {
	SourceID  uint32 `json:"source_id"  validate:"required" example:"10"`
	CreatedBy uint32 `json:"created_by" validate:"required" example:"1"`
} // @name CreateProcurementRequest

// SetReferenceRequest is the request body for PATCH /procurement/{id}/reference.
type SetReferenceRequest struct {
	Reference string `json:"reference" validate:"max=255" example:"PO-2026-031"`
} // @name SetReferenceRequest

// SetDeliveryDateRequest is the request body for PATCH /procurement/{id}/delivery-date.
// An empty date clears the estimate (delivery date unknown).
type SetDeliveryDateRequest struct {
	DeliveryDate string `json:"delivery_date" example:"2026-09-20T00:00:00Z"`
} // @name SetDeliveryDateRequest

// SummaryResponse is one row of the procurement list.
type SummaryResponse struct {
	ID                    uint32     `json:"id"              example:"1"`
	SourceID              uint32     `json:"source_id"       example:"10"`
	SkuCount              uint32     `json:"sku_count"       example:"3"`
	SkuPieceCount         uint32     `json:"sku_piece_count" example:"12"`
	UplCount              uint32     `json:"upl_count"       example:"12"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	Status                string     `json:"status"          example:"ordered"`
	CreatedAt             time.Time  `json:"created_at"`
	CreatedBy             uint32     `json:"created_by"      example:"1"`
} // @name SummaryResponse

// ProcurementHandler handles the aggregate-level endpoints.
type ProcurementHandler struct {
	svc *appsvcs.Services
}

// NewProcurementHandler returns a ProcurementHandler backed by the given services.
func NewProcurementHandler(svc *appsvcs.Services) *ProcurementHandler {
	return &ProcurementHandler{svc: svc}
}

// Create creates a new procurement in status New.
//
//	@Summary		Create procurement
//	@Description	Creates a new empty procurement order for a supplier source
//	@Tags			procurement
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProcurementRequest	true	"Creation request"
//	@Success		201		{object}	ProcurementResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/procurement [post]
func (h *ProcurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProcurementRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Procurement.Create(r.Context(), req.SourceID, req.CreatedBy)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toProcurementResponse(p))
}

// Get returns one procurement.
//
//	@Summary	Get procurement
//	@Tags		procurement
//	@Produce	json
//	@Param		id	path		int	true	"Procurement id"
//	@Success	200	{object}	ProcurementResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/procurement/{id} [get]
func (h *ProcurementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.Procurement.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// List returns summaries of all procurements.
//
//	@Summary	List procurements
//	@Tags		procurement
//	@Produce	json
//	@Success	200	{array}	SummaryResponse
//	@Router		/procurement [get]
func (h *ProcurementHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.Procurement.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]SummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = SummaryResponse{
			ID:                    s.ID,
			SourceID:              s.SourceID,
			SkuCount:              s.SkuCount,
			SkuPieceCount:         s.SkuPieceCount,
			UplCount:              s.UplCount,
			EstimatedDeliveryDate: s.EstimatedDeliveryDate,
			Status:                s.Status.String(),
			CreatedAt:             s.CreatedAt,
			CreatedBy:             s.CreatedBy,
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Delete removes a procurement that is still in status New.
//
//	@Summary	Delete procurement
//	@Tags		procurement
//	@Param		id	path	int	true	"Procurement id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/procurement/{id} [delete]
func (h *ProcurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Procurement.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetReference replaces the free-text reference.
//
//	@Summary	Set reference
//	@Tags		procurement
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Procurement id"
//	@Param		request	body		SetReferenceRequest	true	"New reference"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/procurement/{id}/reference [patch]
func (h *ProcurementHandler) SetReference(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SetReferenceRequest](w, r)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.SetReference(r.Context(), id, req.Reference)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// SetDeliveryDate replaces the estimated delivery date.
//
//	@Summary	Set delivery date
//	@Tags		procurement
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Procurement id"
//	@Param		request	body		SetDeliveryDateRequest	true	"New delivery date (empty clears it)"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/procurement/{id}/delivery-date [patch]
func (h *ProcurementHandler) SetDeliveryDate(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SetDeliveryDateRequest](w, r)
	if !ok {
		return
	}
	date, ok := parseDeliveryDate(w, req.DeliveryDate)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.SetDeliveryDate(r.Context(), id, date)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}
