package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/procurement/pkg/errhttp"
	"github.com/ghuser/procurement/pkg/httpx"
	pkgvalidator "github.com/ghuser/procurement/pkg/validator"
	appsvcs "github.com/ghuser/procurement/services/procurement/application/services"
)

// AddUplCandidateRequest is the request body for POST .../upl-candidates.
// BestBefore is RFC3339 or empty for no expiry.
type AddUplCandidateRequest struct {
	UplID      string `json:"upl_id"      validate:"required,numeric" example:"79927398713"`
	Sku        uint32 `json:"sku"         validate:"required"         example:"5"`
	UplPiece   uint32 `json:"upl_piece"   example:"1"`
	OpenedSku  bool   `json:"opened_sku"  example:"false"`
	BestBefore string `json:"best_before" example:"2027-01-01T00:00:00Z"`
} // @name AddUplCandidateRequest

// UpdateUplCandidateRequest is the request body for PUT .../upl-candidates/{uplID}.
// Sku, piece and best-before are replaced together as one logical change.
type UpdateUplCandidateRequest struct {
	Sku        uint32 `json:"sku"         validate:"required" example:"5"`
	UplPiece   uint32 `json:"upl_piece"   example:"1"`
	BestBefore string `json:"best_before" example:"2027-01-01T00:00:00Z"`
} // @name UpdateUplCandidateRequest

// UplCandidateHandler handles the unit-load candidate endpoints.
type UplCandidateHandler struct {
	svc *appsvcs.Services
}

// NewUplCandidateHandler returns an UplCandidateHandler backed by the given services.
func NewUplCandidateHandler(svc *appsvcs.Services) *UplCandidateHandler {
	return &UplCandidateHandler{svc: svc}
}

// Add appends a new unit-load candidate.
//
//	@Summary	Add unit-load candidate
//	@Tags		upl-candidates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Procurement id"
//	@Param		request	body		AddUplCandidateRequest	true	"Candidate to add"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/procurement/{id}/upl-candidates [post]
func (h *UplCandidateHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddUplCandidateRequest](w, r)
	if !ok {
		return
	}
	bestBefore, ok := parseBestBefore(w, req.BestBefore)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.AddUplCandidate(r.Context(), id, req.UplID, req.Sku, req.UplPiece, req.OpenedSku, bestBefore)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// Update replaces sku, piece and best-before of one candidate.
//
//	@Summary	Update unit-load candidate
//	@Tags		upl-candidates
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Procurement id"
//	@Param		uplID	path		string						true	"Unit-load id"
//	@Param		request	body		UpdateUplCandidateRequest	true	"Replacement values"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/procurement/{id}/upl-candidates/{uplID} [put]
func (h *UplCandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	uplID := chi.URLParam(r, "uplID")
	req, ok := pkgvalidator.ValidateRequest[UpdateUplCandidateRequest](w, r)
	if !ok {
		return
	}
	bestBefore, ok := parseBestBefore(w, req.BestBefore)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.UpdateUplCandidate(r.Context(), id, uplID, req.Sku, req.UplPiece, bestBefore)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// Delete removes one candidate.
//
//	@Summary	Remove unit-load candidate
//	@Tags		upl-candidates
//	@Produce	json
//	@Param		id		path		int		true	"Procurement id"
//	@Param		uplID	path		string	true	"Unit-load id"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/procurement/{id}/upl-candidates/{uplID} [delete]
func (h *UplCandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	uplID := chi.URLParam(r, "uplID")
	p, err := h.svc.Procurement.RemoveUplCandidate(r.Context(), id, uplID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// parseBestBefore interprets an optional RFC3339 timestamp; empty means none.
func parseBestBefore(w http.ResponseWriter, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid best_before, expected RFC3339 or empty string")
		return nil, false
	}
	utc := t.UTC()
	return &utc, true
}
