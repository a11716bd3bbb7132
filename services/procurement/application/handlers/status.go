package handlers

import (
	"net/http"

	"github.com/ghuser/procurement/pkg/errhttp"
	"github.com/ghuser/procurement/pkg/httpx"
	pkgvalidator "github.com/ghuser/procurement/pkg/validator"
	appsvcs "github.com/ghuser/procurement/services/procurement/application/services"
	"github.com/ghuser/procurement/services/procurement/domain/models"
)

// SetStatusRequest is the request body for POST /procurement/{id}/status.
// Closed is deliberately not accepted here: the only way to close a
// procurement is the orchestrated close endpoint.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ordered arrived processing" example:"ordered"`
	Actor  uint32 `json:"actor"  validate:"required" example:"1"`
} // @name SetStatusRequest

// CloseRequest is the request body for POST /procurement/{id}/close.
type CloseRequest struct {
	Actor uint32 `json:"actor" validate:"required" example:"1"`
} // @name CloseRequest

// StatusHandler handles status transitions and the close workflow.
type StatusHandler struct {
	svc *appsvcs.Services
}

// NewStatusHandler returns a StatusHandler backed by the given services.
func NewStatusHandler(svc *appsvcs.Services) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// SetStatus requests a state-machine transition.
//
//	@Summary	Set status
//	@Tags		status
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Procurement id"
//	@Param		request	body		SetStatusRequest	true	"Requested status"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/procurement/{id}/status [post]
func (h *StatusHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SetStatusRequest](w, r)
	if !ok {
		return
	}
	target, err := models.ParseStatus(req.Status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	p, err := h.svc.Procurement.SetStatus(r.Context(), id, target, req.Actor)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// Close runs the orchestrated close workflow.
//
//	@Summary		Close procurement
//	@Description	Validates the order against the unit-load registry, product catalog and pricing service, creates the unit-loads and commits the Closed status
//	@Tags			status
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Procurement id"
//	@Param			request	body		CloseRequest	true	"Closing actor"
//	@Success		200		{object}	ProcurementResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/procurement/{id}/close [post]
func (h *StatusHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CloseRequest](w, r)
	if !ok {
		return
	}
	p, err := h.svc.Close.Close(r.Context(), id, req.Actor)
	if err != nil {
		// When a snapshot comes back with the error the procurement did
		// close, but the shortfall alert could not be delivered; the caller
		// still sees the failure.
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}
