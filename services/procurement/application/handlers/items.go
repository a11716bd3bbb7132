package handlers

import (
	"net/http"

	"github.com/ghuser/procurement/pkg/errhttp"
	"github.com/ghuser/procurement/pkg/httpx"
	pkgvalidator "github.com/ghuser/procurement/pkg/validator"
	appsvcs "github.com/ghuser/procurement/services/procurement/application/services"
)

// AddItemRequest is the request body for POST /procurement/{id}/items.
type AddItemRequest struct {
	Sku              uint32 `json:"sku"                validate:"required" example:"5"`
	OrderedAmount    uint32 `json:"ordered_amount"     example:"2"`
	ExpectedNetPrice uint32 `json:"expected_net_price" example:"100"`
} // @name AddItemRequest

// UpdateItemAmountRequest is the request body for PATCH .../items/{sku}/amount.
type UpdateItemAmountRequest struct {
	OrderedAmount uint32 `json:"ordered_amount" example:"3"`
} // @name UpdateItemAmountRequest

// UpdateItemPriceRequest is the request body for PATCH .../items/{sku}/price.
type UpdateItemPriceRequest struct {
	ExpectedNetPrice uint32 `json:"expected_net_price" example:"120"`
} // @name UpdateItemPriceRequest

// ItemHandler handles the sku-line endpoints of a procurement.
type ItemHandler struct {
	svc *appsvcs.Services
}

// NewItemHandler returns an ItemHandler backed by the given services.
func NewItemHandler(svc *appsvcs.Services) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Add appends a new sku line to the order.
//
//	@Summary	Add item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Procurement id"
//	@Param		request	body		AddItemRequest	true	"Item to add"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/procurement/{id}/items [post]
func (h *ItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.AddItem(r.Context(), id, req.Sku, req.OrderedAmount, req.ExpectedNetPrice)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// UpdateAmount changes the ordered amount of one sku line.
//
//	@Summary	Update item amount
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Procurement id"
//	@Param		sku		path		int						true	"Sku"
//	@Param		request	body		UpdateItemAmountRequest	true	"New amount"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/procurement/{id}/items/{sku}/amount [patch]
func (h *ItemHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	sku, ok := uintParam(w, r, "sku")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemAmountRequest](w, r)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.UpdateItemAmount(r.Context(), id, sku, req.OrderedAmount)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// UpdatePrice changes the expected net price of one sku line.
//
//	@Summary	Update item price
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Procurement id"
//	@Param		sku		path		int						true	"Sku"
//	@Param		request	body		UpdateItemPriceRequest	true	"New price"
//	@Success	200		{object}	ProcurementResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/procurement/{id}/items/{sku}/price [patch]
func (h *ItemHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	sku, ok := uintParam(w, r, "sku")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemPriceRequest](w, r)
	if !ok {
		return
	}
	p, err := h.svc.Procurement.UpdateItemPrice(r.Context(), id, sku, req.ExpectedNetPrice)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}

// Delete removes one sku line.
//
//	@Summary	Remove item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		int	true	"Procurement id"
//	@Param		sku	path		int	true	"Sku"
//	@Success	200	{object}	ProcurementResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/procurement/{id}/items/{sku} [delete]
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	sku, ok := uintParam(w, r, "sku")
	if !ok {
		return
	}
	p, err := h.svc.Procurement.RemoveItem(r.Context(), id, sku)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProcurementResponse(p))
}
