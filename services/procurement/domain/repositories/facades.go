package repositories

import (
	"context"
	"time"
)

// The façade interfaces below are the domain's view of the remote collaborator
// services. All of them are bulk request/response only and carry no retry or
// timeout policy of their own; bounded latency is the transport's concern.

// ExistingUnitLoad is one registry record matched during the freshness check.
type ExistingUnitLoad struct {
	UplID string `json:"upl_id"`
	Sku   uint32 `json:"sku"`
}

// UnitLoadCreationRequest is the complete denormalized record the registry
// needs to create one unit-load without further lookups: candidate identity,
// resolved product metadata, resolved selling price and the procurement's
// negotiated price.
type UnitLoadCreationRequest struct {
	UplID               string     `json:"upl_id"`
	ProductID           uint32     `json:"product_id"`
	Sku                 uint32     `json:"sku"`
	Piece               uint32     `json:"piece"`
	OpenedSku           bool       `json:"opened_sku"`
	BestBefore          *time.Time `json:"best_before,omitempty"`
	ProductUnit         string     `json:"product_unit"`
	Divisible           bool       `json:"divisible"`
	DivisibleAmount     uint32     `json:"divisible_amount"`
	NetPrice            uint32     `json:"net_price"`
	GrossPrice          uint32     `json:"gross_price"`
	VatRate             string     `json:"vat_rate"`
	ProcurementNetPrice uint32     `json:"procurement_net_price"`
}

// UnitLoadRegistry is the façade over the unit-load registry service.
type UnitLoadRegistry interface {
	// ExistsBulk returns the registry records matching any of the given ids.
	// An empty result means all ids are fresh.
	ExistsBulk(ctx context.Context, ids []string) ([]ExistingUnitLoad, error)

	// CreateBulk submits creation requests and returns the ids actually
	// created. Partial success is observable through the returned length.
	CreateBulk(ctx context.Context, requests []UnitLoadCreationRequest) ([]string, error)
}

// ProductRecord is the product catalog's metadata for one sku.
type ProductRecord struct {
	Sku             uint32 `json:"sku"`
	ProductID       uint32 `json:"product_id"`
	Unit            string `json:"unit"`
	Divisible       bool   `json:"divisible"`
	DivisibleAmount uint32 `json:"divisible_amount"`
	Perishable      bool   `json:"perishable"`
	DisplayName     string `json:"display_name"`
}

// ProductCatalog is the façade over the product catalog service.
type ProductCatalog interface {
	GetBulk(ctx context.Context, skus []uint32) ([]ProductRecord, error)
}

// PriceRecord is the current selling price for one sku.
type PriceRecord struct {
	Sku        uint32 `json:"sku"`
	NetPrice   uint32 `json:"net_price"`
	GrossPrice uint32 `json:"gross_price"`
	VatRate    string `json:"vat_rate"`
}

// PricingService is the façade over the pricing service.
type PricingService interface {
	GetBulk(ctx context.Context, skus []uint32) ([]PriceRecord, error)
}

// Notifier is the façade over the notification service. A Send failure is
// surfaced to the caller, never swallowed.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
