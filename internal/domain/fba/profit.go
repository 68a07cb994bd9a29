package fba

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// FeeEstimate is one row of an Amazon fee estimate report
type FeeEstimate struct {
	ChannelSKU   string
	ASIN         string
	CountryISO   string
	ListingName  string
	SellingPrice int64 // pence
	ReferralFee  int64
	ClosingFee   int64
	HandlingFee  int64
}

// ProfitSnapshot is a per-product profit estimate from one fee import.
// It pairs a fee report row with the latest fulfilled order for the
// product and freezes the resulting margin.
type ProfitSnapshot struct {
	shared.BaseEntity
	ImportDate    time.Time
	OrderID       uuid.UUID
	RegionID      uuid.UUID
	ChannelSKU    string
	ASIN          string
	ListingName   string
	SalePrice     int64 // all prices in pence
	ReferralFee   int64
	ClosingFee    int64
	HandlingFee   int64
	PlacementFee  int64
	PurchasePrice int64
	ShippingPrice int64
	Profit        int64
}

// NewProfitSnapshot computes the margin for one fee estimate against
// the latest fulfilled order for its product. Shipping is priced per
// item from the quantity actually sent.
func NewProfitSnapshot(importDate time.Time, fee FeeEstimate, order *Order, region *Region) (*ProfitSnapshot, error) {
	if order == nil || order.ClosedAt == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Profit requires a fulfilled order")
	}
	if order.QuantitySent == nil || *order.QuantitySent <= 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Profit requires a sent quantity")
	}
	if region == nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region is required")
	}

	quantity := int64(*order.QuantitySent)
	shippedWeight := order.ProductWeightGrams * quantity
	shippingPerItem := region.CalculateShipping(shippedWeight) / quantity

	costs := region.PlacementFee +
		fee.ReferralFee +
		fee.ClosingFee +
		fee.HandlingFee +
		order.ProductPurchasePrice +
		shippingPerItem

	return &ProfitSnapshot{
		BaseEntity:    shared.NewBaseEntity(),
		ImportDate:    importDate,
		OrderID:       order.ID,
		RegionID:      region.ID,
		ChannelSKU:    fee.ChannelSKU,
		ASIN:          fee.ASIN,
		ListingName:   fee.ListingName,
		SalePrice:     fee.SellingPrice,
		ReferralFee:   fee.ReferralFee,
		ClosingFee:    fee.ClosingFee,
		HandlingFee:   fee.HandlingFee,
		PlacementFee:  region.PlacementFee,
		PurchasePrice: order.ProductPurchasePrice,
		ShippingPrice: shippingPerItem,
		Profit:        fee.SellingPrice - costs,
	}, nil
}

// ProfitRepository provides access to profit snapshots
type ProfitRepository interface {
	// ReplaceImport atomically replaces the snapshots recorded for an
	// import date, making re-runs of the same import idempotent.
	ReplaceImport(ctx context.Context, importDate time.Time, snapshots []ProfitSnapshot) error
	FindByImportDate(ctx context.Context, importDate time.Time) ([]ProfitSnapshot, error)
	// LatestImportDate returns the most recent import date, or the zero
	// time when no import has run.
	LatestImportDate(ctx context.Context) (time.Time, error)
}
