package fba

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// FulfillmentUnit is the measurement system used by a region
type FulfillmentUnit string

const (
	UnitMetric   FulfillmentUnit = "metric"
	UnitImperial FulfillmentUnit = "imperial"
)

// SizeUnit returns the length unit for the measurement system
func (u FulfillmentUnit) SizeUnit() string {
	if u == UnitImperial {
		return "inches"
	}
	return "cm"
}

// WeightUnit returns the weight unit for the measurement system
func (u FulfillmentUnit) WeightUnit() string {
	if u == UnitImperial {
		return "lb"
	}
	return "kg"
}

// Region is a geographic market FBA orders are fulfilled into
type Region struct {
	shared.BaseEntity
	Name              string
	Position          int
	PlacementFee      int64 // pence
	PostagePrice      *int64
	PostagePerKg      int64
	PostageOverheadG  int64
	MinShippingCost   int64
	MaxWeight         *int
	MaxSize           *decimal.Decimal
	FulfillmentUnit   FulfillmentUnit
	AutoClose         bool
	WarehouseRequired bool
	CountryISO        string
	Active            bool
}

// NewRegion creates a new region
func NewRegion(name string, position int) (*Region, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Region name cannot be empty")
	}
	return &Region{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Position:        position,
		FulfillmentUnit: UnitMetric,
		Active:          true,
	}, nil
}

// CalculateShipping returns the cost in pence of shipping a weight to the
// region. A fixed postage price takes precedence; otherwise the cost is
// weight based with a minimum floor.
func (r *Region) CalculateShipping(weightGrams int64) int64 {
	if r.PostagePrice != nil {
		return *r.PostagePrice
	}
	shippingWeight := weightGrams + r.PostageOverheadG
	calculated := decimal.NewFromInt(shippingWeight).
		Mul(decimal.NewFromInt(r.PostagePerKg)).
		Div(decimal.NewFromInt(1000)).
		IntPart()
	if calculated < r.MinShippingCost {
		return r.MinShippingCost
	}
	return calculated
}

// FulfillmentCenter is a destination depot inside a region
type FulfillmentCenter struct {
	shared.BaseEntity
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	Postcode     string
	Inactive     bool
	RegionID     uuid.UUID
}

// NewFulfillmentCenter creates a new fulfillment center in a region
func NewFulfillmentCenter(name string, regionID uuid.UUID) (*FulfillmentCenter, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fulfillment center name cannot be empty")
	}
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}
	return &FulfillmentCenter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		RegionID:   regionID,
	}, nil
}
