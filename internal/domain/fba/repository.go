package fba

import (
	"context"

	"github.com/google/uuid"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// OrderRepository provides access to persisted FBA orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	// AwaitingFulfillment returns open orders that are neither on hold nor
	// stopped, sorted by descending priority then ascending creation time.
	AwaitingFulfillment(ctx context.Context) ([]Order, error)
	// MaxPriority returns the highest priority value among open orders.
	MaxPriority(ctx context.Context) (int, error)
	// LatestFulfilledByASIN returns the most recently closed order for a
	// product ASIN.
	LatestFulfilledByASIN(ctx context.Context, asin string) (*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegionRepository provides access to FBA regions
type RegionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Region, error)
	FindByCountry(ctx context.Context, countryISO string) (*Region, error)
	FindActive(ctx context.Context) ([]Region, error)
	Save(ctx context.Context, region *Region) error
}

// FulfillmentCenterRepository provides access to fulfillment centers
type FulfillmentCenterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FulfillmentCenter, error)
	FindActive(ctx context.Context) ([]FulfillmentCenter, error)
	Save(ctx context.Context, center *FulfillmentCenter) error
}
