package shipment

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository provides access to shipment orders and their package
// trees. Find methods load the full order graph including destination
// and method references.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindOpen returns unexported orders, optionally filtered by hold state.
	FindOpen(ctx context.Context, onHold bool) ([]Order, error)
	// NextSequence reserves the next order number sequence value.
	NextSequence(ctx context.Context) (int, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DestinationRepository provides access to shipment destinations
type DestinationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Destination, error)
	FindEnabled(ctx context.Context) ([]Destination, error)
	Save(ctx context.Context, destination *Destination) error
}

// MethodRepository provides access to shipment methods
type MethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Method, error)
	FindEnabled(ctx context.Context) ([]Method, error)
	Save(ctx context.Context, method *Method) error
}

// ExportRepository provides access to shipment exports
type ExportRepository interface {
	// FindByID loads an export with its orders and their package trees.
	FindByID(ctx context.Context, id uuid.UUID) (*Export, error)
	FindRecent(ctx context.Context, limit int) ([]Export, error)
	Save(ctx context.Context, export *Export) error
}

// FilingRepository provides access to carrier shipments and the filing
// audit log. SaveShipment must enforce uniqueness of ParcelhubShipment
// per shipment order at the persistence level.
type FilingRepository interface {
	FindShipmentByOrder(ctx context.Context, orderID uuid.UUID) (*ParcelhubShipment, error)
	// SaveShipment persists a carrier shipment. It returns
	// shared.ErrAlreadyExists when a shipment for the same order has
	// already been committed.
	SaveShipment(ctx context.Context, s *ParcelhubShipment) error
	FindFilingsByOrder(ctx context.Context, orderID uuid.UUID) ([]Filing, error)
	SaveFiling(ctx context.Context, filing *Filing) error
}

// ConfigRepository provides access to the singleton configuration rows
type ConfigRepository interface {
	GetConfig(ctx context.Context) (*Config, error)
	GetParcelhubConfig(ctx context.Context) (*ParcelhubConfig, error)
	SaveParcelhubConfig(ctx context.Context, cfg *ParcelhubConfig) error
}
