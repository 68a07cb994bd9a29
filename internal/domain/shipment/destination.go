package shipment

import (
	"github.com/stcadmin/backend/internal/domain/shared"
)

// Destination is a forwarder or recipient record shipments are sent to
type Destination struct {
	shared.BaseEntity
	Name             string
	RecipientName    string
	ContactTelephone string
	AddressLine1     string
	AddressLine2     string
	AddressLine3     string
	City             string
	State            string
	Country          string
	CountryISO       string
	Postcode         string
	IsEnabled        bool
}

// NewDestination creates an enabled shipment destination
func NewDestination(name, recipientName string) (*Destination, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Destination name cannot be empty")
	}
	if recipientName == "" {
		recipientName = "STC FBA"
	}
	return &Destination{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		RecipientName: recipientName,
		IsEnabled:     true,
	}, nil
}

// Disable marks the destination unavailable for new shipment orders.
// Destinations are never deleted; existing orders keep their reference.
func (d *Destination) Disable() {
	d.IsEnabled = false
	d.Touch()
}

// Method is a named carrier service accepted by the forwarder
type Method struct {
	shared.BaseEntity
	Name       string
	Identifier string
	Priority   int
	IsEnabled  bool
}

// NewMethod creates an enabled shipment method
func NewMethod(name, identifier string, priority int) (*Method, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Method name cannot be empty")
	}
	if identifier == "" {
		return nil, shared.NewDomainError("INVALID_IDENTIFIER", "Method identifier cannot be empty")
	}
	return &Method{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Identifier: identifier,
		Priority:   priority,
		IsEnabled:  true,
	}, nil
}
