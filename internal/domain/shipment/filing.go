package shipment

import (
	"time"

	"github.com/google/uuid"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// Filing state errors
var (
	ErrAlreadyFiled        = shared.NewDomainError("ALREADY_FILED", "Shipment order has already been filed with the carrier")
	ErrDestinationDisabled = shared.NewDomainError("DESTINATION_DISABLED", "Destination is disabled and cannot accept new shipment orders")
	ErrInvalidFilingState  = shared.NewDomainError("INVALID_FILING_STATE", "Filing record is in an inconsistent state")
)

// Carrier errors captured onto filings
var (
	ErrCarrierNetwork  = shared.NewDomainError("CARRIER_NETWORK", "Carrier API could not be reached")
	ErrCarrierRejected = shared.NewDomainError("CARRIER_REJECTED", "Carrier rejected the shipment request")
	ErrCarrierTimeout  = shared.NewDomainError("CARRIER_TIMEOUT", "Carrier API call timed out")
)

// NewFilingFailedError wraps a carrier failure, preserving the cause
func NewFilingFailedError(cause error) *shared.DomainError {
	return shared.WrapDomainError("FILING_FAILED", "Filing the shipment order with the carrier failed", cause)
}

// ParcelhubShipment is the authoritative record that the carrier accepted
// a shipment order. At most one exists per shipment order.
type ParcelhubShipment struct {
	shared.BaseEntity
	OrderID                 uuid.UUID
	ShipmentID              string
	CourierTrackingNumber   string
	ParcelhubTrackingNumber string
}

// NewParcelhubShipment records a carrier acceptance for a shipment order
func NewParcelhubShipment(orderID uuid.UUID, shipmentID, courierTracking, parcelhubTracking string) (*ParcelhubShipment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Shipment order ID cannot be empty")
	}
	if shipmentID == "" {
		return nil, shared.NewDomainError("INVALID_SHIPMENT_ID", "Carrier shipment ID cannot be empty")
	}
	return &ParcelhubShipment{
		BaseEntity:              shared.NewBaseEntity(),
		OrderID:                 orderID,
		ShipmentID:              shipmentID,
		CourierTrackingNumber:   courierTracking,
		ParcelhubTrackingNumber: parcelhubTracking,
	}, nil
}

// FilingStatus is the derived state of a filing attempt
type FilingStatus string

const (
	FilingInProgress FilingStatus = "IN_PROGRESS"
	FilingComplete   FilingStatus = "COMPLETE"
	FilingError      FilingStatus = "ERROR"
)

// Filing is the audit record for one attempt to register a shipment
// order with the carrier. Every attempt gets its own record, successful
// or not; retries are always new filings.
type Filing struct {
	shared.BaseEntity
	OrderID      uuid.UUID
	StartedAt    time.Time
	CompletedAt  *time.Time
	ErrorMessage string
	ShipmentID   *uuid.UUID // set on success, references ParcelhubShipment
}

// NewFiling opens a filing attempt for a shipment order
func NewFiling(orderID uuid.UUID) (*Filing, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Shipment order ID cannot be empty")
	}
	return &Filing{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		StartedAt:  time.Now(),
	}, nil
}

// Complete closes the filing successfully, linking the carrier shipment
func (f *Filing) Complete(shipmentID uuid.UUID) error {
	if f.CompletedAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Filing is already completed")
	}
	now := time.Now()
	f.CompletedAt = &now
	f.ShipmentID = &shipmentID
	f.Touch()
	return nil
}

// Fail closes the filing with the stringified cause
func (f *Filing) Fail(cause error) error {
	if f.CompletedAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Filing is already completed")
	}
	now := time.Now()
	f.CompletedAt = &now
	f.ErrorMessage = cause.Error()
	f.Touch()
	return nil
}

// Status derives the filing state. An error message always means ERROR;
// a completed filing with a shipment and no error is COMPLETE; an open
// filing is IN_PROGRESS. Any other combination is inconsistent.
func (f *Filing) Status() (FilingStatus, error) {
	switch {
	case f.ErrorMessage != "":
		return FilingError, nil
	case f.ShipmentID != nil && f.CompletedAt != nil:
		return FilingComplete, nil
	case f.CompletedAt == nil && f.ShipmentID == nil:
		return FilingInProgress, nil
	default:
		return "", ErrInvalidFilingState
	}
}
