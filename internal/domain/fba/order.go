package fba

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// OrderStatus describes the observable state of an FBA order
type OrderStatus string

const (
	StatusFulfilled    OrderStatus = "Fulfilled"
	StatusStopped      OrderStatus = "Stopped"
	StatusOnHold       OrderStatus = "On Hold"
	StatusReady        OrderStatus = "Ready"
	StatusPrinted      OrderStatus = "Printed"
	StatusNotProcessed OrderStatus = "Not Processed"
)

// Order is one unit of FBA fulfillment work
type Order struct {
	shared.BaseEntity
	RegionID             uuid.UUID
	FulfillmentCenterID  *uuid.UUID
	FulfilledBy          *uuid.UUID
	ClosedAt             *time.Time
	ProductSKU           string
	ProductName          string
	ProductWeightGrams   int64
	ProductHSCode        string
	ProductASIN          string
	ProductPurchasePrice int64 // pence, snapshot at creation
	SellingPrice         int64 // pence
	FBAFee               int64 // pence
	ApproximateQuantity  int
	QuantitySent         *int
	BoxWeightKg          *decimal.Decimal
	TrackingNumber       string
	Notes                string
	PriorityTemp         int
	Printed              bool
	SmallAndLight        bool
	OnHold               bool
	IsCombinable         bool
	IsFragile            bool
	IsStopped            bool
	StoppedReason        string
	StoppedAt            *time.Time
	StoppedUntil         *time.Time
}

// NewOrderInput carries the product snapshot recorded with a new order
type NewOrderInput struct {
	RegionID             uuid.UUID
	ProductSKU           string
	ProductName          string
	ProductWeightGrams   int64
	ProductHSCode        string
	ProductASIN          string
	ProductPurchasePrice int64
	SellingPrice         int64
	FBAFee               int64
	ApproximateQuantity  int
}

// NewOrder creates a new FBA order from a fulfillment request
func NewOrder(input NewOrderInput) (*Order, error) {
	if input.RegionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}
	if input.ProductSKU == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if input.ApproximateQuantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &Order{
		BaseEntity:           shared.NewBaseEntity(),
		RegionID:             input.RegionID,
		ProductSKU:           input.ProductSKU,
		ProductName:          input.ProductName,
		ProductWeightGrams:   input.ProductWeightGrams,
		ProductHSCode:        input.ProductHSCode,
		ProductASIN:          input.ProductASIN,
		ProductPurchasePrice: input.ProductPurchasePrice,
		SellingPrice:         input.SellingPrice,
		FBAFee:               input.FBAFee,
		ApproximateQuantity:  input.ApproximateQuantity,
	}, nil
}

// Status returns the order's observable status. Fulfilled subsumes the
// other states; stopped and on-hold are checked before fulfillment
// progress.
func (o *Order) Status() OrderStatus {
	switch {
	case o.ClosedAt != nil:
		return StatusFulfilled
	case o.IsStopped:
		return StatusStopped
	case o.OnHold:
		return StatusOnHold
	case o.DetailsComplete():
		return StatusReady
	case o.Printed:
		return StatusPrinted
	default:
		return StatusNotProcessed
	}
}

// IsClosed reports whether the order has been closed
func (o *Order) IsClosed() bool {
	return o.ClosedAt != nil
}

// DetailsComplete reports whether the fields required to complete the
// order are filled
func (o *Order) DetailsComplete() bool {
	return o.BoxWeightKg != nil && o.QuantitySent != nil
}

// MarkPrinted records that the order's fulfillment sheet has been printed
func (o *Order) MarkPrinted() error {
	if o.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot mark a closed order as printed")
	}
	if o.Printed {
		return shared.NewDomainError("INVALID_STATE", "Order is already marked as printed")
	}
	o.Printed = true
	o.Touch()
	return nil
}

// UnmarkPrinted reverts the printed mark
func (o *Order) UnmarkPrinted() {
	o.Printed = false
	o.Touch()
}

// Hold places the order on hold, blocking it from export
func (o *Order) Hold() error {
	if o.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot hold a closed order")
	}
	o.OnHold = true
	o.Touch()
	return nil
}

// TakeOffHold clears the on-hold flag
func (o *Order) TakeOffHold() {
	o.OnHold = false
	o.Touch()
}

// Stop stops the order, blocking it from export until unstopped
func (o *Order) Stop(reason string, until *time.Time) error {
	if o.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot stop a closed order")
	}
	now := time.Now()
	o.IsStopped = true
	o.StoppedReason = reason
	o.StoppedAt = &now
	o.StoppedUntil = until
	o.Touch()
	return nil
}

// Unstop clears the stopped flag
func (o *Order) Unstop() {
	o.IsStopped = false
	o.StoppedReason = ""
	o.StoppedAt = nil
	o.StoppedUntil = nil
	o.Touch()
}

// SetFulfillmentDetails records the packed weight and quantity sent
func (o *Order) SetFulfillmentDetails(boxWeightKg decimal.Decimal, quantitySent int) error {
	if o.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a closed order")
	}
	if quantitySent < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity sent cannot be negative")
	}
	if boxWeightKg.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Box weight cannot be negative")
	}
	o.BoxWeightKg = &boxWeightKg
	o.QuantitySent = &quantitySent
	o.Touch()
	return nil
}

// Close marks the order fulfilled. Hold and stop flags are cleared and
// the priority bump is discarded.
func (o *Order) Close(fulfilledBy uuid.UUID) error {
	if o.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Order is already closed")
	}
	now := time.Now()
	o.ClosedAt = &now
	o.OnHold = false
	o.IsStopped = false
	o.PriorityTemp = 0
	if fulfilledBy != uuid.Nil {
		o.FulfilledBy = &fulfilledBy
	}
	o.Touch()
	return nil
}

// SetPriority assigns the queue sort key. Higher values sort earlier.
func (o *Order) SetPriority(priority int) {
	o.PriorityTemp = priority
	o.Touch()
}

// IsPrioritised reports whether the order has been moved up the queue
func (o *Order) IsPrioritised() bool {
	return o.PriorityTemp > 0
}
