package shipment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/shared"
)

// Item is a commodity line inside a package
type Item struct {
	shared.BaseEntity
	PackageID       uuid.UUID
	SKU             string
	Description     string
	Quantity        int
	WeightKg        decimal.Decimal
	ValuePence      int64
	CountryOfOrigin string
	HRCode          string
}

// NewItem creates a shipment item
func NewItem(packageID uuid.UUID, sku, description string, quantity int, weightKg decimal.Decimal, valuePence int64, hrCode string) (*Item, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Item SKU cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}
	if valuePence < 0 {
		return nil, shared.NewDomainError("INVALID_VALUE", "Item value cannot be negative")
	}
	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		PackageID:   packageID,
		SKU:         sku,
		Description: description,
		Quantity:    quantity,
		WeightKg:    weightKg,
		ValuePence:  valuePence,
		HRCode:      hrCode,
	}, nil
}

// Package is a physical parcel belonging to one shipment order
type Package struct {
	shared.BaseEntity
	OrderID  uuid.UUID
	Number   int // sequence within the order, starting at 1
	LengthCm int
	WidthCm  int
	HeightCm int
	Items    []Item
}

// WeightKg returns the total weight of the package's items
func (p *Package) WeightKg() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.WeightKg)
	}
	return total
}

// ValuePence returns the total value of the package's items in pence
func (p *Package) ValuePence() int64 {
	var total int64
	for _, item := range p.Items {
		total += item.ValuePence
	}
	return total
}

// AddItem appends an item to the package
func (p *Package) AddItem(sku, description string, quantity int, weightKg decimal.Decimal, valuePence int64, hrCode string) (*Item, error) {
	item, err := NewItem(p.ID, sku, description, quantity, weightKg, valuePence, hrCode)
	if err != nil {
		return nil, err
	}
	p.Items = append(p.Items, *item)
	p.Touch()
	return &p.Items[len(p.Items)-1], nil
}

// Order is one manifest line: a group of packages sent to one
// destination via one shipment method
type Order struct {
	shared.BaseEntity
	Sequence      int // source of the stable order number
	Destination   *Destination
	DestinationID uuid.UUID
	Method        *Method
	MethodID      uuid.UUID
	UserID        *uuid.UUID
	ExportID      *uuid.UUID
	IsOnHold      bool
	Packages      []Package
}

// NewOrder creates an open shipment order bound to an enabled destination
func NewOrder(sequence int, destination *Destination, method *Method, userID uuid.UUID) (*Order, error) {
	if destination == nil {
		return nil, shared.NewDomainError("INVALID_DESTINATION", "Destination is required")
	}
	if !destination.IsEnabled {
		return nil, ErrDestinationDisabled
	}
	if method == nil {
		return nil, shared.NewDomainError("INVALID_METHOD", "Shipment method is required")
	}
	order := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		Sequence:      sequence,
		Destination:   destination,
		DestinationID: destination.ID,
		Method:        method,
		MethodID:      method.ID,
	}
	if userID != uuid.Nil {
		order.UserID = &userID
	}
	return order, nil
}

// OrderNumber returns the stable generated order number
func (o *Order) OrderNumber() string {
	return fmt.Sprintf("STC_FBA_%05d", o.Sequence)
}

// IsExported reports whether the order has been sealed into an export
func (o *Order) IsExported() bool {
	return o.ExportID != nil
}

// IsShippable reports whether the order is ready to be exported
func (o *Order) IsShippable() bool {
	return !o.IsExported() && !o.IsOnHold && len(o.Packages) > 0
}

// AddPackage creates the next package in the order's sequence
func (o *Order) AddPackage(lengthCm, widthCm, heightCm int) (*Package, error) {
	if o.IsExported() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add packages to an exported shipment order")
	}
	if lengthCm <= 0 || widthCm <= 0 || heightCm <= 0 {
		return nil, shared.NewDomainError("INVALID_DIMENSIONS", "Package dimensions must be positive")
	}
	pkg := &Package{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		Number:     len(o.Packages) + 1,
		LengthCm:   lengthCm,
		WidthCm:    widthCm,
		HeightCm:   heightCm,
	}
	o.Packages = append(o.Packages, *pkg)
	o.Touch()
	return &o.Packages[len(o.Packages)-1], nil
}

// ToggleHold flips the hold flag while the order is open
func (o *Order) ToggleHold() error {
	if o.IsExported() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change hold state of an exported shipment order")
	}
	o.IsOnHold = !o.IsOnHold
	o.Touch()
	return nil
}

// AttachExport seals the order into an export. The transition is
// irreversible and freezes the order's contents.
func (o *Order) AttachExport(exportID uuid.UUID) error {
	if o.IsExported() {
		return shared.NewDomainError("INVALID_STATE", "Shipment order is already exported")
	}
	if o.IsOnHold {
		return shared.NewDomainError("INVALID_STATE", "Cannot export a shipment order that is on hold")
	}
	if len(o.Packages) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot export a shipment order without packages")
	}
	o.ExportID = &exportID
	o.Touch()
	return nil
}

// WeightKg returns the total weight of the shipment
func (o *Order) WeightKg() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Packages {
		total = total.Add(o.Packages[i].WeightKg())
	}
	return total
}

// ValuePence returns the total value of the shipment in pence
func (o *Order) ValuePence() int64 {
	var total int64
	for i := range o.Packages {
		total += o.Packages[i].ValuePence()
	}
	return total
}

// ItemCount returns the total quantity of items in the shipment
func (o *Order) ItemCount() int {
	count := 0
	for i := range o.Packages {
		for _, item := range o.Packages[i].Items {
			count += item.Quantity
		}
	}
	return count
}

// Description summarises the shipment's contents for operator listings
func (o *Order) Description() string {
	return describeContents(o.itemDescriptions(), 30)
}

func (o *Order) itemDescriptions() []string {
	var descriptions []string
	for i := range o.Packages {
		for _, item := range o.Packages[i].Items {
			descriptions = append(descriptions, item.Description)
		}
	}
	return descriptions
}

// describeContents returns the first distinct description, shortened,
// with a count of any remaining distinct descriptions.
func describeContents(descriptions []string, maxLength int) string {
	seen := make(map[string]bool)
	var distinct []string
	for _, desc := range descriptions {
		if !seen[desc] {
			seen[desc] = true
			distinct = append(distinct, desc)
		}
	}
	if len(distinct) == 0 {
		return ""
	}
	text := shortenDescription(distinct[0], maxLength)
	if len(distinct) > 1 {
		return fmt.Sprintf("%s + %d other items", text, len(distinct)-1)
	}
	return text
}

func shortenDescription(desc string, maxLength int) string {
	if len(desc) > maxLength {
		return desc[:maxLength] + "..."
	}
	return desc
}

// Export seals a batch of shipment orders into a downloadable manifest
type Export struct {
	shared.BaseEntity
	Orders []Order
}

// NewExport creates a shipment export
func NewExport() *Export {
	return &Export{BaseEntity: shared.NewBaseEntity()}
}

// ShipmentFileName returns the dated manifest file name
func (e *Export) ShipmentFileName() string {
	return fmt.Sprintf("FBA_Shipment_File_%s.csv", e.CreatedAt.Format("2006-01-02"))
}

// AddressFileName returns the address file name
func (e *Export) AddressFileName() string {
	return "FBA_Shipment_ADDRESS.csv"
}

// OrderNumbers returns the order numbers of the contained shipments
func (e *Export) OrderNumbers() string {
	numbers := make([]string, len(e.Orders))
	for i := range e.Orders {
		numbers[i] = e.Orders[i].OrderNumber()
	}
	return strings.Join(numbers, "\n")
}

// Destinations returns the destination names of the contained shipments
func (e *Export) Destinations() string {
	names := make([]string, len(e.Orders))
	for i := range e.Orders {
		if e.Orders[i].Destination != nil {
			names[i] = e.Orders[i].Destination.Name
		}
	}
	return strings.Join(names, "\n")
}

// ShipmentCount returns the number of shipments in the export
func (e *Export) ShipmentCount() int {
	return len(e.Orders)
}

// PackageCount returns the number of packages in the export
func (e *Export) PackageCount() int {
	count := 0
	for i := range e.Orders {
		count += len(e.Orders[i].Packages)
	}
	return count
}

// SortOrders orders the export's contents for manifest traversal:
// creation time ascending, ties broken by sequence.
func (e *Export) SortOrders() {
	sort.Slice(e.Orders, func(i, j int) bool {
		a, b := &e.Orders[i], &e.Orders[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.Sequence < b.Sequence
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
