package shipment

import (
	"time"

	"github.com/stcadmin/backend/internal/domain/shipment"
)

// CreateOrderRequest represents a request to open a shipment order
type CreateOrderRequest struct {
	DestinationID string              `json:"destination_id" binding:"required,uuid"`
	MethodID      string              `json:"method_id" binding:"required,uuid"`
	Packages      []NewPackageRequest `json:"packages" binding:"dive"`
}

// NewPackageRequest describes one package to add to a shipment order
type NewPackageRequest struct {
	LengthCm int              `json:"length_cm" binding:"required,min=1"`
	WidthCm  int              `json:"width_cm" binding:"required,min=1"`
	HeightCm int              `json:"height_cm" binding:"required,min=1"`
	Items    []NewItemRequest `json:"items" binding:"dive"`
}

// NewItemRequest describes one commodity line inside a package
type NewItemRequest struct {
	SKU             string `json:"sku" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	WeightKg        string `json:"weight_kg" binding:"required"`
	ValuePence      int64  `json:"value_pence" binding:"min=0"`
	CountryOfOrigin string `json:"country_of_origin"`
	HRCode          string `json:"hr_code"`
}

// OrderResponse represents a shipment order
type OrderResponse struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	Destination  string    `json:"destination"`
	Method       string    `json:"method"`
	Description  string    `json:"description"`
	PackageCount int       `json:"package_count"`
	ItemCount    int       `json:"item_count"`
	WeightKg     string    `json:"weight_kg"`
	ValuePence   int64     `json:"value_pence"`
	IsOnHold     bool      `json:"is_on_hold"`
	IsExported   bool      `json:"is_exported"`
	CreatedAt    time.Time `json:"created_at"`
}

// DestinationResponse represents a shipment destination
type DestinationResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RecipientName string `json:"recipient_name"`
	AddressLine1  string `json:"address_line_1"`
	AddressLine2  string `json:"address_line_2,omitempty"`
	City          string `json:"city"`
	Country       string `json:"country"`
	CountryISO    string `json:"country_iso"`
	Postcode      string `json:"postcode"`
	IsEnabled     bool   `json:"is_enabled"`
}

// MethodResponse represents a shipment method
type MethodResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Priority   int    `json:"priority"`
	IsEnabled  bool   `json:"is_enabled"`
}

// ExportResponse represents a sealed shipment export
type ExportResponse struct {
	ID            string    `json:"id"`
	ShipmentCount int       `json:"shipment_count"`
	PackageCount  int       `json:"package_count"`
	OrderNumbers  string    `json:"order_numbers"`
	Destinations  string    `json:"destinations"`
	CreatedAt     time.Time `json:"created_at"`
}

// FilingResponse represents one filing attempt for a shipment order
type FilingResponse struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"order_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// ShipmentRecordResponse represents the carrier's acceptance record
type ShipmentRecordResponse struct {
	OrderID                 string `json:"order_id"`
	ShipmentID              string `json:"shipment_id"`
	CourierTrackingNumber   string `json:"courier_tracking_number"`
	ParcelhubTrackingNumber string `json:"parcelhub_tracking_number"`
}

func toOrderResponse(order *shipment.Order) OrderResponse {
	resp := OrderResponse{
		ID:           order.ID.String(),
		OrderNumber:  order.OrderNumber(),
		Description:  order.Description(),
		PackageCount: len(order.Packages),
		ItemCount:    order.ItemCount(),
		WeightKg:     order.WeightKg().String(),
		ValuePence:   order.ValuePence(),
		IsOnHold:     order.IsOnHold,
		IsExported:   order.IsExported(),
		CreatedAt:    order.CreatedAt,
	}
	if order.Destination != nil {
		resp.Destination = order.Destination.Name
	}
	if order.Method != nil {
		resp.Method = order.Method.Name
	}
	return resp
}

func toDestinationResponse(destination *shipment.Destination) DestinationResponse {
	return DestinationResponse{
		ID:            destination.ID.String(),
		Name:          destination.Name,
		RecipientName: destination.RecipientName,
		AddressLine1:  destination.AddressLine1,
		AddressLine2:  destination.AddressLine2,
		City:          destination.City,
		Country:       destination.Country,
		CountryISO:    destination.CountryISO,
		Postcode:      destination.Postcode,
		IsEnabled:     destination.IsEnabled,
	}
}

func toMethodResponse(method *shipment.Method) MethodResponse {
	return MethodResponse{
		ID:         method.ID.String(),
		Name:       method.Name,
		Identifier: method.Identifier,
		Priority:   method.Priority,
		IsEnabled:  method.IsEnabled,
	}
}

func toExportResponse(export *shipment.Export) ExportResponse {
	return ExportResponse{
		ID:            export.ID.String(),
		ShipmentCount: export.ShipmentCount(),
		PackageCount:  export.PackageCount(),
		OrderNumbers:  export.OrderNumbers(),
		Destinations:  export.Destinations(),
		CreatedAt:     export.CreatedAt,
	}
}

func toFilingResponse(filing *shipment.Filing) FilingResponse {
	resp := FilingResponse{
		ID:           filing.ID.String(),
		OrderID:      filing.OrderID.String(),
		StartedAt:    filing.StartedAt,
		CompletedAt:  filing.CompletedAt,
		ErrorMessage: filing.ErrorMessage,
	}
	if status, err := filing.Status(); err == nil {
		resp.Status = string(status)
	} else {
		resp.Status = "INVALID"
	}
	return resp
}
