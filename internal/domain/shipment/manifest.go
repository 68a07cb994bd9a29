package shipment

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Shipment file column headings, in emission order
const (
	colLastName        = "Recipient Last Name"
	colAddress1        = "Ship to Address 1"
	colAddress2        = "Ship to Address 2"
	colAddress3        = "Ship to Address 3"
	colCity            = "Ship to City"
	colState           = "Ship to State"
	colCountry         = "Ship to Country"
	colPostcode        = "Ship to Zip/Postcode"
	colOrderNumber     = "Order Number"
	colPackageNumber   = "Package Number"
	colLength          = "Package Length"
	colWidth           = "Package Width"
	colHeight          = "Package Height"
	colDescription     = "Package Item Description"
	colSKU             = "Package Item SKU"
	colWeight          = "Package Item Weight"
	colValue           = "Package Item Value"
	colQuantity        = "Package Item Quantity"
	colCountryOfOrigin = "Package Item Country of Origin"
	colHRCode          = "Package Item Harmonisation Code"
	colShipmentMethod  = "Order Shipment Method"
)

// ShipmentFileHeader is the fixed header row of the manifest shipment file
var ShipmentFileHeader = []string{
	colLastName,
	colAddress1,
	colAddress2,
	colAddress3,
	colCity,
	colState,
	colCountry,
	colPostcode,
	colOrderNumber,
	colPackageNumber,
	colLength,
	colWidth,
	colHeight,
	colDescription,
	colSKU,
	colWeight,
	colValue,
	colQuantity,
	colCountryOfOrigin,
	colHRCode,
	colShipmentMethod,
}

// AddressFileHeader is the fixed header row of the manifest address file
var AddressFileHeader = []string{
	"CompanyName",
	"Attention",
	"ShiptoAddress1",
	"ShiptoAddress3",
	"ShipCity",
	"ShiptoState",
	"ShiptoCountry",
	"ShiptoPostcode",
	"ShipToPhone",
	"NumberofPackag",
	"ActualWeight",
	"OrderNumber",
	"CurrencyCode",
}

// GenerateShipmentFile emits the manifest shipment file for an export:
// one row per (order, package, item) triple, orders by creation time
// ascending, packages by number ascending, items in insertion order.
func GenerateShipmentFile(export *Export) (string, error) {
	export.SortOrders()
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(ShipmentFileHeader); err != nil {
		return "", fmt.Errorf("writing shipment file header: %w", err)
	}
	for i := range export.Orders {
		order := &export.Orders[i]
		for j := range order.Packages {
			pkg := &order.Packages[j]
			for k := range pkg.Items {
				if err := writer.Write(shipmentFileRow(order, pkg, &pkg.Items[k])); err != nil {
					return "", fmt.Errorf("writing shipment file row: %w", err)
				}
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flushing shipment file: %w", err)
	}
	return buf.String(), nil
}

func shipmentFileRow(order *Order, pkg *Package, item *Item) []string {
	destination := order.Destination
	origin := item.CountryOfOrigin
	if origin == "" {
		origin = "GB"
	}
	return []string{
		destination.RecipientName,
		destination.AddressLine1,
		destination.AddressLine2,
		destination.AddressLine3,
		destination.City,
		destination.State,
		destination.Country,
		destination.Postcode,
		order.OrderNumber(),
		fmt.Sprintf("%s_%d", order.OrderNumber(), pkg.Number),
		strconv.Itoa(pkg.LengthCm),
		strconv.Itoa(pkg.WidthCm),
		strconv.Itoa(pkg.HeightCm),
		item.Description,
		item.SKU,
		item.WeightKg.String(),
		penceToPounds(item.ValuePence),
		strconv.Itoa(item.Quantity),
		origin,
		item.HRCode,
		order.Method.Identifier,
	}
}

// GenerateAddressFile emits the manifest address file: one row per
// shipment order with its destination fields and order number.
func GenerateAddressFile(export *Export) (string, error) {
	export.SortOrders()
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(AddressFileHeader); err != nil {
		return "", fmt.Errorf("writing address file header: %w", err)
	}
	for i := range export.Orders {
		order := &export.Orders[i]
		destination := order.Destination
		row := []string{
			destination.RecipientName,
			destination.AddressLine1,
			destination.AddressLine2,
			destination.AddressLine3,
			destination.City,
			destination.State,
			destination.Country,
			destination.Postcode,
			destination.ContactTelephone,
			strconv.Itoa(len(order.Packages)),
			order.WeightKg().String(),
			order.OrderNumber(),
			"GBP",
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("writing address file row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flushing address file: %w", err)
	}
	return buf.String(), nil
}

// penceToPounds renders integer pence as a plain decimal string with
// two decimal places, no thousand separator.
func penceToPounds(pence int64) string {
	return decimal.NewFromInt(pence).Div(decimal.NewFromInt(100)).StringFixed(2)
}
