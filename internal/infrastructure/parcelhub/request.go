package parcelhub

import (
	"time"

	"github.com/stcadmin/backend/internal/domain/shared/valueobject"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

const (
	addressTypeBusiness = "BUSINESS"
	packageTypePallet   = "PALLET"
	customsTermsUnapid  = "UNAPID"

	// The carrier truncates longer values server-side, with worse results
	maxDescriptionLength = 35
)

// ShipmentRequest is the carrier's create-shipment payload
type ShipmentRequest struct {
	Reference         string             `json:"reference"`
	Description       string             `json:"description"`
	Currency          string             `json:"currency"`
	Service           ServiceInfo        `json:"service"`
	Collection        CollectionDetails  `json:"collection"`
	CollectionAddress Address            `json:"collection_address"`
	DeliveryAddress   Address            `json:"delivery_address"`
	Customs           CustomsDeclaration `json:"customs_declaration"`
	Packages          []PackageRequest   `json:"packages"`
}

// ServiceInfo names the carrier service the shipment travels on
type ServiceInfo struct {
	ServiceID  string `json:"service_id"`
	CustomerID string `json:"customer_id"`
	ProviderID string `json:"provider_id"`
}

// CollectionDetails schedules the pickup window
type CollectionDetails struct {
	CollectionDate string `json:"collection_date"`
	ReadyTime      string `json:"ready_time"`
	CloseTime      string `json:"close_time"`
}

// Address is a collection or delivery address
type Address struct {
	ContactName string `json:"contact_name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	Area        string `json:"area"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	AddressType string `json:"address_type"`
	Email       string `json:"email"`
}

// CustomsDeclaration carries the customs terms for the whole shipment
type CustomsDeclaration struct {
	Terms               string `json:"terms"`
	PostalCharges       string `json:"postal_charges"`
	Category            string `json:"category"`
	CategoryExplanation string `json:"category_explanation"`
	Value               string `json:"value"`
	InsuranceValue      string `json:"insurance_value"`
	OtherValue          string `json:"other_value"`
}

// PackageRequest is one parcel in the shipment
type PackageRequest struct {
	PackageType string        `json:"package_type"`
	LengthCm    int           `json:"length"`
	WidthCm     int           `json:"width"`
	HeightCm    int           `json:"height"`
	Weight      string        `json:"weight"`
	Value       string        `json:"value"`
	Contents    string        `json:"contents"`
	Items       []ItemRequest `json:"items"`
}

// ItemRequest is one commodity line inside a package
type ItemRequest struct {
	SKU             string `json:"sku"`
	Description     string `json:"description"`
	ProductType     string `json:"product_type"`
	Value           string `json:"value"`
	Quantity        int    `json:"quantity"`
	Weight          string `json:"weight"`
	CountryOfOrigin string `json:"country_of_origin"`
	HRCode          string `json:"hr_code"`
}

// buildShipmentRequest turns an order's package tree into the carrier
// payload. All monetary values cross the boundary as "P.PP" strings.
func buildShipmentRequest(order *shipment.Order, cfg *shipment.ParcelhubConfig, now time.Time) *ShipmentRequest {
	request := &ShipmentRequest{
		Reference:   order.OrderNumber(),
		Description: "Goods",
		Currency:    "GBP",
		Service: ServiceInfo{
			ServiceID:  cfg.ServiceID,
			CustomerID: cfg.CustomerID,
			ProviderID: cfg.ProviderID,
		},
		Collection: CollectionDetails{
			CollectionDate: now.Format("2006-01-02"),
			ReadyTime:      cfg.ReadyTime,
			CloseTime:      cfg.CloseTime,
		},
		CollectionAddress: Address{
			ContactName: cfg.CollectionContactName,
			CompanyName: cfg.CollectionCompanyName,
			Phone:       cfg.CollectionPhone,
			Address1:    cfg.CollectionAddress1,
			Address2:    cfg.CollectionAddress2,
			City:        cfg.CollectionCity,
			Area:        cfg.CollectionArea,
			Postcode:    cfg.CollectionPostcode,
			Country:     cfg.CollectionCountry,
			AddressType: addressTypeBusiness,
			Email:       cfg.CollectionEmail,
		},
		DeliveryAddress: Address{
			ContactName: order.Destination.RecipientName,
			CompanyName: order.Destination.Name,
			Phone:       order.Destination.ContactTelephone,
			Address1:    order.Destination.AddressLine1,
			Address2:    order.Destination.AddressLine2,
			City:        order.Destination.City,
			Area:        order.Destination.State,
			Postcode:    order.Destination.Postcode,
			Country:     order.Destination.CountryISO,
			AddressType: addressTypeBusiness,
			Email:       cfg.CollectionEmail,
		},
		Customs: CustomsDeclaration{
			Terms:               customsTermsUnapid,
			PostalCharges:       "0.00",
			Category:            "Sold",
			CategoryExplanation: "",
			Value:               asCurrency(order.ValuePence()),
			InsuranceValue:      "0.00",
			OtherValue:          "0.00",
		},
	}

	for _, pkg := range order.Packages {
		requestPackage := PackageRequest{
			PackageType: packageTypePallet,
			LengthCm:    pkg.LengthCm,
			WidthCm:     pkg.WidthCm,
			HeightCm:    pkg.HeightCm,
			Weight:      pkg.WeightKg().Round(2).String(),
			Value:       asCurrency(pkg.ValuePence()),
			Contents:    "Goods",
		}
		for _, item := range pkg.Items {
			origin := item.CountryOfOrigin
			if origin == "" {
				origin = "GB"
			}
			requestPackage.Items = append(requestPackage.Items, ItemRequest{
				SKU:             item.SKU,
				Description:     truncate(item.Description, maxDescriptionLength),
				ProductType:     truncate(item.Description, maxDescriptionLength),
				Value:           asCurrency(item.ValuePence),
				Quantity:        item.Quantity,
				Weight:          item.WeightKg.Round(2).String(),
				CountryOfOrigin: origin,
				HRCode:          item.HRCode,
			})
		}
		request.Packages = append(request.Packages, requestPackage)
	}

	return request
}

// asCurrency renders integer pence as pounds and pence
func asCurrency(pence int64) string {
	return valueobject.NewMoneyGBP(pence).String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
