package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/fba"
)

// RegionModel is the persistence model for the FBA Region entity.
type RegionModel struct {
	BaseModel
	Name              string           `gorm:"type:varchar(100);not null;uniqueIndex"`
	Position          int              `gorm:"not null;default:0"`
	PlacementFee      int64            `gorm:"not null;default:0"`
	PostagePrice      *int64           `gorm:""`
	PostagePerKg      int64            `gorm:"not null;default:0"`
	PostageOverheadG  int64            `gorm:"not null;default:0"`
	MinShippingCost   int64            `gorm:"not null;default:0"`
	MaxWeight         *int             `gorm:""`
	MaxSize           *decimal.Decimal `gorm:"type:decimal(10,2)"`
	FulfillmentUnit   string           `gorm:"type:varchar(10);not null;default:'metric'"`
	AutoClose         bool             `gorm:"not null;default:false"`
	WarehouseRequired bool             `gorm:"not null;default:false"`
	CountryISO        string           `gorm:"type:varchar(2)"`
	Active            bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "fba_regions"
}

// ToDomain converts the persistence model to a domain Region entity.
func (m *RegionModel) ToDomain() *fba.Region {
	return &fba.Region{
		BaseEntity:        m.BaseModel.ToDomain(),
		Name:              m.Name,
		Position:          m.Position,
		PlacementFee:      m.PlacementFee,
		PostagePrice:      m.PostagePrice,
		PostagePerKg:      m.PostagePerKg,
		PostageOverheadG:  m.PostageOverheadG,
		MinShippingCost:   m.MinShippingCost,
		MaxWeight:         m.MaxWeight,
		MaxSize:           m.MaxSize,
		FulfillmentUnit:   fba.FulfillmentUnit(m.FulfillmentUnit),
		AutoClose:         m.AutoClose,
		WarehouseRequired: m.WarehouseRequired,
		CountryISO:        m.CountryISO,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Region entity.
func (m *RegionModel) FromDomain(r *fba.Region) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.Position = r.Position
	m.PlacementFee = r.PlacementFee
	m.PostagePrice = r.PostagePrice
	m.PostagePerKg = r.PostagePerKg
	m.PostageOverheadG = r.PostageOverheadG
	m.MinShippingCost = r.MinShippingCost
	m.MaxWeight = r.MaxWeight
	m.MaxSize = r.MaxSize
	m.FulfillmentUnit = string(r.FulfillmentUnit)
	m.AutoClose = r.AutoClose
	m.WarehouseRequired = r.WarehouseRequired
	m.CountryISO = r.CountryISO
	m.Active = r.Active
}

// FulfillmentCenterModel is the persistence model for FBA fulfillment centers.
type FulfillmentCenterModel struct {
	BaseModel
	Name         string    `gorm:"type:varchar(100);not null"`
	AddressLine1 string    `gorm:"type:varchar(255)"`
	AddressLine2 string    `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(100)"`
	Postcode     string    `gorm:"type:varchar(20)"`
	Inactive     bool      `gorm:"not null;default:false"`
	RegionID     uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (FulfillmentCenterModel) TableName() string {
	return "fba_fulfillment_centers"
}

// ToDomain converts the persistence model to a domain FulfillmentCenter.
func (m *FulfillmentCenterModel) ToDomain() *fba.FulfillmentCenter {
	return &fba.FulfillmentCenter{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		Postcode:     m.Postcode,
		Inactive:     m.Inactive,
		RegionID:     m.RegionID,
	}
}

// FromDomain populates the persistence model from a domain FulfillmentCenter.
func (m *FulfillmentCenterModel) FromDomain(c *fba.FulfillmentCenter) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.AddressLine1 = c.AddressLine1
	m.AddressLine2 = c.AddressLine2
	m.City = c.City
	m.Postcode = c.Postcode
	m.Inactive = c.Inactive
	m.RegionID = c.RegionID
}

// FBAOrderModel is the persistence model for the FBA Order entity.
type FBAOrderModel struct {
	BaseModel
	RegionID             uuid.UUID        `gorm:"type:uuid;not null;index"`
	FulfillmentCenterID  *uuid.UUID       `gorm:"type:uuid;index"`
	FulfilledBy          *uuid.UUID       `gorm:"type:uuid"`
	ClosedAt             *time.Time       `gorm:"index"`
	ProductSKU           string           `gorm:"type:varchar(100);not null;index"`
	ProductName          string           `gorm:"type:varchar(255);not null"`
	ProductWeightGrams   int64            `gorm:"not null;default:0"`
	ProductHSCode        string           `gorm:"type:varchar(50)"`
	ProductASIN          string           `gorm:"type:varchar(20)"`
	ProductPurchasePrice int64            `gorm:"not null;default:0"`
	SellingPrice         int64            `gorm:"not null;default:0"`
	FBAFee               int64            `gorm:"not null;default:0"`
	ApproximateQuantity  int              `gorm:"not null;default:0"`
	QuantitySent         *int             `gorm:""`
	BoxWeightKg          *decimal.Decimal `gorm:"type:decimal(10,3)"`
	TrackingNumber       string           `gorm:"type:varchar(100)"`
	Notes                string           `gorm:"type:text"`
	PriorityTemp         int              `gorm:"not null;default:0;index"`
	Printed              bool             `gorm:"not null;default:false"`
	SmallAndLight        bool             `gorm:"not null;default:false"`
	OnHold               bool             `gorm:"not null;default:false"`
	IsCombinable         bool             `gorm:"not null;default:false"`
	IsFragile            bool             `gorm:"not null;default:false"`
	IsStopped            bool             `gorm:"not null;default:false"`
	StoppedReason        string           `gorm:"type:text"`
	StoppedAt            *time.Time       `gorm:""`
	StoppedUntil         *time.Time       `gorm:""`
}

// TableName returns the table name for GORM
func (FBAOrderModel) TableName() string {
	return "fba_orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *FBAOrderModel) ToDomain() *fba.Order {
	return &fba.Order{
		BaseEntity:           m.BaseModel.ToDomain(),
		RegionID:             m.RegionID,
		FulfillmentCenterID:  m.FulfillmentCenterID,
		FulfilledBy:          m.FulfilledBy,
		ClosedAt:             m.ClosedAt,
		ProductSKU:           m.ProductSKU,
		ProductName:          m.ProductName,
		ProductWeightGrams:   m.ProductWeightGrams,
		ProductHSCode:        m.ProductHSCode,
		ProductASIN:          m.ProductASIN,
		ProductPurchasePrice: m.ProductPurchasePrice,
		SellingPrice:         m.SellingPrice,
		FBAFee:               m.FBAFee,
		ApproximateQuantity:  m.ApproximateQuantity,
		QuantitySent:         m.QuantitySent,
		BoxWeightKg:          m.BoxWeightKg,
		TrackingNumber:       m.TrackingNumber,
		Notes:                m.Notes,
		PriorityTemp:         m.PriorityTemp,
		Printed:              m.Printed,
		SmallAndLight:        m.SmallAndLight,
		OnHold:               m.OnHold,
		IsCombinable:         m.IsCombinable,
		IsFragile:            m.IsFragile,
		IsStopped:            m.IsStopped,
		StoppedReason:        m.StoppedReason,
		StoppedAt:            m.StoppedAt,
		StoppedUntil:         m.StoppedUntil,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *FBAOrderModel) FromDomain(o *fba.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.RegionID = o.RegionID
	m.FulfillmentCenterID = o.FulfillmentCenterID
	m.FulfilledBy = o.FulfilledBy
	m.ClosedAt = o.ClosedAt
	m.ProductSKU = o.ProductSKU
	m.ProductName = o.ProductName
	m.ProductWeightGrams = o.ProductWeightGrams
	m.ProductHSCode = o.ProductHSCode
	m.ProductASIN = o.ProductASIN
	m.ProductPurchasePrice = o.ProductPurchasePrice
	m.SellingPrice = o.SellingPrice
	m.FBAFee = o.FBAFee
	m.ApproximateQuantity = o.ApproximateQuantity
	m.QuantitySent = o.QuantitySent
	m.BoxWeightKg = o.BoxWeightKg
	m.TrackingNumber = o.TrackingNumber
	m.Notes = o.Notes
	m.PriorityTemp = o.PriorityTemp
	m.Printed = o.Printed
	m.SmallAndLight = o.SmallAndLight
	m.OnHold = o.OnHold
	m.IsCombinable = o.IsCombinable
	m.IsFragile = o.IsFragile
	m.IsStopped = o.IsStopped
	m.StoppedReason = o.StoppedReason
	m.StoppedAt = o.StoppedAt
	m.StoppedUntil = o.StoppedUntil
}

// FBAOrderModelFromDomain creates a new persistence model from a domain Order.
func FBAOrderModelFromDomain(o *fba.Order) *FBAOrderModel {
	m := &FBAOrderModel{}
	m.FromDomain(o)
	return m
}

// FBAProfitModel is the persistence model for FBA profit snapshots.
type FBAProfitModel struct {
	BaseModel
	ImportDate    time.Time `gorm:"not null;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RegionID      uuid.UUID `gorm:"type:uuid;not null"`
	ChannelSKU    string    `gorm:"type:varchar(100);not null"`
	ProductASIN   string    `gorm:"type:varchar(20);not null;index"`
	ListingName   string    `gorm:"type:varchar(255)"`
	SalePrice     int64     `gorm:"not null;default:0"`
	ReferralFee   int64     `gorm:"not null;default:0"`
	ClosingFee    int64     `gorm:"not null;default:0"`
	HandlingFee   int64     `gorm:"not null;default:0"`
	PlacementFee  int64     `gorm:"not null;default:0"`
	PurchasePrice int64     `gorm:"not null;default:0"`
	ShippingPrice int64     `gorm:"not null;default:0"`
	Profit        int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FBAProfitModel) TableName() string {
	return "fba_profits"
}

// ToDomain converts the persistence model to a domain ProfitSnapshot.
func (m *FBAProfitModel) ToDomain() *fba.ProfitSnapshot {
	return &fba.ProfitSnapshot{
		BaseEntity:    m.BaseModel.ToDomain(),
		ImportDate:    m.ImportDate,
		OrderID:       m.OrderID,
		RegionID:      m.RegionID,
		ChannelSKU:    m.ChannelSKU,
		ASIN:          m.ProductASIN,
		ListingName:   m.ListingName,
		SalePrice:     m.SalePrice,
		ReferralFee:   m.ReferralFee,
		ClosingFee:    m.ClosingFee,
		HandlingFee:   m.HandlingFee,
		PlacementFee:  m.PlacementFee,
		PurchasePrice: m.PurchasePrice,
		ShippingPrice: m.ShippingPrice,
		Profit:        m.Profit,
	}
}

// FromDomain populates the persistence model from a domain ProfitSnapshot.
func (m *FBAProfitModel) FromDomain(p *fba.ProfitSnapshot) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ImportDate = p.ImportDate
	m.OrderID = p.OrderID
	m.RegionID = p.RegionID
	m.ChannelSKU = p.ChannelSKU
	m.ProductASIN = p.ASIN
	m.ListingName = p.ListingName
	m.SalePrice = p.SalePrice
	m.ReferralFee = p.ReferralFee
	m.ClosingFee = p.ClosingFee
	m.HandlingFee = p.HandlingFee
	m.PlacementFee = p.PlacementFee
	m.PurchasePrice = p.PurchasePrice
	m.ShippingPrice = p.ShippingPrice
	m.Profit = p.Profit
}
