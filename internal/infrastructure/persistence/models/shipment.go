package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/shipment"
)

// DestinationModel is the persistence model for shipment destinations.
type DestinationModel struct {
	BaseModel
	Name             string `gorm:"type:varchar(100);not null;uniqueIndex"`
	RecipientName    string `gorm:"type:varchar(100);not null"`
	ContactTelephone string `gorm:"type:varchar(50)"`
	AddressLine1     string `gorm:"type:varchar(255)"`
	AddressLine2     string `gorm:"type:varchar(255)"`
	AddressLine3     string `gorm:"type:varchar(255)"`
	City             string `gorm:"type:varchar(100)"`
	State            string `gorm:"type:varchar(100)"`
	Country          string `gorm:"type:varchar(100)"`
	CountryISO       string `gorm:"type:varchar(2)"`
	Postcode         string `gorm:"type:varchar(20)"`
	IsEnabled        bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DestinationModel) TableName() string {
	return "shipment_destinations"
}

// ToDomain converts the persistence model to a domain Destination.
func (m *DestinationModel) ToDomain() *shipment.Destination {
	return &shipment.Destination{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		RecipientName:    m.RecipientName,
		ContactTelephone: m.ContactTelephone,
		AddressLine1:     m.AddressLine1,
		AddressLine2:     m.AddressLine2,
		AddressLine3:     m.AddressLine3,
		City:             m.City,
		State:            m.State,
		Country:          m.Country,
		CountryISO:       m.CountryISO,
		Postcode:         m.Postcode,
		IsEnabled:        m.IsEnabled,
	}
}

// FromDomain populates the persistence model from a domain Destination.
func (m *DestinationModel) FromDomain(d *shipment.Destination) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Name = d.Name
	m.RecipientName = d.RecipientName
	m.ContactTelephone = d.ContactTelephone
	m.AddressLine1 = d.AddressLine1
	m.AddressLine2 = d.AddressLine2
	m.AddressLine3 = d.AddressLine3
	m.City = d.City
	m.State = d.State
	m.Country = d.Country
	m.CountryISO = d.CountryISO
	m.Postcode = d.Postcode
	m.IsEnabled = d.IsEnabled
}

// MethodModel is the persistence model for shipment methods.
type MethodModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(100);not null"`
	Identifier string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Priority   int    `gorm:"not null;default:0"`
	IsEnabled  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MethodModel) TableName() string {
	return "shipment_methods"
}

// ToDomain converts the persistence model to a domain Method.
func (m *MethodModel) ToDomain() *shipment.Method {
	return &shipment.Method{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Identifier: m.Identifier,
		Priority:   m.Priority,
		IsEnabled:  m.IsEnabled,
	}
}

// FromDomain populates the persistence model from a domain Method.
func (m *MethodModel) FromDomain(method *shipment.Method) {
	m.FromDomainBaseEntity(method.BaseEntity)
	m.Name = method.Name
	m.Identifier = method.Identifier
	m.Priority = method.Priority
	m.IsEnabled = method.IsEnabled
}

// ShipmentOrderModel is the persistence model for shipment orders.
type ShipmentOrderModel struct {
	BaseModel
	Sequence      int                    `gorm:"not null;uniqueIndex"`
	DestinationID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Destination   *DestinationModel      `gorm:"foreignKey:DestinationID"`
	MethodID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	Method        *MethodModel           `gorm:"foreignKey:MethodID"`
	UserID        *uuid.UUID             `gorm:"type:uuid"`
	ExportID      *uuid.UUID             `gorm:"type:uuid;index"`
	IsOnHold      bool                   `gorm:"not null;default:false"`
	Packages      []ShipmentPackageModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (ShipmentOrderModel) TableName() string {
	return "shipment_orders"
}

// ToDomain converts the persistence model to a domain Order with its
// package tree and references.
func (m *ShipmentOrderModel) ToDomain() *shipment.Order {
	order := &shipment.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		Sequence:      m.Sequence,
		DestinationID: m.DestinationID,
		MethodID:      m.MethodID,
		UserID:        m.UserID,
		ExportID:      m.ExportID,
		IsOnHold:      m.IsOnHold,
	}
	if m.Destination != nil {
		order.Destination = m.Destination.ToDomain()
	}
	if m.Method != nil {
		order.Method = m.Method.ToDomain()
	}
	order.Packages = make([]shipment.Package, len(m.Packages))
	for i := range m.Packages {
		order.Packages[i] = *m.Packages[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order.
func (m *ShipmentOrderModel) FromDomain(o *shipment.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Sequence = o.Sequence
	m.DestinationID = o.DestinationID
	m.MethodID = o.MethodID
	m.UserID = o.UserID
	m.ExportID = o.ExportID
	m.IsOnHold = o.IsOnHold
	m.Packages = make([]ShipmentPackageModel, len(o.Packages))
	for i := range o.Packages {
		m.Packages[i].FromDomain(&o.Packages[i])
	}
}

// ShipmentPackageModel is the persistence model for packages.
type ShipmentPackageModel struct {
	BaseModel
	OrderID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Number   int                 `gorm:"not null"`
	LengthCm int                 `gorm:"not null"`
	WidthCm  int                 `gorm:"not null"`
	HeightCm int                 `gorm:"not null"`
	Items    []ShipmentItemModel `gorm:"foreignKey:PackageID"`
}

// TableName returns the table name for GORM
func (ShipmentPackageModel) TableName() string {
	return "shipment_packages"
}

// ToDomain converts the persistence model to a domain Package.
func (m *ShipmentPackageModel) ToDomain() *shipment.Package {
	pkg := &shipment.Package{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Number:     m.Number,
		LengthCm:   m.LengthCm,
		WidthCm:    m.WidthCm,
		HeightCm:   m.HeightCm,
	}
	pkg.Items = make([]shipment.Item, len(m.Items))
	for i := range m.Items {
		pkg.Items[i] = *m.Items[i].ToDomain()
	}
	return pkg
}

// FromDomain populates the persistence model from a domain Package.
func (m *ShipmentPackageModel) FromDomain(p *shipment.Package) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.OrderID = p.OrderID
	m.Number = p.Number
	m.LengthCm = p.LengthCm
	m.WidthCm = p.WidthCm
	m.HeightCm = p.HeightCm
	m.Items = make([]ShipmentItemModel, len(p.Items))
	for i := range p.Items {
		m.Items[i].FromDomain(&p.Items[i])
	}
}

// ShipmentItemModel is the persistence model for package items.
type ShipmentItemModel struct {
	BaseModel
	PackageID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU             string          `gorm:"type:varchar(100);not null"`
	Description     string          `gorm:"type:varchar(255)"`
	Quantity        int             `gorm:"not null"`
	WeightKg        decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	ValuePence      int64           `gorm:"not null;default:0"`
	CountryOfOrigin string          `gorm:"type:varchar(2)"`
	HRCode          string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ShipmentItemModel) TableName() string {
	return "shipment_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *ShipmentItemModel) ToDomain() *shipment.Item {
	return &shipment.Item{
		BaseEntity:      m.BaseModel.ToDomain(),
		PackageID:       m.PackageID,
		SKU:             m.SKU,
		Description:     m.Description,
		Quantity:        m.Quantity,
		WeightKg:        m.WeightKg,
		ValuePence:      m.ValuePence,
		CountryOfOrigin: m.CountryOfOrigin,
		HRCode:          m.HRCode,
	}
}

// FromDomain populates the persistence model from a domain Item.
func (m *ShipmentItemModel) FromDomain(item *shipment.Item) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.PackageID = item.PackageID
	m.SKU = item.SKU
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.WeightKg = item.WeightKg
	m.ValuePence = item.ValuePence
	m.CountryOfOrigin = item.CountryOfOrigin
	m.HRCode = item.HRCode
}

// ShipmentExportModel is the persistence model for shipment exports.
type ShipmentExportModel struct {
	BaseModel
	Orders []ShipmentOrderModel `gorm:"foreignKey:ExportID"`
}

// TableName returns the table name for GORM
func (ShipmentExportModel) TableName() string {
	return "shipment_exports"
}

// ToDomain converts the persistence model to a domain Export.
func (m *ShipmentExportModel) ToDomain() *shipment.Export {
	export := &shipment.Export{BaseEntity: m.BaseModel.ToDomain()}
	export.Orders = make([]shipment.Order, len(m.Orders))
	for i := range m.Orders {
		export.Orders[i] = *m.Orders[i].ToDomain()
	}
	return export
}

// FromDomain populates the persistence model from a domain Export. The
// contained orders are persisted separately.
func (m *ShipmentExportModel) FromDomain(e *shipment.Export) {
	m.FromDomainBaseEntity(e.BaseEntity)
}

// ParcelhubShipmentModel is the persistence model for carrier shipments.
// The unique index on OrderID is the hard guarantee that a shipment
// order is filed at most once.
type ParcelhubShipmentModel struct {
	BaseModel
	OrderID                 uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ShipmentID              string    `gorm:"type:varchar(100);not null"`
	CourierTrackingNumber   string    `gorm:"type:varchar(100)"`
	ParcelhubTrackingNumber string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ParcelhubShipmentModel) TableName() string {
	return "parcelhub_shipments"
}

// ToDomain converts the persistence model to a domain ParcelhubShipment.
func (m *ParcelhubShipmentModel) ToDomain() *shipment.ParcelhubShipment {
	return &shipment.ParcelhubShipment{
		BaseEntity:              m.BaseModel.ToDomain(),
		OrderID:                 m.OrderID,
		ShipmentID:              m.ShipmentID,
		CourierTrackingNumber:   m.CourierTrackingNumber,
		ParcelhubTrackingNumber: m.ParcelhubTrackingNumber,
	}
}

// FromDomain populates the persistence model from a domain ParcelhubShipment.
func (m *ParcelhubShipmentModel) FromDomain(s *shipment.ParcelhubShipment) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.OrderID = s.OrderID
	m.ShipmentID = s.ShipmentID
	m.CourierTrackingNumber = s.CourierTrackingNumber
	m.ParcelhubTrackingNumber = s.ParcelhubTrackingNumber
}

// FilingModel is the persistence model for filing audit records.
type FilingModel struct {
	BaseModel
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartedAt    time.Time  `gorm:"not null"`
	CompletedAt  *time.Time `gorm:""`
	ErrorMessage string     `gorm:"type:text"`
	ShipmentID   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (FilingModel) TableName() string {
	return "parcelhub_shipment_filings"
}

// ToDomain converts the persistence model to a domain Filing.
func (m *FilingModel) ToDomain() *shipment.Filing {
	return &shipment.Filing{
		BaseEntity:   m.BaseModel.ToDomain(),
		OrderID:      m.OrderID,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		ErrorMessage: m.ErrorMessage,
		ShipmentID:   m.ShipmentID,
	}
}

// FromDomain populates the persistence model from a domain Filing.
func (m *FilingModel) FromDomain(f *shipment.Filing) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.OrderID = f.OrderID
	m.StartedAt = f.StartedAt
	m.CompletedAt = f.CompletedAt
	m.ErrorMessage = f.ErrorMessage
	m.ShipmentID = f.ShipmentID
}

// ShipmentConfigModel is the persistence model for the API token config.
type ShipmentConfigModel struct {
	BaseModel
	Token string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (ShipmentConfigModel) TableName() string {
	return "shipment_configs"
}

// ToDomain converts the persistence model to a domain Config.
func (m *ShipmentConfigModel) ToDomain() *shipment.Config {
	return &shipment.Config{
		BaseEntity: m.BaseModel.ToDomain(),
		Token:      m.Token,
	}
}

// ParcelhubConfigModel is the persistence model for the carrier config.
type ParcelhubConfigModel struct {
	BaseModel
	ServiceID             string `gorm:"type:varchar(100)"`
	CustomerID            string `gorm:"type:varchar(100)"`
	ProviderID            string `gorm:"type:varchar(100)"`
	ReadyTime             string `gorm:"type:varchar(5)"`
	CloseTime             string `gorm:"type:varchar(5)"`
	CollectionContactName string `gorm:"type:varchar(100)"`
	CollectionCompanyName string `gorm:"type:varchar(100)"`
	CollectionPhone       string `gorm:"type:varchar(50)"`
	CollectionAddress1    string `gorm:"type:varchar(255)"`
	CollectionAddress2    string `gorm:"type:varchar(255)"`
	CollectionCity        string `gorm:"type:varchar(100)"`
	CollectionArea        string `gorm:"type:varchar(100)"`
	CollectionPostcode    string `gorm:"type:varchar(20)"`
	CollectionCountry     string `gorm:"type:varchar(2)"`
	CollectionEmail       string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ParcelhubConfigModel) TableName() string {
	return "parcelhub_configs"
}

// ToDomain converts the persistence model to a domain ParcelhubConfig.
func (m *ParcelhubConfigModel) ToDomain() *shipment.ParcelhubConfig {
	return &shipment.ParcelhubConfig{
		BaseEntity:            m.BaseModel.ToDomain(),
		ServiceID:             m.ServiceID,
		CustomerID:            m.CustomerID,
		ProviderID:            m.ProviderID,
		ReadyTime:             m.ReadyTime,
		CloseTime:             m.CloseTime,
		CollectionContactName: m.CollectionContactName,
		CollectionCompanyName: m.CollectionCompanyName,
		CollectionPhone:       m.CollectionPhone,
		CollectionAddress1:    m.CollectionAddress1,
		CollectionAddress2:    m.CollectionAddress2,
		CollectionCity:        m.CollectionCity,
		CollectionArea:        m.CollectionArea,
		CollectionPostcode:    m.CollectionPostcode,
		CollectionCountry:     m.CollectionCountry,
		CollectionEmail:       m.CollectionEmail,
	}
}

// FromDomain populates the persistence model from a domain ParcelhubConfig.
func (m *ParcelhubConfigModel) FromDomain(c *shipment.ParcelhubConfig) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ServiceID = c.ServiceID
	m.CustomerID = c.CustomerID
	m.ProviderID = c.ProviderID
	m.ReadyTime = c.ReadyTime
	m.CloseTime = c.CloseTime
	m.CollectionContactName = c.CollectionContactName
	m.CollectionCompanyName = c.CollectionCompanyName
	m.CollectionPhone = c.CollectionPhone
	m.CollectionAddress1 = c.CollectionAddress1
	m.CollectionAddress2 = c.CollectionAddress2
	m.CollectionCity = c.CollectionCity
	m.CollectionArea = c.CollectionArea
	m.CollectionPostcode = c.CollectionPostcode
	m.CollectionCountry = c.CollectionCountry
	m.CollectionEmail = c.CollectionEmail
}
