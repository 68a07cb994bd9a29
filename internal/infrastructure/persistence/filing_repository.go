package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
	"github.com/stcadmin/backend/internal/infrastructure/persistence/models"
)

// GormFilingRepository implements shipment.FilingRepository using GORM
type GormFilingRepository struct {
	db *gorm.DB
}

// NewGormFilingRepository creates a new GormFilingRepository
func NewGormFilingRepository(db *gorm.DB) *GormFilingRepository {
	return &GormFilingRepository{db: db}
}

// FindShipmentByOrder finds the carrier shipment for an order
func (r *GormFilingRepository) FindShipmentByOrder(ctx context.Context, orderID uuid.UUID) (*shipment.ParcelhubShipment, error) {
	var model models.ParcelhubShipmentModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveShipment inserts a carrier shipment record. The unique index on
// order_id turns a concurrent double-file into shared.ErrAlreadyExists.
func (r *GormFilingRepository) SaveShipment(ctx context.Context, s *shipment.ParcelhubShipment) error {
	model := &models.ParcelhubShipmentModel{}
	model.FromDomain(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindFilingsByOrder returns all filing attempts for an order, oldest first
func (r *GormFilingRepository) FindFilingsByOrder(ctx context.Context, orderID uuid.UUID) ([]shipment.Filing, error) {
	var filingModels []models.FilingModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("started_at ASC").
		Find(&filingModels).Error
	if err != nil {
		return nil, err
	}
	filings := make([]shipment.Filing, len(filingModels))
	for i := range filingModels {
		filings[i] = *filingModels[i].ToDomain()
	}
	return filings, nil
}

// SaveFiling persists a filing audit record
func (r *GormFilingRepository) SaveFiling(ctx context.Context, filing *shipment.Filing) error {
	model := &models.FilingModel{}
	model.FromDomain(filing)
	return r.db.WithContext(ctx).Save(model).Error
}

// isUniqueViolation reports whether the error came from a unique
// constraint. Covers gorm's translated error plus the raw postgres and
// sqlite messages.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// GormConfigRepository implements shipment.ConfigRepository using GORM
type GormConfigRepository struct {
	db *gorm.DB
}

// NewGormConfigRepository creates a new GormConfigRepository
func NewGormConfigRepository(db *gorm.DB) *GormConfigRepository {
	return &GormConfigRepository{db: db}
}

// GetConfig returns the singleton token configuration
func (r *GormConfigRepository) GetConfig(ctx context.Context) (*shipment.Config, error) {
	var model models.ShipmentConfigModel
	if err := r.db.WithContext(ctx).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetParcelhubConfig returns the singleton carrier configuration
func (r *GormConfigRepository) GetParcelhubConfig(ctx context.Context) (*shipment.ParcelhubConfig, error) {
	var model models.ParcelhubConfigModel
	if err := r.db.WithContext(ctx).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveParcelhubConfig persists the carrier configuration
func (r *GormConfigRepository) SaveParcelhubConfig(ctx context.Context, cfg *shipment.ParcelhubConfig) error {
	model := &models.ParcelhubConfigModel{}
	model.FromDomain(cfg)
	return r.db.WithContext(ctx).Save(model).Error
}
