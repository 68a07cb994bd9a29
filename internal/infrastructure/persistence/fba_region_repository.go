package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/infrastructure/persistence/models"
)

// GormRegionRepository implements fba.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByID finds a region by its ID
func (r *GormRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*fba.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns active regions in display order
func (r *GormRegionRepository) FindActive(ctx context.Context) ([]fba.Region, error) {
	var regionModels []models.RegionModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC, name ASC").
		Find(&regionModels).Error
	if err != nil {
		return nil, err
	}
	regions := make([]fba.Region, len(regionModels))
	for i := range regionModels {
		regions[i] = *regionModels[i].ToDomain()
	}
	return regions, nil
}

// FindByCountry finds the region covering a country by its ISO code
func (r *GormRegionRepository) FindByCountry(ctx context.Context, countryISO string) (*fba.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).First(&model, "country_iso = ?", countryISO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a region
func (r *GormRegionRepository) Save(ctx context.Context, region *fba.Region) error {
	model := &models.RegionModel{}
	model.FromDomain(region)
	return r.db.WithContext(ctx).Save(model).Error
}

// GormFulfillmentCenterRepository implements fba.FulfillmentCenterRepository
type GormFulfillmentCenterRepository struct {
	db *gorm.DB
}

// NewGormFulfillmentCenterRepository creates a new GormFulfillmentCenterRepository
func NewGormFulfillmentCenterRepository(db *gorm.DB) *GormFulfillmentCenterRepository {
	return &GormFulfillmentCenterRepository{db: db}
}

// FindByID finds a fulfillment center by its ID
func (r *GormFulfillmentCenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*fba.FulfillmentCenter, error) {
	var model models.FulfillmentCenterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns fulfillment centers that are accepting shipments
func (r *GormFulfillmentCenterRepository) FindActive(ctx context.Context) ([]fba.FulfillmentCenter, error) {
	var centerModels []models.FulfillmentCenterModel
	err := r.db.WithContext(ctx).
		Where("inactive = ?", false).
		Order("name ASC").
		Find(&centerModels).Error
	if err != nil {
		return nil, err
	}
	centers := make([]fba.FulfillmentCenter, len(centerModels))
	for i := range centerModels {
		centers[i] = *centerModels[i].ToDomain()
	}
	return centers, nil
}

// Save persists a fulfillment center
func (r *GormFulfillmentCenterRepository) Save(ctx context.Context, center *fba.FulfillmentCenter) error {
	model := &models.FulfillmentCenterModel{}
	model.FromDomain(center)
	return r.db.WithContext(ctx).Save(model).Error
}
