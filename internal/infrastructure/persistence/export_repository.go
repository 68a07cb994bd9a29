package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
	"github.com/stcadmin/backend/internal/infrastructure/persistence/models"
)

// GormExportRepository implements shipment.ExportRepository using GORM
type GormExportRepository struct {
	db *gorm.DB
}

// NewGormExportRepository creates a new GormExportRepository
func NewGormExportRepository(db *gorm.DB) *GormExportRepository {
	return &GormExportRepository{db: db}
}

func (r *GormExportRepository) withOrders(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Orders").
		Preload("Orders.Destination").
		Preload("Orders.Method").
		Preload("Orders.Packages", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Preload("Orders.Packages.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// FindByID loads an export with its orders and their package trees
func (r *GormExportRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Export, error) {
	var model models.ShipmentExportModel
	if err := r.withOrders(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent returns the most recent exports, newest first
func (r *GormExportRepository) FindRecent(ctx context.Context, limit int) ([]shipment.Export, error) {
	var exportModels []models.ShipmentExportModel
	err := r.withOrders(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&exportModels).Error
	if err != nil {
		return nil, err
	}
	exports := make([]shipment.Export, len(exportModels))
	for i := range exportModels {
		exports[i] = *exportModels[i].ToDomain()
	}
	return exports, nil
}

// Save persists an export row. Orders are linked to the export through
// their own ExportID and saved by the order repository.
func (r *GormExportRepository) Save(ctx context.Context, export *shipment.Export) error {
	model := &models.ShipmentExportModel{}
	model.FromDomain(export)
	return r.db.WithContext(ctx).Omit("Orders").Save(model).Error
}
