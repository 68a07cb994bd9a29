package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/infrastructure/persistence/models"
)

// GormProfitRepository implements fba.ProfitRepository using GORM
type GormProfitRepository struct {
	db *gorm.DB
}

// NewGormProfitRepository creates a new GormProfitRepository
func NewGormProfitRepository(db *gorm.DB) *GormProfitRepository {
	return &GormProfitRepository{db: db}
}

// ReplaceImport replaces the snapshots stored for an import date. The
// delete and insert run in one transaction so a failed import never
// leaves the date half populated.
func (r *GormProfitRepository) ReplaceImport(ctx context.Context, importDate time.Time, snapshots []fba.ProfitSnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("import_date = ?", importDate).Delete(&models.FBAProfitModel{}).Error; err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return nil
		}
		profitModels := make([]models.FBAProfitModel, len(snapshots))
		for i := range snapshots {
			profitModels[i].FromDomain(&snapshots[i])
		}
		return tx.Create(&profitModels).Error
	})
}

// FindByImportDate returns the snapshots recorded for an import date
func (r *GormProfitRepository) FindByImportDate(ctx context.Context, importDate time.Time) ([]fba.ProfitSnapshot, error) {
	var profitModels []models.FBAProfitModel
	err := r.db.WithContext(ctx).
		Where("import_date = ?", importDate).
		Order("channel_sku ASC").
		Find(&profitModels).Error
	if err != nil {
		return nil, err
	}
	snapshots := make([]fba.ProfitSnapshot, len(profitModels))
	for i := range profitModels {
		snapshots[i] = *profitModels[i].ToDomain()
	}
	return snapshots, nil
}

// LatestImportDate returns the most recent import date, or the zero time
// when no import has run
func (r *GormProfitRepository) LatestImportDate(ctx context.Context) (time.Time, error) {
	var model models.FBAProfitModel
	err := r.db.WithContext(ctx).
		Order("import_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return model.ImportDate, nil
}
