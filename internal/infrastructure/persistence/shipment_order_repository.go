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

// GormShipmentOrderRepository implements shipment.OrderRepository using GORM
type GormShipmentOrderRepository struct {
	db *gorm.DB
}

// NewGormShipmentOrderRepository creates a new GormShipmentOrderRepository
func NewGormShipmentOrderRepository(db *gorm.DB) *GormShipmentOrderRepository {
	return &GormShipmentOrderRepository{db: db}
}

func (r *GormShipmentOrderRepository) withGraph(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Destination").
		Preload("Method").
		Preload("Packages", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		Preload("Packages.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// FindByID loads a shipment order with its full graph
func (r *GormShipmentOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Order, error) {
	var model models.ShipmentOrderModel
	if err := r.withGraph(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpen returns unexported orders filtered by hold state
func (r *GormShipmentOrderRepository) FindOpen(ctx context.Context, onHold bool) ([]shipment.Order, error) {
	var orderModels []models.ShipmentOrderModel
	err := r.withGraph(ctx).
		Where("export_id IS NULL AND is_on_hold = ?", onHold).
		Order("created_at ASC, sequence ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	orders := make([]shipment.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// NextSequence reserves the next order number. Sequences only grow, so
// gaps from deleted orders are never reused.
func (r *GormShipmentOrderRepository) NextSequence(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.ShipmentOrderModel{}).
		Select("MAX(sequence)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// Save persists a shipment order with its package tree
func (r *GormShipmentOrderRepository) Save(ctx context.Context, order *shipment.Order) error {
	model := &models.ShipmentOrderModel{}
	model.FromDomain(order)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Omit("Destination", "Method").
		Save(model).Error
}

// Delete removes a shipment order and its packages
func (r *GormShipmentOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var packageIDs []uuid.UUID
		if err := tx.Model(&models.ShipmentPackageModel{}).
			Where("order_id = ?", id).
			Pluck("id", &packageIDs).Error; err != nil {
			return err
		}
		if len(packageIDs) > 0 {
			if err := tx.Delete(&models.ShipmentItemModel{}, "package_id IN ?", packageIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.ShipmentPackageModel{}, "order_id = ?", id).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.ShipmentOrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
