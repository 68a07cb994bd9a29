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

// GormFBAOrderRepository implements fba.OrderRepository using GORM
type GormFBAOrderRepository struct {
	db *gorm.DB
}

// NewGormFBAOrderRepository creates a new GormFBAOrderRepository
func NewGormFBAOrderRepository(db *gorm.DB) *GormFBAOrderRepository {
	return &GormFBAOrderRepository{db: db}
}

// FindByID finds an FBA order by its ID
func (r *GormFBAOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*fba.Order, error) {
	var model models.FBAOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds FBA orders by ID, skipping any that do not exist
func (r *GormFBAOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]fba.Order, error) {
	var orderModels []models.FBAOrderModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// FindAll finds FBA orders matching the filter
func (r *GormFBAOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fba.Order, error) {
	var orderModels []models.FBAOrderModel
	query := r.db.WithContext(ctx).Model(&models.FBAOrderModel{})

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("product_sku ILIKE ? OR product_name ILIKE ? OR product_asin ILIKE ?", search, search, search)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = applyStatusFilter(query, status)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	dir := "ASC"
	if filter.OrderDir == "desc" {
		dir = "DESC"
	}
	query = query.Order(orderBy + " " + dir)

	if filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// AwaitingFulfillment returns open orders that are neither on hold nor
// stopped. Prioritised orders sort first; within the same priority the
// oldest order comes first.
func (r *GormFBAOrderRepository) AwaitingFulfillment(ctx context.Context) ([]fba.Order, error) {
	var orderModels []models.FBAOrderModel
	err := r.db.WithContext(ctx).
		Where("closed_at IS NULL AND on_hold = ? AND is_stopped = ?", false, false).
		Order("priority_temp DESC, created_at ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// LatestFulfilledByASIN returns the most recently closed order for an ASIN
func (r *GormFBAOrderRepository) LatestFulfilledByASIN(ctx context.Context, asin string) (*fba.Order, error) {
	var model models.FBAOrderModel
	err := r.db.WithContext(ctx).
		Where("product_asin = ? AND closed_at IS NOT NULL", asin).
		Order("closed_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// MaxPriority returns the highest queue priority among open orders
func (r *GormFBAOrderRepository) MaxPriority(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.FBAOrderModel{}).
		Where("closed_at IS NULL").
		Select("MAX(priority_temp)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Save persists an FBA order
func (r *GormFBAOrderRepository) Save(ctx context.Context, order *fba.Order) error {
	model := models.FBAOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an FBA order
func (r *GormFBAOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FBAOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainOrders(orderModels []models.FBAOrderModel) []fba.Order {
	orders := make([]fba.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}

// applyStatusFilter narrows a query to orders in one observable status
func applyStatusFilter(query *gorm.DB, status any) *gorm.DB {
	switch fba.OrderStatus(toString(status)) {
	case fba.StatusFulfilled:
		return query.Where("closed_at IS NOT NULL")
	case fba.StatusStopped:
		return query.Where("closed_at IS NULL AND is_stopped = ?", true)
	case fba.StatusOnHold:
		return query.Where("closed_at IS NULL AND is_stopped = ? AND on_hold = ?", false, true)
	case fba.StatusReady:
		return query.Where("closed_at IS NULL AND is_stopped = ? AND on_hold = ? AND box_weight_kg IS NOT NULL AND quantity_sent IS NOT NULL", false, false)
	case fba.StatusPrinted:
		return query.Where("closed_at IS NULL AND is_stopped = ? AND on_hold = ? AND printed = ? AND (box_weight_kg IS NULL OR quantity_sent IS NULL)", false, false, true)
	case fba.StatusNotProcessed:
		return query.Where("closed_at IS NULL AND is_stopped = ? AND on_hold = ? AND printed = ? AND (box_weight_kg IS NULL OR quantity_sent IS NULL)", false, false, false)
	default:
		return query
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
