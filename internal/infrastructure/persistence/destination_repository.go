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

// GormDestinationRepository implements shipment.DestinationRepository
type GormDestinationRepository struct {
	db *gorm.DB
}

// NewGormDestinationRepository creates a new GormDestinationRepository
func NewGormDestinationRepository(db *gorm.DB) *GormDestinationRepository {
	return &GormDestinationRepository{db: db}
}

// FindByID finds a destination by its ID
func (r *GormDestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Destination, error) {
	var model models.DestinationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindEnabled returns destinations accepting new shipment orders
func (r *GormDestinationRepository) FindEnabled(ctx context.Context) ([]shipment.Destination, error) {
	var destinationModels []models.DestinationModel
	err := r.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Order("name ASC").
		Find(&destinationModels).Error
	if err != nil {
		return nil, err
	}
	destinations := make([]shipment.Destination, len(destinationModels))
	for i := range destinationModels {
		destinations[i] = *destinationModels[i].ToDomain()
	}
	return destinations, nil
}

// Save persists a destination
func (r *GormDestinationRepository) Save(ctx context.Context, destination *shipment.Destination) error {
	model := &models.DestinationModel{}
	model.FromDomain(destination)
	return r.db.WithContext(ctx).Save(model).Error
}

// GormMethodRepository implements shipment.MethodRepository
type GormMethodRepository struct {
	db *gorm.DB
}

// NewGormMethodRepository creates a new GormMethodRepository
func NewGormMethodRepository(db *gorm.DB) *GormMethodRepository {
	return &GormMethodRepository{db: db}
}

// FindByID finds a shipment method by its ID
func (r *GormMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Method, error) {
	var model models.MethodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindEnabled returns enabled methods, highest priority first
func (r *GormMethodRepository) FindEnabled(ctx context.Context) ([]shipment.Method, error) {
	var methodModels []models.MethodModel
	err := r.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Order("priority DESC, name ASC").
		Find(&methodModels).Error
	if err != nil {
		return nil, err
	}
	methods := make([]shipment.Method, len(methodModels))
	for i := range methodModels {
		methods[i] = *methodModels[i].ToDomain()
	}
	return methods, nil
}

// Save persists a shipment method
func (r *GormMethodRepository) Save(ctx context.Context, method *shipment.Method) error {
	model := &models.MethodModel{}
	model.FromDomain(method)
	return r.db.WithContext(ctx).Save(model).Error
}
