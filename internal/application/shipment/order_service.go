package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

// OrderService assembles shipment orders ahead of export and filing
type OrderService struct {
	orderRepo       shipment.OrderRepository
	destinationRepo shipment.DestinationRepository
	methodRepo      shipment.MethodRepository
	logger          *zap.Logger
}

// NewOrderService creates a new shipment OrderService
func NewOrderService(
	orderRepo shipment.OrderRepository,
	destinationRepo shipment.DestinationRepository,
	methodRepo shipment.MethodRepository,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:       orderRepo,
		destinationRepo: destinationRepo,
		methodRepo:      methodRepo,
		logger:          logger,
	}
}

// CreateOrder opens a shipment order against an enabled destination and
// optionally fills its package tree in one call.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, shared.ErrInvalidID
	}
	methodID, err := uuid.Parse(req.MethodID)
	if err != nil {
		return nil, shared.ErrInvalidID
	}

	destination, err := s.destinationRepo.FindByID(ctx, destinationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Destination not found")
		}
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	method, err := s.methodRepo.FindByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shipment method not found")
		}
		return nil, fmt.Errorf("failed to load method: %w", err)
	}

	sequence, err := s.orderRepo.NextSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve order number: %w", err)
	}

	order, err := shipment.NewOrder(sequence, destination, method, userID)
	if err != nil {
		return nil, err
	}

	for _, pkgReq := range req.Packages {
		pkg, err := order.AddPackage(pkgReq.LengthCm, pkgReq.WidthCm, pkgReq.HeightCm)
		if err != nil {
			return nil, err
		}
		for _, itemReq := range pkgReq.Items {
			weight, err := decimal.NewFromString(itemReq.WeightKg)
			if err != nil {
				return nil, shared.NewDomainError("INVALID_WEIGHT", "Item weight is not a valid decimal")
			}
			item, err := pkg.AddItem(itemReq.SKU, itemReq.Description, itemReq.Quantity, weight, itemReq.ValuePence, itemReq.HRCode)
			if err != nil {
				return nil, err
			}
			item.CountryOfOrigin = itemReq.CountryOfOrigin
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save shipment order: %w", err)
	}

	s.logger.Info("shipment order created",
		zap.String("id", order.ID.String()),
		zap.String("order_number", order.OrderNumber()),
		zap.String("destination", destination.Name))

	resp := toOrderResponse(order)
	return &resp, nil
}

// GetOrder retrieves a shipment order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ListOpen returns unexported shipment orders
func (s *OrderService) ListOpen(ctx context.Context, onHold bool) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindOpen(ctx, onHold)
	if err != nil {
		return nil, fmt.Errorf("failed to list open orders: %w", err)
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	return responses, nil
}

// ToggleHold flips the order's hold flag
func (s *OrderService) ToggleHold(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.ToggleHold(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save shipment order: %w", err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// DeleteOrder removes an unexported shipment order
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return err
	}
	if order.IsExported() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete an exported shipment order")
	}
	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("failed to delete shipment order: %w", err)
	}
	return nil
}

// ListDestinations returns enabled destinations for order creation
func (s *OrderService) ListDestinations(ctx context.Context) ([]DestinationResponse, error) {
	destinations, err := s.destinationRepo.FindEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	responses := make([]DestinationResponse, len(destinations))
	for i := range destinations {
		responses[i] = toDestinationResponse(&destinations[i])
	}
	return responses, nil
}

// DisableDestination withdraws a destination from new orders. It stays
// referenced by existing orders and exports.
func (s *OrderService) DisableDestination(ctx context.Context, destinationID uuid.UUID) (*DestinationResponse, error) {
	destination, err := s.destinationRepo.FindByID(ctx, destinationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Destination not found")
		}
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	destination.Disable()
	if err := s.destinationRepo.Save(ctx, destination); err != nil {
		return nil, fmt.Errorf("failed to save destination: %w", err)
	}
	s.logger.Info("destination disabled",
		zap.String("id", destination.ID.String()),
		zap.String("name", destination.Name))
	resp := toDestinationResponse(destination)
	return &resp, nil
}

// ListMethods returns enabled shipment methods in priority order
func (s *OrderService) ListMethods(ctx context.Context) ([]MethodResponse, error) {
	methods, err := s.methodRepo.FindEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list methods: %w", err)
	}
	responses := make([]MethodResponse, len(methods))
	for i := range methods {
		responses[i] = toMethodResponse(&methods[i])
	}
	return responses, nil
}

func (s *OrderService) find(ctx context.Context, orderID uuid.UUID) (*shipment.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shipment order not found")
		}
		return nil, fmt.Errorf("failed to load shipment order: %w", err)
	}
	return order, nil
}
