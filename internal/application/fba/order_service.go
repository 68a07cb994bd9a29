package fba

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
)

// StockChecker answers live stock level queries for a SKU
type StockChecker interface {
	GetStockLevels(ctx context.Context, sku string) (*StockLevels, error)
}

// StockLevels is a point-in-time stock snapshot for one SKU
type StockLevels struct {
	Available int
	InOrders  int
}

// OrderService handles FBA order business operations
type OrderService struct {
	orderRepo  fba.OrderRepository
	regionRepo fba.RegionRepository
	stock      StockChecker
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo fba.OrderRepository,
	regionRepo fba.RegionRepository,
	stock StockChecker,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:  orderRepo,
		regionRepo: regionRepo,
		stock:      stock,
		logger:     logger,
	}
}

// CreateOrder opens a new FBA order with a product snapshot
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	regionID, err := uuid.Parse(req.RegionID)
	if err != nil {
		return nil, shared.ErrInvalidID
	}
	region, err := s.regionRepo.FindByID(ctx, regionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Region not found")
		}
		return nil, fmt.Errorf("failed to load region: %w", err)
	}
	if !region.Active {
		return nil, shared.NewDomainError("INVALID_INPUT", "Region is not active")
	}

	order, err := fba.NewOrder(fba.NewOrderInput{
		RegionID:             region.ID,
		ProductSKU:           req.ProductSKU,
		ProductName:          req.ProductName,
		ProductWeightGrams:   req.ProductWeightGrams,
		ProductHSCode:        req.ProductHSCode,
		ProductASIN:          req.ProductASIN,
		ProductPurchasePrice: req.ProductPurchasePrice,
		SellingPrice:         req.SellingPrice,
		FBAFee:               req.FBAFee,
		ApproximateQuantity:  req.ApproximateQuantity,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("fba order created",
		zap.String("id", order.ID.String()),
		zap.String("sku", order.ProductSKU))

	return s.response(order), nil
}

// GetOrder retrieves an FBA order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.response(order), nil
}

// ListAwaitingFulfillment returns open, workable orders in queue order:
// prioritised orders first, then oldest first.
func (s *OrderService) ListAwaitingFulfillment(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.AwaitingFulfillment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list awaiting orders: %w", err)
	}
	urgentSince := fba.UrgentSince(time.Now())
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i], urgentSince)
	}
	return responses, nil
}

// ListOrders returns FBA orders matching the request filter
func (s *OrderService) ListOrders(ctx context.Context, req ListOrdersRequest) ([]OrderResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters = map[string]interface{}{"status": req.Status}
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	urgentSince := fba.UrgentSince(time.Now())
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i], urgentSince)
	}
	return responses, nil
}

// Prioritise bumps the order above every other open order in the queue
func (s *OrderService) Prioritise(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return err
	}
	if order.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot prioritise a closed order")
	}

	max, err := s.orderRepo.MaxPriority(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue priority: %w", err)
	}
	order.SetPriority(max + 1)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("fba order prioritised",
		zap.String("id", order.ID.String()),
		zap.Int("priority", order.PriorityTemp))
	return nil
}

// MarkPrinted records that the fulfillment sheet has been printed
func (s *OrderService) MarkPrinted(ctx context.Context, orderID uuid.UUID) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		return order.MarkPrinted()
	})
}

// UnmarkPrinted reverts the printed mark
func (s *OrderService) UnmarkPrinted(ctx context.Context, orderID uuid.UUID) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		order.UnmarkPrinted()
		return nil
	})
}

// Hold pauses the order
func (s *OrderService) Hold(ctx context.Context, orderID uuid.UUID) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		return order.Hold()
	})
}

// TakeOffHold resumes a held order
func (s *OrderService) TakeOffHold(ctx context.Context, orderID uuid.UUID) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		order.TakeOffHold()
		return nil
	})
}

// Stop blocks the order from the fulfillment queue
func (s *OrderService) Stop(ctx context.Context, orderID uuid.UUID, req StopOrderRequest) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		return order.Stop(req.Reason, req.Until)
	})
}

// Unstop returns a stopped order to the queue
func (s *OrderService) Unstop(ctx context.Context, orderID uuid.UUID) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		order.Unstop()
		return nil
	})
}

// Fulfill records packed details and closes the order
func (s *OrderService) Fulfill(ctx context.Context, orderID, fulfilledBy uuid.UUID, req FulfillOrderRequest) error {
	return s.update(ctx, orderID, func(order *fba.Order) error {
		if err := order.SetFulfillmentDetails(req.BoxWeightKg, req.QuantitySent); err != nil {
			return err
		}
		order.TrackingNumber = req.TrackingNumber
		if req.Notes != "" {
			order.Notes = req.Notes
		}
		return order.Close(fulfilledBy)
	})
}

// GetStockLevels queries the stock check service for a SKU. Total is
// always derived as available plus allocated.
func (s *OrderService) GetStockLevels(ctx context.Context, sku string) (*StockLevelsResponse, error) {
	if sku == "" {
		return nil, shared.ErrMissingField
	}
	levels, err := s.stock.GetStockLevels(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	return &StockLevelsResponse{
		Available: levels.Available,
		InOrders:  levels.InOrders,
		Total:     levels.Available + levels.InOrders,
	}, nil
}

// GetStockLevelsForOrders resolves stock levels for a set of orders,
// keyed by order ID. Orders that no longer exist are skipped; an
// upstream failure for one SKU yields a null entry for that order
// rather than failing the whole call.
func (s *OrderService) GetStockLevelsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[string]*StockLevelsResponse, error) {
	if len(orderIDs) == 0 {
		return nil, shared.ErrMissingField
	}
	orders, err := s.orderRepo.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	result := make(map[string]*StockLevelsResponse, len(orders))
	for i := range orders {
		order := &orders[i]
		levels, err := s.GetStockLevels(ctx, order.ProductSKU)
		if err != nil {
			s.logger.Warn("Stock level lookup failed",
				zap.String("order_id", order.ID.String()),
				zap.String("sku", order.ProductSKU),
				zap.Error(err))
			result[order.ID.String()] = nil
			continue
		}
		result[order.ID.String()] = levels
	}
	return result, nil
}

// DeleteOrder removes an unfulfilled FBA order
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return err
	}
	if order.IsClosed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a fulfilled order")
	}
	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *OrderService) find(ctx context.Context, orderID uuid.UUID) (*fba.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "FBA order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (s *OrderService) update(ctx context.Context, orderID uuid.UUID, mutate func(*fba.Order) error) error {
	order, err := s.find(ctx, orderID)
	if err != nil {
		return err
	}
	if err := mutate(order); err != nil {
		return err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (s *OrderService) response(order *fba.Order) *OrderResponse {
	resp := toOrderResponse(order, fba.UrgentSince(time.Now()))
	return &resp
}
