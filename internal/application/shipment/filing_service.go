package shipment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

// CarrierResult is the carrier's answer to a successful shipment request
type CarrierResult struct {
	ShipmentID              string
	CourierTrackingNumber   string
	ParcelhubTrackingNumber string
}

// CarrierClient registers shipment orders with the carrier. Failures
// must come back as the carrier error sentinels so the filing record
// captures the right cause.
type CarrierClient interface {
	CreateShipment(ctx context.Context, order *shipment.Order) (*CarrierResult, error)
}

// FilingService registers shipment orders with the carrier, keeping a
// full audit trail. Each File call produces exactly one filing record,
// successful or not.
type FilingService struct {
	orderRepo  shipment.OrderRepository
	filingRepo shipment.FilingRepository
	carrier    CarrierClient
	logger     *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewFilingService creates a new FilingService
func NewFilingService(
	orderRepo shipment.OrderRepository,
	filingRepo shipment.FilingRepository,
	carrier CarrierClient,
	logger *zap.Logger,
) *FilingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilingService{
		orderRepo:  orderRepo,
		filingRepo: filingRepo,
		carrier:    carrier,
		logger:     logger,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

// orderLock serialises filing attempts for one order within this process
func (s *FilingService) orderLock(orderID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[orderID] = lock
	}
	return lock
}

// File registers a shipment order with the carrier. The carrier call is
// never wrapped in a database transaction; the filing record is written
// before the call and closed after it, so an operator can always see
// what was in flight. An order that already has a carrier shipment is
// rejected without opening a new filing.
func (s *FilingService) File(ctx context.Context, orderID uuid.UUID) (*ShipmentRecordResponse, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shipment order not found")
		}
		return nil, fmt.Errorf("failed to load shipment order: %w", err)
	}
	if order.Destination == nil || !order.Destination.IsEnabled {
		return nil, shipment.ErrDestinationDisabled
	}

	existing, err := s.filingRepo.FindShipmentByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing shipment: %w", err)
	}
	if existing != nil {
		return nil, shipment.ErrAlreadyFiled
	}

	filing, err := shipment.NewFiling(orderID)
	if err != nil {
		return nil, err
	}
	if err := s.filingRepo.SaveFiling(ctx, filing); err != nil {
		return nil, fmt.Errorf("failed to open filing: %w", err)
	}

	s.logger.Info("filing shipment order with carrier",
		zap.String("order_id", orderID.String()),
		zap.String("order_number", order.OrderNumber()),
		zap.String("filing_id", filing.ID.String()))

	result, err := s.carrier.CreateShipment(ctx, order)
	if err != nil {
		return nil, s.failFiling(ctx, filing, order, err)
	}

	record, err := shipment.NewParcelhubShipment(orderID, result.ShipmentID, result.CourierTrackingNumber, result.ParcelhubTrackingNumber)
	if err != nil {
		return nil, s.failFiling(ctx, filing, order, err)
	}
	if err := s.filingRepo.SaveShipment(ctx, record); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost a race with another process. The carrier shipment we
			// just created is orphaned; record that on the filing.
			return nil, s.failFiling(ctx, filing, order, shipment.ErrAlreadyFiled)
		}
		return nil, s.failFiling(ctx, filing, order, err)
	}

	if err := filing.Complete(record.ID); err != nil {
		return nil, err
	}
	if err := s.filingRepo.SaveFiling(ctx, filing); err != nil {
		return nil, fmt.Errorf("failed to close filing: %w", err)
	}

	s.logger.Info("shipment order filed",
		zap.String("order_number", order.OrderNumber()),
		zap.String("shipment_id", record.ShipmentID),
		zap.String("courier_tracking", record.CourierTrackingNumber))

	return &ShipmentRecordResponse{
		OrderID:                 record.OrderID.String(),
		ShipmentID:              record.ShipmentID,
		CourierTrackingNumber:   record.CourierTrackingNumber,
		ParcelhubTrackingNumber: record.ParcelhubTrackingNumber,
	}, nil
}

// failFiling closes the filing with the failure cause and returns the
// wrapped error the caller should surface.
func (s *FilingService) failFiling(ctx context.Context, filing *shipment.Filing, order *shipment.Order, cause error) error {
	wrapped := shipment.NewFilingFailedError(cause)
	if err := filing.Fail(wrapped); err != nil {
		s.logger.Error("could not record filing failure",
			zap.String("filing_id", filing.ID.String()),
			zap.Error(err))
		return wrapped
	}
	if err := s.filingRepo.SaveFiling(ctx, filing); err != nil {
		s.logger.Error("could not persist filing failure",
			zap.String("filing_id", filing.ID.String()),
			zap.Error(err))
	}
	s.logger.Error("filing shipment order failed",
		zap.String("order_number", order.OrderNumber()),
		zap.String("filing_id", filing.ID.String()),
		zap.Error(cause))
	return wrapped
}

// GetShipment returns the carrier record for a filed order
func (s *FilingService) GetShipment(ctx context.Context, orderID uuid.UUID) (*ShipmentRecordResponse, error) {
	record, err := s.filingRepo.FindShipmentByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No carrier shipment for this order")
		}
		return nil, fmt.Errorf("failed to load carrier shipment: %w", err)
	}
	return &ShipmentRecordResponse{
		OrderID:                 record.OrderID.String(),
		ShipmentID:              record.ShipmentID,
		CourierTrackingNumber:   record.CourierTrackingNumber,
		ParcelhubTrackingNumber: record.ParcelhubTrackingNumber,
	}, nil
}

// ListFilings returns the audit trail for a shipment order, newest last
func (s *FilingService) ListFilings(ctx context.Context, orderID uuid.UUID) ([]FilingResponse, error) {
	filings, err := s.filingRepo.FindFilingsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}
	responses := make([]FilingResponse, len(filings))
	for i := range filings {
		responses[i] = toFilingResponse(&filings[i])
	}
	return responses, nil
}
