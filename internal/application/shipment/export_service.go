package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

// ExportFile is a generated manifest file ready for download
type ExportFile struct {
	Name    string
	Content string
}

// ExportService seals shipment orders into exports and generates the
// manifest files the forwarder consumes.
type ExportService struct {
	orderRepo  shipment.OrderRepository
	exportRepo shipment.ExportRepository
	logger     *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	orderRepo shipment.OrderRepository,
	exportRepo shipment.ExportRepository,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		orderRepo:  orderRepo,
		exportRepo: exportRepo,
		logger:     logger,
	}
}

// CreateExport seals every shippable open order into a new export.
// Held orders and orders without packages are left behind.
func (s *ExportService) CreateExport(ctx context.Context) (*ExportResponse, error) {
	open, err := s.orderRepo.FindOpen(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list open orders: %w", err)
	}

	export := shipment.NewExport()
	for i := range open {
		order := &open[i]
		if !order.IsShippable() {
			continue
		}
		if err := order.AttachExport(export.ID); err != nil {
			return nil, err
		}
		export.Orders = append(export.Orders, *order)
	}
	if len(export.Orders) == 0 {
		return nil, shared.NewDomainError("NOTHING_TO_EXPORT", "No shippable orders to export")
	}

	if err := s.exportRepo.Save(ctx, export); err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}
	for i := range export.Orders {
		if err := s.orderRepo.Save(ctx, &export.Orders[i]); err != nil {
			return nil, fmt.Errorf("failed to seal order into export: %w", err)
		}
	}

	s.logger.Info("shipment export created",
		zap.String("id", export.ID.String()),
		zap.Int("shipments", export.ShipmentCount()),
		zap.Int("packages", export.PackageCount()))

	resp := toExportResponse(export)
	return &resp, nil
}

// CloseOrder seals a single shipment order into its own export
func (s *ExportService) CloseOrder(ctx context.Context, orderID uuid.UUID) (*ExportResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shipment order not found")
		}
		return nil, fmt.Errorf("failed to load shipment order: %w", err)
	}
	if !order.IsShippable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Shipment order cannot be exported")
	}

	export := shipment.NewExport()
	if err := order.AttachExport(export.ID); err != nil {
		return nil, err
	}
	export.Orders = append(export.Orders, *order)

	if err := s.exportRepo.Save(ctx, export); err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to seal order into export: %w", err)
	}

	s.logger.Info("shipment order closed",
		zap.String("order_id", order.ID.String()),
		zap.String("export_id", export.ID.String()))

	resp := toExportResponse(export)
	return &resp, nil
}

// GetExport retrieves an export by ID
func (s *ExportService) GetExport(ctx context.Context, exportID uuid.UUID) (*ExportResponse, error) {
	export, err := s.find(ctx, exportID)
	if err != nil {
		return nil, err
	}
	resp := toExportResponse(export)
	return &resp, nil
}

// ListRecent returns the most recent exports, newest first
func (s *ExportService) ListRecent(ctx context.Context, limit int) ([]ExportResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	exports, err := s.exportRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	responses := make([]ExportResponse, len(exports))
	for i := range exports {
		responses[i] = toExportResponse(&exports[i])
	}
	return responses, nil
}

// ShipmentFile generates the manifest shipment file for an export
func (s *ExportService) ShipmentFile(ctx context.Context, exportID uuid.UUID) (*ExportFile, error) {
	export, err := s.find(ctx, exportID)
	if err != nil {
		return nil, err
	}
	content, err := shipment.GenerateShipmentFile(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate shipment file: %w", err)
	}
	return &ExportFile{Name: export.ShipmentFileName(), Content: content}, nil
}

// AddressFile generates the manifest address file for an export
func (s *ExportService) AddressFile(ctx context.Context, exportID uuid.UUID) (*ExportFile, error) {
	export, err := s.find(ctx, exportID)
	if err != nil {
		return nil, err
	}
	content, err := shipment.GenerateAddressFile(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate address file: %w", err)
	}
	return &ExportFile{Name: export.AddressFileName(), Content: content}, nil
}

func (s *ExportService) find(ctx context.Context, exportID uuid.UUID) (*shipment.Export, error) {
	export, err := s.exportRepo.FindByID(ctx, exportID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Export not found")
		}
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	return export, nil
}
