package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appshipment "github.com/stcadmin/backend/internal/application/shipment"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

// ShippingAPIHandler serves the forwarder integration endpoints. These
// are authenticated by the shared shipment token posted with each
// request, not by JWT.
type ShippingAPIHandler struct {
	BaseHandler
	orderService  *appshipment.OrderService
	exportService *appshipment.ExportService
	configRepo    shipment.ConfigRepository
	logger        *zap.Logger
}

// NewShippingAPIHandler creates a new ShippingAPIHandler
func NewShippingAPIHandler(
	orderService *appshipment.OrderService,
	exportService *appshipment.ExportService,
	configRepo shipment.ConfigRepository,
	logger *zap.Logger,
) *ShippingAPIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShippingAPIHandler{
		orderService:  orderService,
		exportService: exportService,
		configRepo:    configRepo,
		logger:        logger,
	}
}

// authenticate checks the token form field against the stored secret
func (h *ShippingAPIHandler) authenticate(c *gin.Context) bool {
	cfg, err := h.configRepo.GetConfig(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load shipment config", zap.Error(err))
		h.Unauthorized(c, "Unauthorized")
		return false
	}
	if !cfg.CheckToken(c.PostForm("token")) {
		h.Unauthorized(c, "Unauthorized")
		return false
	}
	return true
}

// CurrentShipments lists open shipment orders that have packages and are
// not on hold
func (h *ShippingAPIHandler) CurrentShipments(c *gin.Context) {
	if !h.authenticate(c) {
		return
	}
	orders, err := h.orderService.ListOpen(c.Request.Context(), false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	shipments := make([]appshipment.OrderResponse, 0, len(orders))
	for _, order := range orders {
		if order.PackageCount > 0 {
			shipments = append(shipments, order)
		}
	}
	h.Success(c, gin.H{"shipments": shipments})
}

// RecentExports lists the most recent shipment exports
func (h *ShippingAPIHandler) RecentExports(c *gin.Context) {
	if !h.authenticate(c) {
		return
	}
	exports, err := h.exportService.ListRecent(c.Request.Context(), 20)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"exports": exports})
}

// CloseShipment seals a single shipment order into an export
func (h *ShippingAPIHandler) CloseShipment(c *gin.Context) {
	if !h.authenticate(c) {
		return
	}
	orderID, err := uuid.Parse(c.PostForm("shipment_id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment_id")
		return
	}
	export, err := h.exportService.CloseOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"export_id": export.ID})
}

// ShipmentFile downloads an export's manifest shipment file
func (h *ShippingAPIHandler) ShipmentFile(c *gin.Context) {
	h.downloadFile(c, h.exportService.ShipmentFile)
}

// AddressFile downloads an export's manifest address file
func (h *ShippingAPIHandler) AddressFile(c *gin.Context) {
	h.downloadFile(c, h.exportService.AddressFile)
}

func (h *ShippingAPIHandler) downloadFile(c *gin.Context, generate func(ctx context.Context, id uuid.UUID) (*appshipment.ExportFile, error)) {
	if !h.authenticate(c) {
		return
	}
	exportID, err := uuid.Parse(c.PostForm("export_id"))
	if err != nil {
		h.BadRequest(c, "Invalid export_id")
		return
	}
	file, err := generate(c.Request.Context(), exportID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	serveCSV(c, file)
}

// RegisterRoutes registers the forwarder integration routes
func (h *ShippingAPIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipping := rg.Group("/shipping")
	{
		shipping.POST("/current_shipments", h.CurrentShipments)
		shipping.POST("/exports", h.RecentExports)
		shipping.POST("/close_shipment", h.CloseShipment)
		shipping.POST("/shipment_file", h.ShipmentFile)
		shipping.POST("/address_file", h.AddressFile)
	}
}
