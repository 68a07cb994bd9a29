package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appshipment "github.com/stcadmin/backend/internal/application/shipment"
)

// ExportHandler handles shipment export API endpoints
type ExportHandler struct {
	BaseHandler
	exportService *appshipment.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *appshipment.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CreateExport seals every shippable open order into a new export
func (h *ExportHandler) CreateExport(c *gin.Context) {
	resp, err := h.exportService.CreateExport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRecent returns recent exports, newest first
func (h *ExportHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	resp, err := h.exportService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetExport returns one export
func (h *ExportHandler) GetExport(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.exportService.GetExport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ShipmentFile downloads the export's manifest shipment file
func (h *ExportHandler) ShipmentFile(c *gin.Context) {
	h.download(c, h.exportService.ShipmentFile)
}

// AddressFile downloads the export's manifest address file
func (h *ExportHandler) AddressFile(c *gin.Context) {
	h.download(c, h.exportService.AddressFile)
}

func (h *ExportHandler) download(c *gin.Context, generate func(ctx context.Context, id uuid.UUID) (*appshipment.ExportFile, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	file, err := generate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	serveCSV(c, file)
}

// serveCSV writes a manifest file as a CSV attachment
func serveCSV(c *gin.Context, file *appshipment.ExportFile) {
	c.Header("Content-Disposition", "attachment; filename="+file.Name)
	c.Data(http.StatusOK, "text/csv", []byte(file.Content))
}

// RegisterRoutes registers all export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/shipment/exports")
	{
		exports.POST("", h.CreateExport)
		exports.GET("", h.ListRecent)
		exports.GET("/:id", h.GetExport)
		exports.GET("/:id/shipment_file", h.ShipmentFile)
		exports.GET("/:id/address_file", h.AddressFile)
	}
}
