package handler

import (
	"github.com/gin-gonic/gin"

	appshipment "github.com/stcadmin/backend/internal/application/shipment"
	"github.com/stcadmin/backend/internal/interfaces/http/middleware"
)

// ShipmentHandler handles shipment order API endpoints
type ShipmentHandler struct {
	BaseHandler
	orderService  *appshipment.OrderService
	filingService *appshipment.FilingService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(
	orderService *appshipment.OrderService,
	filingService *appshipment.FilingService,
) *ShipmentHandler {
	return &ShipmentHandler{
		orderService:  orderService,
		filingService: filingService,
	}
}

// CreateOrder opens a shipment order with its package tree
func (h *ShipmentHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req appshipment.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	resp, err := h.orderService.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOpen returns unexported shipment orders. The on_hold query
// parameter selects held orders instead.
func (h *ShipmentHandler) ListOpen(c *gin.Context) {
	onHold := c.Query("on_hold") == "true"
	resp, err := h.orderService.ListOpen(c.Request.Context(), onHold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetOrder returns one shipment order
func (h *ShipmentHandler) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ToggleHold flips the order's hold flag
func (h *ShipmentHandler) ToggleHold(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.orderService.ToggleHold(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteOrder removes an unexported shipment order
func (h *ShipmentHandler) DeleteOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// File submits the order to the carrier
func (h *ShipmentHandler) File(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.filingService.File(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListFilings returns the filing audit trail for an order
func (h *ShipmentHandler) ListFilings(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.filingService.ListFilings(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetShipment returns the carrier's acceptance record for an order
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.filingService.GetShipment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListDestinations returns enabled destinations
func (h *ShipmentHandler) ListDestinations(c *gin.Context) {
	resp, err := h.orderService.ListDestinations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DisableDestination withdraws a destination from new orders
func (h *ShipmentHandler) DisableDestination(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.orderService.DisableDestination(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMethods returns enabled shipment methods
func (h *ShipmentHandler) ListMethods(c *gin.Context) {
	resp, err := h.orderService.ListMethods(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers all shipment routes
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/shipment/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOpen)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/toggle_hold", h.ToggleHold)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.POST("/:id/file", h.File)
		orders.GET("/:id/filings", h.ListFilings)
		orders.GET("/:id/shipment", h.GetShipment)
	}
	shipment := rg.Group("/shipment")
	{
		shipment.GET("/destinations", h.ListDestinations)
		shipment.POST("/destinations/:id/disable", h.DisableDestination)
		shipment.GET("/methods", h.ListMethods)
	}
}
