package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfba "github.com/stcadmin/backend/internal/application/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/interfaces/http/middleware"
)

// FBAHandler handles FBA order API endpoints
type FBAHandler struct {
	BaseHandler
	orderService *appfba.OrderService
	priceService *appfba.PriceService
}

// NewFBAHandler creates a new FBAHandler
func NewFBAHandler(orderService *appfba.OrderService, priceService *appfba.PriceService) *FBAHandler {
	return &FBAHandler{
		orderService: orderService,
		priceService: priceService,
	}
}

// StockLevelsRequest identifies the orders to resolve stock levels for
type StockLevelsRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1,dive,uuid"`
}

// CreateOrder opens a new FBA order
func (h *FBAHandler) CreateOrder(c *gin.Context) {
	var req appfba.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	resp, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOrders returns FBA orders matching the query filter
func (h *FBAHandler) ListOrders(c *gin.Context) {
	var req appfba.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	resp, err := h.orderService.ListOrders(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAwaitingFulfillment returns the open fulfillment queue
func (h *FBAHandler) ListAwaitingFulfillment(c *gin.Context) {
	resp, err := h.orderService.ListAwaitingFulfillment(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetOrder returns one FBA order
func (h *FBAHandler) GetOrder(c *gin.Context) {
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

// DeleteOrder removes an unfulfilled FBA order
func (h *FBAHandler) DeleteOrder(c *gin.Context) {
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

// Prioritise bumps an order to the front of the fulfillment queue
func (h *FBAHandler) Prioritise(c *gin.Context) {
	h.orderAction(c, h.orderService.Prioritise)
}

// MarkPrinted flags the order's paperwork as printed
func (h *FBAHandler) MarkPrinted(c *gin.Context) {
	h.orderAction(c, h.orderService.MarkPrinted)
}

// UnmarkPrinted clears the printed flag
func (h *FBAHandler) UnmarkPrinted(c *gin.Context) {
	h.orderAction(c, h.orderService.UnmarkPrinted)
}

// Hold places the order on hold
func (h *FBAHandler) Hold(c *gin.Context) {
	h.orderAction(c, h.orderService.Hold)
}

// TakeOffHold releases the order from hold
func (h *FBAHandler) TakeOffHold(c *gin.Context) {
	h.orderAction(c, h.orderService.TakeOffHold)
}

// Stop pauses the order with a reason
func (h *FBAHandler) Stop(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req appfba.StopOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	if err := h.orderService.Stop(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Unstop resumes a stopped order
func (h *FBAHandler) Unstop(c *gin.Context) {
	h.orderAction(c, h.orderService.Unstop)
}

// Fulfill closes the order with its final shipping details
func (h *FBAHandler) Fulfill(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req appfba.FulfillOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	if err := h.orderService.Fulfill(c.Request.Context(), id, userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// StockLevels resolves live stock levels for a set of orders
func (h *FBAHandler) StockLevels(c *gin.Context) {
	var req StockLevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	orderIDs := make([]uuid.UUID, len(req.OrderIDs))
	for i, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.HandleError(c, shared.ErrInvalidID)
			return
		}
		orderIDs[i] = id
	}
	resp, err := h.orderService.GetStockLevelsForOrders(c.Request.Context(), orderIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListRegions returns active FBA regions
func (h *FBAHandler) ListRegions(c *gin.Context) {
	resp, err := h.priceService.ListRegions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// QuoteShipping prices posting a quantity of a product to a region
func (h *FBAHandler) QuoteShipping(c *gin.Context) {
	var req appfba.ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}
	resp, err := h.priceService.QuoteShipping(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *FBAHandler) orderAction(c *gin.Context, action func(ctx context.Context, id uuid.UUID) error) {
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := action(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all FBA routes
func (h *FBAHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/fba/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/awaiting_fulfillment", h.ListAwaitingFulfillment)
		orders.GET("/:id", h.GetOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.POST("/:id/prioritise", h.Prioritise)
		orders.POST("/:id/printed", h.MarkPrinted)
		orders.DELETE("/:id/printed", h.UnmarkPrinted)
		orders.POST("/:id/hold", h.Hold)
		orders.DELETE("/:id/hold", h.TakeOffHold)
		orders.POST("/:id/stop", h.Stop)
		orders.DELETE("/:id/stop", h.Unstop)
		orders.POST("/:id/fulfill", h.Fulfill)
	}
	fba := rg.Group("/fba")
	{
		fba.POST("/stock_levels", h.StockLevels)
		fba.GET("/regions", h.ListRegions)
		fba.POST("/price_quote", h.QuoteShipping)
	}
}
