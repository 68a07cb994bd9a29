package fba

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/fba"
)

// CreateOrderRequest represents a request to open an FBA order
type CreateOrderRequest struct {
	RegionID             string `json:"region_id" binding:"required,uuid"`
	ProductSKU           string `json:"product_sku" binding:"required"`
	ProductName          string `json:"product_name" binding:"required"`
	ProductWeightGrams   int64  `json:"product_weight_grams" binding:"min=0"`
	ProductHSCode        string `json:"product_hs_code"`
	ProductASIN          string `json:"product_asin"`
	ProductPurchasePrice int64  `json:"product_purchase_price" binding:"min=0"`
	SellingPrice         int64  `json:"selling_price" binding:"min=0"`
	FBAFee               int64  `json:"fba_fee" binding:"min=0"`
	ApproximateQuantity  int    `json:"approximate_quantity" binding:"required,min=1"`
}

// FulfillOrderRequest records the packed details when closing an order
type FulfillOrderRequest struct {
	BoxWeightKg    decimal.Decimal `json:"box_weight_kg" binding:"required"`
	QuantitySent   int             `json:"quantity_sent" binding:"min=0"`
	TrackingNumber string          `json:"tracking_number"`
	Notes          string          `json:"notes"`
}

// StopOrderRequest carries the reason an order is being stopped
type StopOrderRequest struct {
	Reason string     `json:"reason" binding:"required"`
	Until  *time.Time `json:"until"`
}

// ListOrdersRequest represents a request to list FBA orders
type ListOrdersRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// OrderResponse represents an FBA order
type OrderResponse struct {
	ID                  string     `json:"id"`
	RegionID            string     `json:"region_id"`
	Status              string     `json:"status"`
	ProductSKU          string     `json:"product_sku"`
	ProductName         string     `json:"product_name"`
	ProductWeightGrams  int64      `json:"product_weight_grams"`
	ProductASIN         string     `json:"product_asin"`
	ApproximateQuantity int        `json:"approximate_quantity"`
	QuantitySent        *int       `json:"quantity_sent"`
	BoxWeightKg         *string    `json:"box_weight_kg"`
	TrackingNumber      string     `json:"tracking_number"`
	Printed             bool       `json:"printed"`
	OnHold              bool       `json:"on_hold"`
	IsStopped           bool       `json:"is_stopped"`
	StoppedReason       string     `json:"stopped_reason,omitempty"`
	Prioritised         bool       `json:"prioritised"`
	Urgent              bool       `json:"urgent"`
	ClosedAt            *time.Time `json:"closed_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ListOrdersResponse represents a paginated list of FBA orders
type ListOrdersResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// StockLevelsResponse mirrors the stock check service's answer
type StockLevelsResponse struct {
	Available int `json:"available"`
	InOrders  int `json:"in_orders"`
	Total     int `json:"total"`
}

func toOrderResponse(order *fba.Order, urgentSince time.Time) OrderResponse {
	resp := OrderResponse{
		ID:                  order.ID.String(),
		RegionID:            order.RegionID.String(),
		Status:              string(order.Status()),
		ProductSKU:          order.ProductSKU,
		ProductName:         order.ProductName,
		ProductWeightGrams:  order.ProductWeightGrams,
		ProductASIN:         order.ProductASIN,
		ApproximateQuantity: order.ApproximateQuantity,
		QuantitySent:        order.QuantitySent,
		TrackingNumber:      order.TrackingNumber,
		Printed:             order.Printed,
		OnHold:              order.OnHold,
		IsStopped:           order.IsStopped,
		StoppedReason:       order.StoppedReason,
		Prioritised:         order.IsPrioritised(),
		Urgent:              !order.IsClosed() && order.CreatedAt.Before(urgentSince),
		ClosedAt:            order.ClosedAt,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
	if order.BoxWeightKg != nil {
		weight := order.BoxWeightKg.String()
		resp.BoxWeightKg = &weight
	}
	return resp
}
