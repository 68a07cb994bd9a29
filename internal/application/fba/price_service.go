package fba

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
)

// ShippingQuoteRequest asks what sending a product to a region costs
type ShippingQuoteRequest struct {
	RegionID           string `json:"region_id" binding:"required,uuid"`
	ProductWeightGrams int64  `json:"product_weight_grams" binding:"required,gt=0"`
	Quantity           int    `json:"quantity" binding:"required,gt=0"`
	StockLevel         int    `json:"stock_level" binding:"gte=0"`
}

// ShippingQuoteResponse is the postage component of an FBA price quote
type ShippingQuoteResponse struct {
	Region             string `json:"region"`
	PostagePence       int64  `json:"postage_pence"`
	PostagePerItem     string `json:"postage_per_item"`
	MaxQuantity        int    `json:"max_quantity"`
	MaxQuantityNoStock int    `json:"max_quantity_no_stock"`
}

// RegionResponse describes a region available for FBA orders
type RegionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CountryISO   string `json:"country_iso"`
	WeightUnit   string `json:"weight_unit"`
	SizeUnit     string `json:"size_unit"`
	PlacementFee int64  `json:"placement_fee_pence"`
}

// PriceService quotes the shipping component of FBA pricing
type PriceService struct {
	regionRepo fba.RegionRepository
	logger     *zap.Logger
}

// NewPriceService creates a new PriceService
func NewPriceService(regionRepo fba.RegionRepository, logger *zap.Logger) *PriceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{regionRepo: regionRepo, logger: logger}
}

// ListRegions returns the active regions, in display order
func (s *PriceService) ListRegions(ctx context.Context) ([]RegionResponse, error) {
	regions, err := s.regionRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}
	responses := make([]RegionResponse, len(regions))
	for i, region := range regions {
		responses[i] = RegionResponse{
			ID:           region.ID.String(),
			Name:         region.Name,
			CountryISO:   region.CountryISO,
			WeightUnit:   region.FulfillmentUnit.WeightUnit(),
			SizeUnit:     region.FulfillmentUnit.SizeUnit(),
			PlacementFee: region.PlacementFee,
		}
	}
	return responses, nil
}

// QuoteShipping prices postage for a quantity of one product into a
// region. The per-item figure is pounds to two decimal places.
func (s *PriceService) QuoteShipping(ctx context.Context, req ShippingQuoteRequest) (*ShippingQuoteResponse, error) {
	regionID, err := uuid.Parse(req.RegionID)
	if err != nil {
		return nil, shared.ErrInvalidID
	}
	region, err := s.regionRepo.FindByID(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load region: %w", err)
	}
	if !region.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Region is not active")
	}

	shippedWeight := req.ProductWeightGrams * int64(req.Quantity)
	postage := region.CalculateShipping(shippedWeight)
	perItem := decimal.NewFromInt(postage).
		Div(decimal.NewFromInt(int64(req.Quantity))).
		Div(decimal.NewFromInt(100)).
		StringFixed(2)

	maxNoStock := 0
	if region.MaxWeight != nil {
		maxNoStock = int(int64(*region.MaxWeight) * 1000 / req.ProductWeightGrams)
	}
	maxQuantity := maxNoStock
	if req.StockLevel < maxQuantity {
		maxQuantity = req.StockLevel
	}

	return &ShippingQuoteResponse{
		Region:             region.Name,
		PostagePence:       postage,
		PostagePerItem:     perItem,
		MaxQuantity:        maxQuantity,
		MaxQuantityNoStock: maxNoStock,
	}, nil
}
