package fba

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stcadmin/backend/internal/domain/shared"
)

func createFulfilledOrder(t *testing.T) *Order {
	order := createTestOrder(t)
	order.ProductPurchasePrice = 300
	quantity := 10
	order.QuantitySent = &quantity
	closed := time.Now()
	order.ClosedAt = &closed
	return order
}

func createProfitRegion(t *testing.T) *Region {
	region, err := NewRegion("Germany", 1)
	require.NoError(t, err)
	region.CountryISO = "DE"
	region.PlacementFee = 50
	region.PostagePerKg = 200
	return region
}

func TestNewProfitSnapshot(t *testing.T) {
	importDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fee := FeeEstimate{
		ChannelSKU:   "DE-ABC-123",
		ASIN:         "B00TEST123",
		CountryISO:   "DE",
		ListingName:  "Test Product",
		SellingPrice: 1299,
		ReferralFee:  195,
		ClosingFee:   30,
		HandlingFee:  20,
	}

	t.Run("computes per item margin", func(t *testing.T) {
		order := createFulfilledOrder(t)
		region := createProfitRegion(t)

		snapshot, err := NewProfitSnapshot(importDate, fee, order, region)

		require.NoError(t, err)
		// 10 units of 500g at 200p/kg is 1000p shipping, 100p per item.
		assert.Equal(t, int64(100), snapshot.ShippingPrice)
		// 1299 - (50 + 195 + 30 + 20 + 300 + 100)
		assert.Equal(t, int64(604), snapshot.Profit)
		assert.Equal(t, order.ID, snapshot.OrderID)
		assert.Equal(t, region.ID, snapshot.RegionID)
		assert.Equal(t, importDate, snapshot.ImportDate)
		assert.Equal(t, "DE-ABC-123", snapshot.ChannelSKU)
	})

	t.Run("fixed postage price is not divided", func(t *testing.T) {
		order := createFulfilledOrder(t)
		region := createProfitRegion(t)
		postage := int64(2500)
		region.PostagePrice = &postage

		snapshot, err := NewProfitSnapshot(importDate, fee, order, region)

		require.NoError(t, err)
		assert.Equal(t, int64(250), snapshot.ShippingPrice)
	})

	t.Run("rejects open order", func(t *testing.T) {
		order := createFulfilledOrder(t)
		order.ClosedAt = nil

		_, err := NewProfitSnapshot(importDate, fee, order, createProfitRegion(t))

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("rejects order without sent quantity", func(t *testing.T) {
		order := createFulfilledOrder(t)
		order.QuantitySent = nil

		_, err := NewProfitSnapshot(importDate, fee, order, createProfitRegion(t))

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("rejects missing region", func(t *testing.T) {
		_, err := NewProfitSnapshot(importDate, fee, createFulfilledOrder(t), nil)

		assert.Error(t, err)
	})
}
