package fba

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	order, err := NewOrder(NewOrderInput{
		RegionID:            uuid.New(),
		ProductSKU:          "ABC-123",
		ProductName:         "Test Product",
		ProductWeightGrams:  500,
		ProductHSCode:       "950300",
		SellingPrice:        1299,
		FBAFee:              250,
		ApproximateQuantity: 20,
	})
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in not processed state", func(t *testing.T) {
		order := createTestOrder(t)

		assert.Equal(t, StatusNotProcessed, order.Status())
		assert.False(t, order.IsClosed())
		assert.False(t, order.Printed)
		assert.Zero(t, order.PriorityTemp)
	})

	t.Run("rejects empty region", func(t *testing.T) {
		_, err := NewOrder(NewOrderInput{ProductSKU: "ABC-123", ApproximateQuantity: 1})
		assert.Error(t, err)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewOrder(NewOrderInput{RegionID: uuid.New(), ApproximateQuantity: 1})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewOrder(NewOrderInput{RegionID: uuid.New(), ProductSKU: "ABC-123"})
		assert.Error(t, err)
	})
}

func TestOrder_Status(t *testing.T) {
	t.Run("printed", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPrinted())
		assert.Equal(t, StatusPrinted, order.Status())
	})

	t.Run("ready when details complete", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.SetFulfillmentDetails(decimal.NewFromFloat(12.5), 20))
		assert.Equal(t, StatusReady, order.Status())
	})

	t.Run("on hold overrides progress", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPrinted())
		require.NoError(t, order.Hold())
		assert.Equal(t, StatusOnHold, order.Status())
	})

	t.Run("stopped overrides hold", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Hold())
		require.NoError(t, order.Stop("supplier delay", nil))
		assert.Equal(t, StatusStopped, order.Status())
	})

	t.Run("fulfilled overrides everything", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Hold())
		require.NoError(t, order.Close(uuid.New()))
		assert.Equal(t, StatusFulfilled, order.Status())
	})
}

func TestOrder_MarkPrinted(t *testing.T) {
	t.Run("marks printed once", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPrinted())
		assert.True(t, order.Printed)
	})

	t.Run("rejects double mark", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPrinted())
		assert.Error(t, order.MarkPrinted())
	})

	t.Run("unmark allows marking again", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPrinted())
		order.UnmarkPrinted()
		assert.False(t, order.Printed)
		assert.NoError(t, order.MarkPrinted())
	})

	t.Run("rejects mark on closed order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Close(uuid.New()))
		assert.Error(t, order.MarkPrinted())
	})
}

func TestOrder_HoldAndStop(t *testing.T) {
	t.Run("hold and take off hold round trips", func(t *testing.T) {
		order := createTestOrder(t)
		before := order.Status()

		require.NoError(t, order.Hold())
		assert.True(t, order.OnHold)
		order.TakeOffHold()
		assert.False(t, order.OnHold)
		assert.Equal(t, before, order.Status())
	})

	t.Run("hold and stop are independent", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Hold())
		require.NoError(t, order.Stop("out of stock", nil))
		order.TakeOffHold()
		assert.True(t, order.IsStopped)
	})

	t.Run("unstop clears stop fields", func(t *testing.T) {
		order := createTestOrder(t)
		until := time.Now().AddDate(0, 0, 7)
		require.NoError(t, order.Stop("awaiting restock", &until))
		require.NotNil(t, order.StoppedAt)

		order.Unstop()
		assert.False(t, order.IsStopped)
		assert.Empty(t, order.StoppedReason)
		assert.Nil(t, order.StoppedAt)
		assert.Nil(t, order.StoppedUntil)
	})
}

func TestOrder_Close(t *testing.T) {
	t.Run("sets closed at and clears blocking flags", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Hold())
		order.SetPriority(7)
		userID := uuid.New()

		require.NoError(t, order.Close(userID))

		assert.NotNil(t, order.ClosedAt)
		assert.False(t, order.OnHold)
		assert.False(t, order.IsStopped)
		assert.Zero(t, order.PriorityTemp)
		require.NotNil(t, order.FulfilledBy)
		assert.Equal(t, userID, *order.FulfilledBy)
	})

	t.Run("rejects double close", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Close(uuid.New()))
		assert.Error(t, order.Close(uuid.New()))
	})
}

func TestRegion_CalculateShipping(t *testing.T) {
	region, err := NewRegion("EU", 1)
	require.NoError(t, err)
	region.PostagePerKg = 500
	region.PostageOverheadG = 100
	region.MinShippingCost = 150

	t.Run("weight based", func(t *testing.T) {
		// (1900g + 100g) * 500 / 1000 = 1000
		assert.Equal(t, int64(1000), region.CalculateShipping(1900))
	})

	t.Run("applies minimum floor", func(t *testing.T) {
		assert.Equal(t, int64(150), region.CalculateShipping(100))
	})

	t.Run("fixed price takes precedence", func(t *testing.T) {
		fixed := int64(750)
		region.PostagePrice = &fixed
		assert.Equal(t, fixed, region.CalculateShipping(10000))
	})
}
