package shipment

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiling(t *testing.T) {
	t.Run("opens in progress", func(t *testing.T) {
		filing, err := NewFiling(uuid.New())
		require.NoError(t, err)

		status, err := filing.Status()
		require.NoError(t, err)
		assert.Equal(t, FilingInProgress, status)
		assert.Nil(t, filing.CompletedAt)
		assert.Empty(t, filing.ErrorMessage)
	})

	t.Run("requires an order", func(t *testing.T) {
		_, err := NewFiling(uuid.Nil)
		assert.Error(t, err)
	})
}

func TestFiling_Complete(t *testing.T) {
	filing, err := NewFiling(uuid.New())
	require.NoError(t, err)

	shipmentID := uuid.New()
	require.NoError(t, filing.Complete(shipmentID))

	status, err := filing.Status()
	require.NoError(t, err)
	assert.Equal(t, FilingComplete, status)
	assert.Equal(t, shipmentID, *filing.ShipmentID)
	assert.NotNil(t, filing.CompletedAt)

	assert.Error(t, filing.Complete(uuid.New()), "a closed filing cannot be completed again")
}

func TestFiling_Fail(t *testing.T) {
	filing, err := NewFiling(uuid.New())
	require.NoError(t, err)

	cause := NewFilingFailedError(ErrCarrierTimeout)
	require.NoError(t, filing.Fail(cause))

	status, err := filing.Status()
	require.NoError(t, err)
	assert.Equal(t, FilingError, status)
	assert.Contains(t, filing.ErrorMessage, "timed out")

	assert.Error(t, filing.Fail(cause), "a closed filing cannot fail again")
	assert.Error(t, filing.Complete(uuid.New()))
}

func TestFiling_StatusInconsistent(t *testing.T) {
	t.Run("completed without shipment", func(t *testing.T) {
		filing, err := NewFiling(uuid.New())
		require.NoError(t, err)
		now := time.Now()
		filing.CompletedAt = &now

		_, err = filing.Status()
		assert.ErrorIs(t, err, ErrInvalidFilingState)
	})

	t.Run("shipment without completion", func(t *testing.T) {
		filing, err := NewFiling(uuid.New())
		require.NoError(t, err)
		shipmentID := uuid.New()
		filing.ShipmentID = &shipmentID

		_, err = filing.Status()
		assert.ErrorIs(t, err, ErrInvalidFilingState)
	})
}

func TestFiling_ErrorTakesPrecedence(t *testing.T) {
	// A filing that somehow carries both an error and a shipment link
	// still reads as ERROR.
	filing, err := NewFiling(uuid.New())
	require.NoError(t, err)
	now := time.Now()
	shipmentID := uuid.New()
	filing.CompletedAt = &now
	filing.ShipmentID = &shipmentID
	filing.ErrorMessage = "carrier returned 500"

	status, err := filing.Status()
	require.NoError(t, err)
	assert.Equal(t, FilingError, status)
}

func TestNewFilingFailedError(t *testing.T) {
	wrapped := NewFilingFailedError(ErrCarrierRejected)

	assert.Equal(t, "FILING_FAILED", wrapped.Code)
	assert.True(t, errors.Is(wrapped, ErrCarrierRejected))
}

func TestNewParcelhubShipment(t *testing.T) {
	t.Run("records acceptance", func(t *testing.T) {
		orderID := uuid.New()
		rec, err := NewParcelhubShipment(orderID, "PH-12345", "1Z999", "PHTRK-1")
		require.NoError(t, err)

		assert.Equal(t, orderID, rec.OrderID)
		assert.Equal(t, "PH-12345", rec.ShipmentID)
		assert.Equal(t, "1Z999", rec.CourierTrackingNumber)
		assert.Equal(t, "PHTRK-1", rec.ParcelhubTrackingNumber)
	})

	t.Run("requires a carrier shipment id", func(t *testing.T) {
		_, err := NewParcelhubShipment(uuid.New(), "", "1Z999", "PHTRK-1")
		assert.Error(t, err)
	})
}
