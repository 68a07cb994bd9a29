package fba_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appfba "github.com/stcadmin/backend/internal/application/fba"
	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
)

type MockProfitRepository struct {
	mock.Mock
}

func (m *MockProfitRepository) ReplaceImport(ctx context.Context, importDate time.Time, snapshots []fba.ProfitSnapshot) error {
	args := m.Called(ctx, importDate, snapshots)
	return args.Error(0)
}

func (m *MockProfitRepository) FindByImportDate(ctx context.Context, importDate time.Time) ([]fba.ProfitSnapshot, error) {
	args := m.Called(ctx, importDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fba.ProfitSnapshot), args.Error(1)
}

func (m *MockProfitRepository) LatestImportDate(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

type MockFeeEstimateSource struct {
	mock.Mock
}

func (m *MockFeeEstimateSource) Fees(ctx context.Context) ([]fba.FeeEstimate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fba.FeeEstimate), args.Error(1)
}

func newFulfilledTestOrder(t *testing.T, asin string) *fba.Order {
	t.Helper()
	order := newTestOrder(t)
	order.ProductASIN = asin
	order.ProductWeightGrams = 500
	order.ProductPurchasePrice = 300
	quantity := 10
	order.QuantitySent = &quantity
	closed := time.Now()
	order.ClosedAt = &closed
	return order
}

func newProfitTestRegion(t *testing.T, countryISO string) *fba.Region {
	t.Helper()
	region, err := fba.NewRegion("Germany", 1)
	require.NoError(t, err)
	region.CountryISO = countryISO
	region.PlacementFee = 50
	region.PostagePerKg = 200
	return region
}

func TestProfitService_UpdateProfit(t *testing.T) {
	importDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fee := fba.FeeEstimate{
		ChannelSKU:   "DE-ABC-123",
		ASIN:         "B00TEST123",
		CountryISO:   "DE",
		ListingName:  "Widget",
		SellingPrice: 1299,
		ReferralFee:  195,
		ClosingFee:   30,
		HandlingFee:  20,
	}

	newService := func() (*appfba.ProfitService, *MockOrderRepository, *MockRegionRepository, *MockProfitRepository) {
		orderRepo := new(MockOrderRepository)
		regionRepo := new(MockRegionRepository)
		profitRepo := new(MockProfitRepository)
		service := appfba.NewProfitService(orderRepo, regionRepo, profitRepo, nil)
		return service, orderRepo, regionRepo, profitRepo
	}

	t.Run("stores a snapshot per matched fee row", func(t *testing.T) {
		service, orderRepo, regionRepo, profitRepo := newService()
		source := new(MockFeeEstimateSource)
		order := newFulfilledTestOrder(t, fee.ASIN)
		region := newProfitTestRegion(t, "DE")

		source.On("Fees", mock.Anything).Return([]fba.FeeEstimate{fee}, nil)
		orderRepo.On("LatestFulfilledByASIN", mock.Anything, fee.ASIN).Return(order, nil)
		regionRepo.On("FindByCountry", mock.Anything, "DE").Return(region, nil)
		profitRepo.On("ReplaceImport", mock.Anything, importDate, mock.MatchedBy(func(snapshots []fba.ProfitSnapshot) bool {
			return len(snapshots) == 1 && snapshots[0].Profit == 604
		})).Return(nil)

		count, err := service.UpdateProfit(context.Background(), importDate, source)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		profitRepo.AssertExpectations(t)
	})

	t.Run("skips products that were never fulfilled", func(t *testing.T) {
		service, orderRepo, _, profitRepo := newService()
		source := new(MockFeeEstimateSource)

		source.On("Fees", mock.Anything).Return([]fba.FeeEstimate{fee}, nil)
		orderRepo.On("LatestFulfilledByASIN", mock.Anything, fee.ASIN).Return(nil, shared.ErrNotFound)
		profitRepo.On("ReplaceImport", mock.Anything, importDate, mock.MatchedBy(func(snapshots []fba.ProfitSnapshot) bool {
			return len(snapshots) == 0
		})).Return(nil)

		count, err := service.UpdateProfit(context.Background(), importDate, source)

		require.NoError(t, err)
		assert.Zero(t, count)
		profitRepo.AssertExpectations(t)
	})

	t.Run("skips fee rows without a matching region", func(t *testing.T) {
		service, orderRepo, regionRepo, profitRepo := newService()
		source := new(MockFeeEstimateSource)
		order := newFulfilledTestOrder(t, fee.ASIN)

		source.On("Fees", mock.Anything).Return([]fba.FeeEstimate{fee}, nil)
		orderRepo.On("LatestFulfilledByASIN", mock.Anything, fee.ASIN).Return(order, nil)
		regionRepo.On("FindByCountry", mock.Anything, "DE").Return(nil, shared.ErrNotFound)
		profitRepo.On("ReplaceImport", mock.Anything, importDate, mock.Anything).Return(nil)

		count, err := service.UpdateProfit(context.Background(), importDate, source)

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("propagates source failure", func(t *testing.T) {
		service, _, _, _ := newService()
		source := new(MockFeeEstimateSource)
		source.On("Fees", mock.Anything).Return(nil, errors.New("file missing"))

		_, err := service.UpdateProfit(context.Background(), importDate, source)

		assert.Error(t, err)
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		service, orderRepo, regionRepo, profitRepo := newService()
		source := new(MockFeeEstimateSource)
		order := newFulfilledTestOrder(t, fee.ASIN)
		region := newProfitTestRegion(t, "DE")

		source.On("Fees", mock.Anything).Return([]fba.FeeEstimate{fee}, nil)
		orderRepo.On("LatestFulfilledByASIN", mock.Anything, fee.ASIN).Return(order, nil)
		regionRepo.On("FindByCountry", mock.Anything, "DE").Return(region, nil)
		profitRepo.On("ReplaceImport", mock.Anything, importDate, mock.Anything).Return(errors.New("db down"))

		_, err := service.UpdateProfit(context.Background(), importDate, source)

		assert.Error(t, err)
	})
}
