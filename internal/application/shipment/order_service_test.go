package shipment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appshipment "github.com/stcadmin/backend/internal/application/shipment"
	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Destination), args.Error(1)
}

func (m *MockDestinationRepository) FindEnabled(ctx context.Context) ([]shipment.Destination, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipment.Destination), args.Error(1)
}

func (m *MockDestinationRepository) Save(ctx context.Context, destination *shipment.Destination) error {
	args := m.Called(ctx, destination)
	return args.Error(0)
}

type MockMethodRepository struct {
	mock.Mock
}

func (m *MockMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Method, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Method), args.Error(1)
}

func (m *MockMethodRepository) FindEnabled(ctx context.Context) ([]shipment.Method, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipment.Method), args.Error(1)
}

func (m *MockMethodRepository) Save(ctx context.Context, method *shipment.Method) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func newOrderService(t *testing.T) (*appshipment.OrderService, *MockOrderRepository, *MockDestinationRepository, *MockMethodRepository) {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	destinationRepo := new(MockDestinationRepository)
	methodRepo := new(MockMethodRepository)
	service := appshipment.NewOrderService(orderRepo, destinationRepo, methodRepo, nil)
	return service, orderRepo, destinationRepo, methodRepo
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Run("creates order with package tree", func(t *testing.T) {
		service, orderRepo, destinationRepo, methodRepo := newOrderService(t)

		destination, err := shipment.NewDestination("Amazon DE", "STC FBA")
		require.NoError(t, err)
		method, err := shipment.NewMethod("Road Standard", "ROAD-STD", 1)
		require.NoError(t, err)

		destinationRepo.On("FindByID", mock.Anything, destination.ID).Return(destination, nil)
		methodRepo.On("FindByID", mock.Anything, method.ID).Return(method, nil)
		orderRepo.On("NextSequence", mock.Anything).Return(12, nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*shipment.Order")).Return(nil)

		resp, err := service.CreateOrder(context.Background(), uuid.New(), appshipment.CreateOrderRequest{
			DestinationID: destination.ID.String(),
			MethodID:      method.ID.String(),
			Packages: []appshipment.NewPackageRequest{{
				LengthCm: 30, WidthCm: 20, HeightCm: 10,
				Items: []appshipment.NewItemRequest{{
					SKU: "ABC-123", Description: "Widget", Quantity: 2,
					WeightKg: "0.5", ValuePence: 400, CountryOfOrigin: "CN", HRCode: "950300",
				}},
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "STC_FBA_00012", resp.OrderNumber)
		assert.Equal(t, 1, resp.PackageCount)
		assert.Equal(t, 2, resp.ItemCount)
		orderRepo.AssertExpectations(t)
	})

	t.Run("disabled destination is rejected", func(t *testing.T) {
		service, orderRepo, destinationRepo, methodRepo := newOrderService(t)

		destination, err := shipment.NewDestination("Amazon DE", "STC FBA")
		require.NoError(t, err)
		destination.Disable()
		method, err := shipment.NewMethod("Road Standard", "ROAD-STD", 1)
		require.NoError(t, err)

		destinationRepo.On("FindByID", mock.Anything, destination.ID).Return(destination, nil)
		methodRepo.On("FindByID", mock.Anything, method.ID).Return(method, nil)
		orderRepo.On("NextSequence", mock.Anything).Return(13, nil)

		_, err = service.CreateOrder(context.Background(), uuid.New(), appshipment.CreateOrderRequest{
			DestinationID: destination.ID.String(),
			MethodID:      method.ID.String(),
		})
		assert.ErrorIs(t, err, shipment.ErrDestinationDisabled)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed weight is rejected", func(t *testing.T) {
		service, orderRepo, destinationRepo, methodRepo := newOrderService(t)

		destination, err := shipment.NewDestination("Amazon DE", "STC FBA")
		require.NoError(t, err)
		method, err := shipment.NewMethod("Road Standard", "ROAD-STD", 1)
		require.NoError(t, err)

		destinationRepo.On("FindByID", mock.Anything, destination.ID).Return(destination, nil)
		methodRepo.On("FindByID", mock.Anything, method.ID).Return(method, nil)
		orderRepo.On("NextSequence", mock.Anything).Return(14, nil)

		_, err = service.CreateOrder(context.Background(), uuid.New(), appshipment.CreateOrderRequest{
			DestinationID: destination.ID.String(),
			MethodID:      method.ID.String(),
			Packages: []appshipment.NewPackageRequest{{
				LengthCm: 30, WidthCm: 20, HeightCm: 10,
				Items: []appshipment.NewItemRequest{{
					SKU: "ABC-123", Description: "Widget", Quantity: 1, WeightKg: "heavy",
				}},
			}},
		})
		assert.Error(t, err)
	})
}

func TestOrderService_ToggleHold(t *testing.T) {
	service, orderRepo, _, _ := newOrderService(t)

	order := newFilableOrder(t)
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)

	resp, err := service.ToggleHold(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsOnHold)

	resp, err = service.ToggleHold(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsOnHold)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	t.Run("exported orders cannot be deleted", func(t *testing.T) {
		service, orderRepo, _, _ := newOrderService(t)

		order := newFilableOrder(t)
		require.NoError(t, order.AttachExport(uuid.New()))
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		err := service.DeleteOrder(context.Background(), order.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("open orders are deleted", func(t *testing.T) {
		service, orderRepo, _, _ := newOrderService(t)

		order := newFilableOrder(t)
		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

		require.NoError(t, service.DeleteOrder(context.Background(), order.ID))
		orderRepo.AssertExpectations(t)
	})
}

func TestOrderService_Destinations(t *testing.T) {
	t.Run("lists enabled destinations", func(t *testing.T) {
		service, _, destinationRepo, _ := newOrderService(t)

		first, err := shipment.NewDestination("Amazon DE", "STC FBA")
		require.NoError(t, err)
		second, err := shipment.NewDestination("Amazon FR", "STC FBA")
		require.NoError(t, err)
		destinationRepo.On("FindEnabled", mock.Anything).Return([]shipment.Destination{*first, *second}, nil)

		resp, err := service.ListDestinations(context.Background())
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "Amazon DE", resp[0].Name)
		assert.True(t, resp[0].IsEnabled)
	})

	t.Run("disable withdraws a destination", func(t *testing.T) {
		service, _, destinationRepo, _ := newOrderService(t)

		destination, err := shipment.NewDestination("Amazon DE", "STC FBA")
		require.NoError(t, err)
		destinationRepo.On("FindByID", mock.Anything, destination.ID).Return(destination, nil)
		destinationRepo.On("Save", mock.Anything, destination).Return(nil)

		resp, err := service.DisableDestination(context.Background(), destination.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsEnabled)
		destinationRepo.AssertExpectations(t)
	})

	t.Run("disable of unknown destination", func(t *testing.T) {
		service, _, destinationRepo, _ := newOrderService(t)
		destinationRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.DisableDestination(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_ListMethods(t *testing.T) {
	service, _, _, methodRepo := newOrderService(t)

	method, err := shipment.NewMethod("Road Standard", "ROAD-STD", 1)
	require.NoError(t, err)
	methodRepo.On("FindEnabled", mock.Anything).Return([]shipment.Method{*method}, nil)

	resp, err := service.ListMethods(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "ROAD-STD", resp[0].Identifier)
	assert.Equal(t, 1, resp[0].Priority)
}
