package parcelhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stcadmin/backend/internal/domain/shipment"
)

// MockConfigRepository is a mock implementation of shipment.ConfigRepository
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) GetConfig(ctx context.Context) (*shipment.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Config), args.Error(1)
}

func (m *MockConfigRepository) GetParcelhubConfig(ctx context.Context) (*shipment.ParcelhubConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.ParcelhubConfig), args.Error(1)
}

func (m *MockConfigRepository) SaveParcelhubConfig(ctx context.Context, cfg *shipment.ParcelhubConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func testParcelhubConfig() *shipment.ParcelhubConfig {
	return &shipment.ParcelhubConfig{
		ServiceID:  "SVC-1",
		CustomerID: "CUST-1",
		ProviderID: "PROV-1",
		ReadyTime:  "09:00",
		CloseTime:  "17:30",

		CollectionContactName: "Warehouse Team",
		CollectionCompanyName: "STC",
		CollectionPhone:       "01234 567890",
		CollectionAddress1:    "Unit 3",
		CollectionAddress2:    "Trading Estate",
		CollectionCity:        "Stoke-on-Trent",
		CollectionArea:        "Staffordshire",
		CollectionPostcode:    "ST1 1AA",
		CollectionCountry:     "GB",
		CollectionEmail:       "warehouse@example.com",
	}
}

func testOrder(t *testing.T) *shipment.Order {
	t.Helper()

	destination, err := shipment.NewDestination("Amazon DE", "STC FBA")
	require.NoError(t, err)
	destination.ContactTelephone = "+49 341 000000"
	destination.AddressLine1 = "Amazonstrasse 1"
	destination.City = "Leipzig"
	destination.State = "Saxony"
	destination.CountryISO = "DE"
	destination.Postcode = "04347"

	method, err := shipment.NewMethod("Road Standard", "ROAD-STD", 1)
	require.NoError(t, err)

	order, err := shipment.NewOrder(7, destination, method, uuid.New())
	require.NoError(t, err)

	pkg, err := order.AddPackage(30, 20, 10)
	require.NoError(t, err)
	_, err = pkg.AddItem("ABC-123", "Widget", 3, decimal.RequireFromString("0.5"), 400, "HR01")
	require.NoError(t, err)
	item, err := pkg.AddItem("DEF-456", strings.Repeat("Long Gadget ", 5), 1, decimal.RequireFromString("0.257"), 300, "")
	require.NoError(t, err)
	item.CountryOfOrigin = "CN"

	return order
}

func TestBuildShipmentRequest(t *testing.T) {
	order := testOrder(t)
	cfg := testParcelhubConfig()
	now := time.Date(2026, 2, 5, 11, 30, 0, 0, time.UTC)

	request := buildShipmentRequest(order, cfg, now)

	assert.Equal(t, "STC_FBA_00007", request.Reference)
	assert.Equal(t, "GBP", request.Currency)
	assert.Equal(t, "Goods", request.Description)
	assert.Equal(t, "SVC-1", request.Service.ServiceID)
	assert.Equal(t, "2026-02-05", request.Collection.CollectionDate)
	assert.Equal(t, "09:00", request.Collection.ReadyTime)

	assert.Equal(t, "BUSINESS", request.CollectionAddress.AddressType)
	assert.Equal(t, "BUSINESS", request.DeliveryAddress.AddressType)
	assert.Equal(t, "Amazon DE", request.DeliveryAddress.CompanyName)
	assert.Equal(t, "STC FBA", request.DeliveryAddress.ContactName)
	assert.Equal(t, "Saxony", request.DeliveryAddress.Area)
	assert.Equal(t, "DE", request.DeliveryAddress.Country)
	// Delivery email falls back to the collection contact
	assert.Equal(t, "warehouse@example.com", request.DeliveryAddress.Email)

	assert.Equal(t, "UNAPID", request.Customs.Terms)
	assert.Equal(t, "Sold", request.Customs.Category)
	assert.Equal(t, "7.00", request.Customs.Value)
	assert.Equal(t, "0.00", request.Customs.PostalCharges)

	require.Len(t, request.Packages, 1)
	pkg := request.Packages[0]
	assert.Equal(t, "PALLET", pkg.PackageType)
	assert.Equal(t, 30, pkg.LengthCm)
	assert.Equal(t, "7.00", pkg.Value)

	require.Len(t, pkg.Items, 2)
	assert.Equal(t, "4.00", pkg.Items[0].Value)
	assert.Equal(t, "GB", pkg.Items[0].CountryOfOrigin)
	assert.Equal(t, "Widget", pkg.Items[0].Description)
	assert.Equal(t, "CN", pkg.Items[1].CountryOfOrigin)
	assert.Len(t, pkg.Items[1].Description, 35)
	assert.Equal(t, pkg.Items[1].Description, pkg.Items[1].ProductType)
	assert.Equal(t, "0.26", pkg.Items[1].Weight)
}

// newTestServer serves the token endpoint plus a caller-supplied
// shipment handler.
func newTestServer(t *testing.T, shipmentHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/1.0/Token", func(w http.ResponseWriter, r *http.Request) {
		var body tokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "apiuser", body.Username)
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "test-token", ExpiresIn: 3600})
	})
	mux.HandleFunc("/1.0/Shipment", shipmentHandler)
	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	configRepo := new(MockConfigRepository)
	configRepo.On("GetParcelhubConfig", mock.Anything).Return(testParcelhubConfig(), nil)
	return NewClient(baseURL, Credentials{
		Username:  "apiuser",
		Password:  "secret",
		AccountID: "ACC-1",
	}, configRepo, timeout, nil)
}

func TestClient_CreateShipment(t *testing.T) {
	t.Run("submits the order and returns tracking details", func(t *testing.T) {
		var received ShipmentRequest
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(createShipmentResponse{
				ShipmentID:              "PH-100200",
				CourierTrackingNumber:   "CTN-1",
				ParcelhubTrackingNumber: "PTN-1",
			})
		})
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		result, err := client.CreateShipment(context.Background(), testOrder(t))

		require.NoError(t, err)
		assert.Equal(t, "PH-100200", result.ShipmentID)
		assert.Equal(t, "CTN-1", result.CourierTrackingNumber)
		assert.Equal(t, "STC_FBA_00007", received.Reference)
		assert.Equal(t, "GBP", received.Currency)
	})

	t.Run("client error is a rejection", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid postcode"})
		})
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		result, err := client.CreateShipment(context.Background(), testOrder(t))

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shipment.ErrCarrierRejected)
		assert.Contains(t, err.Error(), "invalid postcode")
	})

	t.Run("server error is a network failure", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		_, err := client.CreateShipment(context.Background(), testOrder(t))

		assert.ErrorIs(t, err, shipment.ErrCarrierNetwork)
	})

	t.Run("slow carrier is a timeout", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		})
		defer server.Close()

		client := newTestClient(t, server.URL, 50*time.Millisecond)
		_, err := client.CreateShipment(context.Background(), testOrder(t))

		assert.ErrorIs(t, err, shipment.ErrCarrierTimeout)
	})

	t.Run("missing shipment ID is a rejection", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		})
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		_, err := client.CreateShipment(context.Background(), testOrder(t))

		assert.ErrorIs(t, err, shipment.ErrCarrierRejected)
	})
}
