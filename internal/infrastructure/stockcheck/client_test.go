package stockcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stcadmin/backend/internal/domain/shared"
)

func TestClient_GetStockLevels(t *testing.T) {
	t.Run("fetches stock levels for a SKU", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/stock_levels/ABC-123", r.URL.Path)
			json.NewEncoder(w).Encode(stockLevelsResponse{SKU: "ABC-123", Available: 12, InOrders: 5})
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second, nil)
		levels, err := client.GetStockLevels(context.Background(), "ABC-123")

		require.NoError(t, err)
		assert.Equal(t, 12, levels.Available)
		assert.Equal(t, 5, levels.InOrders)
	})

	t.Run("unknown SKU", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second, nil)
		levels, err := client.GetStockLevels(context.Background(), "NO-SUCH")

		assert.Nil(t, levels)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("empty SKU is rejected without a request", func(t *testing.T) {
		client := NewClient("http://unused", 5*time.Second, nil)
		_, err := client.GetStockLevels(context.Background(), "")
		assert.ErrorIs(t, err, shared.ErrMissingField)
	})

	t.Run("upstream failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, 5*time.Second, nil)
		_, err := client.GetStockLevels(context.Background(), "ABC-123")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})
}
