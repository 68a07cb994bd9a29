package stockcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	appfba "github.com/stcadmin/backend/internal/application/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
)

// maxResponseSize is the maximum allowed response size from the stock check service (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Client queries the upstream inventory service for live stock levels.
// It implements the FBA order service's StockChecker contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new stock check client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type stockLevelsResponse struct {
	SKU       string `json:"sku"`
	Available int    `json:"available"`
	InOrders  int    `json:"in_orders"`
}

// GetStockLevels fetches the current stock snapshot for a SKU
func (c *Client) GetStockLevels(ctx context.Context, sku string) (*appfba.StockLevels, error) {
	if sku == "" {
		return nil, shared.ErrMissingField
	}

	endpoint := c.baseURL + "/api/stock_levels/" + url.PathEscape(sku)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("stockcheck: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, shared.WrapDomainError("STOCK_CHECK_UNAVAILABLE", "Stock check service could not be reached", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("stockcheck: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, shared.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, shared.NewDomainError("STOCK_CHECK_UNAVAILABLE", fmt.Sprintf("Stock check service returned HTTP %d", resp.StatusCode))
	}

	var levels stockLevelsResponse
	if err := json.Unmarshal(body, &levels); err != nil {
		return nil, fmt.Errorf("stockcheck: failed to decode response: %w", err)
	}

	c.logger.Debug("fetched stock levels",
		zap.String("sku", sku),
		zap.Int("available", levels.Available),
		zap.Int("in_orders", levels.InOrders))

	return &appfba.StockLevels{
		Available: levels.Available,
		InOrders:  levels.InOrders,
	}, nil
}
