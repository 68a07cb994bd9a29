package parcelhub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	appshipment "github.com/stcadmin/backend/internal/application/shipment"
	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/domain/shipment"
)

// Client registers shipment orders with the Parcelhub API. It
// implements the filing engine's CarrierClient contract: every failure
// comes back as one of the carrier error sentinels.
type Client struct {
	baseURL    string
	session    *Session
	configRepo shipment.ConfigRepository
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates a new Parcelhub client. The timeout bounds the
// whole shipment call; Parcelhub can take well over a minute to
// allocate a shipment, so keep it generous.
func NewClient(
	baseURL string,
	credentials Credentials,
	configRepo shipment.ConfigRepository,
	timeout time.Duration,
	logger *zap.Logger,
) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		baseURL:    baseURL,
		session:    NewSession(baseURL, credentials, httpClient),
		configRepo: configRepo,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

type createShipmentResponse struct {
	ShipmentID              string `json:"shipment_id"`
	CourierTrackingNumber   string `json:"courier_tracking_number"`
	ParcelhubTrackingNumber string `json:"parcelhub_tracking_number"`
}

// CreateShipment builds the carrier request from the order's package
// tree and submits it.
func (c *Client) CreateShipment(ctx context.Context, order *shipment.Order) (*appshipment.CarrierResult, error) {
	cfg, err := c.configRepo.GetParcelhubConfig(ctx)
	if err != nil {
		return nil, shared.WrapDomainError("CARRIER_NETWORK", "Carrier configuration is unavailable", err)
	}

	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	request := buildShipmentRequest(order, cfg, c.now())
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("parcelhub: failed to encode shipment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/1.0/Shipment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parcelhub: failed to create shipment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("submitting shipment to carrier",
		zap.String("order_number", order.OrderNumber()),
		zap.Int("packages", len(request.Packages)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, shared.WrapDomainError("CARRIER_NETWORK", "Failed to read carrier response", err)
	}
	if resp.StatusCode >= 400 {
		return nil, mapStatusError(resp.StatusCode, respBody)
	}

	var created createShipmentResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, shared.WrapDomainError("CARRIER_REJECTED", "Carrier returned an unreadable response", err)
	}
	if created.ShipmentID == "" {
		return nil, shared.NewDomainError("CARRIER_REJECTED", "Carrier response contained no shipment ID")
	}

	return &appshipment.CarrierResult{
		ShipmentID:              created.ShipmentID,
		CourierTrackingNumber:   created.CourierTrackingNumber,
		ParcelhubTrackingNumber: created.ParcelhubTrackingNumber,
	}, nil
}

// mapTransportError classifies a request execution failure. Timeouts
// are reported distinctly so the filing record names the right cause.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return shared.WrapDomainError("CARRIER_TIMEOUT", "Carrier API call timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return shared.WrapDomainError("CARRIER_TIMEOUT", "Carrier API call timed out", err)
	}
	return shared.WrapDomainError("CARRIER_NETWORK", "Carrier API could not be reached", err)
}

// mapStatusError classifies an HTTP error status
func mapStatusError(status int, body []byte) error {
	message := fmt.Sprintf("Carrier returned HTTP %d", status)
	if len(body) > 0 {
		var detail struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &detail) == nil && detail.Message != "" {
			message = fmt.Sprintf("Carrier returned HTTP %d: %s", status, detail.Message)
		}
	}
	if status >= 500 {
		return shared.NewDomainError("CARRIER_NETWORK", message)
	}
	return shared.NewDomainError("CARRIER_REJECTED", message)
}
