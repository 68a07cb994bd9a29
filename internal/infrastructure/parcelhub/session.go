package parcelhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// maxResponseSize is the maximum allowed response size from the Parcelhub API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// tokenRefreshMargin re-authorises slightly before the token expires so
// a shipment request never goes out with a token about to lapse.
const tokenRefreshMargin = 30 * time.Second

// Credentials identify the Parcelhub account
type Credentials struct {
	Username  string
	Password  string
	AccountID string
}

// Session holds a time-bounded Parcelhub API token and re-authorises
// when it expires. Safe for concurrent use.
type Session struct {
	baseURL     string
	credentials Credentials
	httpClient  *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewSession creates an unauthorised session. The first request
// authorises lazily.
func NewSession(baseURL string, credentials Credentials, httpClient *http.Client) *Session {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Session{
		baseURL:     baseURL,
		credentials: credentials,
		httpClient:  httpClient,
	}
}

type tokenRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AccountID string `json:"account_id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authorise obtains a fresh API token
func (s *Session) Authorise(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authoriseLocked(ctx)
}

// Token returns a valid API token, re-authorising if the current one
// has expired or is about to.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || time.Now().After(s.expires.Add(-tokenRefreshMargin)) {
		if err := s.authoriseLocked(ctx); err != nil {
			return "", err
		}
	}
	return s.token, nil
}

func (s *Session) authoriseLocked(ctx context.Context) error {
	body, err := json.Marshal(tokenRequest{
		Username:  s.credentials.Username,
		Password:  s.credentials.Password,
		AccountID: s.credentials.AccountID,
	})
	if err != nil {
		return fmt.Errorf("parcelhub: failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/1.0/Token", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parcelhub: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("parcelhub: failed to read token response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return mapStatusError(resp.StatusCode, respBody)
	}

	var token tokenResponse
	if err := json.Unmarshal(respBody, &token); err != nil {
		return fmt.Errorf("parcelhub: failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("parcelhub: token response contained no access token")
	}

	s.token = token.AccessToken
	s.expires = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return nil
}
