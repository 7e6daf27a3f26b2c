package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"
)

var (
	// ErrNotReady means the provider handshake has not completed yet. Callers
	// must block submission and prompt the user to retry shortly.
	ErrNotReady = errors.New("challenge provider not ready")
	// ErrEmptyToken means the provider answered but returned no usable token.
	ErrEmptyToken = errors.New("challenge provider returned empty token")
)

// Client talks to the third-party attestation provider. Tokens are opaque and
// single-use; one is acquired per submission attempt, scoped to an action
// name.
type Client struct {
	endpoint string
	siteKey  string
	http     *http.Client
	ready    atomic.Bool
}

func NewClient(endpoint, siteKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		siteKey:  siteKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Init performs the provider handshake. Until it succeeds, AcquireToken fails
// with ErrNotReady.
func (c *Client) Init(ctx context.Context) error {
	url := fmt.Sprintf("%s/v1/ready?site_key=%s", c.endpoint, c.siteKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build handshake request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("challenge provider handshake failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("challenge provider handshake failed: status %d", resp.StatusCode)
	}

	c.ready.Store(true)
	logger.Debug.Printf("Challenge provider ready at %s", c.endpoint)
	return nil
}

func (c *Client) Ready() bool {
	return c.ready.Load()
}

type tokenRequest struct {
	SiteKey string `json:"site_key"`
	Action  string `json:"action"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// AcquireToken requests a fresh attestation token scoped to action.
func (c *Client) AcquireToken(ctx context.Context, action string) (string, error) {
	if !c.Ready() {
		return "", ErrNotReady
	}

	body, err := json.Marshal(tokenRequest{SiteKey: c.siteKey, Action: action})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	url := c.endpoint + "/v1/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach challenge provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("challenge provider rejected request: status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.Token == "" {
		return "", ErrEmptyToken
	}

	return tr.Token, nil
}
