// Package services provides clients for the external data providers the
// agent's tools delegate to: home valuation, local place search, and
// weather.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/krestn/HomeAI/internal/config"
	apperrors "github.com/krestn/HomeAI/internal/errors"
)

// defaultTimeout bounds every provider call that doesn't set its own.
const defaultTimeout = 10 * time.Second

// ValuationClient looks up estimated home values by address.
type ValuationClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewValuationClient creates a valuation client from config.
func NewValuationClient(cfg config.ValuationConfig) *ValuationClient {
	return &ValuationClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// HomeValue fetches the provider's property-detail blob for an address and
// extracts the zestimate field. An absent field yields "Zestimate not
// found" rather than an error.
func (c *ValuationClient) HomeValue(ctx context.Context, address string) (string, error) {
	endpoint := c.baseURL + "?" + url.Values{"address": {address}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", apperrors.Lookup(apperrors.CodeValuationFailed, "valuation request failed", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.Lookup(apperrors.CodeValuationFailed, "valuation request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Lookup(apperrors.CodeValuationFailed, "valuation response unreadable", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Lookup(apperrors.CodeValuationFailed,
			fmt.Sprintf("valuation provider returned status %d", resp.StatusCode), nil)
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() || len(data.Map()) == 0 {
		return "", apperrors.Lookup(apperrors.CodeValuationFailed,
			"no property details found for this address", nil)
	}

	zestimate := data.Get("zestimate")
	if !zestimate.Exists() || zestimate.String() == "" || zestimate.String() == "0" {
		return "Zestimate not found", nil
	}
	return zestimate.String(), nil
}
