package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/krestn/HomeAI/internal/config"
	apperrors "github.com/krestn/HomeAI/internal/errors"
)

const maxPlaceResults = 5

// PlacesClient finds local service providers near a city/state.
type PlacesClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewPlacesClient creates a place-search client from config.
func NewPlacesClient(cfg config.PlacesConfig) *PlacesClient {
	return &PlacesClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// FindLocalServices searches for a service type near the given city/state
// and returns up to five pre-rendered entries, each with address, phone,
// website, and rating lines.
func (c *PlacesClient) FindLocalServices(ctx context.Context, service, cityState string) ([]string, error) {
	query := url.Values{
		"query": {fmt.Sprintf("%s near %s", service, cityState)},
		"key":   {c.apiKey},
	}

	body, err := c.get(ctx, c.baseURL+"/textsearch/json?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var results []string
	for i, place := range gjson.GetBytes(body, "results").Array() {
		if i >= maxPlaceResults {
			break
		}

		name := stringOr(place.Get("name"), "Unknown business")
		address := stringOr(place.Get("formatted_address"), "Address unavailable")
		rating := stringOr(place.Get("rating"), "N/A")

		phone, website := c.placeDetails(ctx, place.Get("place_id").String())

		results = append(results, fmt.Sprintf(
			"%s\n  - Address: %s\n  - Phone: %s\n  - Website: %s\n  - Rating: %s",
			name, address, phone, website, rating,
		))
	}

	return results, nil
}

// placeDetails fetches phone and website for one place. Failures degrade
// to "N/A" fields rather than dropping the entry.
func (c *PlacesClient) placeDetails(ctx context.Context, placeID string) (phone, website string) {
	phone, website = "N/A", "N/A"
	if placeID == "" {
		return
	}

	query := url.Values{
		"place_id": {placeID},
		"fields":   {"name,formatted_phone_number,website"},
		"key":      {c.apiKey},
	}
	body, err := c.get(ctx, c.baseURL+"/details/json?"+query.Encode())
	if err != nil {
		return
	}

	result := gjson.GetBytes(body, "result")
	phone = stringOr(result.Get("formatted_phone_number"), "N/A")
	website = formatWebsite(result.Get("website").String())
	return
}

func (c *PlacesClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Lookup(apperrors.CodePlacesFailed, "place search failed", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Lookup(apperrors.CodePlacesFailed, "place search failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Lookup(apperrors.CodePlacesFailed, "place search response unreadable", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Lookup(apperrors.CodePlacesFailed,
			fmt.Sprintf("place search returned status %d", resp.StatusCode), nil)
	}
	return body, nil
}

// formatWebsite reduces a URL to its host, prefixed with www.
func formatWebsite(raw string) string {
	if raw == "" {
		return "N/A"
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "N/A"
	}
	host := parsed.Host
	if host == "" {
		host = parsed.Path
	}
	host = strings.TrimRight(host, "/")
	if host == "" {
		return "N/A"
	}

	if !strings.HasPrefix(host, "www.") && strings.Contains(host, ".") {
		return "www." + host
	}
	return host
}

func stringOr(v gjson.Result, fallback string) string {
	if !v.Exists() || v.String() == "" {
		return fallback
	}
	return v.String()
}
