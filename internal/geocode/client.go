// Package geocode resolves external place references into addresses and
// coordinates through the provider's place-details endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"truckfleet/apperr"
)

// Place is a resolved place reference.
type Place struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// Resolver resolves a place id into an address and coordinates.
type Resolver interface {
	Resolve(ctx context.Context, placeID string) (*Place, error)
}

// Client calls the place-details HTTP endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// detailsResponse mirrors the provider's place-details payload; only the
// fields we request are modeled.
type detailsResponse struct {
	Status string `json:"status"`
	Result *struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         *struct {
			Location *struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// Resolve fetches the formatted address and coordinates for a place id.
// Provider-side failures surface as validation errors: a bad or unknown
// place id is the caller's input problem, not an internal fault.
func (c *Client) Resolve(ctx context.Context, placeID string) (*Place, error) {
	if c.apiKey == "" {
		return nil, errors.New("places api key is not configured")
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "formatted_address,geometry/location")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/details/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place details request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place details request: unexpected status %d", resp.StatusCode)
	}

	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode place details: %w", err)
	}
	if body.Status != "OK" || body.Result == nil {
		status := body.Status
		if status == "" {
			status = "no status"
		}
		return nil, apperr.Invalidf("could not resolve place id (%s)", status)
	}
	if body.Result.Geometry == nil || body.Result.Geometry.Location == nil {
		return nil, apperr.Invalidf("place details response missing geometry.location")
	}

	return &Place{
		Address:   body.Result.FormattedAddress,
		Latitude:  body.Result.Geometry.Location.Lat,
		Longitude: body.Result.Geometry.Location.Lng,
	}, nil
}
