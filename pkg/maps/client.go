package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/types"
)

const (
	defaultBaseURL             = "https://rsapi.goong.io"
	defaultVehicle             = "bike"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

var errAPIKeyRequired = errors.New("maps api key is required")

// Client wraps the routing and reverse-geocoding endpoints of the mapping
// provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	vehicle    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured provider base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithVehicle overrides the routing profile (bike by default; delivery
// riders, not cars).
func WithVehicle(vehicle string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(vehicle)
		if trimmed != "" {
			c.vehicle = trimmed
		}
	}
}

// NewClient builds the mapping client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		vehicle:    defaultVehicle,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// RouteSummary is the normalized result of a routing query.
type RouteSummary struct {
	DistanceMeters  int64
	DurationSeconds int64
}

// Route returns the road-network distance between origin and destination.
// A provider response with no routes is reported as (nil, nil): the
// destination exists but no path was found, which callers treat as data.
func (c *Client) Route(ctx context.Context, origin, destination types.LatLng) (*RouteSummary, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "maps client not configured")
	}

	query := url.Values{}
	query.Set("origin", origin.String())
	query.Set("destination", destination.String())
	query.Set("vehicle", c.vehicle)
	query.Set("api_key", c.apiKey)

	var apiResp struct {
		Routes []struct {
			Legs []struct {
				Distance struct {
					Value int64 `json:"value"`
				} `json:"distance"`
				Duration struct {
					Value int64 `json:"value"`
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := c.getJSON(ctx, "Direction", query, &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Routes) == 0 || len(apiResp.Routes[0].Legs) == 0 {
		return nil, nil
	}

	summary := &RouteSummary{}
	for _, leg := range apiResp.Routes[0].Legs {
		summary.DistanceMeters += leg.Distance.Value
		summary.DurationSeconds += leg.Duration.Value
	}
	return summary, nil
}

// ReverseGeocode resolves a coordinate pair to its formatted address label.
func (c *Client) ReverseGeocode(ctx context.Context, point types.LatLng) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "maps client not configured")
	}

	query := url.Values{}
	query.Set("latlng", point.String())
	query.Set("api_key", c.apiKey)

	var apiResp struct {
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "Geocode", query, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Results) == 0 || strings.TrimSpace(apiResp.Results[0].FormattedAddress) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "no geocode result for coordinates")
	}
	return apiResp.Results[0].FormattedAddress, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	endpoint := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.baseURL, "/"), strings.TrimLeft(path, "/"), query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build maps request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute maps request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "maps request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode maps response")
	}
	return nil
}
