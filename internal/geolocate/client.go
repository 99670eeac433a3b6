package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/resilience"
)

const (
	// ProviderName identifies this geolocation provider.
	ProviderName = "ip-api"

	// DefaultBaseURL is the ip-api.com JSON endpoint.
	DefaultBaseURL = "http://ip-api.com/json"
)

// ClientConfig holds configuration for the IP geolocation client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to ip-api.com).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger

	// Observer records lookup outcomes (optional).
	Observer resilience.Observer
}

// Client resolves positions through the ip-api.com service.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
	observer   resilience.Observer
}

// NewClient creates a new IP geolocation client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{Name: ProviderName})
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
		observer:   cfg.Observer,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate resolves the approximate position of addr.
func (c *Client) Locate(ctx context.Context, addr string) (pos *Position, err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.Record(ctx, ProviderName, time.Since(start), err)
		}
	}()

	url := c.baseURL + "/" + addr + "?fields=status,message,lat,lon"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	if lookup.Status != "success" {
		c.logger.Debug().
			Str("addr", addr).
			Str("message", lookup.Message).
			Msg("geolocation lookup declined")
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, lookup.Message)
	}

	return &Position{Latitude: lookup.Lat, Longitude: lookup.Lon}, nil
}
