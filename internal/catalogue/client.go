package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/catalogue-dash/service-catalogue/internal/metrics"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	dependencyInfoPath = "/v1/dependency-info"
	componentsPath     = "/v1/components"
)

// Options configures a Client
type Options struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit rate.Limit
	Burst     int
}

// Client handles communication with the catalogue API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new catalogue API client
func NewClient(opt Options) *Client {
	if opt.Timeout == 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.RateLimit == 0 {
		opt.RateLimit = rate.Limit(5)
	}
	if opt.Burst == 0 {
		opt.Burst = 10
	}

	httpClient := &http.Client{}
	if opt.Token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opt.Token,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = opt.Timeout

	return &Client{
		baseURL:    strings.TrimRight(opt.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(opt.RateLimit, opt.Burst),
	}
}

// GetDependencyInfo fetches the per-environment dependency dataset
func (c *Client) GetDependencyInfo(ctx context.Context) (domain.DependencyInfo, error) {
	var info domain.DependencyInfo
	if err := c.getJSON(ctx, dependencyInfoPath, &info); err != nil {
		return nil, err
	}
	return info.Normalize(), nil
}

// ListComponents fetches every component in the catalogue
func (c *Client) ListComponents(ctx context.Context) ([]Component, error) {
	var components []Component
	if err := c.getJSON(ctx, componentsPath, &components); err != nil {
		return nil, err
	}
	if components == nil {
		components = []Component{}
	}
	return components, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveCatalogueCall(path, start, err) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(unwrapData(body), out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}
	return nil
}

// StatusError is returned when the catalogue API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalogue api returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrUpstream
}
