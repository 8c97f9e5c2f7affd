// SPDX-License-Identifier: Apache-2.0

package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Wikidata action API endpoint.
	DefaultBaseURL   = "https://www.wikidata.org/w/api.php"
	DefaultUserAgent = "corpgraph/0.1 (https://github.com/corpgraph/corpgraph)"
	defaultTimeout   = 30 * time.Second
)

// Params are the query-string parameters of a single action API call.
type Params map[string]string

// Client issues read-only queries against the action API. Every call is a
// single best-effort request: no retry and no caching.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// ClientParams configures a Client. Zero values fall back to defaults;
// RequestsPerSecond <= 0 disables pacing.
type ClientParams struct {
	BaseURL           string
	UserAgent         string
	HTTPClient        *http.Client
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            *log.Logger
}

// NewClient creates a new Client.
func NewClient(params ClientParams) *Client {
	c := &Client{
		baseURL:    params.BaseURL,
		userAgent:  params.UserAgent,
		httpClient: params.HTTPClient,
		logger:     params.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.httpClient == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if params.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(params.RequestsPerSecond), 1)
	}
	return c
}

// Query performs one GET against the API and returns the raw JSON document.
// A document without success=1 yields an *APIError.
func (c *Client) Query(ctx context.Context, params Params) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	action := params["action"]
	c.logger.Debug("wikidata query", "action", action, "ids", params["ids"], "search", params["search"])

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikidata %s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response body: %w", action, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("wikidata %s returned status %d", action, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("wikidata %s returned invalid JSON", action)
	}

	doc := gjson.ParseBytes(body)
	if doc.Get("success").Int() != 1 {
		return nil, &APIError{
			Action: action,
			Code:   doc.Get("error.code").String(),
			Info:   doc.Get("error.info").String(),
		}
	}
	return body, nil
}
