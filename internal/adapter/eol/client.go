package eol

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	connectTimeout = 5 * time.Second
	requestTimeout = 10 * time.Second
)

// Client fetches release-cycle metadata from the public endoflife.date
// API. Every failure mode - transport, non-2xx, malformed payload - is
// absorbed here: callers always receive a (possibly empty) slice and
// never an error.
type Client struct {
	httpClient *http.Client
	apiURL     string
	log        *zap.Logger
}

// NewClient creates a client for the given metadata API URL with bounded
// connect and request timeouts.
func NewClient(apiURL string, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
			},
		},
		apiURL: apiURL,
		log:    log,
	}
}

// FetchCycles performs one GET against the metadata API and extracts the
// "cycle" field of each entry, defaulting to "unknown" when an entry has
// none. Upstream failures yield an empty slice and a diagnostic log line.
func (c *Client) FetchCycles(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		c.log.Error("failed to build metadata API request", zap.String("url", c.apiURL), zap.Error(err))
		return []string{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("failed to call metadata API", zap.String("url", c.apiURL), zap.Error(err))
		return []string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Warn("unexpected response from metadata API",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return []string{}
	}

	var payload []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Error("failed to parse metadata API response", zap.Error(err))
		return []string{}
	}

	cycles := make([]string, 0, len(payload))
	for _, entry := range payload {
		cycles = append(cycles, cycleOf(entry))
	}

	c.log.Debug("fetched release cycles", zap.Int("count", len(cycles)))
	return cycles
}

// cycleOf extracts the cycle field from one API entry. The upstream API
// serves cycles as strings but has historically served bare numbers too.
func cycleOf(entry map[string]any) string {
	v, ok := entry["cycle"]
	if !ok || v == nil {
		return "unknown"
	}
	switch cycle := v.(type) {
	case string:
		return cycle
	case float64:
		return fmt.Sprintf("%g", cycle)
	default:
		return "unknown"
	}
}
