// Package network is the REST transport collaborator of the SDK. It
// performs the actual service calls for catalog metadata, partition
// listings, and tile data. The orchestration core never retries; this
// package owns transport policy (client timeout, outbound rate limiting)
// and maps service failures into the SDK error taxonomy: 404 becomes
// geodata.ErrNotFound, other non-2xx statuses become *geodata.StatusError,
// and transport failures wrap geodata.ErrNetwork.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/minff/geodata"
	"github.com/minff/geodata/model"
)

// defaultTimeout bounds a single service call when no HTTP client is
// supplied by the application.
const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithRateLimit caps sustained outbound requests per second. burst
// defaults to 1 when rps is set.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client is a thin REST client for the data service.
type Client struct {
	endpoint string
	hc       *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// New creates a Client for the service at endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: defaultTimeout},
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetCatalog fetches the catalog configuration.
func (c *Client) GetCatalog(ctx context.Context, hrn geodata.HRN) (model.Catalog, error) {
	var catalog model.Catalog
	path := "/catalogs/" + url.PathEscape(hrn.String())
	if err := c.getJSON(ctx, path, nil, &catalog); err != nil {
		return model.Catalog{}, err
	}
	return catalog, nil
}

// GetLatestVersion fetches the latest catalog version newer than
// startVersion (-1 for the very latest).
func (c *Client) GetLatestVersion(ctx context.Context, hrn geodata.HRN, startVersion int64) (model.VersionInfo, error) {
	var info model.VersionInfo
	path := "/catalogs/" + url.PathEscape(hrn.String()) + "/versions/latest"
	query := url.Values{"startVersion": {strconv.FormatInt(startVersion, 10)}}
	if err := c.getJSON(ctx, path, query, &info); err != nil {
		return model.VersionInfo{}, err
	}
	return info, nil
}

// GetPartitions fetches the partition listing of one layer.
func (c *Client) GetPartitions(ctx context.Context, hrn geodata.HRN, layerID string, version int64) ([]model.Partition, error) {
	var page model.PartitionsPage
	path := "/catalogs/" + url.PathEscape(hrn.String()) + "/layers/" + url.PathEscape(layerID) + "/partitions"
	query := url.Values{}
	if version > 0 {
		query.Set("version", strconv.FormatInt(version, 10))
	}
	if err := c.getJSON(ctx, path, query, &page); err != nil {
		return nil, err
	}
	return page.Partitions, nil
}

// GetData fetches the raw payload stored under a data handle.
func (c *Client) GetData(ctx context.Context, hrn geodata.HRN, layerID, dataHandle string) ([]byte, error) {
	path := "/catalogs/" + url.PathEscape(hrn.String()) + "/layers/" + url.PathEscape(layerID) + "/data/" + url.PathEscape(dataHandle)
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("network: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", geodata.ErrNetwork, err)
		}
	}

	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %v", geodata.ErrInvalidArgument, path, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", geodata.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", geodata.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, geodata.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Debug("service error",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &geodata.StatusError{Status: resp.StatusCode, Message: string(body)}
	}
	return body, nil
}
