// Package solr executes compiled search queries against an Apache Solr core.
package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/findaid/internal/domain"
	"github.com/kailas-cloud/findaid/internal/domain/search/query"
	"github.com/kailas-cloud/findaid/internal/metrics"
)

const (
	opSelect = "select"
	opPing   = "ping"

	// maxResponseBytes bounds a single select response.
	maxResponseBytes = 256 << 20
)

// EngineError carries the error member of a Solr response unmodified.
type EngineError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("solr error (status %d): %s", e.StatusCode, string(e.Payload))
}

func (e *EngineError) Unwrap() error { return domain.ErrSearchEngine }

// Config holds the Solr client settings.
type Config struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
	Logger     *zap.Logger
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client is a minimal Solr select/ping client.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Solr client for one collection.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.Collection, "/"),
		http:   hc,
		logger: log,
	}
}

type selectResponse struct {
	Response struct {
		NumFound int              `json:"numFound"`
		Docs     []map[string]any `json:"docs"`
	} `json:"response"`
	Error json.RawMessage `json:"error"`
}

// Select runs q against the collection's select handler and returns the raw docs.
func (c *Client) Select(ctx context.Context, q query.Query) ([]map[string]any, error) {
	start := time.Now()
	status, body, err := c.get(ctx, "/select?"+q.Encode())
	metrics.SolrRequestDuration.WithLabelValues(opSelect).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SolrRequestsTotal.WithLabelValues(opSelect, "unavailable").Inc()
		return nil, err
	}

	var resp selectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.SolrRequestsTotal.WithLabelValues(opSelect, "unavailable").Inc()
		return nil, fmt.Errorf("decode select response (status %d): %w: %w",
			status, domain.ErrSearchEngineUnavailable, err)
	}
	if len(resp.Error) > 0 && !bytes.Equal(resp.Error, []byte("null")) {
		metrics.SolrRequestsTotal.WithLabelValues(opSelect, "engine_error").Inc()
		c.logger.Debug("solr returned error payload",
			zap.Int("status", status), zap.ByteString("payload", resp.Error))
		return nil, &EngineError{StatusCode: status, Payload: resp.Error}
	}
	if status >= http.StatusBadRequest {
		metrics.SolrRequestsTotal.WithLabelValues(opSelect, "unavailable").Inc()
		return nil, fmt.Errorf("select returned status %d: %w", status, domain.ErrSearchEngineUnavailable)
	}

	metrics.SolrRequestsTotal.WithLabelValues(opSelect, "ok").Inc()
	if resp.Response.Docs == nil {
		return []map[string]any{}, nil
	}
	return resp.Response.Docs, nil
}

// Ping checks that the collection answers its ping handler.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	status, _, err := c.get(ctx, "/admin/ping?wt=json")
	metrics.SolrRequestDuration.WithLabelValues(opPing).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SolrRequestsTotal.WithLabelValues(opPing, "unavailable").Inc()
		return err
	}
	if status != http.StatusOK {
		metrics.SolrRequestsTotal.WithLabelValues(opPing, "unavailable").Inc()
		return fmt.Errorf("ping returned status %d: %w", status, domain.ErrSearchEngineUnavailable)
	}
	metrics.SolrRequestsTotal.WithLabelValues(opPing, "ok").Inc()
	return nil
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, nil, fmt.Errorf("solr request: %w", err)
		}
		return 0, nil, fmt.Errorf("solr request: %w: %w", domain.ErrSearchEngineUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read solr response: %w: %w", domain.ErrSearchEngineUnavailable, err)
	}
	c.logger.Debug("solr request",
		zap.String("path", strings.SplitN(path, "?", 2)[0]),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))
	return resp.StatusCode, body, nil
}
