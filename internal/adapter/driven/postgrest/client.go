// Package postgrest implements the KnowledgeBase port against a PostgREST
// (Supabase) REST endpoint.
package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/kbdash/internal/domain/model"
	"github.com/ericfisherdev/kbdash/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KnowledgeBase = (*Client)(nil)

// restPath is the Supabase prefix in front of every PostgREST resource.
const restPath = "/rest/v1/"

var (
	// ErrMissingContentRange is returned when the response carries no Content-Range header.
	ErrMissingContentRange = errors.New("content-range header missing")
	// ErrUnknownTotal is returned when the server reports the total as "*".
	ErrUnknownTotal = errors.New("content-range total unknown")
)

// Options selects the collection and the columns the metrics are read from.
type Options struct {
	Collection     string
	IDField        string
	TimestampField string
	Timeout        time.Duration
}

// DefaultOptions matches the knowledge base schema the dashboard was built for.
func DefaultOptions() Options {
	return Options{
		Collection:     "knowledge_base",
		IDField:        "kb_id",
		TimestampField: "modificado_em",
		Timeout:        10 * time.Second,
	}
}

// Client reads knowledge base metrics over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	opts    Options
}

// NewClient creates a Client whose transport honours HTTP caching headers
// through an in-memory httpcache layer.
func NewClient(creds model.Credentials, opts Options) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := &http.Client{
		Transport: cacheTransport,
		Timeout:   opts.Timeout,
	}
	return NewClientWithHTTPClient(httpClient, creds, opts)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, creds model.Credentials, opts Options) *Client {
	defaults := DefaultOptions()
	if opts.Collection == "" {
		opts.Collection = defaults.Collection
	}
	if opts.IDField == "" {
		opts.IDField = defaults.IDField
	}
	if opts.TimestampField == "" {
		opts.TimestampField = defaults.TimestampField
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(creds.BaseURL, "/"),
		apiKey:  creds.APIKey,
		opts:    opts,
	}
}

// CountRecords asks for an exact count through the Prefer header and reads the
// total from Content-Range. When the header is missing or the total is "*",
// it falls back to fetching the id column of every row and counting them.
func (c *Client) CountRecords(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("select", c.opts.IDField)
	query.Set("limit", "1")

	resp, err := c.get(ctx, query, "count=exact")
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", c.opts.Collection, err)
	}
	contentRange := resp.Header.Get("Content-Range")
	drainAndClose(resp)

	total, err := ParseContentRange(contentRange)
	if err == nil {
		return total, nil
	}

	slog.Warn("postgrest: content-range unavailable, counting rows", "collection", c.opts.Collection, "error", err)
	return c.countRows(ctx)
}

// countRows fetches the id column of every row and returns the row count.
func (c *Client) countRows(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("select", c.opts.IDField)

	resp, err := c.get(ctx, query, "")
	if err != nil {
		return 0, fmt.Errorf("listing %s ids: %w", c.opts.Collection, err)
	}
	defer resp.Body.Close()

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decoding %s ids: %w: %v", c.opts.Collection, driven.ErrMalformedResponse, err)
	}

	return len(rows), nil
}

// LatestModification returns the timestamp column of the most recently
// modified row. An empty collection, a null value, or a missing field all
// yield "".
func (c *Client) LatestModification(ctx context.Context) (string, error) {
	field := c.opts.TimestampField

	query := url.Values{}
	query.Set("select", field)
	query.Set("order", field+".desc")
	query.Set("limit", "1")

	resp, err := c.get(ctx, query, "")
	if err != nil {
		return "", fmt.Errorf("fetching latest %s: %w", field, err)
	}
	defer resp.Body.Close()

	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return "", fmt.Errorf("decoding latest %s: %w: %v", field, driven.ErrMalformedResponse, err)
	}

	if len(rows) == 0 {
		return "", nil
	}

	value, _ := rows[0][field].(string)
	return value, nil
}

// get issues an authenticated GET against the collection. A non-2xx status is
// returned as an error with the body already closed.
func (c *Client) get(ctx context.Context, query url.Values, prefer string) (*http.Response, error) {
	endpoint := c.baseURL + restPath + url.PathEscape(c.opts.Collection) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp, nil
}

// ParseContentRange extracts the total from a Content-Range header of the form
// "start-end/total" (or "*/total" for an empty range).
func ParseContentRange(header string) (int, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, ErrMissingContentRange
	}

	_, totalPart, found := strings.Cut(header, "/")
	if !found {
		return 0, fmt.Errorf("content-range %q has no total", header)
	}
	if totalPart == "*" {
		return 0, ErrUnknownTotal
	}

	total, err := strconv.Atoi(totalPart)
	if err != nil || total < 0 {
		return 0, fmt.Errorf("content-range %q has invalid total", header)
	}

	return total, nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
