// Package api implements the versioned MySportsFeeds pull client: URL
// construction, authentication headers, feed/format validation and
// 200/304 response handling against an optional storage backend.
package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"runtime"

	"go.uber.org/zap"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/codec"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/logging"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/metrics"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/store"
)

// libraryVersion is reported in the User-Agent header.
const libraryVersion = "2.1.0"

// apiKeyPassword is the fixed basic-auth password the v2 protocol
// family pairs with an API key.
const apiKeyPassword = "MYSPORTSFEEDS"

// Status describes the terminal outcome of one GetData call.
type Status int

const (
	// StatusFresh means the upstream returned new data (HTTP 200).
	StatusFresh Status = iota
	// StatusCached means the upstream reported no change (HTTP 304) and
	// the payload was served from the storage backend.
	StatusCached
	// StatusNoData means the upstream reported no change but no stored
	// copy was available to serve.
	StatusNoData
)

func (s Status) String() string {
	switch s {
	case StatusFresh:
		return "fresh"
	case StatusCached:
		return "cached"
	case StatusNoData:
		return "no_data"
	}
	return "unknown"
}

// Result is the outcome of a GetData call. Payload is nil when Status
// is StatusNoData.
type Result struct {
	Payload any
	Status  Status
}

// Client is the versioned API client. One instance serves one protocol
// version; credentials are instance state, set once before the first
// request and checked on every call.
type Client struct {
	version    Version
	store      store.Store
	httpClient *http.Client
	userAgent  string
	authHeader string
	metrics    *metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithStore attaches a storage backend used as the conditional-request
// cache. Without one, fresh data is never persisted and 304 responses
// yield StatusNoData.
func WithStore(s store.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithHTTPClient replaces the HTTP client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the given protocol version.
func New(v Version, opts ...Option) *Client {
	c := &Client{
		version:    v,
		httpClient: http.DefaultClient,
		userAgent:  fmt.Sprintf("MySportsFeeds Go/%s (%s)", libraryVersion, runtime.GOOS),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Version returns the protocol version name this client serves.
func (c *Client) Version() string {
	return c.version.Name
}

// SupportsBasicAuth reports whether this version authenticates with a
// username/password pair.
func (c *Client) SupportsBasicAuth() bool {
	return c.version.Auth == AuthBasic
}

// SetAuthCredentials stores a username/password pair and derives the
// Authorization header. It fails without touching client state when the
// version does not support basic authentication.
func (c *Client) SetAuthCredentials(username, password string) error {
	if !c.SupportsBasicAuth() {
		return errors.Newf(errors.KindAuthentication,
			"BASIC authentication not supported for version %s", c.version.Name)
	}
	c.authHeader = basicAuthHeader(username, password)
	return nil
}

// SetAPIKey stores an API key for the v2 protocol family.
func (c *Client) SetAPIKey(key string) error {
	if c.version.Auth != AuthAPIKey {
		return errors.Newf(errors.KindAuthentication,
			"API key authentication not supported for version %s", c.version.Name)
	}
	c.authHeader = basicAuthHeader(key, apiKeyPassword)
	return nil
}

func basicAuthHeader(username, password string) string {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + cred
}

// BuildURL resolves the endpoint for a feed. Seasonless feeds
// (current_season, players) omit the season path segment.
func (c *Client) BuildURL(league, season, feedName string, format feed.Format) string {
	if seasonless(feedName) {
		return fmt.Sprintf("%s/%s/%s.%s", c.version.BaseURL, league, feedName, format)
	}
	return fmt.Sprintf("%s/%s/%s/%s.%s", c.version.BaseURL, league, season, feedName, format)
}

// GetData performs one feed pull. Validation and authentication
// failures surface before any network call. A 200 decodes the body and,
// when a store is attached, persists it under the request's cache key.
// A 304 serves the stored copy when one exists, else yields a Result
// with StatusNoData. Any other status is a transport error carrying the
// status code; nothing is retried.
func (c *Client) GetData(ctx context.Context, req feed.Request) (*Result, error) {
	if c.authHeader == "" {
		return nil, errors.New(errors.KindAuthentication,
			"credentials must be set before making requests")
	}

	// Work on a copy; the caller's request is never mutated.
	params := make(map[string]string, len(req.Params)+2)
	for k, v := range req.Params {
		params[k] = v
	}

	season := req.Season
	// Historical rename: the players listing takes its season as a query
	// parameter, not a path segment.
	if req.Feed == "players" && season != "" {
		params[feed.ParamSeason] = season
		season = ""
	}

	// Signal to the upstream that a conditional (304) response is fine.
	if _, ok := params[feed.ParamForce]; !ok {
		params[feed.ParamForce] = "false"
	}

	if !c.version.KnownFeed(req.Feed) {
		return nil, errors.Newf(errors.KindValidation,
			"unknown feed %q, known feeds are: %v", req.Feed, c.version.Feeds)
	}
	if !req.Format.Valid() {
		return nil, errors.Newf(errors.KindValidation,
			"unsupported format %q, valid formats are: %v", req.Format, feed.Formats)
	}

	effective := feed.Request{
		League: req.League,
		Season: season,
		Feed:   req.Feed,
		Format: req.Format,
		Params: params,
	}

	endpoint := c.BuildURL(req.League, season, req.Feed, req.Format)

	result, err := c.fetch(ctx, endpoint, effective)
	if err != nil {
		c.metrics.ObserveRequest(req.Feed, metrics.OutcomeError)
		return nil, err
	}
	c.metrics.ObserveRequest(req.Feed, result.Status.String())
	return result, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, req feed.Request) (*Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindTransport, "build request")
	}

	query := url.Values{}
	for k, v := range req.Params {
		query.Set(k, v)
	}
	httpReq.URL.RawQuery = query.Encode()
	httpReq.Header.Set("Authorization", c.authHeader)
	httpReq.Header.Set("User-Agent", c.userAgent)

	logging.Debug("requesting feed",
		zap.String("url", endpoint),
		zap.String("feed", req.Feed),
		zap.Any("params", req.Params))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindTransport, "request "+endpoint)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := codec.Decode(req.Format, resp.Body)
		if err != nil {
			return nil, err
		}
		if c.store != nil {
			// A failed write must not discard fresh data already in hand.
			if _, err := c.store.Store(ctx, data, req); err != nil {
				logging.Error("failed to store fresh feed data",
					zap.String("key", req.CacheKey()), zap.Error(err))
			}
		}
		return &Result{Payload: data, Status: StatusFresh}, nil

	case http.StatusNotModified:
		return c.serveCached(ctx, req)

	default:
		return nil, errors.Transport(resp.StatusCode,
			fmt.Sprintf("API call failed with status %d", resp.StatusCode))
	}
}

// serveCached handles a 304: return the stored copy when one exists,
// otherwise an explicit no-data result. Never an error on a miss.
func (c *Client) serveCached(ctx context.Context, req feed.Request) (*Result, error) {
	logging.Debug("data not modified since last call", zap.String("feed", req.Feed))

	if c.store == nil {
		c.metrics.ObserveCacheMiss()
		return &Result{Status: StatusNoData}, nil
	}

	ok, err := c.store.Exists(ctx, req)
	if err != nil {
		return nil, err
	}
	if ok {
		data, loaded, err := c.store.Load(ctx, req)
		if err != nil {
			return nil, err
		}
		if loaded {
			c.metrics.ObserveCacheHit()
			return &Result{Payload: data, Status: StatusCached}, nil
		}
	}

	c.metrics.ObserveCacheMiss()
	logging.Debug("data not modified but no stored copy exists",
		zap.String("key", req.CacheKey()))
	return &Result{Status: StatusNoData}, nil
}
