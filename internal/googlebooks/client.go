// Package googlebooks queries the Google Books volume search API and turns its
// responses into book records.
package googlebooks

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/errors"
	"github.com/lepinkainen/bookbot/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public Google Books API endpoint.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"
	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = stdErrors.New("google books API key is required (set GOOGLE_BOOKS_API_KEY or googlebooks.apikey)")

// Options configures a Client.
type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is sent as the "key" query parameter. Required.
	APIKey string
	// Timeout is applied to the HTTP client. Zero disables the timeout.
	Timeout time.Duration
	// Limiter throttles outgoing requests. Nil disables throttling.
	Limiter *ratelimit.Limiter
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client fetches raw search payloads from Google Books.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewClient builds a Client, failing fast when the API key is missing.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		limiter:    opts.Limiter,
	}, nil
}

// BuildURL returns the volume search URL for req with every parameter percent-encoded.
func (c *Client) BuildURL(req book.SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("maxResults", strconv.Itoa(req.MaxResults))
	if req.PrintType != "" {
		params.Set("printType", string(req.PrintType))
	}
	params.Set("key", c.apiKey)

	return c.baseURL + "/volumes?" + params.Encode()
}

// Fetch performs one GET for req and returns the raw response body.
// There is no retry. Every failure is a *errors.TransportError.
// The body is not validated; see Normalize.
func (c *Client) Fetch(ctx context.Context, req book.SearchRequest) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classifyError(err)
	}

	slog.Debug("Fetching volumes from Google Books", "query", req.Query, "max_results", req.MaxResults, "print_type", req.PrintType)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(req), nil)
	if err != nil {
		return nil, errors.NewTransportError(errors.KindOther, fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.NewHTTPStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyError(fmt.Errorf("reading response body: %w", err))
	}

	slog.Debug("Fetched volumes from Google Books", "query", req.Query, "bytes", len(body))
	return body, nil
}

// Ping tests the connection to Google Books API.
func (c *Client) Ping(ctx context.Context) error {
	req := book.SearchRequest{Query: "isbn:0140447938", MaxResults: 1, PrintType: book.PrintTypeAll}
	if _, err := c.Fetch(ctx, req); err != nil {
		return fmt.Errorf("google books ping failed: %w", err)
	}
	return nil
}
