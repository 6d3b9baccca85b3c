package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/recetario/internal/logging"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

type options struct {
	base     http.RoundTripper
	timeout  time.Duration
	log      logging.Logger
	location Location
}

type Option func(*options)

// WithTransport replaces the underlying round tripper (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithTimeout bounds every request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithLocation enables the redirect to the login screen on 401.
func WithLocation(loc Location) Option {
	return func(o *options) { o.location = loc }
}

func New(baseURL string, store TokenStore, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	o := options{
		base:    http.DefaultTransport,
		timeout: 15 * time.Second,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		baseURL: u,
		log:     o.log,
		http: &http.Client{
			Timeout: o.timeout,
			Transport: &transport{
				base:     o.base,
				store:    store,
				location: o.location,
				log:      o.log,
			},
		},
	}, nil
}

// BaseURL is the backend address requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.endpoint(path, query), nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, c.endpoint(path, nil), body, "application/json", out)
}

// do sends one request and decodes a 2xx JSON body into out (when out is
// not nil). Non-2xx statuses come back as *Error.
func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string, out any) error {
	data, err := c.send(ctx, method, rawURL, body, contentType)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send performs the request and returns the raw body of a 2xx response.
// Other statuses come back as *Error.
func (c *Client) send(ctx context.Context, method, rawURL string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Detail: parseDetail(data)}
		c.log.Debug(ctx, "api error", "method", method, "path", req.URL.Path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return nil, apiErr
	}
	return data, nil
}
