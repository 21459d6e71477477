package s3client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Transport sends finalized requests. Implementations must be safe for
// concurrent use; each RoundTrip carries an independent request.
//
// body is nil for requests without a payload. When req declares a
// Content-Length the transport sends exactly that header and reads body
// only as fast as it can write it.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request, body io.Reader) (*Response, error)
	Close() error
}

// HTTPTransport is a Transport over net/http.
type HTTPTransport struct {
	client *http.Client
	base   *url.URL
}

// NewHTTPTransport returns a transport for endpoint. A nil client uses a
// fresh *http.Client with its own connection pool.
func NewHTTPTransport(endpoint string, client *http.Client) (*HTTPTransport, error) {
	base, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	return &HTTPTransport{client: client, base: base}, nil
}

// RoundTrip sends req with body and returns the response as received.
// Non-2xx statuses are not errors.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req *Request, body io.Reader) (*Response, error) {
	u := *t.base
	u.Path = req.Path()

	length, hasLength := req.ContentLength()
	if hasLength && length == 0 {
		body = http.NoBody
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build http request: %w", err)
	}
	for name, values := range req.header {
		switch http.CanonicalHeaderKey(name) {
		case "Host", "Content-Length":
			continue
		}
		httpReq.Header[name] = append([]string(nil), values...)
	}
	if host := req.GetHeader("Host"); host != "" {
		httpReq.Host = host
	}
	httpReq.ContentLength = length

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// Close drops idle connections. Requests already in flight are not
// interrupted.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// parseEndpoint accepts "host", "host:port" or a URL with an http(s) scheme.
func parseEndpoint(endpoint string) (*url.URL, error) {
	raw := strings.TrimSpace(endpoint)
	if raw == "" {
		return nil, &ConfigurationError{Key: ConfigKeyEndpoint}
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ConfigurationError{Key: ConfigKeyEndpoint, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ConfigurationError{Key: ConfigKeyEndpoint, Reason: "unsupported scheme " + u.Scheme}
	}
	if u.Host == "" {
		return nil, &ConfigurationError{Key: ConfigKeyEndpoint, Reason: "missing host"}
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}, nil
}

var _ Transport = (*HTTPTransport)(nil)
