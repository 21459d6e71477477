package s3client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Option configures a Client or a Builder. Options that only make sense for
// a Client (transport, logger) are ignored by NewBuilder.
type Option func(*options)

type options struct {
	signer           Signer
	now              func() time.Time
	host             string
	transportFactory TransportFactory
	httpClient       *http.Client
	logger           *slog.Logger
}

// TransportFactory creates the transport of a Client for a validated endpoint.
// It runs only after the configuration has been validated.
type TransportFactory func(endpoint string) (Transport, error)

// WithSigner replaces the signing strategy derived from Config.SignatureVersion.
func WithSigner(s Signer) Option {
	return func(o *options) {
		o.signer = s
	}
}

// WithClock sets the time source used for Date headers and signatures.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithHost sets the Host header written by a Builder. Clients derive it from
// Config.Endpoint.
func WithHost(host string) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithTransport makes the Client send requests through t.
func WithTransport(t Transport) Option {
	return WithTransportFactory(func(string) (Transport, error) {
		return t, nil
	})
}

// WithTransportFactory makes the Client create its transport with f.
func WithTransportFactory(f TransportFactory) Option {
	return func(o *options) {
		o.transportFactory = f
	}
}

// WithHTTPClient sets the *http.Client used by the default HTTPTransport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger. Client logs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// RequestOption adds headers to a request before it is signed.
type RequestOption func(h http.Header)

// WithContentType sets the Content-Type of an upload.
func WithContentType(ct string) RequestOption {
	return func(h http.Header) {
		h.Set("Content-Type", ct)
	}
}

// WithMetadata sets user-defined x-amz-meta-* headers.
func WithMetadata(m map[string]string) RequestOption {
	return func(h http.Header) {
		for k, v := range m {
			h.Set("X-Amz-Meta-"+strings.ToLower(k), v)
		}
	}
}

// WithACL sets the canned ACL of an upload.
func WithACL(acl types.ObjectCannedACL) RequestOption {
	return func(h http.Header) {
		h.Set("X-Amz-Acl", string(acl))
	}
}

// WithStorageClass sets the storage class of an upload.
func WithStorageClass(sc types.StorageClass) RequestOption {
	return func(h http.Header) {
		h.Set("X-Amz-Storage-Class", string(sc))
	}
}
