package s3client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/datawarehouse/dw-s3-go/internal/logger"
)

// Operation names used in errors and logs.
const (
	opGet        = "get"
	opPut        = "put"
	opDelete     = "delete"
	opPresignGet = "presign get"
	opPresignPut = "presign put"
)

// Client issues signed get, put and delete calls against one S3-compatible
// endpoint.
//
// Calls return as soon as the request is built; the outcome reaches the
// ResponseHandler later, on a goroutine owned by the client. Configuration
// and argument errors are returned synchronously and no request is sent.
// A Client is safe for concurrent use: calls share only the read-only
// credentials, endpoint and builder.
//
// Contexts passed to calls are used for their values (logging) only; once a
// call returns nil its request runs to completion or failure.
type Client struct {
	cfg       Config
	builder   *Builder
	transport Transport
	presigner *s3.PresignClient
	logger    *slog.Logger
	closed    atomic.Bool
}

// New validates cfg and creates a Client. A missing access key, secret key or
// endpoint fails with a *ConfigurationError before any transport is created.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	base, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.signer == nil && cfg.SignatureVersion == SignatureV4 {
		o.signer = NewV4Signer(cfg.Region)
	}
	if o.host == "" {
		o.host = base.Host
	}
	if o.logger == nil {
		o.logger = logger.NewNope()
	}
	if o.transportFactory == nil {
		httpClient := o.httpClient
		o.transportFactory = func(endpoint string) (Transport, error) {
			return NewHTTPTransport(endpoint, httpClient)
		}
	}

	transport, err := o.transportFactory(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("s3client: create transport: %w", err)
	}

	return &Client{
		cfg:       cfg,
		builder:   newBuilder(cfg.credentials(), o),
		transport: transport,
		presigner: newPresigner(cfg, base.String(), o.logger),
		logger:    o.logger,
	}, nil
}

// Get retrieves bucket/key. The request carries no body.
func (c *Client) Get(ctx context.Context, bucket, key string, handler ResponseHandler) error {
	req, ctx, err := c.prepare(ctx, opGet, http.MethodGet, bucket, key, handler, nil)
	if err != nil {
		return err
	}
	c.dispatch(ctx, opGet, req, handler, noBody)
	return nil
}

// Delete removes bucket/key. The request carries no body.
func (c *Client) Delete(ctx context.Context, bucket, key string, handler ResponseHandler) error {
	req, ctx, err := c.prepare(ctx, opDelete, http.MethodDelete, bucket, key, handler, nil)
	if err != nil {
		return err
	}
	c.dispatch(ctx, opDelete, req, handler, noBody)
	return nil
}

// Put uploads data to bucket/key with Content-Length set to len(data).
// data is read after Put returns; the caller must not modify it until
// handler has been invoked.
func (c *Client) Put(ctx context.Context, bucket, key string, data []byte, handler ResponseHandler, opts ...RequestOption) error {
	req, ctx, err := c.prepare(ctx, opPut, http.MethodPut, bucket, key, handler, opts)
	if err != nil {
		return err
	}
	if err := req.SetContentLength(int64(len(data))); err != nil {
		return err
	}
	c.dispatch(ctx, opPut, req, handler, func(*Request) (io.Reader, func() error, error) {
		return bytes.NewReader(data), nil, nil
	})
	return nil
}

// PutStream uploads everything src yields before io.EOF. The size is not
// known upfront, so the whole upload is buffered in memory and Content-Length
// is set from the buffered size once src is exhausted. Memory use is bounded
// only by the upload size; use PutStreamSize for large uploads.
//
// A read error from src is delivered to handler as a *TransportError.
func (c *Client) PutStream(ctx context.Context, bucket, key string, src io.Reader, handler ResponseHandler, opts ...RequestOption) error {
	if src == nil {
		return &InvalidArgumentError{Arg: "src", Reason: "must not be nil"}
	}
	req, ctx, err := c.prepare(ctx, opPut, http.MethodPut, bucket, key, handler, opts)
	if err != nil {
		return err
	}
	c.logger.DebugContext(ctx, "buffering s3 upload", slog.String("bucket", bucket), slog.String("key", key))

	c.dispatch(ctx, opPut, req, handler, func(req *Request) (io.Reader, func() error, error) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, src); err != nil {
			return nil, nil, fmt.Errorf("read upload source: %w", err)
		}
		if err := req.SetContentLength(int64(buf.Len())); err != nil {
			return nil, nil, err
		}
		return bytes.NewReader(buf.Bytes()), nil, nil
	})
	return nil
}

// PutStreamSize uploads exactly size bytes from src, streaming them to the
// transport as it accepts them instead of buffering. Content-Length is preset
// to size. If src yields fewer or more bytes, handler receives a
// *TransportError wrapping ErrLengthMismatch.
func (c *Client) PutStreamSize(ctx context.Context, bucket, key string, src io.Reader, size int64, handler ResponseHandler, opts ...RequestOption) error {
	if src == nil {
		return &InvalidArgumentError{Arg: "src", Reason: "must not be nil"}
	}
	if size < 0 {
		return &InvalidArgumentError{Arg: "size", Reason: "must not be negative"}
	}
	req, ctx, err := c.prepare(ctx, opPut, http.MethodPut, bucket, key, handler, opts)
	if err != nil {
		return err
	}
	if err := req.SetContentLength(size); err != nil {
		return err
	}
	c.logger.DebugContext(ctx, "streaming s3 upload",
		slog.String("bucket", bucket), slog.String("key", key), slog.Int64("size", size))

	c.dispatch(ctx, opPut, req, handler, func(*Request) (io.Reader, func() error, error) {
		if size == 0 {
			// Transports send no body for a zero length, so the source is
			// checked here.
			if err := ensureEmpty(src); err != nil {
				return nil, nil, err
			}
			return http.NoBody, nil, nil
		}
		sr := &sizedReader{r: src, remaining: size}
		return sr, sr.check, nil
	})
	return nil
}

// Close releases the transport. Every later call fails with a
// *ClosedClientError. Close may run while requests are in flight; whether
// their handlers still fire depends on the transport and is undefined.
// Calling Close again is a no-op.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := c.transport.Close(); err != nil {
		return fmt.Errorf("s3client: close transport: %w", err)
	}
	return nil
}

// prepare runs the synchronous part of every call and returns the signed
// request with a detached, request-scoped context.
func (c *Client) prepare(ctx context.Context, op, method, bucket, key string, handler ResponseHandler, opts []RequestOption) (*Request, context.Context, error) {
	if c.closed.Load() {
		return nil, nil, &ClosedClientError{Op: op}
	}
	if handler == nil {
		return nil, nil, &InvalidArgumentError{Arg: "handler", Reason: "must not be nil"}
	}
	req, err := c.builder.Build(ctx, method, bucket, key, opts...)
	if err != nil {
		return nil, nil, err
	}
	ctx = logger.WithRequestID(context.WithoutCancel(ctx), req.ID)
	c.logger.DebugContext(ctx, "s3 request",
		slog.String("method", method), slog.String("bucket", bucket), slog.String("key", key))
	return req, ctx, nil
}

// bodyFunc produces the body of a request just before it is finalized. The
// optional check runs after the transport returns; its error takes precedence
// over whatever the transport reported.
type bodyFunc func(req *Request) (body io.Reader, check func() error, err error)

func noBody(*Request) (io.Reader, func() error, error) { return nil, nil, nil }

// dispatch finishes the request in the background and invokes handler once.
func (c *Client) dispatch(ctx context.Context, op string, req *Request, handler ResponseHandler, body bodyFunc) {
	fail := func(err error) {
		c.logger.WarnContext(ctx, "s3 request failed",
			slog.String("method", req.Method), slog.String("path", req.Path()), slog.Any("error", err))
		handler(nil, &TransportError{Op: op, Bucket: req.Bucket, Key: req.Key, Err: err})
	}

	go func() {
		r, check, err := body(req)
		if err != nil {
			fail(err)
			return
		}
		req.finalize()

		resp, err := c.transport.RoundTrip(ctx, req, r)
		if check != nil {
			if cerr := check(); cerr != nil {
				if resp != nil && resp.Body != nil {
					resp.Body.Close()
				}
				fail(cerr)
				return
			}
		}
		if err != nil {
			fail(err)
			return
		}
		c.logger.DebugContext(ctx, "s3 response", slog.Int("status", resp.StatusCode))
		handler(resp, nil)
	}()
}

// sizedReader enforces that the wrapped source yields exactly the declared
// number of bytes. The transport may read it from its own goroutine, so the
// recorded error is guarded.
type sizedReader struct {
	r         io.Reader
	remaining int64

	mu  sync.Mutex
	err error
}

func (s *sizedReader) Read(p []byte) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	n, err := s.r.Read(p)
	s.remaining -= int64(n)
	switch {
	case s.remaining < 0:
		return n + int(s.remaining), s.fail(fmt.Errorf("%w: source exceeds declared size", ErrLengthMismatch))
	case err == io.EOF && s.remaining > 0:
		return n, s.fail(fmt.Errorf("%w: source ended %d bytes short", ErrLengthMismatch, s.remaining))
	}
	return n, err
}

func (s *sizedReader) fail(err error) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	return err
}

// check reports a mismatch observed while the transport read the source.
func (s *sizedReader) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ensureEmpty reports ErrLengthMismatch if src yields any byte before io.EOF.
func ensureEmpty(src io.Reader) error {
	var b [1]byte
	n, err := io.ReadAtLeast(src, b[:], 1)
	switch {
	case n > 0:
		return fmt.Errorf("%w: source exceeds declared size", ErrLengthMismatch)
	case err == io.EOF:
		return nil
	default:
		return fmt.Errorf("read upload source: %w", err)
	}
}
