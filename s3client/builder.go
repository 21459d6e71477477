package s3client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Builder turns a verb, bucket and key into a signed Request. It holds only
// immutable state and is safe for concurrent use.
type Builder struct {
	creds  Credentials
	host   string
	signer Signer
	now    func() time.Time
}

// NewBuilder returns a Builder signing with creds. It fails with a
// *ConfigurationError when either key is empty. The default signer is
// V2Signer with StandardV2 rules and the default clock is time.Now.
func NewBuilder(creds Credentials, opts ...Option) (*Builder, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return newBuilder(creds, o), nil
}

func newBuilder(creds Credentials, o *options) *Builder {
	b := &Builder{
		creds:  creds,
		host:   o.host,
		signer: o.signer,
		now:    o.now,
	}
	if b.signer == nil {
		b.signer = V2Signer{Rules: StandardV2}
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// Build returns a signed request for method on bucket/key. The key may be
// empty, which addresses "/{bucket}/".
func (b *Builder) Build(ctx context.Context, method, bucket, key string, opts ...RequestOption) (*Request, error) {
	if err := b.creds.validate(); err != nil {
		return nil, err
	}
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
	default:
		return nil, &InvalidArgumentError{Arg: "method", Reason: "unsupported verb " + method}
	}
	if bucket == "" {
		return nil, &InvalidArgumentError{Arg: "bucket", Reason: "must not be empty"}
	}

	req := newRequest(uuid.NewString(), method, bucket, key)
	if b.host != "" {
		req.header.Set("Host", b.host)
	}
	now := b.now().UTC()
	req.header.Set("Date", now.Format(http.TimeFormat))
	for _, opt := range opts {
		opt(req.header)
	}

	if err := b.signer.Sign(ctx, req, b.creds, now); err != nil {
		return nil, err
	}
	return req, nil
}
