package s3client

import (
	"net/http"
	"strconv"
)

// Request describes one outbound S3 call: verb, object address and headers.
// Headers stay mutable until the request is finalized for sending; after that
// every mutation fails with ErrRequestFinalized.
//
// A Request is owned by a single call and must not be shared between
// goroutines while it is still mutable.
type Request struct {
	// ID correlates log lines for this call. It is not sent on the wire.
	ID string

	Method string
	Bucket string
	Key    string

	header    http.Header
	finalized bool
}

func newRequest(id, method, bucket, key string) *Request {
	return &Request{
		ID:     id,
		Method: method,
		Bucket: bucket,
		Key:    key,
		header: make(http.Header),
	}
}

// Path returns the request path, always "/{bucket}/{key}".
func (r *Request) Path() string {
	return "/" + r.Bucket + "/" + r.Key
}

// Header returns a copy of the request headers.
func (r *Request) Header() http.Header {
	return r.header.Clone()
}

// GetHeader returns the first value of the named header.
func (r *Request) GetHeader(name string) string {
	return r.header.Get(name)
}

// SetHeader replaces the named header.
func (r *Request) SetHeader(name, value string) error {
	if r.finalized {
		return ErrRequestFinalized
	}
	r.header.Set(name, value)
	return nil
}

// DelHeader removes the named header.
func (r *Request) DelHeader(name string) error {
	if r.finalized {
		return ErrRequestFinalized
	}
	r.header.Del(name)
	return nil
}

// SetContentLength sets the Content-Length header.
func (r *Request) SetContentLength(n int64) error {
	return r.SetHeader("Content-Length", strconv.FormatInt(n, 10))
}

// ContentLength reports the declared body length. ok is false when the
// request carries no Content-Length header.
func (r *Request) ContentLength() (n int64, ok bool) {
	v := r.header.Get("Content-Length")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Finalized reports whether the request has been handed to the transport.
func (r *Request) Finalized() bool {
	return r.finalized
}

func (r *Request) finalize() {
	r.finalized = true
}
