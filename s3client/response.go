package s3client

import (
	"io"
	"net/http"

	"github.com/aws/smithy-go"
	smithyxml "github.com/aws/smithy-go/encoding/xml"
)

// Response is the status, headers and streamed body of a completed call.
// Handlers own Body and must close it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// ResponseHandler receives the outcome of a call exactly once: either a
// response (any status code) and a nil error, or a nil response and a
// *TransportError. It runs on a goroutine owned by the client.
type ResponseHandler func(resp *Response, err error)

// Success reports whether the status code is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// APIError decodes an S3 XML error body into a *smithy.GenericAPIError.
// It returns nil for successful responses. The body is consumed and closed.
func (r *Response) APIError() error {
	if r.Success() {
		return nil
	}
	apiErr := &smithy.GenericAPIError{
		Code:    http.StatusText(r.StatusCode),
		Message: http.StatusText(r.StatusCode),
	}
	if r.Body == nil {
		return apiErr
	}
	defer r.Body.Close()

	components, err := smithyxml.GetErrorResponseComponents(r.Body, true)
	if err != nil {
		return apiErr
	}
	if components.Code != "" {
		apiErr.Code = components.Code
	}
	if components.Message != "" {
		apiErr.Message = components.Message
	}
	return apiErr
}

// Result pairs the two values delivered to a ResponseHandler.
type Result struct {
	Response *Response
	Err      error
}

// ResultChan returns a handler that forwards its single outcome to the
// returned channel. The channel is buffered so the handler never blocks.
func ResultChan() (ResponseHandler, <-chan Result) {
	ch := make(chan Result, 1)
	return func(resp *Response, err error) {
		ch <- Result{Response: resp, Err: err}
	}, ch
}
