package s3client

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches exactly one of them
// through errors.Is.
var (
	// ErrConfiguration reports a missing or invalid required setting.
	ErrConfiguration = errors.New("s3client: configuration error")

	// ErrInvalidArgument reports a bad bucket, method or handler.
	ErrInvalidArgument = errors.New("s3client: invalid argument")

	// ErrClosed reports an operation issued after Close.
	ErrClosed = errors.New("s3client: client is closed")

	// ErrTransport reports a failure of the underlying HTTP transport.
	ErrTransport = errors.New("s3client: transport failure")

	// ErrRequestFinalized is returned when a finalized request is mutated.
	ErrRequestFinalized = errors.New("s3client: request already finalized")

	// ErrLengthMismatch is returned when a known-size upload source yields a
	// different number of bytes than declared.
	ErrLengthMismatch = errors.New("s3client: upload length does not match declared size")
)

// ConfigurationError names the setting that is missing or invalid.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("s3client: required config value not found key: %s", e.Key)
	}
	return fmt.Sprintf("s3client: invalid config value for key %s: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// InvalidArgumentError names the call argument that was rejected.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("s3client: invalid argument %s: %s", e.Arg, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// ClosedClientError is returned by every operation issued after Close.
type ClosedClientError struct {
	Op string
}

func (e *ClosedClientError) Error() string {
	return fmt.Sprintf("s3client: %s on closed client", e.Op)
}

func (e *ClosedClientError) Is(target error) bool { return target == ErrClosed }

// TransportError wraps a failure reported while sending a request or
// receiving its response. It is delivered to the ResponseHandler, never
// returned synchronously. A non-2xx status is not a TransportError.
type TransportError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("s3client: %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
