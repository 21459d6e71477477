package s3client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const (
	// unsignedPayload lets the body length be decided after signing.
	unsignedPayload = "UNSIGNED-PAYLOAD"
	signingService  = "s3"
)

// V4Signer signs requests with AWS Signature V4 through the AWS SDK signer.
// Host, Content-Type, Content-MD5 and every x-amz-* header are signed.
// Content-Length is not and the payload is declared unsigned, so the body
// length may still be set after signing.
type V4Signer struct {
	Region string

	signer *v4.Signer
}

// NewV4Signer returns a V4Signer for region, "us-east-1" when empty.
func NewV4Signer(region string) *V4Signer {
	if region == "" {
		region = DefaultRegion
	}
	return &V4Signer{Region: region, signer: newSDKSigner()}
}

func newSDKSigner() *v4.Signer {
	return v4.NewSigner(func(o *v4.SignerOptions) {
		// S3 expects the path escaped exactly once.
		o.DisableURIPathEscaping = true
	})
}

// Sign sets Authorization, X-Amz-Date and X-Amz-Content-Sha256.
func (s *V4Signer) Sign(ctx context.Context, req *Request, creds Credentials, signingTime time.Time) error {
	signer := s.signer
	if signer == nil {
		signer = newSDKSigner()
	}
	region := s.Region
	if region == "" {
		region = DefaultRegion
	}

	u := &url.URL{Scheme: "https", Host: req.GetHeader("Host"), Path: req.Path()}
	scratch, err := http.NewRequestWithContext(ctx, req.Method, u.String(), nil)
	if err != nil {
		return fmt.Errorf("s3client: build v4 signing request: %w", err)
	}
	copySignedHeaders(scratch.Header, req.header)
	scratch.Header.Set("X-Amz-Content-Sha256", unsignedPayload)

	if err := signer.SignHTTP(ctx, creds.aws(), scratch, unsignedPayload, signingService, region, signingTime); err != nil {
		return fmt.Errorf("s3client: sign v4: %w", err)
	}

	for _, name := range []string{"X-Amz-Content-Sha256", "X-Amz-Date", "Authorization"} {
		if err := req.SetHeader(name, scratch.Header.Get(name)); err != nil {
			return err
		}
	}
	return nil
}

// copySignedHeaders copies the headers of src that V4 must cover into dst.
// x-amz-date and x-amz-content-sha256 are written by Sign itself.
func copySignedHeaders(dst, src http.Header) {
	for name, values := range src {
		switch lower := strings.ToLower(name); {
		case lower == "x-amz-date", lower == "x-amz-content-sha256":
		case strings.HasPrefix(lower, "x-amz-"), lower == "content-type", lower == "content-md5":
			dst[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
		}
	}
}
