package s3client

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// SignV2Algorithm prefixes V2 Authorization header values.
const SignV2Algorithm = "AWS"

// Signer writes the authentication headers of a request. Implementations
// must be deterministic for a fixed request, credentials and signing time.
type Signer interface {
	Sign(ctx context.Context, req *Request, creds Credentials, signingTime time.Time) error
}

// CanonicalRequest is the input of a canonicalization rule.
type CanonicalRequest struct {
	Method string
	// Resource is the URI-escaped request path, "/{bucket}/{key}".
	Resource string
	Date     string
	Header   http.Header
}

// Canonicalizer builds the string that gets signed for a request.
type Canonicalizer interface {
	Canonicalize(cr CanonicalRequest) string
}

// CanonicalizerFunc adapts a plain function to Canonicalizer.
type CanonicalizerFunc func(cr CanonicalRequest) string

func (f CanonicalizerFunc) Canonicalize(cr CanonicalRequest) string { return f(cr) }

// StandardV2 is the AWS Signature V2 string-to-sign:
//
//	VERB\nContent-MD5\nContent-Type\nDate\nCanonicalizedAmzHeaders + Resource
//
// The Date line is left empty when an x-amz-date header is present.
var StandardV2 Canonicalizer = CanonicalizerFunc(func(cr CanonicalRequest) string {
	date := cr.Date
	if cr.Header.Get("X-Amz-Date") != "" {
		date = ""
	}

	var b strings.Builder
	b.WriteString(cr.Method)
	b.WriteByte('\n')
	b.WriteString(cr.Header.Get("Content-MD5"))
	b.WriteByte('\n')
	b.WriteString(cr.Header.Get("Content-Type"))
	b.WriteByte('\n')
	b.WriteString(date)
	b.WriteByte('\n')
	b.WriteString(canonicalAmzHeaders(cr.Header))
	b.WriteString(cr.Resource)
	return b.String()
})

// MinimalV2 signs only the verb, date and resource.
var MinimalV2 Canonicalizer = CanonicalizerFunc(func(cr CanonicalRequest) string {
	return cr.Method + "\n\n\n" + cr.Date + "\n" + cr.Resource
})

func canonicalAmzHeaders(h http.Header) string {
	values := make(map[string][]string)
	for name, vs := range h {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, "x-amz-") {
			continue
		}
		for _, v := range vs {
			values[lower] = append(values[lower], strings.TrimSpace(v))
		}
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(strings.Join(values[k], ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// SignV2 returns the V2 Authorization header value for cr:
// "AWS <accessKey>:<base64(HMAC-SHA1(secretKey, rules(cr)))>".
// A nil rules uses StandardV2.
func SignV2(cr CanonicalRequest, accessKey, secretKey string, rules Canonicalizer) string {
	if rules == nil {
		rules = StandardV2
	}
	if cr.Header == nil {
		cr.Header = http.Header{}
	}
	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write([]byte(rules.Canonicalize(cr)))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return SignV2Algorithm + " " + accessKey + ":" + sig
}

// V2Signer signs requests with AWS Signature V2 using the given rules.
type V2Signer struct {
	// Rules defaults to StandardV2.
	Rules Canonicalizer
}

// Sign sets the Authorization header. The Date header must already be set;
// signingTime is not consulted.
func (s V2Signer) Sign(_ context.Context, req *Request, creds Credentials, _ time.Time) error {
	cr := CanonicalRequest{
		Method:   req.Method,
		Resource: escapePath(req.Path()),
		Date:     req.GetHeader("Date"),
		Header:   req.header,
	}
	return req.SetHeader("Authorization", SignV2(cr, creds.AccessKey, creds.SecretKey, s.Rules))
}

// escapePath escapes p the same way net/http does when sending it.
func escapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
