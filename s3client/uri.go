package s3client

import (
	"fmt"
	"strings"
)

// ParseURI splits an s3:// or dw:// URI into bucket and key.
//
// Accepted formats:
//   - s3://bucket
//   - s3://bucket/key
//   - s3://bucket/path/to/key
//   - dw://bucket/key
//
// The key is empty when the URI names only a bucket.
func ParseURI(uri string) (bucket, key string, err error) {
	raw := uri

	switch {
	case strings.HasPrefix(uri, "s3://"):
		uri = strings.TrimPrefix(uri, "s3://")
	case strings.HasPrefix(uri, "dw://"):
		uri = strings.TrimPrefix(uri, "dw://")
	default:
		return "", "", &InvalidArgumentError{
			Arg:    "uri",
			Reason: fmt.Sprintf("expected s3:// or dw:// scheme: %s", raw),
		}
	}

	// Tolerate triple-slash variants.
	uri = strings.TrimLeft(uri, "/")

	bucket, key, _ = strings.Cut(uri, "/")
	if bucket == "" {
		return "", "", &InvalidArgumentError{Arg: "uri", Reason: "missing bucket: " + raw}
	}
	return bucket, key, nil
}
