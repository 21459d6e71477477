package s3client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"bucket only", "s3://photos", "photos", "", false},
		{"bucket trailing slash", "s3://photos/", "photos", "", false},
		{"bucket and key", "s3://photos/puppy.jpg", "photos", "puppy.jpg", false},
		{"nested key", "s3://photos/2024/06/puppy.jpg", "photos", "2024/06/puppy.jpg", false},
		{"dw scheme", "dw://warehouse/data.json", "warehouse", "data.json", false},
		{"triple slash", "s3:///photos/puppy.jpg", "photos", "puppy.jpg", false},
		{"no scheme", "photos/puppy.jpg", "", "", true},
		{"http scheme", "http://photos/puppy.jpg", "", "", true},
		{"empty bucket", "s3://", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantBucket, bucket)
			require.Equal(t, tt.wantKey, key)
		})
	}
}
