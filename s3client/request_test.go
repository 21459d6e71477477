package s3client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequest_Path(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bucket string
		key    string
		want   string
	}{
		{"photos", "puppy.jpg", "/photos/puppy.jpg"},
		{"photos", "2024/06/puppy.jpg", "/photos/2024/06/puppy.jpg"},
		{"photos", "", "/photos/"},
		{"b", "with space", "/b/with space"},
	}

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		for _, tt := range tests {
			req := newRequest("id", method, tt.bucket, tt.key)
			require.Equal(t, tt.want, req.Path(), "%s %s/%s", method, tt.bucket, tt.key)
		}
	}
}

func TestRequest_Finalize(t *testing.T) {
	t.Parallel()

	req := newRequest("id", http.MethodPut, "b", "k")
	require.NoError(t, req.SetHeader("Content-Type", "text/plain"))
	require.NoError(t, req.SetContentLength(3))
	require.False(t, req.Finalized())

	req.finalize()

	require.True(t, req.Finalized())
	require.ErrorIs(t, req.SetHeader("Content-Type", "image/png"), ErrRequestFinalized)
	require.ErrorIs(t, req.DelHeader("Content-Type"), ErrRequestFinalized)
	require.ErrorIs(t, req.SetContentLength(9), ErrRequestFinalized)
	require.Equal(t, "text/plain", req.GetHeader("Content-Type"))

	n, ok := req.ContentLength()
	require.True(t, ok)
	require.EqualValues(t, 3, n)
}

func TestRequest_HeaderIsCopy(t *testing.T) {
	t.Parallel()

	req := newRequest("id", http.MethodGet, "b", "k")
	require.NoError(t, req.SetHeader("Date", "now"))

	h := req.Header()
	h.Set("Date", "changed")

	require.Equal(t, "now", req.GetHeader("Date"))

	_, ok := req.ContentLength()
	require.False(t, ok)
}
