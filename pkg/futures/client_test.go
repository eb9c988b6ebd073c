package futures

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// roundTripFunc adapts a function into an http.RoundTripper for mocking
// transport responses.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// jsonResponse builds an *http.Response with a JSON body and the given
// extra headers as key/value pairs.
func jsonResponse(status int, body string, headers ...string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		h.Set(headers[i], headers[i+1])
	}
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// newMockClient returns a Client whose transport is entirely served by fn.
func newMockClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()

	client, err := NewClient(Options{
		AuthToken:  "WEBtesttoken",
		HTTPClient: &http.Client{Transport: fn},
		LogLevel:   "SILENT",
	})
	require.NoError(t, err)
	return client
}

// newMockSyncClient is newMockClient for the blocking facade.
func newMockSyncClient(t *testing.T, fn roundTripFunc) *SyncClient {
	t.Helper()

	client, err := NewSyncClient(Options{
		AuthToken:  "WEBtesttoken",
		HTTPClient: &http.Client{Transport: fn},
		LogLevel:   "SILENT",
	})
	require.NoError(t, err)
	return client
}
