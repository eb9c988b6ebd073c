package futures

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteGetBuildsURL(t *testing.T) {
	var gotURL, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"code":0,"data":{}}`))
	}))
	defer server.Close()

	s := newTestSettings(t, Options{BaseURL: server.URL, LogLevel: "SILENT"})

	q := url.Values{}
	q.Set("symbol", "BTC_USDT")
	raw, err := s.execute(context.Background(), request{
		method: "GET",
		path:   "/api/v1/contract/ticker",
		query:  q,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, raw.status)
	assert.Equal(t, "/api/v1/contract/ticker?symbol=BTC_USDT", gotURL)
	assert.Empty(t, gotAuth, "public requests must not carry the credential")
}

func TestExecutePostSendsSignedBody(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.Write([]byte(`{"success":true,"code":0,"data":1}`))
	}))
	defer server.Close()

	s := newTestSettings(t, Options{BaseURL: server.URL, LogLevel: "SILENT"})

	_, err := s.execute(context.Background(), request{
		method: "POST",
		path:   "/api/v1/private/order/cancel_all",
		body:   map[string]string{"symbol": "BTC_USDT"},
		auth:   true,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"symbol":"BTC_USDT"}`, string(gotBody))
	assert.Equal(t, "WEBtesttoken", gotHeader.Get("Authorization"))
	assert.NotEmpty(t, gotHeader.Get("x-mxc-nonce"))
	assert.NotEmpty(t, gotHeader.Get("x-mxc-sign"))
}

func TestExecuteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	s := newTestSettings(t, Options{
		BaseURL:  server.URL,
		Timeout:  20 * time.Millisecond,
		LogLevel: "SILENT",
	})

	_, err := s.execute(context.Background(), request{method: "GET", path: "/slow"})
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout)
	assert.NotNil(t, netErr.Unwrap())
}

func TestExecuteConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	s := newTestSettings(t, Options{BaseURL: deadURL, LogLevel: "SILENT"})

	_, err := s.execute(context.Background(), request{method: "GET", path: "/"})
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, netErr.Timeout)
}

func TestExecuteContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(time.Second)
	}))
	defer server.Close()

	s := newTestSettings(t, Options{BaseURL: server.URL, LogLevel: "SILENT"})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := s.execute(ctx, request{method: "GET", path: "/hang"})
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestRetryAfterHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "present", header: "5", want: 5 * time.Second},
		{name: "absent", header: "", want: DefaultRetryAfter},
		{name: "malformed", header: "soon", want: DefaultRetryAfter},
		{name: "negative", header: "-1", want: DefaultRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Retry-After", tt.header)
			}
			raw := &rawResponse{status: 429, header: h}
			assert.Equal(t, tt.want, raw.retryAfter(DefaultRetryAfter))
		})
	}
}
