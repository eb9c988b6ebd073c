package futures

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/veiloq/mexc-futures/pkg/logging"
)

// request describes one API call: the HTTP verb, the endpoint path relative
// to the base URL, and either query parameters (GET) or a JSON body (POST).
// A request is built per call and never shared.
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	auth   bool
}

// rawResponse captures a fully-read HTTP response. The body is buffered so
// interpretation is a pure function of this value and can run repeatedly
// with identical results.
type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// retryAfter reads the Retry-After header, falling back to def when the
// header is absent or malformed.
func (r *rawResponse) retryAfter(def time.Duration) time.Duration {
	v := r.header.Get("Retry-After")
	if v == "" {
		return def
	}
	seconds, err := time.ParseDuration(v + "s")
	if err != nil || seconds < 0 {
		return def
	}
	return seconds
}

// execute builds, signs, and sends a single HTTP request, returning the
// buffered response. It never retries: retry and pacing policy belong to
// the caller (see Retrier) so that a trading order is never silently
// resubmitted.
//
// Transport-level failures are reported as *NetworkError, with Timeout set
// when the configured deadline or the context deadline expired.
func (s *settings) execute(ctx context.Context, req request) (*rawResponse, error) {
	endpoint := s.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		endpoint.RawQuery = req.query.Encode()
	}

	var bodyBytes []byte
	if req.body != nil {
		var err error
		bodyBytes, err = json.Marshal(req.body)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("cannot encode request body: %v", err)}
		}
	}

	var bodyReader io.Reader
	if bodyBytes != nil {
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint.String(), bodyReader)
	if err != nil {
		return nil, &NetworkError{Cause: err}
	}
	s.applyHeaders(httpReq.Header, req.auth, bodyBytes, time.Now())

	start := time.Now()
	resp, err := s.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		netErr := &NetworkError{Cause: err, Timeout: isTimeout(ctx, err)}
		s.logger.Debug("request failed",
			logging.String("method", req.method),
			logging.String("path", req.path),
			logging.Duration("elapsed", elapsed),
			logging.Error(netErr),
		)
		return nil, netErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Cause: err, Timeout: isTimeout(ctx, err)}
	}

	// The credential and signature headers are deliberately not logged.
	s.logger.Debug("request completed",
		logging.String("method", req.method),
		logging.String("path", req.path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", elapsed),
	)

	return &rawResponse{
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}, nil
}

// isTimeout reports whether err is a deadline expiry rather than a
// connection, DNS, or TLS failure.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// closeTransport releases the idle connections held by the SDK-owned pool.
func (s *settings) closeTransport() {
	s.httpClient.CloseIdleConnections()
}
