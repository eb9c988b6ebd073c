// Package futures is a client for the MEXC USDT-M futures REST API,
// authenticated with a browser-session WEB token rather than a signed API
// key pair.
//
// Client is the context-based interface: every method issues one HTTP
// request and suspends only at the network boundary, so any number of calls
// may be in flight concurrently over the shared connection pool. SyncClient
// wraps the same core with a blocking calling convention.
//
// Every failure is one of the closed set of error kinds rooted at Error:
// ConfigurationError, AuthenticationError, RateLimitError, ValidationError,
// APIError, and NetworkError. The client never retries on its own; see
// Retrier for an explicit, opt-in retry policy.
package futures

import (
	"context"
)

// Client is the non-blocking MEXC futures client. It is safe for
// concurrent use: the validated configuration is read-only and the
// connection pool inside the shared http.Client manages its own
// synchronization.
//
// Cancelling a call's context closes the underlying socket and releases
// the call's resources, but the exchange may have already received the
// request: cancelling a pending SubmitOrder does NOT cancel the order.
// No cross-call ordering is guaranteed; two orders submitted concurrently
// may reach the exchange in either order.
type Client struct {
	settings *settings
}

// NewClient validates the options and returns a ready client. The returned
// *ConfigurationError pinpoints the offending field when validation fails.
func NewClient(opts Options) (*Client, error) {
	s, err := opts.validate()
	if err != nil {
		return nil, err
	}
	return &Client{settings: s}, nil
}

// Close releases the idle connections held by the SDK-owned pool. Calls in
// flight are not interrupted. A client is not usable for guarantees about
// pooling after Close, but subsequent calls still work; they just dial
// fresh connections.
func (c *Client) Close() {
	c.settings.closeTransport()
}

// Ping reports whether the exchange is reachable with the current
// configuration, using a public endpoint.
func (c *Client) Ping(ctx context.Context) bool {
	_, err := c.Ticker(ctx, "BTC_USDT")
	return err == nil
}

// call executes one request and interprets the response into T. This is
// the single seam between the typed endpoint layer and the transport.
func call[T any](ctx context.Context, c *Client, req request) (*Response[T], error) {
	raw, err := c.settings.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}
