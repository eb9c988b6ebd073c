// Package mexcfutures provides a Go client for the MEXC USDT-M futures
// REST API, authenticated with a browser-session WEB token.
//
// The SDK lives in pkg/futures. It turns typed method calls into
// authenticated HTTP requests, interprets the exchange's response envelope
// {success, code, message, data}, and maps every failure into a closed
// error taxonomy that callers can branch on programmatically.
//
// # Clients
//
// Two calling conventions wrap one core executor:
//
//   - futures.Client: every method takes a context.Context and suspends
//     only at the network boundary. Unbounded concurrent calls share one
//     connection pool.
//
//   - futures.SyncClient: the same operations as blocking calls, each
//     bounded by the configured timeout.
//
// Both are constructed from the same Options and produce identical results
// and errors for identical inputs.
//
//	client, err := futures.NewClient(futures.Options{
//	    AuthToken: os.Getenv("WEB_TOKEN"),
//	    Timeout:   15 * time.Second,
//	    LogLevel:  "INFO",
//	})
//	if err != nil {
//	    log.Fatalf("bad configuration: %v", err)
//	}
//	defer client.Close()
//
//	resp, err := client.SubmitOrder(ctx, futures.SubmitOrderRequest{
//	    Symbol:   "BTC_USDT",
//	    Price:    50000,
//	    Vol:      0.001,
//	    Side:     futures.SideOpenLong,
//	    Type:     futures.TypeMarket,
//	    OpenType: futures.OpenTypeIsolated,
//	    Leverage: 10,
//	})
//
// # Errors
//
// Every failure satisfies the futures.Error interface and is exactly one of:
//
//   - ConfigurationError: invalid settings at construction; fix the
//     configuration.
//
//   - AuthenticationError: HTTP 401, an auth-failure envelope code, or a
//     rejected web signature (code 602); refresh the WEB token.
//
//   - RateLimitError: HTTP 429 or envelope code 510; retriable after its
//     RetryAfter duration.
//
//   - ValidationError: a parameter failed local validation, or a response
//     payload did not match its declared schema; fix the input.
//
//   - APIError: any other non-success envelope; inspect Code and Message.
//
//   - NetworkError: connection, DNS, TLS, or timeout failure; retriable
//     with backoff.
//
//	var rl *futures.RateLimitError
//	if errors.As(err, &rl) {
//	    time.Sleep(rl.RetryAfter)
//	}
//
// The client never retries on its own. futures.Retrier is the explicit
// opt-in policy for retriable failures, with optional pkg/ratelimit pacing.
//
// # Cancellation hazard
//
// Cancelling a pending call's context closes the socket and releases the
// call's resources, but the exchange may already have processed the
// request. Cancelling the call is not cancelling the trade: after an
// abandoned SubmitOrder, reconcile with GetOrderWithExternal or
// CancelOrders before assuming no position was opened.
package mexcfutures
