package futures

import (
	"context"
	"encoding/json"
)

// SyncClient exposes the same operations as Client under a blocking calling
// convention. Each method runs one call to completion, bounded by the
// configured timeout. It is a thin adapter over a single underlying Client,
// so both facades produce identical results and errors for identical
// inputs.
type SyncClient struct {
	client *Client
}

// NewSyncClient validates the options and returns a blocking client.
func NewSyncClient(opts Options) (*SyncClient, error) {
	client, err := NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &SyncClient{client: client}, nil
}

// Async returns the underlying context-based client, sharing configuration
// and connection pool.
func (s *SyncClient) Async() *Client {
	return s.client
}

// Close releases the shared connection pool.
func (s *SyncClient) Close() {
	s.client.Close()
}

// callContext bounds a blocking call by the configured timeout.
func (s *SyncClient) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.client.settings.timeout)
}

// SubmitOrder places a futures order and blocks until the exchange answers.
// The order may reach the exchange even when this call fails with a
// NetworkError; reconcile with GetOrderWithExternal when that matters.
func (s *SyncClient) SubmitOrder(req SubmitOrderRequest) (*Response[SubmitOrderData], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.SubmitOrder(ctx, req)
}

// CancelOrders cancels up to MaxCancelBatch orders by id.
func (s *SyncClient) CancelOrders(orderIDs []int64) (*Response[[]CancelOrderResult], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.CancelOrders(ctx, orderIDs)
}

// CancelOrderWithExternal cancels a single order by its external id.
func (s *SyncClient) CancelOrderWithExternal(req CancelWithExternalRequest) (*Response[CancelWithExternalData], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.CancelOrderWithExternal(ctx, req)
}

// CancelAllOrders cancels every open order, optionally for one symbol.
func (s *SyncClient) CancelAllOrders(symbol string) (*Response[json.RawMessage], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.CancelAllOrders(ctx, symbol)
}

// OrderHistory lists past orders.
func (s *SyncClient) OrderHistory(params OrderHistoryParams) (*Response[OrderHistoryData], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.OrderHistory(ctx, params)
}

// OrderDeals lists fills.
func (s *SyncClient) OrderDeals(params OrderDealsParams) (*Response[[]OrderDeal], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.OrderDeals(ctx, params)
}

// GetOrder fetches an order by exchange id.
func (s *SyncClient) GetOrder(orderID string) (*Response[OrderDetail], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.GetOrder(ctx, orderID)
}

// GetOrderWithExternal fetches an order by symbol and external id.
func (s *SyncClient) GetOrderWithExternal(symbol, externalOID string) (*Response[OrderDetail], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.GetOrderWithExternal(ctx, symbol, externalOID)
}

// RiskLimits returns risk limit tiers keyed by symbol.
func (s *SyncClient) RiskLimits() (*Response[map[string][]RiskLimit], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.RiskLimits(ctx)
}

// FeeRates returns per-contract fee rates.
func (s *SyncClient) FeeRates() (*Response[[]FeeRate], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.FeeRates(ctx)
}

// AccountAsset returns the balance for one currency.
func (s *SyncClient) AccountAsset(currency string) (*Response[AccountAsset], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.AccountAsset(ctx, currency)
}

// OpenPositions returns held positions, optionally for one symbol.
func (s *SyncClient) OpenPositions(symbol string) (*Response[[]Position], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.OpenPositions(ctx, symbol)
}

// PositionHistory returns historical positions.
func (s *SyncClient) PositionHistory(params PositionHistoryParams) (*Response[[]Position], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.PositionHistory(ctx, params)
}

// Ticker returns the market snapshot for a symbol.
func (s *SyncClient) Ticker(symbol string) (*Response[Ticker], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.Ticker(ctx, symbol)
}

// ContractDetail returns contract information.
func (s *SyncClient) ContractDetail(symbol string) (*Response[ContractDetails], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.ContractDetail(ctx, symbol)
}

// Depth returns the order book for a symbol.
func (s *SyncClient) Depth(symbol string, limit int) (*Response[Depth], error) {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.Depth(ctx, symbol, limit)
}

// Ping reports whether the exchange is reachable.
func (s *SyncClient) Ping() bool {
	ctx, cancel := s.callContext()
	defer cancel()
	return s.client.Ping(ctx)
}
