package futures

import (
	"context"
	"net/url"
	"strconv"
)

// RiskLimit is one tier of the account's risk limit ladder for a contract.
type RiskLimit struct {
	Symbol       string   `json:"symbol"`
	Level        int      `json:"level"`
	MaxVol       float64  `json:"maxVol"`
	MMR          float64  `json:"mmr"`
	IMR          float64  `json:"imr"`
	MaxLeverage  int      `json:"maxLeverage"`
	PositionType int      `json:"positionType"`
	OpenType     int      `json:"openType"`
	Leverage     int      `json:"leverage"`
	LimitBySys   bool     `json:"limitBySys"`
	CurrentMMR   *float64 `json:"currentMmr,omitempty"`
}

// RiskLimits returns the risk limit tiers keyed by contract symbol.
func (c *Client) RiskLimits(ctx context.Context) (*Response[map[string][]RiskLimit], error) {
	return call[map[string][]RiskLimit](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/account/risk_limit",
		auth:   true,
	})
}

// FeeRate is the account's maker/taker fee for one contract.
type FeeRate struct {
	Symbol       string  `json:"symbol"`
	TakerFeeRate float64 `json:"takerFeeRate"`
	MakerFeeRate float64 `json:"makerFeeRate"`
}

// FeeRates returns the account's per-contract fee rates.
func (c *Client) FeeRates(ctx context.Context) (*Response[[]FeeRate], error) {
	return call[[]FeeRate](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/account/tiered_fee_rate",
		auth:   true,
	})
}

// AccountAsset is the account's balance in a single currency.
type AccountAsset struct {
	Currency         string  `json:"currency"`
	PositionMargin   float64 `json:"positionMargin"`
	AvailableBalance float64 `json:"availableBalance"`
	CashBalance      float64 `json:"cashBalance"`
	FrozenBalance    float64 `json:"frozenBalance"`
	Equity           float64 `json:"equity"`
	Unrealized       float64 `json:"unrealized"`
	Bonus            float64 `json:"bonus"`
}

// AccountAsset returns the balance for one currency, e.g. "USDT".
func (c *Client) AccountAsset(ctx context.Context, currency string) (*Response[AccountAsset], error) {
	if currency == "" {
		return nil, &ValidationError{Field: "currency", Message: "must not be empty"}
	}
	return call[AccountAsset](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/account/asset/" + url.PathEscape(currency),
		auth:   true,
	})
}

// Position states, exchange-defined.
const (
	PositionStateHolding     = 1
	PositionStateAutoHolding = 2
	PositionStateClosed      = 3
)

// Position is a holding, open or historical.
type Position struct {
	PositionID     int64   `json:"positionId"`
	Symbol         string  `json:"symbol"`
	PositionType   int     `json:"positionType"`
	OpenType       int     `json:"openType"`
	State          int     `json:"state"`
	HoldVol        float64 `json:"holdVol"`
	FrozenVol      float64 `json:"frozenVol"`
	CloseVol       float64 `json:"closeVol"`
	HoldAvgPrice   float64 `json:"holdAvgPrice"`
	OpenAvgPrice   float64 `json:"openAvgPrice"`
	CloseAvgPrice  float64 `json:"closeAvgPrice"`
	LiquidatePrice float64 `json:"liquidatePrice"`
	OIM            float64 `json:"oim"`
	ADLLevel       *int    `json:"adlLevel,omitempty"`
	IM             float64 `json:"im"`
	HoldFee        float64 `json:"holdFee"`
	Realised       float64 `json:"realised"`
	Leverage       int     `json:"leverage"`
	CreateTime     int64   `json:"createTime"`
	UpdateTime     int64   `json:"updateTime"`
	AutoAddIM      *bool   `json:"autoAddIm,omitempty"`
}

// OpenPositions returns the currently held positions, optionally filtered
// to one contract symbol (empty symbol means all).
func (c *Client) OpenPositions(ctx context.Context, symbol string) (*Response[[]Position], error) {
	q := url.Values{}
	if symbol != "" {
		q.Set("symbol", symbol)
	}
	return call[[]Position](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/position/open_positions",
		query:  q,
		auth:   true,
	})
}

// PositionHistoryParams filters the historical position query. Type is 1
// for long, 2 for short, 0 for both.
type PositionHistoryParams struct {
	Symbol   string
	Type     int
	PageNum  int
	PageSize int
}

func (p PositionHistoryParams) query() (url.Values, error) {
	if p.PageNum <= 0 {
		return nil, &ValidationError{Field: "page_num", Message: "must be positive"}
	}
	if p.PageSize <= 0 || p.PageSize > 100 {
		return nil, &ValidationError{Field: "page_size", Message: "must be between 1 and 100"}
	}
	if p.Type != 0 && p.Type != 1 && p.Type != 2 {
		return nil, &ValidationError{Field: "type", Message: "must be 1 (long) or 2 (short)"}
	}
	q := url.Values{}
	q.Set("page_num", strconv.Itoa(p.PageNum))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	if p.Symbol != "" {
		q.Set("symbol", p.Symbol)
	}
	if p.Type != 0 {
		q.Set("type", strconv.Itoa(p.Type))
	}
	return q, nil
}

// PositionHistory returns closed or historical positions.
func (c *Client) PositionHistory(ctx context.Context, params PositionHistoryParams) (*Response[[]Position], error) {
	q, err := params.query()
	if err != nil {
		return nil, err
	}
	return call[[]Position](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/position/list/history_positions",
		query:  q,
		auth:   true,
	})
}
