package futures

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// RiseFallRates groups the price-change rates over several windows.
type RiseFallRates struct {
	Zone string   `json:"zone"`
	R    float64  `json:"r"`
	V    float64  `json:"v"`
	R7   float64  `json:"r7"`
	R30  *float64 `json:"r30,omitempty"`
	R90  *float64 `json:"r90,omitempty"`
	R180 *float64 `json:"r180,omitempty"`
	R365 *float64 `json:"r365,omitempty"`
}

// Ticker is the market snapshot for one contract.
type Ticker struct {
	ContractID              int64         `json:"contractId"`
	Symbol                  string        `json:"symbol"`
	LastPrice               float64       `json:"lastPrice"`
	Bid1                    float64       `json:"bid1"`
	Ask1                    float64       `json:"ask1"`
	Volume24                float64       `json:"volume24"`
	Amount24                float64       `json:"amount24"`
	HoldVol                 float64       `json:"holdVol"`
	Lower24Price            float64       `json:"lower24Price"`
	High24Price             float64       `json:"high24Price"`
	RiseFallRate            float64       `json:"riseFallRate"`
	RiseFallValue           float64       `json:"riseFallValue"`
	IndexPrice              float64       `json:"indexPrice"`
	FairPrice               float64       `json:"fairPrice"`
	FundingRate             float64       `json:"fundingRate"`
	MaxBidPrice             float64       `json:"maxBidPrice"`
	MinAskPrice             float64       `json:"minAskPrice"`
	Timestamp               int64         `json:"timestamp"`
	RiseFallRates           RiseFallRates `json:"riseFallRates"`
	RiseFallRatesOfTimezone []float64     `json:"riseFallRatesOfTimezone"`
}

// Ticker returns the market snapshot for a contract symbol. Public
// endpoint, no credential attached.
func (c *Client) Ticker(ctx context.Context, symbol string) (*Response[Ticker], error) {
	if symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	return call[Ticker](ctx, c, request{
		method: "GET",
		path:   "/api/v1/contract/ticker",
		query:  q,
	})
}

// ContractDetail describes one listed futures contract.
type ContractDetail struct {
	Symbol                     string   `json:"symbol"`
	DisplayName                string   `json:"displayName"`
	DisplayNameEn              string   `json:"displayNameEn"`
	PositionOpenType           int      `json:"positionOpenType"`
	BaseCoin                   string   `json:"baseCoin"`
	QuoteCoin                  string   `json:"quoteCoin"`
	SettleCoin                 string   `json:"settleCoin"`
	ContractSize               float64  `json:"contractSize"`
	MinLeverage                int      `json:"minLeverage"`
	MaxLeverage                int      `json:"maxLeverage"`
	PriceScale                 int      `json:"priceScale"`
	VolScale                   int      `json:"volScale"`
	AmountScale                int      `json:"amountScale"`
	PriceUnit                  float64  `json:"priceUnit"`
	VolUnit                    float64  `json:"volUnit"`
	MinVol                     float64  `json:"minVol"`
	MaxVol                     float64  `json:"maxVol"`
	BidLimitPriceRate          float64  `json:"bidLimitPriceRate"`
	AskLimitPriceRate          float64  `json:"askLimitPriceRate"`
	TakerFeeRate               float64  `json:"takerFeeRate"`
	MakerFeeRate               float64  `json:"makerFeeRate"`
	MaintenanceMarginRate      float64  `json:"maintenanceMarginRate"`
	InitialMarginRate          float64  `json:"initialMarginRate"`
	RiskBaseVol                float64  `json:"riskBaseVol"`
	RiskIncrVol                float64  `json:"riskIncrVol"`
	RiskIncrMmr                float64  `json:"riskIncrMmr"`
	RiskIncrImr                float64  `json:"riskIncrImr"`
	RiskLevelLimit             int      `json:"riskLevelLimit"`
	PriceCoefficientVariation  float64  `json:"priceCoefficientVariation"`
	IndexOrigin                []string `json:"indexOrigin"`
	State                      int      `json:"state"`
	IsNew                      bool     `json:"isNew"`
	IsHot                      bool     `json:"isHot"`
	IsHidden                   bool     `json:"isHidden"`
	ConceptPlate               []string `json:"conceptPlate"`
	RiskLimitType              string   `json:"riskLimitType"`
	MaxNumOrders               []int    `json:"maxNumOrders"`
	MarketOrderMaxLevel        int      `json:"marketOrderMaxLevel"`
	MarketOrderPriceLimitRate1 float64  `json:"marketOrderPriceLimitRate1"`
	MarketOrderPriceLimitRate2 float64  `json:"marketOrderPriceLimitRate2"`
	TriggerProtect             float64  `json:"triggerProtect"`
	Appraisal                  float64  `json:"appraisal"`
	ShowAppraisalCountdown     int      `json:"showAppraisalCountdown"`
	AutomaticDelivery          int      `json:"automaticDelivery"`
	APIAllowed                 bool     `json:"apiAllowed"`
}

// ContractDetails is a list of contract descriptions. The endpoint returns
// a single object when queried with a symbol and an array otherwise; both
// decode to a slice.
type ContractDetails []ContractDetail

func (d *ContractDetails) UnmarshalJSON(b []byte) error {
	var many []ContractDetail
	if err := json.Unmarshal(b, &many); err == nil {
		*d = many
		return nil
	}

	var one ContractDetail
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*d = ContractDetails{one}
	return nil
}

// ContractDetail returns contract information for one symbol, or for every
// listed contract when symbol is empty. Public endpoint.
func (c *Client) ContractDetail(ctx context.Context, symbol string) (*Response[ContractDetails], error) {
	q := url.Values{}
	if symbol != "" {
		q.Set("symbol", symbol)
	}
	return call[ContractDetails](ctx, c, request{
		method: "GET",
		path:   "/api/v1/contract/detail",
		query:  q,
	})
}

// DepthLevel is one order book level. On the wire it is a positional array,
// [price, volume] or [price, volume, count].
type DepthLevel struct {
	Price  float64
	Volume float64
	Count  int
}

func (l *DepthLevel) UnmarshalJSON(b []byte) error {
	var fields []float64
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("depth level needs at least price and volume, got %d fields", len(fields))
	}
	l.Price = fields[0]
	l.Volume = fields[1]
	if len(fields) > 2 {
		l.Count = int(fields[2])
	}
	return nil
}

func (l DepthLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{l.Price, l.Volume, float64(l.Count)})
}

// Depth is the order book snapshot for one contract. Asks ascend in price,
// bids descend.
type Depth struct {
	Asks      []DepthLevel `json:"asks"`
	Bids      []DepthLevel `json:"bids"`
	Version   int64        `json:"version"`
	Timestamp int64        `json:"timestamp"`
}

// Depth returns the order book for a contract, optionally limited to the
// given number of levels per side (0 means the exchange default). Public
// endpoint; the exchange replies with the bare payload, no envelope.
func (c *Client) Depth(ctx context.Context, symbol string, limit int) (*Response[Depth], error) {
	if symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if limit < 0 {
		return nil, &ValidationError{Field: "limit", Message: "must not be negative"}
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return call[Depth](ctx, c, request{
		method: "GET",
		path:   "/api/v1/contract/depth/" + url.PathEscape(symbol),
		query:  q,
	})
}
