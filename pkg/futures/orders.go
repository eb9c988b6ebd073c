package futures

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Order direction codes, exchange-defined.
const (
	SideOpenLong   = 1
	SideCloseShort = 2
	SideOpenShort  = 3
	SideCloseLong  = 4
)

// Order type codes, exchange-defined.
const (
	TypeLimit    = 1
	TypePostOnly = 2
	TypeIOC      = 3
	TypeFOK      = 4
	TypeMarket   = 5
	TypeConvert  = 6
)

// Margin mode codes, exchange-defined.
const (
	OpenTypeIsolated = 1
	OpenTypeCross    = 2
)

// MaxCancelBatch is the largest number of order ids accepted by a single
// CancelOrders call.
const MaxCancelBatch = 50

// SubmitOrderRequest carries the parameters for placing a futures order.
//
// The exchange requires price even for market orders (type 5); that is the
// venue's documented contract, not an SDK quirk, and it is validated as
// such. Leverage is mandatory when OpenType is isolated margin.
type SubmitOrderRequest struct {
	Symbol          string   `json:"symbol"`
	Price           float64  `json:"price"`
	Vol             float64  `json:"vol"`
	Leverage        int      `json:"leverage,omitempty"`
	Side            int      `json:"side"`
	Type            int      `json:"type"`
	OpenType        int      `json:"openType"`
	PositionID      int64    `json:"positionId,omitempty"`
	ExternalOID     string   `json:"externalOid,omitempty"`
	StopLossPrice   *float64 `json:"stopLossPrice,omitempty"`
	TakeProfitPrice *float64 `json:"takeProfitPrice,omitempty"`
	PositionMode    int      `json:"positionMode,omitempty"`
	ReduceOnly      *bool    `json:"reduceOnly,omitempty"`
}

// validate enforces the documented mandatory-parameter rules before any
// network call, so predictably-rejected orders never cost a round trip.
func (r SubmitOrderRequest) validate() error {
	if r.Symbol == "" {
		return &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if r.Price <= 0 {
		return &ValidationError{Field: "price", Message: "must be positive (mandatory even for market orders)"}
	}
	if r.Vol <= 0 {
		return &ValidationError{Field: "vol", Message: "must be positive"}
	}
	if r.Side < SideOpenLong || r.Side > SideCloseLong {
		return &ValidationError{Field: "side", Message: "must be 1 (open long), 2 (close short), 3 (open short) or 4 (close long)"}
	}
	if r.Type < TypeLimit || r.Type > TypeConvert {
		return &ValidationError{Field: "type", Message: "must be between 1 and 6"}
	}
	if r.OpenType != OpenTypeIsolated && r.OpenType != OpenTypeCross {
		return &ValidationError{Field: "openType", Message: "must be 1 (isolated) or 2 (cross)"}
	}
	if r.OpenType == OpenTypeIsolated && r.Leverage <= 0 {
		return &ValidationError{Field: "leverage", Message: "required for isolated margin orders"}
	}
	if r.PositionMode != 0 && r.PositionMode != 1 && r.PositionMode != 2 {
		return &ValidationError{Field: "positionMode", Message: "must be 1 (hedge) or 2 (one-way)"}
	}
	return nil
}

// SubmitOrderData is the identifier the exchange assigns to an accepted
// order. It arrives either as a bare number/string or as {"orderId": ...};
// both decode to the string form.
type SubmitOrderData struct {
	OrderID string
}

func (d *SubmitOrderData) UnmarshalJSON(b []byte) error {
	var obj struct {
		OrderID json.RawMessage `json:"orderId"`
	}
	if err := json.Unmarshal(b, &obj); err == nil && len(obj.OrderID) > 0 {
		return d.setFrom(obj.OrderID)
	}
	return d.setFrom(b)
}

// setFrom accepts the id as either a JSON string or a JSON number.
func (d *SubmitOrderData) setFrom(raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		d.OrderID = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		d.OrderID = n.String()
		return nil
	}

	return fmt.Errorf("unsupported order id shape: %s", raw)
}

func (d SubmitOrderData) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"orderId": d.OrderID})
}

// SubmitOrder places a futures order.
//
// Abandoning the call by cancelling ctx closes the socket, but the exchange
// may still accept the order: cancelling the call is not cancelling the
// trade. Use CancelOrders afterwards if the outcome matters.
func (c *Client) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*Response[SubmitOrderData], error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return call[SubmitOrderData](ctx, c, request{
		method: "POST",
		path:   "/api/v1/private/order/submit",
		body:   req,
		auth:   true,
	})
}

// CancelOrderResult reports the per-order outcome of a batch cancel.
// ErrorCode 0 means the order was cancelled.
type CancelOrderResult struct {
	OrderID   int64  `json:"orderId"`
	ErrorCode int    `json:"errorCode"`
	ErrorMsg  string `json:"errorMsg"`
}

// CancelOrders cancels up to MaxCancelBatch orders by id in one call.
func (c *Client) CancelOrders(ctx context.Context, orderIDs []int64) (*Response[[]CancelOrderResult], error) {
	if len(orderIDs) == 0 {
		return nil, &ValidationError{Field: "orderIds", Message: "must not be empty"}
	}
	if len(orderIDs) > MaxCancelBatch {
		return nil, &ValidationError{Field: "orderIds", Message: fmt.Sprintf("at most %d orders per call", MaxCancelBatch)}
	}
	return call[[]CancelOrderResult](ctx, c, request{
		method: "POST",
		path:   "/api/v1/private/order/cancel",
		body:   orderIDs,
		auth:   true,
	})
}

// CancelWithExternalRequest identifies an order by the caller-assigned
// external id rather than the exchange id.
type CancelWithExternalRequest struct {
	Symbol      string `json:"symbol"`
	ExternalOID string `json:"externalOid"`
}

// CancelWithExternalData echoes the cancelled order's identity.
type CancelWithExternalData struct {
	Symbol      string `json:"symbol"`
	ExternalOID string `json:"externalOid"`
}

// CancelOrderWithExternal cancels a single order by its external id.
func (c *Client) CancelOrderWithExternal(ctx context.Context, req CancelWithExternalRequest) (*Response[CancelWithExternalData], error) {
	if req.Symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if req.ExternalOID == "" {
		return nil, &ValidationError{Field: "externalOid", Message: "must not be empty"}
	}
	return call[CancelWithExternalData](ctx, c, request{
		method: "POST",
		path:   "/api/v1/private/order/cancel_with_external",
		body:   req,
		auth:   true,
	})
}

// CancelAllOrders cancels every open order, optionally restricted to one
// contract symbol (empty symbol means all contracts).
func (c *Client) CancelAllOrders(ctx context.Context, symbol string) (*Response[json.RawMessage], error) {
	body := map[string]string{}
	if symbol != "" {
		body["symbol"] = symbol
	}
	return call[json.RawMessage](ctx, c, request{
		method: "POST",
		path:   "/api/v1/private/order/cancel_all",
		body:   body,
		auth:   true,
	})
}

// Order is a historical order record.
type Order struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Side       int     `json:"side"`
	Type       string  `json:"type"`
	Vol        float64 `json:"vol"`
	Price      string  `json:"price"`
	Leverage   int     `json:"leverage"`
	Status     string  `json:"status"`
	CreateTime int64   `json:"createTime"`
	UpdateTime int64   `json:"updateTime"`
}

// OrderHistoryParams filters the order history query.
type OrderHistoryParams struct {
	Symbol   string
	States   int
	Category int
	PageNum  int
	PageSize int
}

func (p OrderHistoryParams) query() (url.Values, error) {
	if p.Symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if p.PageNum <= 0 {
		return nil, &ValidationError{Field: "page_num", Message: "must be positive"}
	}
	if p.PageSize <= 0 || p.PageSize > 100 {
		return nil, &ValidationError{Field: "page_size", Message: "must be between 1 and 100"}
	}
	q := url.Values{}
	q.Set("symbol", p.Symbol)
	q.Set("states", strconv.Itoa(p.States))
	q.Set("category", strconv.Itoa(p.Category))
	q.Set("page_num", strconv.Itoa(p.PageNum))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	return q, nil
}

// OrderHistoryData is the paged order history payload. The exchange sends
// an empty array instead of the object when there are no orders; both
// decode to an empty page.
type OrderHistoryData struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

func (d *OrderHistoryData) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err == nil {
		if len(items) > 0 {
			return fmt.Errorf("unexpected array of %d elements for order history", len(items))
		}
		*d = OrderHistoryData{Orders: []Order{}}
		return nil
	}

	type alias OrderHistoryData
	var out alias
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*d = OrderHistoryData(out)
	return nil
}

// OrderHistory lists the account's past orders for a contract.
func (c *Client) OrderHistory(ctx context.Context, params OrderHistoryParams) (*Response[OrderHistoryData], error) {
	q, err := params.query()
	if err != nil {
		return nil, err
	}
	return call[OrderHistoryData](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/order/list/history_orders",
		query:  q,
		auth:   true,
	})
}

// OrderDeal is one fill belonging to an order.
type OrderDeal struct {
	ID          int64  `json:"id"`
	Symbol      string `json:"symbol"`
	Side        int    `json:"side"`
	Vol         string `json:"vol"`
	Price       string `json:"price"`
	Fee         string `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
	Profit      string `json:"profit"`
	IsTaker     bool   `json:"isTaker"`
	Category    int    `json:"category"`
	OrderID     int64  `json:"orderId"`
	Timestamp   int64  `json:"timestamp"`
}

// OrderDealsParams filters the fill history query. StartTime/EndTime are
// millisecond timestamps; zero means unbounded.
type OrderDealsParams struct {
	Symbol    string
	StartTime int64
	EndTime   int64
	PageNum   int
	PageSize  int
}

func (p OrderDealsParams) query() (url.Values, error) {
	if p.Symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if p.PageNum <= 0 {
		return nil, &ValidationError{Field: "page_num", Message: "must be positive"}
	}
	if p.PageSize <= 0 || p.PageSize > 100 {
		return nil, &ValidationError{Field: "page_size", Message: "must be between 1 and 100"}
	}
	q := url.Values{}
	q.Set("symbol", p.Symbol)
	q.Set("page_num", strconv.Itoa(p.PageNum))
	q.Set("page_size", strconv.Itoa(p.PageSize))
	if p.StartTime > 0 {
		q.Set("start_time", strconv.FormatInt(p.StartTime, 10))
	}
	if p.EndTime > 0 {
		q.Set("end_time", strconv.FormatInt(p.EndTime, 10))
	}
	return q, nil
}

// OrderDeals lists the account's fills for a contract.
func (c *Client) OrderDeals(ctx context.Context, params OrderDealsParams) (*Response[[]OrderDeal], error) {
	q, err := params.query()
	if err != nil {
		return nil, err
	}
	return call[[]OrderDeal](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/order/list/order_deals",
		query:  q,
		auth:   true,
	})
}

// OrderDetail is the full state of a single order.
type OrderDetail struct {
	OrderID      string  `json:"orderId"`
	Symbol       string  `json:"symbol"`
	PositionID   int64   `json:"positionId"`
	Price        float64 `json:"price"`
	Vol          float64 `json:"vol"`
	Leverage     int     `json:"leverage"`
	Side         int     `json:"side"`
	Category     int     `json:"category"`
	OrderType    int     `json:"orderType"`
	DealAvgPrice float64 `json:"dealAvgPrice"`
	DealVol      float64 `json:"dealVol"`
	OrderMargin  float64 `json:"orderMargin"`
	TakerFee     float64 `json:"takerFee"`
	MakerFee     float64 `json:"makerFee"`
	Profit       float64 `json:"profit"`
	FeeCurrency  string  `json:"feeCurrency"`
	OpenType     int     `json:"openType"`
	State        int     `json:"state"`
	ExternalOID  string  `json:"externalOid"`
	ErrorCode    int     `json:"errorCode"`
	UsedMargin   float64 `json:"usedMargin"`
	CreateTime   int64   `json:"createTime"`
	UpdateTime   int64   `json:"updateTime"`
}

// GetOrder fetches an order by its exchange-assigned id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Response[OrderDetail], error) {
	if orderID == "" {
		return nil, &ValidationError{Field: "orderId", Message: "must not be empty"}
	}
	return call[OrderDetail](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/order/get/" + url.PathEscape(orderID),
		auth:   true,
	})
}

// GetOrderWithExternal fetches an order by symbol and external id.
func (c *Client) GetOrderWithExternal(ctx context.Context, symbol, externalOID string) (*Response[OrderDetail], error) {
	if symbol == "" {
		return nil, &ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if externalOID == "" {
		return nil, &ValidationError{Field: "externalOid", Message: "must not be empty"}
	}
	return call[OrderDetail](ctx, c, request{
		method: "GET",
		path:   "/api/v1/private/order/external/" + url.PathEscape(symbol) + "/" + url.PathEscape(externalOID),
		auth:   true,
	})
}
