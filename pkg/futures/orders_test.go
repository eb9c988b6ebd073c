package futures

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() SubmitOrderRequest {
	return SubmitOrderRequest{
		Symbol:   "BTC_USDT",
		Price:    50000,
		Vol:      0.001,
		Side:     SideOpenLong,
		Type:     TypeMarket,
		OpenType: OpenTypeIsolated,
		Leverage: 10,
	}
}

func TestSubmitOrderSuccess(t *testing.T) {
	var calls int
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/v1/private/order/submit", req.URL.Path)
		return jsonResponse(200, `{"success":true,"code":0,"data":{"orderId":"12345"}}`), nil
	})

	resp, err := client.SubmitOrder(context.Background(), validOrder())
	require.NoError(t, err)
	assert.Equal(t, "12345", resp.Data.OrderID)
	assert.Equal(t, 1, calls)
}

func TestSubmitOrderNumericOrderID(t *testing.T) {
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"success":true,"code":0,"data":102015012431820288}`), nil
	})

	resp, err := client.SubmitOrder(context.Background(), validOrder())
	require.NoError(t, err)
	assert.Equal(t, "102015012431820288", resp.Data.OrderID)
}

func TestSubmitOrderBodyFields(t *testing.T) {
	var body map[string]interface{}
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		raw, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		return jsonResponse(200, `{"success":true,"code":0,"data":1}`), nil
	})

	_, err := client.SubmitOrder(context.Background(), validOrder())
	require.NoError(t, err)

	// Exactly the documented field names, nothing extra
	want := map[string]interface{}{
		"symbol":   "BTC_USDT",
		"price":    50000.0,
		"vol":      0.001,
		"leverage": 10.0,
		"side":     1.0,
		"type":     5.0,
		"openType": 1.0,
	}
	assert.Equal(t, want, body)
}

func TestSubmitOrderValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SubmitOrderRequest)
		wantField string
	}{
		{
			name:      "empty symbol",
			mutate:    func(r *SubmitOrderRequest) { r.Symbol = "" },
			wantField: "symbol",
		},
		{
			name:      "missing price even for market order",
			mutate:    func(r *SubmitOrderRequest) { r.Price = 0 },
			wantField: "price",
		},
		{
			name:      "missing vol",
			mutate:    func(r *SubmitOrderRequest) { r.Vol = 0 },
			wantField: "vol",
		},
		{
			name:      "side zero",
			mutate:    func(r *SubmitOrderRequest) { r.Side = 0 },
			wantField: "side",
		},
		{
			name:      "side out of range",
			mutate:    func(r *SubmitOrderRequest) { r.Side = 5 },
			wantField: "side",
		},
		{
			name:      "type out of range",
			mutate:    func(r *SubmitOrderRequest) { r.Type = 7 },
			wantField: "type",
		},
		{
			name:      "openType out of range",
			mutate:    func(r *SubmitOrderRequest) { r.OpenType = 3 },
			wantField: "openType",
		},
		{
			name: "leverage missing with isolated margin",
			mutate: func(r *SubmitOrderRequest) {
				r.OpenType = OpenTypeIsolated
				r.Leverage = 0
			},
			wantField: "leverage",
		},
		{
			name:      "positionMode out of range",
			mutate:    func(r *SubmitOrderRequest) { r.PositionMode = 3 },
			wantField: "positionMode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
				t.Fatal("validation failures must not reach the transport")
				return nil, nil
			})

			order := validOrder()
			tt.mutate(&order)

			_, err := client.SubmitOrder(context.Background(), order)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantField, valErr.Field)
		})
	}
}

func TestSubmitOrderLeverageOptionalForCross(t *testing.T) {
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"success":true,"code":0,"data":1}`), nil
	})

	order := validOrder()
	order.OpenType = OpenTypeCross
	order.Leverage = 0

	_, err := client.SubmitOrder(context.Background(), order)
	assert.NoError(t, err)
}

func TestCancelOrders(t *testing.T) {
	t.Run("sends ids as body", func(t *testing.T) {
		var body string
		client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
			raw, _ := io.ReadAll(req.Body)
			body = string(raw)
			assert.Equal(t, "/api/v1/private/order/cancel", req.URL.Path)
			return jsonResponse(200, `{"success":true,"code":0,"data":[{"orderId":7,"errorCode":0,"errorMsg":""}]}`), nil
		})

		resp, err := client.CancelOrders(context.Background(), []int64{7})
		require.NoError(t, err)
		assert.JSONEq(t, `[7]`, body)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, int64(7), resp.Data[0].OrderID)
		assert.Equal(t, 0, resp.Data[0].ErrorCode)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		client := newMockClient(t, nil)
		_, err := client.CancelOrders(context.Background(), nil)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "orderIds", valErr.Field)
	})

	t.Run("rejects oversized batch", func(t *testing.T) {
		client := newMockClient(t, nil)
		ids := make([]int64, MaxCancelBatch+1)
		_, err := client.CancelOrders(context.Background(), ids)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "orderIds", valErr.Field)
	})
}

func TestCancelAllOrders(t *testing.T) {
	var body string
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
		return jsonResponse(200, `{"success":true,"code":0}`), nil
	})

	_, err := client.CancelAllOrders(context.Background(), "BTC_USDT")
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"BTC_USDT"}`, body)

	_, err = client.CancelAllOrders(context.Background(), "")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, body)
}

func TestCancelOrderWithExternal(t *testing.T) {
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v1/private/order/cancel_with_external", req.URL.Path)
		return jsonResponse(200, `{"success":true,"code":0,"data":{"symbol":"BTC_USDT","externalOid":"my-oid"}}`), nil
	})

	resp, err := client.CancelOrderWithExternal(context.Background(), CancelWithExternalRequest{
		Symbol:      "BTC_USDT",
		ExternalOID: "my-oid",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-oid", resp.Data.ExternalOID)

	_, err = client.CancelOrderWithExternal(context.Background(), CancelWithExternalRequest{Symbol: "BTC_USDT"})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "externalOid", valErr.Field)
}

func TestOrderHistory(t *testing.T) {
	t.Run("query parameters", func(t *testing.T) {
		client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "BTC_USDT", q.Get("symbol"))
			assert.Equal(t, "1", q.Get("page_num"))
			assert.Equal(t, "20", q.Get("page_size"))
			return jsonResponse(200, `{"success":true,"code":0,"data":{"orders":[{"id":"9","symbol":"BTC_USDT","side":1,"vol":1,"price":"50000","leverage":10,"createTime":1,"updateTime":2}],"total":1}}`), nil
		})

		resp, err := client.OrderHistory(context.Background(), OrderHistoryParams{
			Symbol:   "BTC_USDT",
			States:   3,
			PageNum:  1,
			PageSize: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Data.Total)
		require.Len(t, resp.Data.Orders, 1)
		assert.Equal(t, "9", resp.Data.Orders[0].ID)
	})

	t.Run("empty page arrives as array", func(t *testing.T) {
		client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `{"success":true,"code":0,"data":[]}`), nil
		})

		resp, err := client.OrderHistory(context.Background(), OrderHistoryParams{
			Symbol:   "BTC_USDT",
			PageNum:  1,
			PageSize: 20,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Data.Orders)
		assert.Zero(t, resp.Data.Total)
	})

	t.Run("non-empty array is a schema violation", func(t *testing.T) {
		client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `{"success":true,"code":0,"data":[{"id":"9","symbol":"BTC_USDT"}]}`), nil
		})

		_, err := client.OrderHistory(context.Background(), OrderHistoryParams{
			Symbol:   "BTC_USDT",
			PageNum:  1,
			PageSize: 20,
		})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "data", valErr.Field)
	})

	t.Run("page size bounds", func(t *testing.T) {
		client := newMockClient(t, nil)
		_, err := client.OrderHistory(context.Background(), OrderHistoryParams{
			Symbol:   "BTC_USDT",
			PageNum:  1,
			PageSize: 101,
		})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "page_size", valErr.Field)
	})
}

func TestOrderDealsQuery(t *testing.T) {
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "BTC_USDT", q.Get("symbol"))
		assert.Equal(t, "1700000000000", q.Get("start_time"))
		assert.Empty(t, q.Get("end_time"))
		return jsonResponse(200, `{"success":true,"code":0,"data":[{"id":1,"symbol":"BTC_USDT","side":1,"vol":"1","price":"50000","fee":"0.1","feeCurrency":"USDT","profit":"0","isTaker":true,"category":1,"orderId":9,"timestamp":1700000000001}]}`), nil
	})

	resp, err := client.OrderDeals(context.Background(), OrderDealsParams{
		Symbol:    "BTC_USDT",
		StartTime: 1700000000000,
		PageNum:   1,
		PageSize:  20,
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].IsTaker)
}

func TestGetOrder(t *testing.T) {
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v1/private/order/get/12345", req.URL.Path)
		return jsonResponse(200, `{"success":true,"code":0,"data":{"orderId":"12345","symbol":"BTC_USDT","side":1,"state":3}}`), nil
	})

	resp, err := client.GetOrder(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", resp.Data.OrderID)
	assert.Equal(t, 3, resp.Data.State)

	_, err = client.GetOrder(context.Background(), "")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestGetOrderWithExternal(t *testing.T) {
	client := newMockClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v1/private/order/external/BTC_USDT/my-oid", req.URL.Path)
		return jsonResponse(200, `{"success":true,"code":0,"data":{"orderId":"12345","symbol":"BTC_USDT","externalOid":"my-oid"}}`), nil
	})

	resp, err := client.GetOrderWithExternal(context.Background(), "BTC_USDT", "my-oid")
	require.NoError(t, err)
	assert.Equal(t, "my-oid", resp.Data.ExternalOID)
}
