package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

func TestDispatch_SingleAndBatch(t *testing.T) {
	u := NewUserClient("wss://example", types.ApiKeyCreds{}, nil)

	var orders []OrderEvent
	var trades []TradeEvent
	u.OnOrder(func(ev *OrderEvent) { orders = append(orders, *ev) })
	u.OnTrade(func(ev *TradeEvent) { trades = append(trades, *ev) })

	u.dispatch([]byte(`{"event_type":"order","id":"o1","status":"LIVE","side":"BUY"}`))
	u.dispatch([]byte(`[
		{"event_type":"trade","id":"t1","price":"0.5","size":"10"},
		{"event_type":"order","id":"o2","status":"MATCHED"}
	]`))

	if len(orders) != 2 || orders[0].ID != "o1" || orders[1].ID != "o2" {
		t.Fatalf("orders got %+v", orders)
	}
	if len(trades) != 1 || trades[0].ID != "t1" || trades[0].Price != "0.5" {
		t.Fatalf("trades got %+v", trades)
	}
}

func TestDispatch_IgnoresNoise(t *testing.T) {
	u := NewUserClient("wss://example", types.ApiKeyCreds{}, nil)

	called := false
	u.OnOrder(func(*OrderEvent) { called = true })

	u.dispatch([]byte("PONG"))
	u.dispatch([]byte(`{"event_type":"unknown"}`))
	u.dispatch([]byte(`not json`))
	u.dispatch([]byte(`[{"event_type":"order","id":`)) // truncated

	if called {
		t.Fatalf("noise reached a handler")
	}
}

func TestClose_RefusesLateDial(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	u := NewUserClient("ws"+strings.TrimPrefix(srv.URL, "http"), types.ApiKeyCreds{}, nil)
	ctx := context.Background()
	if err := u.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := u.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A reconnect that lost the race with Close must not revive the
	// client or touch its wait group.
	if err := u.dial(ctx); err == nil {
		t.Fatalf("dial succeeded on a closed client")
	}
}
