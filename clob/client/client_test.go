package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/w6g2000/polymarket-go-client/clob/signing"
	"github.com/w6g2000/polymarket-go-client/clob/types"
)

const clientTestKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// base64url of 32 zero bytes, a syntactically valid API secret.
const testSecret = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func testCreds() types.ApiKeyCreds {
	return types.ApiKeyCreds{Key: "key-id", Secret: testSecret, Passphrase: "pass"}
}

func newSignerClient(t *testing.T, host string) *Client {
	t.Helper()
	c, err := NewClientWithSigner(host, types.ChainPolygon, clientTestKey, nil)
	if err != nil {
		t.Fatalf("NewClientWithSigner: %v", err)
	}
	return c
}

func TestL2Operations_FailFastWithoutCredentials(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := newSignerClient(t, srv.URL)
	ctx := context.Background()

	if _, err := c.GetAPIKeys(ctx); !errors.Is(err, ErrCredentialsNotSet) {
		t.Fatalf("GetAPIKeys: got %v", err)
	}
	if _, err := c.GetOpenOrders(ctx, nil); !errors.Is(err, ErrCredentialsNotSet) {
		t.Fatalf("GetOpenOrders: got %v", err)
	}
	if _, err := c.PostOrder(ctx, &types.SignedOrder{}, types.OrderTypeGTC); !errors.Is(err, ErrCredentialsNotSet) {
		t.Fatalf("PostOrder: got %v", err)
	}
	if _, err := c.CancelAll(ctx); !errors.Is(err, ErrCredentialsNotSet) {
		t.Fatalf("CancelAll: got %v", err)
	}

	if n := hits.Load(); n != 0 {
		t.Fatalf("expected no network calls, got %d", n)
	}
}

func TestSigningOperations_FailWithoutSigner(t *testing.T) {
	c, err := NewClient("http://localhost:0", types.ChainPolygon)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Address(); !errors.Is(err, ErrSignerNotSet) {
		t.Fatalf("Address: got %v", err)
	}
	if _, err := c.CreateAPIKey(ctx, nil); !errors.Is(err, ErrSignerNotSet) {
		t.Fatalf("CreateAPIKey: got %v", err)
	}
	if _, err := c.CreateOrder(ctx, &types.OrderArgs{}, types.DefaultExtraOrderArgs(), nil); !errors.Is(err, ErrSignerNotSet) {
		t.Fatalf("CreateOrder: got %v", err)
	}
}

func TestCreateOrDeriveAPIKey_Fallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == EndpointDeriveAPIKey:
			// L1 headers must be present on both calls.
			if r.Header.Get(types.HeaderPolyAddress) == "" || r.Header.Get(types.HeaderPolySignature) == "" {
				t.Errorf("missing L1 headers on derive")
			}
			http.Error(w, `{"error":"unable to derive"}`, http.StatusBadRequest)
		case r.Method == http.MethodPost && r.URL.Path == EndpointCreateAPIKey:
			if r.Header.Get(types.HeaderPolyNonce) != "0" {
				t.Errorf("nonce header got %q", r.Header.Get(types.HeaderPolyNonce))
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"apiKey": "fresh-key", "secret": testSecret, "passphrase": "pp",
			})
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newSignerClient(t, srv.URL)
	creds, err := c.CreateOrDeriveAPIKey(context.Background(), nil)
	if err != nil {
		t.Fatalf("CreateOrDeriveAPIKey: %v", err)
	}
	if creds.Key != "fresh-key" {
		t.Fatalf("key got=%s", creds.Key)
	}

	stored, ok := c.APICreds()
	if !ok || stored.Key != "fresh-key" {
		t.Fatalf("credentials not published on client")
	}
}

func TestPostOrder_SignsExactBodyBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointPostOrder {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		body, _ := io.ReadAll(r.Body)

		var post types.PostOrder
		if err := json.Unmarshal(body, &post); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if post.Owner != "key-id" {
			t.Errorf("owner got=%s", post.Owner)
		}

		// Recompute the HMAC over the received bytes; it must match the
		// header.
		ts := r.Header.Get(types.HeaderPolyTimestamp)
		var tsInt int64
		fmt.Sscanf(ts, "%d", &tsInt)
		want, err := signing.BuildHMACSignature(testSecret, tsInt, http.MethodPost, EndpointPostOrder, string(body))
		if err != nil {
			t.Errorf("recompute hmac: %v", err)
		}
		if got := r.Header.Get(types.HeaderPolySignature); got != want {
			t.Errorf("hmac mismatch: header=%s recomputed=%s", got, want)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.OrderResponse{Success: true, OrderID: "0xabc", Status: "live"})
	}))
	defer srv.Close()

	c := newSignerClient(t, srv.URL)
	c.SetAPICreds(testCreds())

	resp, err := c.PostOrder(context.Background(), &types.SignedOrder{
		Salt: "1", Maker: "0x0", Signer: "0x0", Taker: "0x0",
		TokenID: "1234", MakerAmount: "1", TakerAmount: "1",
		Expiration: "0", Nonce: "0", FeeRateBps: "0",
		Side: types.SideBuy, Signature: "0x00",
	}, types.OrderTypeGTC)
	if err != nil {
		t.Fatalf("PostOrder: %v", err)
	}
	if !resp.Success || resp.OrderID != "0xabc" {
		t.Fatalf("response %+v", resp)
	}
}

func TestGetServerTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointTime {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "1700000000")
	}))
	defer srv.Close()

	c := newSignerClient(t, srv.URL)
	ts, err := c.GetServerTime(context.Background())
	if err != nil {
		t.Fatalf("GetServerTime: %v", err)
	}
	if ts != 1700000000 {
		t.Fatalf("time got=%d", ts)
	}
}

func TestGetTickSize_Cached(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.TickSizeResponse{MinimumTickSize: 0.01})
	}))
	defer srv.Close()

	c := newSignerClient(t, srv.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tick, err := c.GetTickSize(ctx, "777")
		if err != nil {
			t.Fatalf("GetTickSize: %v", err)
		}
		if tick != types.TickSize001 {
			t.Fatalf("tick got=%s", tick)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected 1 fetch, got %d", n)
	}
}

func TestCreateOrder_PriceOutsideTickRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case EndpointGetTickSize:
			json.NewEncoder(w).Encode(types.TickSizeResponse{MinimumTickSize: 0.01})
		case EndpointGetNegRisk:
			json.NewEncoder(w).Encode(types.NegRiskResponse{NegRisk: false})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newSignerClient(t, srv.URL)
	ctx := context.Background()

	for _, price := range []string{"0.005", "0.995", "1.5"} {
		_, err := c.CreateOrder(ctx, &types.OrderArgs{
			TokenID: "777", Price: price, Size: "10", Side: types.SideBuy,
		}, types.DefaultExtraOrderArgs(), nil)
		if !errors.Is(err, ErrInvalidOrderParameters) {
			t.Fatalf("price %s: got %v", price, err)
		}
	}

	// In range succeeds without a submit.
	order, err := c.CreateOrder(ctx, &types.OrderArgs{
		TokenID: "777", Price: "0.57", Size: "10", Side: types.SideBuy,
	}, types.DefaultExtraOrderArgs(), nil)
	if err != nil {
		t.Fatalf("in-range order: %v", err)
	}
	if order.Signature == "" {
		t.Fatalf("order unsigned")
	}
}

func TestCredentialStore_AtomicSwap(t *testing.T) {
	var store credentialStore

	if got := store.Get(); got != nil {
		t.Fatalf("empty store returned %+v", got)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				store.Set(types.ApiKeyCreds{
					Key:        fmt.Sprintf("key-%d-%d", w, i),
					Secret:     testSecret,
					Passphrase: "pass",
				})
				creds := store.Get()
				if creds == nil {
					t.Errorf("lost credentials mid-swap")
					return
				}
				// A triple is always internally consistent: never a mix
				// of two published values.
				if creds.Secret != testSecret || creds.Passphrase != "pass" {
					t.Errorf("torn read: %+v", creds)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	store.Clear()
	if store.Get() != nil {
		t.Fatalf("clear did not remove credentials")
	}
}

func TestSetAPICreds_StoresCopy(t *testing.T) {
	c := newSignerClient(t, "http://localhost:0")
	creds := testCreds()
	c.SetAPICreds(creds)

	creds.Key = "mutated"
	stored, _ := c.APICreds()
	if stored.Key != "key-id" {
		t.Fatalf("caller mutation leaked into the store")
	}
}
