package client

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/w6g2000/polymarket-go-client/clob/signing"
	"github.com/w6g2000/polymarket-go-client/clob/types"
)

const builderTestKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func newTestBuilder(t *testing.T, sigType types.SignatureType, funder string) *OrderBuilder {
	t.Helper()
	signer, err := signing.NewSigner(builderTestKey)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	b, err := NewOrderBuilder(signer, sigType, funder)
	if err != nil {
		t.Fatalf("NewOrderBuilder: %v", err)
	}
	b.saltFn = func() (*big.Int, error) { return big.NewInt(479249096354), nil }
	return b
}

func TestNewOrderBuilder_FunderRequired(t *testing.T) {
	signer, _ := signing.NewSigner(builderTestKey)

	if _, err := NewOrderBuilder(signer, types.SignatureTypeBrowserWalletProxy, ""); !errors.Is(err, ErrMissingFunderAddress) {
		t.Fatalf("proxy without funder: got %v", err)
	}
	if _, err := NewOrderBuilder(signer, types.SignatureTypeGnosisSafe, ""); !errors.Is(err, ErrMissingFunderAddress) {
		t.Fatalf("safe without funder: got %v", err)
	}
	if _, err := NewOrderBuilder(signer, types.SignatureTypeEOA, ""); err != nil {
		t.Fatalf("eoa without funder: %v", err)
	}
	if _, err := NewOrderBuilder(signer, types.SignatureTypeBrowserWalletProxy, "not-an-address"); err == nil {
		t.Fatalf("bad funder accepted")
	}
}

func TestBuildOrder_Amounts(t *testing.T) {
	exchange := common.HexToAddress(polygonMainnetContracts.Exchange)
	cases := []struct {
		name      string
		side      types.Side
		price     string
		size      string
		tick      types.TickSize
		wantMaker string
		wantTaker string
	}{
		{"buy even", types.SideBuy, "0.5", "100", types.TickSize001, "50000000", "100000000"},
		{"buy fractional size", types.SideBuy, "0.56", "21.04", types.TickSize001, "11780000", "21040000"},
		{"sell mirror", types.SideSell, "0.56", "21.04", types.TickSize001, "21040000", "11780000"},
		{"coarse tick rounds price", types.SideBuy, "0.56", "10", types.TickSize01, "6000000", "10000000"},
		{"fine tick, quote leg clamps to 2dp", types.SideBuy, "0.1234", "20", types.TickSize00001, "2470000", "20000000"},
		{"size truncated, tie rounds away", types.SideBuy, "0.5", "100.119", types.TickSize001, "50060000", "100110000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBuilder(t, types.SignatureTypeEOA, "")
			order, err := b.BuildOrder(types.ChainPolygon, exchange, &types.OrderArgs{
				TokenID: "1234",
				Price:   tc.price,
				Size:    tc.size,
				Side:    tc.side,
			}, 0, types.DefaultExtraOrderArgs(), tc.tick)
			if err != nil {
				t.Fatalf("BuildOrder: %v", err)
			}
			if order.MakerAmount != tc.wantMaker {
				t.Fatalf("maker got=%s want=%s", order.MakerAmount, tc.wantMaker)
			}
			if order.TakerAmount != tc.wantTaker {
				t.Fatalf("taker got=%s want=%s", order.TakerAmount, tc.wantTaker)
			}
		})
	}
}

func TestBuildOrder_GoldenSignature(t *testing.T) {
	b := newTestBuilder(t, types.SignatureTypeEOA, "")
	exchange := common.HexToAddress(polygonMainnetContracts.Exchange)

	order, err := b.BuildOrder(types.ChainPolygon, exchange, &types.OrderArgs{
		TokenID: "1234",
		Price:   "0.571",
		Size:    "100",
		Side:    types.SideBuy,
	}, 0, types.DefaultExtraOrderArgs(), types.TickSize0001)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	if order.Salt != "479249096354" {
		t.Fatalf("salt got=%s", order.Salt)
	}
	if order.MakerAmount != "57100000" || order.TakerAmount != "100000000" {
		t.Fatalf("amounts got maker=%s taker=%s", order.MakerAmount, order.TakerAmount)
	}
	want := "0x0e5506b796b25dc16a9b75affe66ea2ff7a783b9aa0305f5c5a17a8aa13b2b38668eee85dfbbd01bfc6f844b2890a5d91c92b8a291b5d562a4d6d809ae83829f1b"
	if order.Signature != want {
		t.Fatalf("signature\n got=%s\nwant=%s", order.Signature, want)
	}
}

func TestBuildOrder_ProxyMakerSignerSplit(t *testing.T) {
	funder := "0x00000000000000000000000000000000000000AA"
	b := newTestBuilder(t, types.SignatureTypeBrowserWalletProxy, funder)
	exchange := common.HexToAddress(polygonMainnetContracts.Exchange)

	order, err := b.BuildOrder(types.ChainPolygon, exchange, &types.OrderArgs{
		TokenID: "1234",
		Price:   "0.5",
		Size:    "10",
		Side:    types.SideBuy,
	}, 0, types.DefaultExtraOrderArgs(), types.TickSize001)
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	if order.Maker != common.HexToAddress(funder).Hex() {
		t.Fatalf("maker got=%s want funder", order.Maker)
	}
	if order.Signer != "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266" {
		t.Fatalf("signer got=%s want signing wallet", order.Signer)
	}
	if order.SignatureType != int(types.SignatureTypeBrowserWalletProxy) {
		t.Fatalf("signature type got=%d", order.SignatureType)
	}
}

func TestBuildOrder_RejectsBadInput(t *testing.T) {
	b := newTestBuilder(t, types.SignatureTypeEOA, "")
	exchange := common.HexToAddress(polygonMainnetContracts.Exchange)

	cases := []types.OrderArgs{
		{TokenID: "1234", Price: "abc", Size: "10", Side: types.SideBuy},
		{TokenID: "1234", Price: "0.5", Size: "-1", Side: types.SideBuy},
		{TokenID: "1234", Price: "0", Size: "10", Side: types.SideBuy},
		{TokenID: "not-a-number", Price: "0.5", Size: "10", Side: types.SideBuy},
	}
	for i, args := range cases {
		if _, err := b.BuildOrder(types.ChainPolygon, exchange, &args, 0, types.DefaultExtraOrderArgs(), types.TickSize001); !errors.Is(err, ErrInvalidOrderParameters) {
			t.Fatalf("case %d: got %v", i, err)
		}
	}

	good := types.OrderArgs{TokenID: "1234", Price: "0.5", Size: "10", Side: types.SideBuy}
	if _, err := b.BuildOrder(types.ChainPolygon, exchange, &good, 0, types.DefaultExtraOrderArgs(), types.TickSize("0.02")); !errors.Is(err, ErrInvalidOrderParameters) {
		t.Fatalf("unsupported tick size: got %v", err)
	}
}

func TestBuildMarketOrder_BuyAmounts(t *testing.T) {
	b := newTestBuilder(t, types.SignatureTypeEOA, "")
	exchange := common.HexToAddress(polygonMainnetContracts.Exchange)

	// 100 USDC at 0.33: shares = 100 / 0.33, rounded within the amount
	// precision and truncated to four places.
	order, err := b.BuildMarketOrder(types.ChainPolygon, exchange, &types.MarketOrderArgs{
		TokenID: "1234",
		Amount:  "100",
		Side:    types.SideBuy,
	}, decimal.RequireFromString("0.33"), types.DefaultExtraOrderArgs(), types.TickSize001)
	if err != nil {
		t.Fatalf("BuildMarketOrder: %v", err)
	}
	if order.MakerAmount != "100000000" {
		t.Fatalf("maker got=%s", order.MakerAmount)
	}
	if order.TakerAmount != "303030300" {
		t.Fatalf("taker got=%s", order.TakerAmount)
	}
}

func TestCalculateMarketPrice(t *testing.T) {
	asks := []types.OrderSummary{
		{Price: "0.5", Size: "100"},
		{Price: "0.6", Size: "200"},
	}
	price, err := CalculateMarketPrice(asks, types.SideBuy, decimal.RequireFromString("100"))
	if err != nil {
		t.Fatalf("buy walk: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("0.6")) {
		t.Fatalf("buy price got=%s want=0.6", price)
	}

	bids := []types.OrderSummary{
		{Price: "0.5", Size: "100"},
		{Price: "0.4", Size: "50"},
	}
	price, err = CalculateMarketPrice(bids, types.SideSell, decimal.RequireFromString("120"))
	if err != nil {
		t.Fatalf("sell walk: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("0.4")) {
		t.Fatalf("sell price got=%s want=0.4", price)
	}

	if _, err := CalculateMarketPrice(asks, types.SideBuy, decimal.RequireFromString("1000000")); err == nil {
		t.Fatalf("expected liquidity error")
	}
}

func TestRandomSalt_Bounds(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		salt, err := randomSalt()
		if err != nil {
			t.Fatalf("randomSalt: %v", err)
		}
		if salt.Sign() < 0 || salt.Cmp(maxSalt) >= 0 {
			t.Fatalf("salt out of uint256 range: %s", salt)
		}
		seen[salt.String()] = true
	}
	if len(seen) < 32 {
		t.Fatalf("salts repeat suspiciously often")
	}
}
