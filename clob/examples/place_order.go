//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/w6g2000/polymarket-go-client/clob/client"
	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// Build, sign and submit a limit order. Credentials are derived from the
// wallet on the fly, so only the private key is required.
//
// Usage:
//   export PRIVATE_KEY="your_private_key_hex"
//   export TOKEN_ID="123456..."
//   export PRICE="0.55"
//   export SIZE="10"
//   export SIDE="BUY"                # or SELL
//   export ORDER_TYPE="GTC"          # optional: GTC, FOK, GTD, FAK
//   export TICK_SIZE="0.01"          # optional, fetched when unset
//   export CLOB_API_URL="https://clob.polymarket.com"  # optional
//   go run place_order.go

func main() {
	privateKey := mustEnv("PRIVATE_KEY")
	tokenID := mustEnv("TOKEN_ID")
	price := mustEnv("PRICE")
	size := mustEnv("SIZE")

	side := types.SideBuy
	if os.Getenv("SIDE") == "SELL" {
		side = types.SideSell
	}
	orderType := types.OrderTypeGTC
	if v := os.Getenv("ORDER_TYPE"); v != "" {
		orderType = types.OrderType(v)
	}
	host := os.Getenv("CLOB_API_URL")
	if host == "" {
		host = "https://clob.polymarket.com"
	}

	c, err := client.NewClientWithSigner(host, types.ChainPolygon, privateKey, nil)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	if _, err := c.CreateOrDeriveAPIKey(ctx, big.NewInt(0)); err != nil {
		fatal(err)
	}

	opts := &types.CreateOrderOptions{}
	if v := os.Getenv("TICK_SIZE"); v != "" {
		opts.TickSize = types.TickSize(v)
	}

	order, err := c.CreateOrder(ctx, &types.OrderArgs{
		TokenID: tokenID,
		Price:   price,
		Size:    size,
		Side:    side,
	}, types.DefaultExtraOrderArgs(), opts)
	if err != nil {
		fatal(err)
	}

	resp, err := c.PostOrder(ctx, order, orderType)
	if err != nil {
		fatal(err)
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "error: %s is required\n", key)
		os.Exit(1)
	}
	return v
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
