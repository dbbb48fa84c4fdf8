//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/w6g2000/polymarket-go-client/clob/client"
	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// Fetch the order book, midpoint and spread for one token. No wallet or
// credentials are needed for public market data.
//
// Usage:
//   export TOKEN_ID="123456..."
//   export CLOB_API_URL="https://clob.polymarket.com"  # optional
//   go run get_orderbook.go

func main() {
	tokenID := os.Getenv("TOKEN_ID")
	if tokenID == "" {
		fmt.Fprintln(os.Stderr, "error: TOKEN_ID is required")
		os.Exit(1)
	}
	host := os.Getenv("CLOB_API_URL")
	if host == "" {
		host = "https://clob.polymarket.com"
	}

	c, err := client.NewClient(host, types.ChainPolygon)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	book, err := c.GetOrderBook(ctx, tokenID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("market:", book.Market, "asset:", book.AssetID)
	fmt.Println("bids:")
	for _, b := range book.Bids {
		fmt.Printf("  %s x %s\n", b.Price, b.Size)
	}
	fmt.Println("asks:")
	for _, a := range book.Asks {
		fmt.Printf("  %s x %s\n", a.Price, a.Size)
	}

	if mid, err := c.GetMidpoint(ctx, tokenID); err == nil {
		fmt.Println("midpoint:", mid.Mid)
	}
	if spread, err := c.GetSpread(ctx, tokenID); err == nil {
		fmt.Println("spread:", spread.Spread)
	}
}
