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

// Cancel one order by id, or every resting order when ORDER_ID is unset.
//
// Usage:
//   export PRIVATE_KEY="your_private_key_hex"
//   export API_KEY="..."
//   export API_SECRET="..."
//   export API_PASSPHRASE="..."
//   export ORDER_ID="0x..."          # optional, omit to cancel all
//   export CLOB_API_URL="https://clob.polymarket.com"  # optional
//   go run cancel_order.go

func main() {
	privateKey := os.Getenv("PRIVATE_KEY")
	if privateKey == "" {
		fmt.Fprintln(os.Stderr, "error: PRIVATE_KEY is required")
		os.Exit(1)
	}
	host := os.Getenv("CLOB_API_URL")
	if host == "" {
		host = "https://clob.polymarket.com"
	}

	c, err := client.NewClientWithSigner(host, types.ChainPolygon, privateKey, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	c.SetAPICreds(types.ApiKeyCreds{
		Key:        os.Getenv("API_KEY"),
		Secret:     os.Getenv("API_SECRET"),
		Passphrase: os.Getenv("API_PASSPHRASE"),
	})

	ctx := context.Background()
	var resp *types.CancelResponse
	if id := os.Getenv("ORDER_ID"); id != "" {
		resp, err = c.CancelOrder(ctx, id)
	} else {
		resp, err = c.CancelAll(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	for _, id := range resp.Canceled {
		fmt.Println("canceled:", id)
	}
	for id, reason := range resp.NotCanceled {
		fmt.Printf("not canceled: %s (%s)\n", id, reason)
	}
}
