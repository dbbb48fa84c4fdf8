//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/w6g2000/polymarket-go-client/clob/client"
	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// Derive-or-create an API credential triple with an L1 wallet signature.
//
// Usage:
//   export PRIVATE_KEY="your_private_key_hex"
//   export CLOB_API_URL="https://clob.polymarket.com"  # optional
//   export NONCE="0"                                   # optional
//   go run create_api_key.go

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

	nonce := big.NewInt(0)
	if v := os.Getenv("NONCE"); v != "" {
		if _, ok := nonce.SetString(v, 10); !ok {
			fmt.Fprintf(os.Stderr, "error: bad NONCE %q\n", v)
			os.Exit(1)
		}
	}

	c, err := client.NewClientWithSigner(host, types.ChainPolygon, privateKey, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	creds, err := c.CreateOrDeriveAPIKey(context.Background(), nonce)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("api key:   ", creds.Key)
	fmt.Println("secret:    ", creds.Secret)
	fmt.Println("passphrase:", creds.Passphrase)
}
