package client

import (
	"strings"
	"testing"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

func TestGetContractConfig(t *testing.T) {
	for _, chain := range []types.Chain{types.ChainPolygon, types.ChainAmoy} {
		cfg, err := GetContractConfig(chain)
		if err != nil {
			t.Fatalf("chain %d: %v", chain, err)
		}
		check := func(name, addr string) {
			if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
				t.Fatalf("chain %d: bad %s addr %q", chain, name, addr)
			}
		}
		check("exchange", cfg.Exchange)
		check("negRiskExchange", cfg.NegRiskExchange)
		check("negRiskAdapter", cfg.NegRiskAdapter)
		check("collateral", cfg.Collateral)
		check("conditionalTokens", cfg.ConditionalTokens)
	}

	if _, err := GetContractConfig(types.Chain(1)); err == nil {
		t.Fatalf("expected error for unsupported chain")
	}
}

func TestExchangeFor(t *testing.T) {
	cfg, _ := GetContractConfig(types.ChainPolygon)
	if cfg.ExchangeFor(false) != cfg.Exchange {
		t.Fatalf("regular market must use the main exchange")
	}
	if cfg.ExchangeFor(true) != cfg.NegRiskExchange {
		t.Fatalf("neg-risk market must use the neg-risk exchange")
	}
	if cfg.Exchange == cfg.NegRiskExchange {
		t.Fatalf("exchange addresses must differ")
	}
}
