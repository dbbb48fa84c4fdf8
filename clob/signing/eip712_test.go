package signing

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

var testWallet = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func TestClobAuthDigest_Golden(t *testing.T) {
	// Independently computed from the schema constants; any drift in the
	// domain, type string or field order breaks this.
	digest, err := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", big.NewInt(0))
	if err != nil {
		t.Fatalf("ClobAuthDigest error: %v", err)
	}
	want := "327432b4d72447eaaa5f2976062a905b07eabba27b43cb9b9bc5935195cecee0"
	if got := hex.EncodeToString(digest); got != want {
		t.Fatalf("digest got=%s want=%s", got, want)
	}
}

func TestClobAuthDigest_NilNonceIsZero(t *testing.T) {
	withNil, err := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", nil)
	if err != nil {
		t.Fatalf("nil nonce: %v", err)
	}
	withZero, err := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", big.NewInt(0))
	if err != nil {
		t.Fatalf("zero nonce: %v", err)
	}
	if hex.EncodeToString(withNil) != hex.EncodeToString(withZero) {
		t.Fatalf("nil nonce digest differs from explicit zero")
	}
}

func TestClobAuthDigest_SensitiveToInputs(t *testing.T) {
	base, _ := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", big.NewInt(0))

	otherChain, _ := ClobAuthDigest(types.ChainAmoy, testWallet, "1000000", big.NewInt(0))
	if hex.EncodeToString(base) == hex.EncodeToString(otherChain) {
		t.Fatalf("chain id not bound into digest")
	}

	otherTS, _ := ClobAuthDigest(types.ChainPolygon, testWallet, "1000001", big.NewInt(0))
	if hex.EncodeToString(base) == hex.EncodeToString(otherTS) {
		t.Fatalf("timestamp not bound into digest")
	}

	otherNonce, _ := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", big.NewInt(1))
	if hex.EncodeToString(base) == hex.EncodeToString(otherNonce) {
		t.Fatalf("nonce not bound into digest")
	}
}

func TestHashTypedData_Deterministic(t *testing.T) {
	first, err := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", big.NewInt(7))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := ClobAuthDigest(types.ChainPolygon, testWallet, "1000000", big.NewInt(7))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if hex.EncodeToString(first) != hex.EncodeToString(second) {
		t.Fatalf("same input produced different digests")
	}
}

func TestHashTypedData_EncodingError(t *testing.T) {
	// Message value with a type the encoder cannot represent.
	bad := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"Thing": {
				{Name: "value", Type: "uint256"},
			},
		},
		PrimaryType: "Thing",
		Domain: apitypes.TypedDataDomain{
			Name:    "X",
			Version: "1",
			ChainId: math.NewHexOrDecimal256(1),
		},
		Message: apitypes.TypedDataMessage{
			"value": struct{}{},
		},
	}
	_, err := HashTypedData(bad)
	if err == nil {
		t.Fatalf("expected encoding error")
	}
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("error not wrapped as ErrEncoding: %v", err)
	}
}
