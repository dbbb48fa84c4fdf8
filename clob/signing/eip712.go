package signing

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// HashTypedData computes the EIP-712 digest
// keccak256("\x19\x01" || domainSeparator || hashStruct(message))
// for an arbitrary typed-data value. The digest is what gets signed and
// what the exchange recomputes during verification.
func HashTypedData(typedData apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("%w: domain: %v", ErrEncoding, err)
	}

	structHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncoding, typedData.PrimaryType, err)
	}

	rawData := []byte{0x19, 0x01}
	rawData = append(rawData, domainSeparator...)
	rawData = append(rawData, structHash...)
	return crypto.Keccak256(rawData), nil
}

// ClobAuthDigest builds the digest of the fixed L1 authentication message.
// Field order and type tags mirror the server schema exactly; the timestamp
// travels as a string, the nonce as uint256.
func ClobAuthDigest(chainID types.Chain, address common.Address, timestamp string, nonce *big.Int) ([]byte, error) {
	if nonce == nil {
		nonce = big.NewInt(0)
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"ClobAuth": {
				{Name: "address", Type: "address"},
				{Name: "timestamp", Type: "string"},
				{Name: "nonce", Type: "uint256"},
				{Name: "message", Type: "string"},
			},
		},
		PrimaryType: "ClobAuth",
		Domain: apitypes.TypedDataDomain{
			Name:    ClobAuthDomainName,
			Version: ClobAuthDomainVersion,
			ChainId: math.NewHexOrDecimal256(int64(chainID)),
		},
		Message: apitypes.TypedDataMessage{
			"address":   address.Hex(),
			"timestamp": timestamp,
			"nonce":     nonce,
			"message":   ClobAuthMessage,
		},
	}

	return HashTypedData(typedData)
}
