package signing

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// OrderData is the canonical field set of a signable order. Amounts are
// integers in the collateral/conditional base unit; there is no floating
// point anywhere near the digest.
type OrderData struct {
	Salt          *big.Int
	Maker         common.Address
	Signer        common.Address
	Taker         common.Address
	TokenID       *big.Int
	MakerAmount   *big.Int
	TakerAmount   *big.Int
	Expiration    *big.Int
	Nonce         *big.Int
	FeeRateBps    *big.Int
	Side          types.Side
	SignatureType types.SignatureType
}

// orderTypes is the Order schema as the settlement contract declares it.
// Field order is part of the hash; reordering produces a valid-looking but
// unverifiable signature.
var orderTypes = []apitypes.Type{
	{Name: "salt", Type: "uint256"},
	{Name: "maker", Type: "address"},
	{Name: "signer", Type: "address"},
	{Name: "taker", Type: "address"},
	{Name: "tokenId", Type: "uint256"},
	{Name: "makerAmount", Type: "uint256"},
	{Name: "takerAmount", Type: "uint256"},
	{Name: "expiration", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
	{Name: "feeRateBps", Type: "uint256"},
	{Name: "side", Type: "uint8"},
	{Name: "signatureType", Type: "uint8"},
}

// OrderDigest computes the EIP-712 digest of an order scoped to the
// exchange contract verifying it. Regular and neg-risk markets settle on
// different contracts, so the caller must pass the right one.
func OrderDigest(chainID types.Chain, verifyingContract common.Address, order *OrderData) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Order": orderTypes,
		},
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              OrderDomainName,
			Version:           OrderDomainVersion,
			ChainId:           math.NewHexOrDecimal256(int64(chainID)),
			VerifyingContract: verifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"salt":          order.Salt,
			"maker":         order.Maker.Hex(),
			"signer":        order.Signer.Hex(),
			"taker":         order.Taker.Hex(),
			"tokenId":       order.TokenID,
			"makerAmount":   order.MakerAmount,
			"takerAmount":   order.TakerAmount,
			"expiration":    order.Expiration,
			"nonce":         order.Nonce,
			"feeRateBps":    order.FeeRateBps,
			"side":          new(big.Int).SetUint64(uint64(order.Side.Uint8())),
			"signatureType": new(big.Int).SetInt64(int64(order.SignatureType)),
		},
	}

	return HashTypedData(typedData)
}

// BuildOrderSignature signs an order digest and returns the hex signature
// for the submission payload.
func BuildOrderSignature(signer *Signer, chainID types.Chain, verifyingContract common.Address, order *OrderData) (string, error) {
	digest, err := OrderDigest(chainID, verifyingContract, order)
	if err != nil {
		return "", err
	}
	return signer.SignHex(digest)
}
