package signing

import (
	"math/big"
	"strconv"
	"time"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// CreateL1Headers builds the wallet-signature header set for credential
// management endpoints. The timestamp is captured here, at build time, so
// the signature is always fresh; a nil nonce defaults to 0.
func CreateL1Headers(signer *Signer, chainID types.Chain, nonce *big.Int) (*types.L1PolyHeader, error) {
	ts := time.Now().Unix()
	if nonce == nil {
		nonce = big.NewInt(0)
	}

	timestamp := strconv.FormatInt(ts, 10)
	digest, err := ClobAuthDigest(chainID, signer.Address(), timestamp, nonce)
	if err != nil {
		return nil, err
	}
	sig, err := signer.SignHex(digest)
	if err != nil {
		return nil, err
	}

	return &types.L1PolyHeader{
		PolyAddress:   signer.Address().Hex(),
		PolySignature: sig,
		PolyTimestamp: timestamp,
		PolyNonce:     nonce.String(),
	}, nil
}

// CreateL2Headers builds the HMAC header set for authenticated trading
// endpoints from the current credential triple.
func CreateL2Headers(address string, creds *types.ApiKeyCreds, args *types.L2HeaderArgs) (*types.L2PolyHeader, error) {
	ts := time.Now().Unix()

	sig, err := BuildHMACSignature(creds.Secret, ts, args.Method, args.RequestPath, args.Body)
	if err != nil {
		return nil, err
	}

	return &types.L2PolyHeader{
		PolyAddress:    address,
		PolySignature:  sig,
		PolyTimestamp:  strconv.FormatInt(ts, 10),
		PolyAPIKey:     creds.Key,
		PolyPassphrase: creds.Passphrase,
	}, nil
}
