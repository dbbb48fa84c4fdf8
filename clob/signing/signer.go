package signing

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer owns the wallet private key and produces recoverable ECDSA
// signatures over 32-byte digests. Signing is deterministic (the nonce is
// derived from key and digest, RFC 6979), so the same digest always yields
// the same signature. The key is never exposed past the constructor.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex private key, with or without 0x prefix.
func NewSigner(hexKey string) (*Signer, error) {
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(hexKey, "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("private key is empty")
	}

	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key format: %w", err)
	}
	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return NewSignerFromKey(key), nil
}

// NewSignerFromKey wraps an already-parsed ECDSA key.
func NewSignerFromKey(key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the wallet address derived from the key.
func (s *Signer) Address() common.Address {
	return s.address
}

// String identifies the signer by address only.
func (s *Signer) String() string {
	return "signer(" + s.address.Hex() + ")"
}

// Sign produces the 65-byte r||s||v signature over a 32-byte digest, with
// v as the raw recovery id (0 or 1).
func (s *Signer) Sign(digest []byte) ([]byte, error) {
	if len(digest) != crypto.DigestLength {
		return nil, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrSigning, crypto.DigestLength, len(digest))
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return sig, nil
}

// SignHex signs a digest and returns the 0x-prefixed hex signature with v
// adjusted to 27/28, the form the CLOB API expects.
func (s *Signer) SignHex(digest []byte) (string, error) {
	sig, err := s.Sign(digest)
	if err != nil {
		return "", err
	}
	sig[64] += 27
	return "0x" + common.Bytes2Hex(sig), nil
}

// VerifyDigest checks a 65-byte signature against a digest and an expected
// signer address. Both v conventions (0/1 and 27/28) are accepted.
func VerifyDigest(digest, sig []byte, address common.Address) bool {
	if len(digest) != crypto.DigestLength || len(sig) != crypto.SignatureLength {
		return false
	}
	normalized := bytes.Clone(sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(digest, normalized)
	if err != nil {
		return false
	}
	return crypto.PubkeyToAddress(*pub) == address
}
