package signing

import "errors"

var (
	// ErrEncoding reports a typed-data schema or value the encoder cannot
	// canonicalize. This is a caller bug, never retried.
	ErrEncoding = errors.New("typed data encoding failed")

	// ErrSigning reports a digest the signer refuses to sign, currently
	// only a digest that is not exactly 32 bytes.
	ErrSigning = errors.New("signing failed")
)
