package client

import "errors"

var (
	// ErrCredentialsNotSet means an L2-authenticated operation was
	// attempted before the API credential triple was set or derived.
	// Recoverable: perform L1 derivation first. No network call is made.
	ErrCredentialsNotSet = errors.New("api credentials not set")

	// ErrSignerNotSet means an operation requiring the wallet key was
	// attempted on a read-only client.
	ErrSignerNotSet = errors.New("signer not set")

	// ErrInvalidOrderParameters reports caller input outside market
	// bounds (price outside the tick range, malformed token id, ...).
	ErrInvalidOrderParameters = errors.New("invalid order parameters")

	// ErrMissingFunderAddress means a proxy or safe signature type was
	// requested without the funding wallet address.
	ErrMissingFunderAddress = errors.New("funder address required for proxy signature types")
)
