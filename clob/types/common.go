package types

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Uint8 returns the on-chain encoding of the side (BUY=0, SELL=1).
func (s Side) Uint8() uint8 {
	if s == SideSell {
		return 1
	}
	return 0
}

// OrderType is the execution type of a submitted order.
type OrderType string

const (
	OrderTypeGTC OrderType = "GTC" // good till cancel
	OrderTypeFOK OrderType = "FOK" // fill or kill
	OrderTypeGTD OrderType = "GTD" // good till date
	OrderTypeFAK OrderType = "FAK" // fill and kill
)

// Chain is the target blockchain network.
type Chain int

const (
	ChainPolygon Chain = 137
	ChainAmoy    Chain = 80002
)

// SignatureType selects how the exchange verifies an order signature.
// The numbering is a versioned server contract shared with the official
// reference clients and must not change.
type SignatureType int

const (
	// SignatureTypeEOA is a plain EIP-712 signature from the maker wallet.
	SignatureTypeEOA SignatureType = 0
	// SignatureTypeEmailOrMagic is an EOA signature for a Magic Link wallet.
	SignatureTypeEmailOrMagic SignatureType = 1
	// SignatureTypeBrowserWalletProxy is an EOA signature for a Polymarket
	// proxy wallet funded by the proxy address.
	SignatureTypeBrowserWalletProxy SignatureType = 2
	// SignatureTypeGnosisSafe is an EOA signature for a Gnosis Safe that
	// owns the funds.
	SignatureTypeGnosisSafe SignatureType = 3
)

// RequiresFunder reports whether the signature type signs on behalf of a
// separate funding wallet. For these types the order maker is the funder
// address, not the signing EOA.
func (t SignatureType) RequiresFunder() bool {
	switch t {
	case SignatureTypeEmailOrMagic, SignatureTypeBrowserWalletProxy, SignatureTypeGnosisSafe:
		return true
	}
	return false
}

// AssetType distinguishes collateral (USDC) from conditional token balances.
type AssetType string

const (
	AssetTypeCollateral  AssetType = "COLLATERAL"
	AssetTypeConditional AssetType = "CONDITIONAL"
)

// TickSize is the minimum price increment of a market.
type TickSize string

const (
	TickSize01    TickSize = "0.1"
	TickSize001   TickSize = "0.01"
	TickSize0001  TickSize = "0.001"
	TickSize00001 TickSize = "0.0001"
)

// ApiKeyCreds is the credential triple obtained through L1 authentication
// and consumed by the L2 header builder.
type ApiKeyCreds struct {
	Key        string
	Secret     string
	Passphrase string
}

// ApiKeyRaw is the credential triple as returned by the API.
type ApiKeyRaw struct {
	ApiKey     string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// Creds converts the API wire format into the internal credential triple.
func (r *ApiKeyRaw) Creds() *ApiKeyCreds {
	return &ApiKeyCreds{Key: r.ApiKey, Secret: r.Secret, Passphrase: r.Passphrase}
}

// ApiKeysResponse lists the key ids registered for an address.
type ApiKeysResponse struct {
	ApiKeys []string `json:"apiKeys"`
}
