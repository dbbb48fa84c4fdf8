package signing

// EIP-712 domain constants shared with the exchange and its on-chain
// verifier. Changing any of these silently invalidates every signature.
const (
	ClobAuthDomainName    = "ClobAuthDomain"
	ClobAuthDomainVersion = "1"
	ClobAuthMessage       = "This message attests that I control the given wallet"

	OrderDomainName    = "Polymarket CTF Exchange"
	OrderDomainVersion = "1"
)
