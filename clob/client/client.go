package client

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/w6g2000/polymarket-go-client/clob/signing"
	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/pkg/logger"
	"github.com/w6g2000/polymarket-go-client/pkg/ratelimit"
)

// Client is the CLOB facade. It routes each operation to the right header
// builder (L1 for credential management, L2 for everything else
// authenticated), attaches signed orders to submission calls, and passes
// transport results through unmodified.
//
// The only state shared across calls is the credential slot and the
// tick-size/neg-risk caches; both are safe for concurrent use.
type Client struct {
	host    string
	chainID types.Chain

	signer    *signing.Signer
	creds     credentialStore
	builder   *OrderBuilder
	contracts *ContractConfig

	http    *httpClient
	limiter *ratelimit.Manager
	log     *logrus.Entry

	mu        sync.RWMutex
	tickSizes map[string]types.TickSize
	negRisk   map[string]bool
}

// SignerConfig selects how orders are signed and funded. The zero value
// is a plain EOA wallet.
type SignerConfig struct {
	SignatureType types.SignatureType
	// FunderAddress is the proxy/safe wallet holding the funds. Required
	// for every signature type except EOA.
	FunderAddress string
}

// NewClient creates a read-only client with no signing capability.
func NewClient(host string, chainID types.Chain) (*Client, error) {
	return newClient(host, chainID, nil, nil)
}

// NewClientWithSigner creates a client able to perform L1 authentication
// and order signing with the given hex private key.
func NewClientWithSigner(host string, chainID types.Chain, privateKey string, cfg *SignerConfig) (*Client, error) {
	signer, err := signing.NewSigner(privateKey)
	if err != nil {
		return nil, err
	}
	return newClient(host, chainID, signer, cfg)
}

func newClient(host string, chainID types.Chain, signer *signing.Signer, cfg *SignerConfig) (*Client, error) {
	contracts, err := GetContractConfig(chainID)
	if err != nil {
		return nil, err
	}

	log := logger.Named("clob")
	c := &Client{
		host:      strings.TrimSuffix(host, "/"),
		chainID:   chainID,
		signer:    signer,
		contracts: contracts,
		http:      newHTTPClient(host, log),
		limiter:   ratelimit.NewManager(),
		log:       log,
		tickSizes: make(map[string]types.TickSize),
		negRisk:   make(map[string]bool),
	}

	if signer != nil {
		if cfg == nil {
			cfg = &SignerConfig{}
		}
		builder, err := NewOrderBuilder(signer, cfg.SignatureType, cfg.FunderAddress)
		if err != nil {
			return nil, err
		}
		c.builder = builder
	}

	return c, nil
}

// Host returns the API base URL.
func (c *Client) Host() string { return c.host }

// ChainID returns the configured chain.
func (c *Client) ChainID() types.Chain { return c.chainID }

// Address returns the signing wallet address.
func (c *Client) Address() (common.Address, error) {
	if c.signer == nil {
		return common.Address{}, ErrSignerNotSet
	}
	return c.signer.Address(), nil
}

// SetAPICreds publishes a new credential triple. The swap is atomic:
// in-flight readers observe either the previous or the new triple.
func (c *Client) SetAPICreds(creds types.ApiKeyCreds) {
	c.creds.Set(creds)
}

// APICreds returns the current credential triple, if set.
func (c *Client) APICreds() (*types.ApiKeyCreds, bool) {
	creds := c.creds.Get()
	return creds, creds != nil
}

func (c *Client) canL1Auth() error {
	if c.signer == nil {
		return ErrSignerNotSet
	}
	return nil
}

func (c *Client) canL2Auth() (*types.ApiKeyCreds, error) {
	if err := c.canL1Auth(); err != nil {
		return nil, err
	}
	creds := c.creds.Get()
	if creds == nil {
		return nil, ErrCredentialsNotSet
	}
	return creds, nil
}

// l1HeaderMap builds fresh L1 headers; the timestamp is captured inside
// the signing package at build time.
func (c *Client) l1HeaderMap(nonce *big.Int) (map[string]string, error) {
	if err := c.canL1Auth(); err != nil {
		return nil, err
	}
	h, err := signing.CreateL1Headers(c.signer, c.chainID, nonce)
	if err != nil {
		return nil, err
	}
	return h.ToMap(), nil
}

// l2HeaderMap builds fresh L2 headers over the exact body bytes that will
// be sent. Fails before any network I/O when credentials are missing.
func (c *Client) l2HeaderMap(method, path, body string) (map[string]string, error) {
	creds, err := c.canL2Auth()
	if err != nil {
		return nil, err
	}
	h, err := signing.CreateL2Headers(c.signer.Address().Hex(), creds, &types.L2HeaderArgs{
		Method:      method,
		RequestPath: path,
		Body:        body,
	})
	if err != nil {
		return nil, err
	}
	return h.ToMap(), nil
}

// GetOK probes the API root.
func (c *Client) GetOK(ctx context.Context) bool {
	_, err := c.http.do(ctx, "GET", "/", nil)
	return err == nil
}

// GetServerTime returns the server's unix time in seconds.
func (c *Client) GetServerTime(ctx context.Context) (int64, error) {
	resp, err := c.http.do(ctx, "GET", EndpointTime, nil)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(resp.String()), 10, 64)
}
