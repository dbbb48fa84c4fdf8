package client

import (
	"context"
	"math/big"
	"net/http"

	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/pkg/ratelimit"
)

// CreateAPIKey registers a new credential triple for the signing wallet.
// The server derives the triple deterministically from the L1 signature,
// so the nonce selects which triple is created.
func (c *Client) CreateAPIKey(ctx context.Context, nonce *big.Int) (*types.ApiKeyCreds, error) {
	headers, err := c.l1HeaderMap(nonce)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassAuth); err != nil {
		return nil, err
	}

	var raw types.ApiKeyRaw
	if _, err := c.http.do(ctx, http.MethodPost, EndpointCreateAPIKey, &requestOptions{
		headers: headers,
		out:     &raw,
	}); err != nil {
		return nil, err
	}
	return raw.Creds(), nil
}

// DeriveAPIKey recovers the credential triple previously created with the
// same nonce, without registering anything.
func (c *Client) DeriveAPIKey(ctx context.Context, nonce *big.Int) (*types.ApiKeyCreds, error) {
	headers, err := c.l1HeaderMap(nonce)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassAuth); err != nil {
		return nil, err
	}

	var raw types.ApiKeyRaw
	if _, err := c.http.do(ctx, http.MethodGet, EndpointDeriveAPIKey, &requestOptions{
		headers: headers,
		out:     &raw,
	}); err != nil {
		return nil, err
	}
	return raw.Creds(), nil
}

// CreateOrDeriveAPIKey derives the triple for the nonce and falls back to
// creating one when derivation fails, then publishes it on the client.
func (c *Client) CreateOrDeriveAPIKey(ctx context.Context, nonce *big.Int) (*types.ApiKeyCreds, error) {
	creds, err := c.DeriveAPIKey(ctx, nonce)
	if err != nil {
		c.log.WithError(err).Debug("derive failed, creating new api key")
		creds, err = c.CreateAPIKey(ctx, nonce)
		if err != nil {
			return nil, err
		}
	}
	c.SetAPICreds(*creds)
	return creds, nil
}

// GetAPIKeys lists the api key ids registered for the wallet.
func (c *Client) GetAPIKeys(ctx context.Context) (*types.ApiKeysResponse, error) {
	headers, err := c.l2HeaderMap(http.MethodGet, EndpointGetAPIKeys, "")
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassAuth); err != nil {
		return nil, err
	}

	var out types.ApiKeysResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetAPIKeys, &requestOptions{
		headers: headers,
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAPIKey revokes the credential triple currently set on the client
// and clears it locally on success.
func (c *Client) DeleteAPIKey(ctx context.Context) error {
	headers, err := c.l2HeaderMap(http.MethodDelete, EndpointDeleteAPIKey, "")
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassAuth); err != nil {
		return err
	}

	if _, err := c.http.do(ctx, http.MethodDelete, EndpointDeleteAPIKey, &requestOptions{
		headers: headers,
	}); err != nil {
		return err
	}
	c.creds.Clear()
	return nil
}
