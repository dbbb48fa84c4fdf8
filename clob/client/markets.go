package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/pkg/ratelimit"
)

// GetMarkets returns one page of the market listing. Pass an empty cursor
// for the first page; iteration ends when NextCursor is "LTE=".
func (c *Client) GetMarkets(ctx context.Context, nextCursor string) (*types.MarketsResponse, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	opt := &requestOptions{out: &types.MarketsResponse{}}
	if nextCursor != "" {
		opt.params = map[string]string{"next_cursor": nextCursor}
	}
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetMarkets, opt); err != nil {
		return nil, err
	}
	return opt.out.(*types.MarketsResponse), nil
}

// GetMarket returns one market by condition id.
func (c *Client) GetMarket(ctx context.Context, conditionID string) (*types.Market, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	var out types.Market
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetMarket+conditionID, &requestOptions{
		out: &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrderBook returns the aggregated book for one token.
func (c *Client) GetOrderBook(ctx context.Context, tokenID string) (*types.OrderBookSummary, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	var out types.OrderBookSummary
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetOrderBook, &requestOptions{
		params: map[string]string{"token_id": tokenID},
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrderBooks returns books for several tokens in one round trip.
func (c *Client) GetOrderBooks(ctx context.Context, params []types.BookParams) ([]types.OrderBookSummary, error) {
	var out []types.OrderBookSummary
	if err := c.postBatch(ctx, EndpointGetOrderBooks, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMidpoint returns the book midpoint for one token.
func (c *Client) GetMidpoint(ctx context.Context, tokenID string) (*types.MidpointResponse, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	var out types.MidpointResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetMidpoint, &requestOptions{
		params: map[string]string{"token_id": tokenID},
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMidpoints returns midpoints for several tokens.
func (c *Client) GetMidpoints(ctx context.Context, params []types.BookParams) (map[string]string, error) {
	out := make(map[string]string)
	if err := c.postBatch(ctx, EndpointGetMidpoints, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPrice returns the best price for one token and side.
func (c *Client) GetPrice(ctx context.Context, tokenID string, side types.Side) (*types.PriceResponse, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	var out types.PriceResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetPrice, &requestOptions{
		params: map[string]string{"token_id": tokenID, "side": string(side)},
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPrices returns best prices for several token/side pairs.
func (c *Client) GetPrices(ctx context.Context, params []types.BookParams) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	if err := c.postBatch(ctx, EndpointGetPrices, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSpread returns the bid/ask spread for one token.
func (c *Client) GetSpread(ctx context.Context, tokenID string) (*types.SpreadResponse, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	var out types.SpreadResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetSpread, &requestOptions{
		params: map[string]string{"token_id": tokenID},
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSpreads returns spreads for several tokens.
func (c *Client) GetSpreads(ctx context.Context, params []types.BookParams) (map[string]string, error) {
	out := make(map[string]string)
	if err := c.postBatch(ctx, EndpointGetSpreads, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLastTradePrice returns the last traded price for one token.
func (c *Client) GetLastTradePrice(ctx context.Context, tokenID string) (*types.PriceResponse, error) {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}
	var out types.PriceResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetLastTradePrice, &requestOptions{
		params: map[string]string{"token_id": tokenID},
		out:    &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTickSize returns the minimum price increment of a token's market.
// Tick sizes never shrink, so positive results are cached for the life of
// the client.
func (c *Client) GetTickSize(ctx context.Context, tokenID string) (types.TickSize, error) {
	c.mu.RLock()
	cached, ok := c.tickSizes[tokenID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return "", err
	}
	var out types.TickSizeResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetTickSize, &requestOptions{
		params: map[string]string{"token_id": tokenID},
		out:    &out,
	}); err != nil {
		return "", err
	}

	tick := types.TickSize(strconv.FormatFloat(out.MinimumTickSize, 'f', -1, 64))
	if _, ok := RoundingConfig[tick]; !ok {
		return "", fmt.Errorf("unsupported tick size %q for token %s", tick, tokenID)
	}

	c.mu.Lock()
	c.tickSizes[tokenID] = tick
	c.mu.Unlock()
	return tick, nil
}

// GetNegRisk reports whether a token trades on the neg-risk exchange.
// The flag is immutable per market and cached.
func (c *Client) GetNegRisk(ctx context.Context, tokenID string) (bool, error) {
	c.mu.RLock()
	cached, ok := c.negRisk[tokenID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return false, err
	}
	var out types.NegRiskResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetNegRisk, &requestOptions{
		params: map[string]string{"token_id": tokenID},
		out:    &out,
	}); err != nil {
		return false, err
	}

	c.mu.Lock()
	c.negRisk[tokenID] = out.NegRisk
	c.mu.Unlock()
	return out.NegRisk, nil
}

// resolveTickSize reconciles a caller-provided tick size with the
// market's minimum. A caller tick finer than the market minimum is an
// error; coarser is allowed.
func (c *Client) resolveTickSize(ctx context.Context, tokenID string, requested types.TickSize) (types.TickSize, error) {
	minTick, err := c.GetTickSize(ctx, tokenID)
	if err != nil {
		return "", err
	}
	if requested == "" {
		return minTick, nil
	}
	if _, ok := RoundingConfig[requested]; !ok {
		return "", fmt.Errorf("%w: unsupported tick size %q", ErrInvalidOrderParameters, requested)
	}

	req, _ := decimal.NewFromString(string(requested))
	minD, _ := decimal.NewFromString(string(minTick))
	if req.LessThan(minD) {
		return "", fmt.Errorf("%w: tick size %s below market minimum %s", ErrInvalidOrderParameters, requested, minTick)
	}
	return requested, nil
}

// resolveNegRisk uses the caller's flag when given, otherwise the cache
// or the API.
func (c *Client) resolveNegRisk(ctx context.Context, tokenID string, requested *bool) (bool, error) {
	if requested != nil {
		return *requested, nil
	}
	return c.GetNegRisk(ctx, tokenID)
}

// priceInRange checks the tradeable band [tick, 1-tick].
func priceInRange(price decimal.Decimal, tick types.TickSize) bool {
	t, err := decimal.NewFromString(string(tick))
	if err != nil {
		return false
	}
	return price.GreaterThanOrEqual(t) && price.LessThanOrEqual(decimal.NewFromInt(1).Sub(t))
}

// postBatch sends a JSON body to a public batch endpoint.
func (c *Client) postBatch(ctx context.Context, endpoint string, params []types.BookParams, out any) error {
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return err
	}
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode batch params: %w", err)
	}
	_, err = c.http.do(ctx, http.MethodPost, endpoint, &requestOptions{
		body: string(body),
		out:  out,
	})
	return err
}
