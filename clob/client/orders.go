package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/w6g2000/polymarket-go-client/clob/types"
	"github.com/w6g2000/polymarket-go-client/pkg/ratelimit"
)

// CreateOrder builds and signs a limit order without submitting it.
// Tick size and neg-risk flavor come from opts when set, otherwise from
// the API (cached).
func (c *Client) CreateOrder(ctx context.Context, args *types.OrderArgs, extras types.ExtraOrderArgs, opts *types.CreateOrderOptions) (*types.SignedOrder, error) {
	if c.builder == nil {
		return nil, ErrSignerNotSet
	}
	if opts == nil {
		opts = &types.CreateOrderOptions{}
	}

	tick, err := c.resolveTickSize(ctx, args.TokenID, opts.TickSize)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(args.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: bad price %q", ErrInvalidOrderParameters, args.Price)
	}
	if !priceInRange(price, tick) {
		return nil, fmt.Errorf("%w: price %s outside [%s, 1-%s]", ErrInvalidOrderParameters, args.Price, tick, tick)
	}

	negRisk, err := c.resolveNegRisk(ctx, args.TokenID, opts.NegRisk)
	if err != nil {
		return nil, err
	}

	exchange := common.HexToAddress(c.contracts.ExchangeFor(negRisk))
	return c.builder.BuildOrder(c.chainID, exchange, args, args.Expiration, extras, tick)
}

// CreateMarketOrder builds and signs a marketable order. The limit price
// comes from walking the current book unless the caller is willing to do
// that themselves via CalculateMarketPrice.
func (c *Client) CreateMarketOrder(ctx context.Context, args *types.MarketOrderArgs, extras types.ExtraOrderArgs, opts *types.CreateOrderOptions) (*types.SignedOrder, error) {
	if c.builder == nil {
		return nil, ErrSignerNotSet
	}
	if opts == nil {
		opts = &types.CreateOrderOptions{}
	}

	tick, err := c.resolveTickSize(ctx, args.TokenID, opts.TickSize)
	if err != nil {
		return nil, err
	}
	negRisk, err := c.resolveNegRisk(ctx, args.TokenID, opts.NegRisk)
	if err != nil {
		return nil, err
	}

	book, err := c.GetOrderBook(ctx, args.TokenID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(args.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount %q", ErrInvalidOrderParameters, args.Amount)
	}

	levels := book.Asks
	if args.Side == types.SideSell {
		levels = book.Bids
	}
	price, err := CalculateMarketPrice(levels, args.Side, amount)
	if err != nil {
		return nil, err
	}

	exchange := common.HexToAddress(c.contracts.ExchangeFor(negRisk))
	return c.builder.BuildMarketOrder(c.chainID, exchange, args, price, extras, tick)
}

// PostOrder submits a signed order. The request body is marshaled once
// and those exact bytes are both HMAC-signed and sent.
func (c *Client) PostOrder(ctx context.Context, order *types.SignedOrder, orderType types.OrderType) (*types.OrderResponse, error) {
	creds, err := c.canL2Auth()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(types.PostOrder{
		Order:     *order,
		Owner:     creds.Key,
		OrderType: orderType,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	headers, err := c.l2HeaderMap(http.MethodPost, EndpointPostOrder, string(body))
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassOrders); err != nil {
		return nil, err
	}

	var out types.OrderResponse
	if _, err := c.http.do(ctx, http.MethodPost, EndpointPostOrder, &requestOptions{
		headers: headers,
		body:    string(body),
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostOrders submits a batch of signed orders in one request.
func (c *Client) PostOrders(ctx context.Context, args []types.PostOrdersArgs) ([]types.OrderResponse, error) {
	creds, err := c.canL2Auth()
	if err != nil {
		return nil, err
	}

	payload := make([]types.PostOrder, 0, len(args))
	for _, a := range args {
		payload = append(payload, types.PostOrder{
			Order:     a.Order,
			Owner:     creds.Key,
			OrderType: a.OrderType,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode orders: %w", err)
	}

	headers, err := c.l2HeaderMap(http.MethodPost, EndpointPostOrders, string(body))
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassOrders); err != nil {
		return nil, err
	}

	var out []types.OrderResponse
	if _, err := c.http.do(ctx, http.MethodPost, EndpointPostOrders, &requestOptions{
		headers: headers,
		body:    string(body),
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAndPostOrder builds, signs and submits a limit order as GTC.
func (c *Client) CreateAndPostOrder(ctx context.Context, args *types.OrderArgs) (*types.OrderResponse, error) {
	order, err := c.CreateOrder(ctx, args, types.DefaultExtraOrderArgs(), nil)
	if err != nil {
		return nil, err
	}
	return c.PostOrder(ctx, order, types.OrderTypeGTC)
}

// CancelOrder cancels one resting order by id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*types.CancelResponse, error) {
	body, err := json.Marshal(map[string]string{"orderID": orderID})
	if err != nil {
		return nil, fmt.Errorf("encode cancel: %w", err)
	}
	return c.deleteWithBody(ctx, EndpointCancelOrder, string(body))
}

// CancelOrders cancels a set of resting orders by id.
func (c *Client) CancelOrders(ctx context.Context, orderIDs []string) (*types.CancelResponse, error) {
	body, err := json.Marshal(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("encode cancel batch: %w", err)
	}
	return c.deleteWithBody(ctx, EndpointCancelOrders, string(body))
}

// CancelAll cancels every resting order of the wallet.
func (c *Client) CancelAll(ctx context.Context) (*types.CancelResponse, error) {
	return c.deleteWithBody(ctx, EndpointCancelAll, "")
}

// CancelMarketOrders cancels the wallet's resting orders in one market,
// optionally narrowed to one token.
func (c *Client) CancelMarketOrders(ctx context.Context, params *types.OrderMarketCancelParams) (*types.CancelResponse, error) {
	body, err := json.Marshal(map[string]string{
		"market":   params.Market,
		"asset_id": params.AssetID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode cancel params: %w", err)
	}
	return c.deleteWithBody(ctx, EndpointCancelMarketOrders, string(body))
}

func (c *Client) deleteWithBody(ctx context.Context, endpoint, body string) (*types.CancelResponse, error) {
	headers, err := c.l2HeaderMap(http.MethodDelete, endpoint, body)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassOrders); err != nil {
		return nil, err
	}

	var out types.CancelResponse
	if _, err := c.http.do(ctx, http.MethodDelete, endpoint, &requestOptions{
		headers: headers,
		body:    body,
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder fetches one order by id, resting or settled.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.OpenOrder, error) {
	endpoint := EndpointGetOrder + orderID
	headers, err := c.l2HeaderMap(http.MethodGet, endpoint, "")
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}

	var out types.OpenOrder
	if _, err := c.http.do(ctx, http.MethodGet, endpoint, &requestOptions{
		headers: headers,
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOpenOrders lists the wallet's resting orders. Query parameters are
// not part of the signed path.
func (c *Client) GetOpenOrders(ctx context.Context, params *types.OpenOrderParams) ([]types.OpenOrder, error) {
	headers, err := c.l2HeaderMap(http.MethodGet, EndpointGetOpenOrders, "")
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}

	query := make(map[string]string)
	if params != nil {
		setIfNotEmpty(query, "id", params.ID)
		setIfNotEmpty(query, "market", params.Market)
		setIfNotEmpty(query, "asset_id", params.AssetID)
	}

	var out []types.OpenOrder
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetOpenOrders, &requestOptions{
		headers: headers,
		params:  query,
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTrades lists the wallet's fills.
func (c *Client) GetTrades(ctx context.Context, params *types.TradeParams) ([]types.Trade, error) {
	headers, err := c.l2HeaderMap(http.MethodGet, EndpointGetTrades, "")
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}

	query := make(map[string]string)
	if params != nil {
		setIfNotEmpty(query, "id", params.ID)
		setIfNotEmpty(query, "maker_address", params.MakerAddress)
		setIfNotEmpty(query, "market", params.Market)
		setIfNotEmpty(query, "asset_id", params.AssetID)
		if params.Before > 0 {
			query["before"] = strconv.FormatInt(params.Before, 10)
		}
		if params.After > 0 {
			query["after"] = strconv.FormatInt(params.After, 10)
		}
	}

	var out []types.Trade
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetTrades, &requestOptions{
		headers: headers,
		params:  query,
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBalanceAllowance reports the funding wallet's balance and exchange
// allowance for collateral or one conditional token.
func (c *Client) GetBalanceAllowance(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
	headers, err := c.l2HeaderMap(http.MethodGet, EndpointGetBalanceAllowance, "")
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx, ratelimit.ClassData); err != nil {
		return nil, err
	}

	query := map[string]string{"asset_type": string(params.AssetType)}
	setIfNotEmpty(query, "token_id", params.TokenID)
	sigType := c.builderSignatureType()
	if params.SignatureType != nil {
		sigType = *params.SignatureType
	}
	query["signature_type"] = strconv.Itoa(int(sigType))

	var out types.BalanceAllowanceResponse
	if _, err := c.http.do(ctx, http.MethodGet, EndpointGetBalanceAllowance, &requestOptions{
		headers: headers,
		params:  query,
		out:     &out,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) builderSignatureType() types.SignatureType {
	if c.builder == nil {
		return types.SignatureTypeEOA
	}
	return c.builder.SignatureType()
}

func setIfNotEmpty(m map[string]string, key, val string) {
	if val != "" {
		m[key] = val
	}
}
