package types

// ZeroAddress marks a public order open to any taker.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// OrderArgs is the caller's intent for a limit order. Price and Size are
// decimal strings; precision handling happens in the order builder.
type OrderArgs struct {
	TokenID string
	Price   string
	Size    string
	Side    Side
	// Expiration is a unix timestamp in seconds, used by GTD orders.
	// Zero means no expiration.
	Expiration uint64
}

// MarketOrderArgs is the caller's intent for a market order. For BUY the
// amount is a collateral (USD) amount, for SELL a share count.
type MarketOrderArgs struct {
	TokenID string
	Amount  string
	Side    Side
}

// ExtraOrderArgs are the optional order fields with server-side defaults.
type ExtraOrderArgs struct {
	FeeRateBps uint32
	Nonce      uint64
	Taker      string
}

// DefaultExtraOrderArgs returns a zero-fee public order with nonce 0.
func DefaultExtraOrderArgs() ExtraOrderArgs {
	return ExtraOrderArgs{Taker: ZeroAddress}
}

// CreateOrderOptions carries market metadata needed before building an
// order. Unset fields are resolved from the API by the client.
type CreateOrderOptions struct {
	TickSize TickSize
	NegRisk  *bool
}

// SignedOrder is a fully built and signed order ready for submission.
// Numeric fields travel as decimal strings to avoid precision loss.
type SignedOrder struct {
	Salt          string `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          Side   `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// PostOrder is the request body for order submission.
type PostOrder struct {
	Order     SignedOrder `json:"order"`
	Owner     string      `json:"owner"`
	OrderType OrderType   `json:"orderType"`
}

// PostOrdersArgs is one entry of a batch submission.
type PostOrdersArgs struct {
	Order     SignedOrder
	OrderType OrderType
}

// OrderResponse is the exchange's reply to an order submission.
type OrderResponse struct {
	Success           bool     `json:"success"`
	ErrorMsg          string   `json:"errorMsg"`
	OrderID           string   `json:"orderID"`
	TransactionHashes []string `json:"transactionsHashes"`
	Status            string   `json:"status"`
	TakingAmount      string   `json:"takingAmount"`
	MakingAmount      string   `json:"makingAmount"`
}

// CancelResponse reports which orders a cancel call removed. NotCanceled
// maps order ids to the rejection reason.
type CancelResponse struct {
	Canceled    []string          `json:"canceled"`
	NotCanceled map[string]string `json:"not_canceled"`
}

// OpenOrder is a resting order as reported by /data/orders.
type OpenOrder struct {
	ID              string   `json:"id"`
	Status          string   `json:"status"`
	Owner           string   `json:"owner"`
	MakerAddress    string   `json:"maker_address"`
	Market          string   `json:"market"`
	AssetID         string   `json:"asset_id"`
	Side            string   `json:"side"`
	OriginalSize    string   `json:"original_size"`
	SizeMatched     string   `json:"size_matched"`
	Price           string   `json:"price"`
	AssociateTrades []string `json:"associate_trades"`
	Outcome         string   `json:"outcome"`
	CreatedAt       int64    `json:"created_at"`
	Expiration      string   `json:"expiration"`
	OrderType       string   `json:"order_type"`
}

// OpenOrderParams filters the open-order listing.
type OpenOrderParams struct {
	ID      string
	Market  string
	AssetID string
}

// OrderMarketCancelParams selects orders for cancel-market-orders.
type OrderMarketCancelParams struct {
	Market  string
	AssetID string
}

// Trade is one fill as reported by /data/trades.
type Trade struct {
	ID              string `json:"id"`
	TakerOrderID    string `json:"taker_order_id"`
	Market          string `json:"market"`
	AssetID         string `json:"asset_id"`
	Side            string `json:"side"`
	Size            string `json:"size"`
	Status          string `json:"status"`
	MatchTime       string `json:"match_time"`
	LastUpdate      string `json:"last_update"`
	Outcome         string `json:"outcome"`
	MakerAddress    string `json:"maker_address"`
	Owner           string `json:"owner"`
	TransactionHash string `json:"transaction_hash"`
	Price           string `json:"price"`
	TradeOwner      string `json:"trade_owner"`
	Type            string `json:"type"`
}

// TradeParams filters the trade listing.
type TradeParams struct {
	ID           string
	MakerAddress string
	Market       string
	AssetID      string
	Before       int64
	After        int64
}
