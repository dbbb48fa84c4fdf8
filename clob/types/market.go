package types

// OrderSummary is one aggregated price level of the book.
type OrderSummary struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// OrderBookSummary is the /book response.
type OrderBookSummary struct {
	Market    string         `json:"market"`
	AssetID   string         `json:"asset_id"`
	Hash      string         `json:"hash"`
	Timestamp string         `json:"timestamp"`
	Bids      []OrderSummary `json:"bids"`
	Asks      []OrderSummary `json:"asks"`
}

// BookParams addresses one book side in batch price queries.
type BookParams struct {
	TokenID string `json:"token_id"`
	Side    Side   `json:"side"`
}

type MidpointResponse struct {
	Mid string `json:"mid"`
}

type PriceResponse struct {
	Price string `json:"price"`
}

type SpreadResponse struct {
	Spread string `json:"spread"`
}

type TickSizeResponse struct {
	MinimumTickSize float64 `json:"minimum_tick_size"`
}

type NegRiskResponse struct {
	NegRisk bool `json:"neg_risk"`
}

// Token is one outcome of a binary market.
type Token struct {
	TokenID string `json:"token_id"`
	Outcome string `json:"outcome"`
}

// Market is the market descriptor returned by /markets.
type Market struct {
	ConditionID      string   `json:"condition_id"`
	QuestionID       string   `json:"question_id"`
	Tokens           [2]Token `json:"tokens"`
	Active           bool     `json:"active"`
	Closed           bool     `json:"closed"`
	NegRisk          bool     `json:"neg_risk"`
	MinimumOrderSize string   `json:"minimum_order_size"`
	MinimumTickSize  string   `json:"minimum_tick_size"`
	Question         string   `json:"question"`
	Description      string   `json:"description"`
	MarketSlug       string   `json:"market_slug"`
	EndDateISO       string   `json:"end_date_iso"`
	GameStartTime    string   `json:"game_start_time"`
	SecondsDelay     int      `json:"seconds_delay"`
	FPMM             string   `json:"fpmm"`
}

// MarketsResponse is one page of the market listing.
type MarketsResponse struct {
	Limit      int      `json:"limit"`
	Count      int      `json:"count"`
	NextCursor string   `json:"next_cursor"`
	Data       []Market `json:"data"`
}

// BalanceAllowanceParams selects the asset queried via /balance-allowance.
type BalanceAllowanceParams struct {
	AssetType     AssetType
	TokenID       string
	SignatureType *SignatureType
}

// BalanceAllowanceResponse reports collateral or conditional balances.
type BalanceAllowanceResponse struct {
	Balance   string `json:"balance"`
	Allowance string `json:"allowance"`
}
