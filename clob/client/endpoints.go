package client

// CLOB API endpoints.
const (
	EndpointTime = "/time"

	EndpointCreateAPIKey = "/auth/api-key"
	EndpointGetAPIKeys   = "/auth/api-keys"
	EndpointDeleteAPIKey = "/auth/api-key"
	EndpointDeriveAPIKey = "/auth/derive-api-key"

	EndpointGetMarkets        = "/markets"
	EndpointGetMarket         = "/markets/"
	EndpointGetOrderBook      = "/book"
	EndpointGetOrderBooks     = "/books"
	EndpointGetMidpoint       = "/midpoint"
	EndpointGetMidpoints      = "/midpoints"
	EndpointGetPrice          = "/price"
	EndpointGetPrices         = "/prices"
	EndpointGetSpread         = "/spread"
	EndpointGetSpreads        = "/spreads"
	EndpointGetTickSize       = "/tick-size"
	EndpointGetNegRisk        = "/neg-risk"
	EndpointGetLastTradePrice = "/last-trade-price"

	EndpointPostOrder          = "/order"
	EndpointPostOrders         = "/orders"
	EndpointCancelOrder        = "/order"
	EndpointCancelOrders       = "/orders"
	EndpointCancelAll          = "/cancel-all"
	EndpointCancelMarketOrders = "/cancel-market-orders"
	EndpointGetOrder           = "/data/order/"
	EndpointGetOpenOrders      = "/data/orders"
	EndpointGetTrades          = "/data/trades"

	EndpointGetBalanceAllowance = "/balance-allowance"
)
