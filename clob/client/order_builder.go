package client

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/w6g2000/polymarket-go-client/clob/signing"
	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// RoundConfig fixes the decimal precision per tick size: price at tick
// precision, size at two places, the computed amount at the listed places.
// The table is a server contract; amounts rounded differently are
// rejected by exchange-side validation.
type RoundConfig struct {
	Price  int32
	Size   int32
	Amount int32
}

// RoundingConfig maps each supported tick size to its precision set.
var RoundingConfig = map[types.TickSize]RoundConfig{
	types.TickSize01:    {Price: 1, Size: 2, Amount: 3},
	types.TickSize001:   {Price: 2, Size: 2, Amount: 4},
	types.TickSize0001:  {Price: 3, Size: 2, Amount: 5},
	types.TickSize00001: {Price: 4, Size: 2, Amount: 6},
}

// maxSalt bounds the random order salt to a uint256.
var maxSalt = new(big.Int).Lsh(big.NewInt(1), 256)

// OrderBuilder assembles, canonicalizes and signs orders for one wallet.
// It is stateless apart from its configuration and safe for concurrent
// use.
type OrderBuilder struct {
	signer  *signing.Signer
	sigType types.SignatureType
	funder  common.Address

	// saltFn is replaceable in tests; production salt is 256-bit
	// crypto/rand output. Randomness lives only here, never in signing.
	saltFn func() (*big.Int, error)
}

// NewOrderBuilder creates a builder. Proxy and safe signature types
// require the funding wallet address; for EOA the funder defaults to the
// signer itself.
func NewOrderBuilder(signer *signing.Signer, sigType types.SignatureType, funderAddress string) (*OrderBuilder, error) {
	funder := signer.Address()
	if funderAddress != "" {
		if !common.IsHexAddress(funderAddress) {
			return nil, fmt.Errorf("%w: bad funder address %q", ErrInvalidOrderParameters, funderAddress)
		}
		funder = common.HexToAddress(funderAddress)
	} else if sigType.RequiresFunder() {
		return nil, ErrMissingFunderAddress
	}

	return &OrderBuilder{
		signer:  signer,
		sigType: sigType,
		funder:  funder,
		saltFn:  randomSalt,
	}, nil
}

// SignatureType returns the configured signature type.
func (b *OrderBuilder) SignatureType() types.SignatureType {
	return b.sigType
}

func randomSalt() (*big.Int, error) {
	return rand.Int(rand.Reader, maxSalt)
}

// BuildOrder computes amounts from price and size, assembles the order,
// hashes it against the given exchange contract and signs it.
func (b *OrderBuilder) BuildOrder(chainID types.Chain, exchange common.Address, args *types.OrderArgs, expiration uint64, extras types.ExtraOrderArgs, tickSize types.TickSize) (*types.SignedOrder, error) {
	rc, ok := RoundingConfig[tickSize]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported tick size %q", ErrInvalidOrderParameters, tickSize)
	}

	price, size, err := parsePriceSize(args.Price, args.Size)
	if err != nil {
		return nil, err
	}

	makerAmt, takerAmt := getOrderAmounts(args.Side, size, price, rc)
	return b.signAssembled(chainID, exchange, args.TokenID, args.Side, makerAmt, takerAmt, expiration, extras)
}

// BuildMarketOrder assembles a marketable order. For BUY the amount is a
// collateral (USD) amount and the price comes from walking the book; for
// SELL the amount is a share count.
func (b *OrderBuilder) BuildMarketOrder(chainID types.Chain, exchange common.Address, args *types.MarketOrderArgs, price decimal.Decimal, extras types.ExtraOrderArgs, tickSize types.TickSize) (*types.SignedOrder, error) {
	rc, ok := RoundingConfig[tickSize]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported tick size %q", ErrInvalidOrderParameters, tickSize)
	}

	amount, err := decimal.NewFromString(args.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: bad amount %q", ErrInvalidOrderParameters, args.Amount)
	}

	var makerAmt, takerAmt *big.Int
	if args.Side == types.SideSell {
		makerAmt, takerAmt = getOrderAmounts(types.SideSell, amount, price, rc)
	} else {
		makerAmt, takerAmt = getMarketBuyAmounts(amount, price, rc)
	}
	return b.signAssembled(chainID, exchange, args.TokenID, args.Side, makerAmt, takerAmt, 0, extras)
}

func (b *OrderBuilder) signAssembled(chainID types.Chain, exchange common.Address, tokenID string, side types.Side, makerAmt, takerAmt *big.Int, expiration uint64, extras types.ExtraOrderArgs) (*types.SignedOrder, error) {
	token, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return nil, fmt.Errorf("%w: bad token id %q", ErrInvalidOrderParameters, tokenID)
	}

	taker := types.ZeroAddress
	if extras.Taker != "" {
		if !common.IsHexAddress(extras.Taker) {
			return nil, fmt.Errorf("%w: bad taker address %q", ErrInvalidOrderParameters, extras.Taker)
		}
		taker = extras.Taker
	}

	salt, err := b.saltFn()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	order := &signing.OrderData{
		Salt:          salt,
		Maker:         b.funder,
		Signer:        b.signer.Address(),
		Taker:         common.HexToAddress(taker),
		TokenID:       token,
		MakerAmount:   makerAmt,
		TakerAmount:   takerAmt,
		Expiration:    new(big.Int).SetUint64(expiration),
		Nonce:         new(big.Int).SetUint64(extras.Nonce),
		FeeRateBps:    new(big.Int).SetUint64(uint64(extras.FeeRateBps)),
		Side:          side,
		SignatureType: b.sigType,
	}

	sig, err := signing.BuildOrderSignature(b.signer, chainID, exchange, order)
	if err != nil {
		return nil, err
	}

	return &types.SignedOrder{
		Salt:          salt.String(),
		Maker:         order.Maker.Hex(),
		Signer:        order.Signer.Hex(),
		Taker:         order.Taker.Hex(),
		TokenID:       tokenID,
		MakerAmount:   makerAmt.String(),
		TakerAmount:   takerAmt.String(),
		Expiration:    order.Expiration.String(),
		Nonce:         order.Nonce.String(),
		FeeRateBps:    order.FeeRateBps.String(),
		Side:          side,
		SignatureType: int(b.sigType),
		Signature:     sig,
	}, nil
}

// CalculateMarketPrice walks book levels until the requested amount is
// covered and returns the price of the last level consumed. For BUY the
// amount is collateral, for SELL a share count.
func CalculateMarketPrice(levels []types.OrderSummary, side types.Side, amount decimal.Decimal) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, level := range levels {
		price, err := decimal.NewFromString(level.Price)
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad book price %q: %w", level.Price, err)
		}
		size, err := decimal.NewFromString(level.Size)
		if err != nil {
			return decimal.Zero, fmt.Errorf("bad book size %q: %w", level.Size, err)
		}
		if side == types.SideSell {
			sum = sum.Add(size)
		} else {
			sum = sum.Add(size.Mul(price))
		}
		if sum.GreaterThanOrEqual(amount) {
			return price, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: not enough liquidity for amount %s", ErrInvalidOrderParameters, amount)
}

func parsePriceSize(priceStr, sizeStr string) (price, size decimal.Decimal, err error) {
	price, err = decimal.NewFromString(priceStr)
	if err != nil || price.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: bad price %q", ErrInvalidOrderParameters, priceStr)
	}
	size, err = decimal.NewFromString(sizeStr)
	if err != nil || size.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: bad size %q", ErrInvalidOrderParameters, sizeStr)
	}
	return price, size, nil
}

// getOrderAmounts turns (side, size, price) into integer maker/taker
// amounts in the 1e6 base unit. Price rounds to the nearest tick with
// ties away from zero; size truncates; the derived amount is nudged up
// within four guard digits and then truncated, before the final clamp to
// quote (2dp) / base (4dp) precision.
func getOrderAmounts(side types.Side, size, price decimal.Decimal, rc RoundConfig) (makerAmt, takerAmt *big.Int) {
	rawPrice := price.Round(rc.Price)

	if side == types.SideBuy {
		rawTaker := size.Truncate(rc.Size)
		rawMaker := fixAmountRounding(rawTaker.Mul(rawPrice), rc)
		maker, taker := clampAmountPrecision(types.SideBuy, rawMaker, rawTaker)
		return toTokenUnits(maker), toTokenUnits(taker)
	}

	rawMaker := size.Truncate(rc.Size)
	rawTaker := fixAmountRounding(rawMaker.Mul(rawPrice), rc)
	maker, taker := clampAmountPrecision(types.SideSell, rawMaker, rawTaker)
	return toTokenUnits(maker), toTokenUnits(taker)
}

// getMarketBuyAmounts prices a BUY of a fixed collateral amount: the
// maker side is the collateral, the taker side amount/price shares.
func getMarketBuyAmounts(amount, price decimal.Decimal, rc RoundConfig) (makerAmt, takerAmt *big.Int) {
	rawMaker := amount.Truncate(rc.Size)
	rawPrice := price.Round(rc.Price)
	rawTaker := fixAmountRounding(rawMaker.Div(rawPrice), rc)
	maker, taker := clampAmountPrecision(types.SideBuy, rawMaker, rawTaker)
	return toTokenUnits(maker), toTokenUnits(taker)
}

// fixAmountRounding absorbs binary-to-decimal noise from the multiply:
// round away from zero within four guard digits, then truncate to the
// amount precision if still too wide.
func fixAmountRounding(amt decimal.Decimal, rc RoundConfig) decimal.Decimal {
	if scaleOf(amt) > rc.Amount {
		amt = amt.RoundUp(rc.Amount + 4)
		if scaleOf(amt) > rc.Amount {
			amt = amt.Truncate(rc.Amount)
		}
	}
	return amt
}

// clampAmountPrecision enforces the exchange's wire precision: the quote
// (USD) leg at two decimals, the base (share) leg at four.
func clampAmountPrecision(side types.Side, maker, taker decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if side == types.SideBuy {
		return maker.Round(2), taker.Round(4)
	}
	return maker.Round(4), taker.Round(2)
}

func scaleOf(d decimal.Decimal) int32 {
	if d.Exponent() < 0 {
		return -d.Exponent()
	}
	return 0
}

// toTokenUnits scales a decimal amount by the collateral precision and
// returns the integer base-unit amount.
func toTokenUnits(amt decimal.Decimal) *big.Int {
	return amt.Shift(CollateralTokenDecimals).Round(0).BigInt()
}
