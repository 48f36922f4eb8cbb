package clob

// validateOrder checks order parameters against the symbol's trading rules.
// Validation never mutates state: a rejected order leaves no trace.
func validateOrder(ob *OrderBook, price Uint, quantity Uint, side Side, orderType OrderType, tif TimeInForce) error {
	sym := ob.symbol

	if quantity.IsZero() {
		return ErrInvalidOrderQuantity
	}
	if orderType == OrderTypeLimit && price.IsZero() {
		return ErrInvalidOrderPrice
	}

	// The quote notional of a limit order is computed at its own price, a
	// market order is priced against the best opposite level.
	var notional Uint
	if orderType == OrderTypeLimit {
		notional = sym.Notional(quantity, price)
	} else {
		best := ob.Best(side.Opposite())
		if best == nil {
			return ErrNoLiquidity
		}
		notional = sym.Notional(quantity, best.price)
	}
	if notional.LessThan(sym.minOrderNotional) {
		return ErrBelowMinimumOrderSize
	}
	if quantity.LessThan(sym.minTradeAmount) {
		return ErrBelowMinimumTradeAmount
	}

	if orderType == OrderTypeLimit {
		if _, rem := price.QuoRem(sym.priceTick); !rem.IsZero() {
			return ErrInvalidPriceIncrement
		}
	}

	// A post-only order must not take liquidity: reject it when it would
	// immediately cross the opposite best price.
	if tif == TimeInForcePO {
		if opposite := ob.Best(side.Opposite()); opposite != nil {
			if side == SideBuy && price.GreaterThanOrEqualTo(opposite.price) {
				return ErrPostOnlyWouldTake
			}
			if side == SideSell && price.LessThanOrEqualTo(opposite.price) {
				return ErrPostOnlyWouldTake
			}
		}
	}

	return nil
}

// validateQuoteMarketOrder checks a quote-funded market buy. It has no base
// quantity to measure, so the minimum order size applies to the quote budget
// directly.
func validateQuoteMarketOrder(ob *OrderBook, quoteAmount Uint) error {
	if quoteAmount.IsZero() {
		return ErrInvalidOrderQuantity
	}
	if quoteAmount.LessThan(ob.symbol.minOrderNotional) {
		return ErrBelowMinimumOrderSize
	}
	if ob.Best(SideSell) == nil {
		return ErrNoLiquidity
	}
	return nil
}
