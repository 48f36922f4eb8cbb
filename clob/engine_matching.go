package clob

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

////////////////////////////////////////////////////////////////
// Matching algorithm
////////////////////////////////////////////////////////////////

// matchOrder matches the taker order against the opposite side of the book in
// price/time priority. The walk starts at the best opposite level and moves
// strictly to the next price after each sweep, so a level populated only by
// the taker's own or stale orders cannot stall it. The walk is bounded by the
// configured level ceiling, a partial fill is always a valid outcome. The
// caller supplies the clock reading so maker expiry is judged the same way as
// in any pre-check it ran.
func (e *Engine) matchOrder(ob *OrderBook, taker *Order, market bool, now time.Time) error {
	opposite := taker.side.Opposite()

	level := ob.Best(opposite)
	for sweeps := 0; level != nil && sweeps < e.cfg.MaxLevelSweeps; sweeps++ {
		if taker.Open().IsZero() {
			break
		}
		if !market && !crosses(taker, level.price) {
			break
		}

		price := level.price
		stop, err := e.sweepLevel(ob, taker, level, market, now)
		if err != nil {
			return err
		}
		if stop {
			break
		}

		level = ob.NextLevel(opposite, price)
	}

	return nil
}

// crosses reports whether a limit taker is willing to trade at the given
// opposite price.
func crosses(taker *Order, price Uint) bool {
	if taker.side == SideBuy {
		return price.LessThanOrEqualTo(taker.price)
	}
	return price.GreaterThanOrEqualTo(taker.price)
}

// sweepLevel fills the taker against the makers of a single price level in
// FIFO order. Own orders are skipped, expired makers are evicted in passing.
// It reports stop=true when matching must end entirely because a market taker
// can no longer afford any quantity.
func (e *Engine) sweepLevel(ob *OrderBook, taker *Order, level *OrderQueue, market bool, now time.Time) (bool, error) {
	price := level.price

	for id := level.head; id != 0 && !taker.Open().IsZero(); {
		maker := ob.Order(id)
		id = maker.next

		if maker.trader == taker.trader {
			continue
		}
		if maker.IsExpired(now) {
			if err := e.expireOrder(ob, maker); err != nil {
				return false, err
			}
			continue
		}

		quantity := Min(taker.Open(), maker.Open())
		if market {
			affordable, err := e.affordableQuantity(ob, taker, price, quantity)
			if err != nil {
				return false, err
			}
			if affordable.IsZero() {
				return true, nil
			}
			quantity = affordable
		}

		if err := e.executeFill(ob, taker, maker, level, quantity); err != nil {
			return false, err
		}
	}

	return false, nil
}

// matchQuoteOrder matches a quote-funded market buy against the ask side. It
// is structurally the same walk as matchOrder, except the taker's remaining
// capacity is a quote budget converted to a base quantity at each candidate
// price rather than a fixed base quantity.
func (e *Engine) matchQuoteOrder(ob *OrderBook, taker *Order, now time.Time) error {
	level := ob.Best(SideSell)
	for sweeps := 0; level != nil && sweeps < e.cfg.MaxLevelSweeps; sweeps++ {
		// The walk ends when the remaining budget buys less than one base
		// unit at the current (cheapest remaining) price.
		if ob.symbol.BaseQuantity(taker.RestQuote(), level.price).IsZero() {
			break
		}

		price := level.price
		stop, err := e.sweepLevelQuote(ob, taker, level, now)
		if err != nil {
			return err
		}
		if stop {
			break
		}

		level = ob.NextLevel(SideSell, price)
	}

	return nil
}

// sweepLevelQuote fills a quote-funded market buy against the makers of a
// single ask level in FIFO order.
func (e *Engine) sweepLevelQuote(ob *OrderBook, taker *Order, level *OrderQueue, now time.Time) (bool, error) {
	price := level.price

	for id := level.head; id != 0; {
		maker := ob.Order(id)
		id = maker.next

		if maker.trader == taker.trader {
			continue
		}
		if maker.IsExpired(now) {
			if err := e.expireOrder(ob, maker); err != nil {
				return false, err
			}
			continue
		}

		budget := ob.symbol.BaseQuantity(taker.RestQuote(), price)
		if budget.IsZero() {
			return true, nil
		}

		quantity := Min(budget, maker.Open())
		affordable, err := e.affordableQuantity(ob, taker, price, quantity)
		if err != nil {
			return false, err
		}
		if affordable.IsZero() {
			return true, nil
		}

		if err := e.executeFill(ob, taker, maker, level, affordable); err != nil {
			return false, err
		}
	}

	return false, nil
}

////////////////////////////////////////////////////////////////
// Fill execution
////////////////////////////////////////////////////////////////

// executeFill settles a single fill of the given base quantity between the
// taker and a resting maker at the maker's price.
//
// Value moves through the ledger as follows. The maker's side of the trade is
// paid out of its reservation with TransferLockedFrom, which applies the
// taker fee schedule to the taker's proceeds. The taker pays from available
// balance with TransferFrom, which applies the maker fee schedule to the
// maker's proceeds. A limit taker first releases the part of its own
// reservation backing this fill, priced at its own limit price so price
// improvement is returned too, capped at what it still has reserved. Market
// takers reserve nothing and skip the release.
//
// Order and queue accounting is updated in the same step, the oracle print is
// mandatory for fills at or above the symbol's minimum trade amount, and the
// auto-repay hooks run last as best-effort side effects.
func (e *Engine) executeFill(ob *OrderBook, taker *Order, maker *Order, level *OrderQueue, quantity Uint) error {
	sym := ob.symbol
	price := maker.price
	notional := sym.Notional(quantity, price)

	if maker.side == SideSell {
		// Maker sells base out of lock, taker pays quote.
		if err := e.ledger.TransferLockedFrom(maker.trader, taker.trader, sym.baseCurrency, quantity); err != nil {
			return fmt.Errorf("failed to transfer %s %s from maker: %w", quantity, sym.baseCurrency, err)
		}
		maker.consumeReserved(quantity)
		if release := Min(sym.Notional(quantity, taker.price), taker.reserved); !release.IsZero() {
			if err := e.ledger.Unlock(taker.trader, sym.quoteCurrency, release); err != nil {
				return fmt.Errorf("failed to unlock %s %s: %w", release, sym.quoteCurrency, err)
			}
			taker.consumeReserved(release)
		}
		if err := e.ledger.TransferFrom(taker.trader, maker.trader, sym.quoteCurrency, notional); err != nil {
			return fmt.Errorf("failed to transfer %s %s from taker: %w", notional, sym.quoteCurrency, err)
		}
	} else {
		// Maker buys base out of lock, taker delivers base.
		if err := e.ledger.TransferLockedFrom(maker.trader, taker.trader, sym.quoteCurrency, notional); err != nil {
			return fmt.Errorf("failed to transfer %s %s from maker: %w", notional, sym.quoteCurrency, err)
		}
		maker.consumeReserved(notional)
		if release := Min(quantity, taker.reserved); !release.IsZero() {
			if err := e.ledger.Unlock(taker.trader, sym.baseCurrency, release); err != nil {
				return fmt.Errorf("failed to unlock %s %s: %w", release, sym.baseCurrency, err)
			}
			taker.consumeReserved(release)
		}
		if err := e.ledger.TransferFrom(taker.trader, maker.trader, sym.baseCurrency, quantity); err != nil {
			return fmt.Errorf("failed to transfer %s %s from taker: %w", quantity, sym.baseCurrency, err)
		}
	}

	// Fill accounting.
	taker.filled = taker.filled.Add(quantity)
	taker.filledQuote = taker.filledQuote.Add(notional)
	maker.filled = maker.filled.Add(quantity)
	maker.filledQuote = maker.filledQuote.Add(notional)

	ob.reduceVolume(level, quantity)
	// A limit taker is already queued on its own side, keep that level's
	// aggregate open volume in sync too.
	if taker.queued {
		if tq := ob.Level(taker.side, taker.price); tq != nil {
			ob.reduceVolume(tq, quantity)
		}
	}
	if maker.Open().IsZero() {
		maker.status = OrderStatusFilled
		if err := ob.unlinkOrder(maker); err != nil {
			return err
		}
		// Truncating per-fill transfers can leave a residue of a buy maker's
		// reservation, it comes back with the final fill.
		if err := e.unlockRemaining(ob, maker); err != nil {
			return err
		}
	} else {
		maker.status = OrderStatusPartiallyFilled
	}

	// The print is mandatory for qualifying trades so a stale oracle surfaces
	// immediately instead of being papered over.
	if e.oracle != nil && quantity.GreaterThanOrEqualTo(sym.minTradeAmount) {
		if err := e.oracle.UpdatePriceFromTrade(sym.baseCurrency, price, quantity); err != nil {
			return fmt.Errorf("failed to forward trade print: %w", err)
		}
	}

	if maker.side == SideSell {
		e.settleAutoRepay(taker, sym.baseCurrency, e.netOfTakerFee(quantity))
		e.settleAutoRepay(maker, sym.quoteCurrency, e.netOfMakerFee(notional))
	} else {
		e.settleAutoRepay(taker, sym.quoteCurrency, e.netOfTakerFee(notional))
		e.settleAutoRepay(maker, sym.baseCurrency, e.netOfMakerFee(quantity))
	}

	return nil
}

// affordableQuantity caps a market taker's next fill by its live available
// balance in the currency it must pay, topping the balance up from the
// lending pool first when the order opted into auto-borrow. Borrowing at
// match time is best effort, the balance read is mandatory.
func (e *Engine) affordableQuantity(ob *OrderBook, taker *Order, price Uint, want Uint) (Uint, error) {
	var currency string
	var required Uint
	if taker.side == SideBuy {
		currency = ob.symbol.quoteCurrency
		required = ob.symbol.Notional(want, price)
	} else {
		currency = ob.symbol.baseCurrency
		required = want
	}

	if e.lending != nil && taker.autoBorrow {
		if _, err := e.lending.ValidateAndBorrowIfNeeded(taker.trader, currency, required, true); err != nil {
			e.log.Warn("auto-borrow top-up failed",
				zap.String("trader", taker.trader),
				zap.String("currency", currency),
				zap.Error(err))
		}
	}

	balance, err := e.ledger.GetBalance(taker.trader, currency)
	if err != nil {
		return Uint{}, fmt.Errorf("failed to read %s balance: %w", currency, err)
	}

	if balance.GreaterThanOrEqualTo(required) {
		return want, nil
	}
	if taker.side == SideBuy {
		return ob.symbol.BaseQuantity(balance, price), nil
	}
	return balance, nil
}

// expireOrder evicts a stale resting order encountered during matching,
// releasing its remaining reservation.
func (e *Engine) expireOrder(ob *OrderBook, order *Order) error {
	order.status = OrderStatusExpired
	if err := ob.unlinkOrder(order); err != nil {
		return err
	}
	return e.unlockRemaining(ob, order)
}

// fillableQuantity sums the liquidity a taker of the given side and limit
// price could execute against right now, walking crossing levels and skipping
// the taker's own and expired orders. Nothing is mutated, the result backs
// the fill-or-kill pre-check. The walk honors the same level ceiling and the
// same clock reading as matching so the pre-check never promises more than
// matching can deliver.
func (e *Engine) fillableQuantity(ob *OrderBook, side Side, price Uint, trader string, want Uint, now time.Time) Uint {
	opposite := side.Opposite()
	available := NewZeroUint()

	level := ob.Best(opposite)
	for sweeps := 0; level != nil && sweeps < e.cfg.MaxLevelSweeps; sweeps++ {
		if side == SideBuy && level.price.GreaterThan(price) {
			break
		}
		if side == SideSell && level.price.LessThan(price) {
			break
		}

		for id := level.head; id != 0; {
			maker := ob.Order(id)
			id = maker.next
			if maker.trader == trader || maker.IsExpired(now) {
				continue
			}
			available = available.Add(maker.Open())
			if available.GreaterThanOrEqualTo(want) {
				return want
			}
		}

		level = ob.NextLevel(opposite, level.price)
	}

	return available
}

////////////////////////////////////////////////////////////////
// Best-effort lending hooks
////////////////////////////////////////////////////////////////

// settleAutoRepay routes fill proceeds into debt repayment when the receiving
// order opted in. Ledger currencies are the synthetic tokens traded on the
// exchange, the lending pool owns the mapping to their underlying, so the
// same identifier is passed for both. Best effort.
func (e *Engine) settleAutoRepay(order *Order, token string, amount Uint) {
	if e.lending == nil || !order.autoRepay || amount.IsZero() {
		return
	}
	if err := e.lending.RepayFromSyntheticBalance(order.trader, token, token, amount); err != nil {
		e.log.Warn("auto-repay failed",
			zap.String("trader", order.trader),
			zap.String("token", token),
			zap.Error(err))
	}
}

// netOfMakerFee deducts the maker fee from a received amount.
func (e *Engine) netOfMakerFee(received Uint) Uint {
	unit := e.ledger.FeeUnit()
	if unit.IsZero() {
		return received
	}
	fee, _ := received.Mul(e.ledger.FeeMaker()).QuoRem(unit)
	return received.Sub(fee)
}
