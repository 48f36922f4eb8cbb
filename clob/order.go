package clob

import (
	"time"
)

// Order contains information about a single order. An order is an instruction
// to buy or sell a given base quantity (or, for quote-funded market buys, to
// spend a given quote amount) submitted by a trader through the router.
//
// Orders are linked into their (side, price) queue intrusively through the
// prev/next identifier fields with 0 as the none sentinel, so the queue needs
// no pointer-based container and removal anywhere in it is O(1).
type Order struct {
	id          uint64
	trader      string
	orderType   OrderType
	side        Side
	timeInForce TimeInForce
	status      OrderStatus

	price    Uint // zero for market orders
	quantity Uint // original base quantity, zero for quote-funded market buys

	// Quote budget of a quote-funded market buy ("spend exactly this much
	// quote to acquire as much base as possible"). Set only when quantity is
	// zero.
	quoteQuantity Uint

	filled      Uint // cumulative executed base quantity
	filledQuote Uint // cumulative executed quote amount

	// Remaining reserved amount backing the unexecuted part of the order,
	// quote for buys and base for sells, zero for market orders. Tracked
	// explicitly because per-fill releases truncate: recomputing it from the
	// open quantity could strand dust in the ledger lock.
	reserved Uint

	expiry time.Time

	autoBorrow bool // top up the locking currency from the lending pool on shortfall
	autoRepay  bool // repay outstanding debt from fill proceeds

	// Queue linkage within the (side, price) order queue.
	prev   uint64
	next   uint64
	queued bool
}

// ID returns the order ID.
func (o *Order) ID() uint64 {
	return o.id
}

// Trader returns the order owner.
func (o *Order) Trader() string {
	return o.trader
}

// Type returns the order type.
func (o *Order) Type() OrderType {
	return o.orderType
}

// IsLimit returns true if limit order.
func (o *Order) IsLimit() bool {
	return o.orderType == OrderTypeLimit
}

// IsMarket returns true if market order.
func (o *Order) IsMarket() bool {
	return o.orderType == OrderTypeMarket
}

// Side returns the market side of the order.
func (o *Order) Side() Side {
	return o.side
}

// IsBuy returns true if buy order.
func (o *Order) IsBuy() bool {
	return o.side == SideBuy
}

// TimeInForce returns the time in force option of the order.
func (o *Order) TimeInForce() TimeInForce {
	return o.timeInForce
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() OrderStatus {
	return o.status
}

// IsActive reports whether the order is still eligible for matching or
// cancellation.
func (o *Order) IsActive() bool {
	return o.status == OrderStatusOpen || o.status == OrderStatusPartiallyFilled
}

// Price returns the order price.
func (o *Order) Price() Uint {
	return o.price
}

// Quantity returns the original order quantity in base currency.
func (o *Order) Quantity() Uint {
	return o.quantity
}

// QuoteQuantity returns the quote budget of a quote-funded market buy.
func (o *Order) QuoteQuantity() Uint {
	return o.quoteQuantity
}

// Filled returns the executed base quantity.
func (o *Order) Filled() Uint {
	return o.filled
}

// FilledQuote returns the executed quote amount.
func (o *Order) FilledQuote() Uint {
	return o.filledQuote
}

// Open returns the remaining unexecuted base quantity.
func (o *Order) Open() Uint {
	if o.filled.GreaterThanOrEqualTo(o.quantity) {
		return NewZeroUint()
	}
	return o.quantity.Sub(o.filled)
}

// RestQuote returns the unspent quote budget of a quote-funded market buy.
func (o *Order) RestQuote() Uint {
	if o.filledQuote.GreaterThanOrEqualTo(o.quoteQuantity) {
		return NewZeroUint()
	}
	return o.quoteQuantity.Sub(o.filledQuote)
}

// consumeReserved reduces the tracked reservation by an amount just taken out
// of the ledger lock, flooring at zero.
func (o *Order) consumeReserved(amount Uint) {
	if amount.GreaterThanOrEqualTo(o.reserved) {
		o.reserved = NewZeroUint()
		return
	}
	o.reserved = o.reserved.Sub(amount)
}

// IsQuoteFunded returns true if the order is denominated in quote currency.
func (o *Order) IsQuoteFunded() bool {
	return o.quantity.IsZero() && !o.quoteQuantity.IsZero()
}

// Expiry returns the moment after which the order is no longer executable.
func (o *Order) Expiry() time.Time {
	return o.expiry
}

// IsExpired reports whether the order expiry has passed at the given time.
func (o *Order) IsExpired(now time.Time) bool {
	return !now.Before(o.expiry)
}

// AutoBorrow returns the borrow-on-shortfall flag.
func (o *Order) AutoBorrow() bool {
	return o.autoBorrow
}

// AutoRepay returns the repay-debt-on-fill flag.
func (o *Order) AutoRepay() bool {
	return o.autoRepay
}
