package clob

// OrderType is an enumeration of possible order types.
type OrderType uint8

const (
	// A limit order is an order to buy or sell at a specific price or better.
	// A buy limit order can only be executed at the limit price or lower, and
	// a sell limit order can only be executed at the limit price or higher.
	// A limit order is not guaranteed to execute; the unexecuted remainder
	// rests in the order book according to its time in force option.
	OrderTypeLimit OrderType = iota + 1

	// A market order is an order to buy or sell at the best available price.
	// Market orders never rest in the order book: whatever cannot be executed
	// against present liquidity simply does not execute.
	OrderTypeMarket
)

func (ot OrderType) String() string {
	switch ot {
	case OrderTypeLimit:
		return "limit"
	case OrderTypeMarket:
		return "market"
	default:
		return "unknown"
	}
}

// TimeInForce is an enumeration of possible order execution options.
type TimeInForce uint8

const (
	// Good-Till-Cancelled (GTC) - the order is matched immediately and any
	// unfilled remainder rests in the book until executed or cancelled.
	TimeInForceGTC TimeInForce = iota + 1
	// Immediate-Or-Cancel (IOC) - the order is matched immediately and any
	// unfilled remainder is cancelled instead of resting.
	TimeInForceIOC
	// Fill-Or-Kill (FOK) - the order must be executed immediately in its
	// entirety, otherwise the whole placement fails with no state change.
	TimeInForceFOK
	// Post-Only (PO) - the order is never matched at placement. Placement
	// fails if the order would immediately cross the opposite best price.
	TimeInForcePO
)

func (tif TimeInForce) String() string {
	switch tif {
	case TimeInForceGTC:
		return "good-till-cancelled"
	case TimeInForceIOC:
		return "immediate-or-cancel"
	case TimeInForceFOK:
		return "fill-or-kill"
	case TimeInForcePO:
		return "post-only"
	default:
		return "unknown"
	}
}

// OrderStatus is an enumeration of order lifecycle states. Open and partially
// filled orders are the only ones eligible for matching or cancellation, all
// other states are terminal. Terminal orders stay in the order store for
// audit and querying but are never queued.
type OrderStatus uint8

const (
	// OrderStatusOpen is a resting order with no executions yet.
	OrderStatusOpen OrderStatus = iota + 1
	// OrderStatusPartiallyFilled is an order with some executed quantity left.
	OrderStatusPartiallyFilled
	// OrderStatusFilled is a completely executed order.
	OrderStatusFilled
	// OrderStatusCancelled is an order removed from the book by its owner or
	// by an IOC disposition.
	OrderStatusCancelled
	// OrderStatusExpired is an order removed because its expiry passed, or a
	// market order that could not be executed in full.
	OrderStatusExpired
)

func (os OrderStatus) String() string {
	switch os {
	case OrderStatusOpen:
		return "open"
	case OrderStatusPartiallyFilled:
		return "partially-filled"
	case OrderStatusFilled:
		return "filled"
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}
