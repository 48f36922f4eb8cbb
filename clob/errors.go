package clob

import (
	"errors"
)

// Errors used by the package.
var (
	ErrOrderBookDuplicate = errors.New("order book is duplicated")
	ErrOrderBookNotFound  = errors.New("order book is not found")
	ErrOrderNotFound      = errors.New("order is not found")
	ErrPriceLevelNotFound = errors.New("price level is not found")
	ErrInvalidSymbol      = errors.New("invalid symbol")

	// Validation errors, rejected before any state change.
	ErrInvalidOrderQuantity    = errors.New("invalid order quantity")
	ErrInvalidOrderPrice       = errors.New("invalid order price")
	ErrInvalidPriceIncrement   = errors.New("order price is not a multiple of the price increment")
	ErrBelowMinimumOrderSize   = errors.New("order notional is below the minimum order size")
	ErrBelowMinimumTradeAmount = errors.New("order quantity is below the minimum trade amount")
	ErrPostOnlyWouldTake       = errors.New("post-only order would take liquidity")

	// Authorization errors.
	ErrUnauthorizedCaller = errors.New("caller is not the configured router")
	ErrNotOrderOwner      = errors.New("order does not belong to the given trader")

	// Liquidity errors.
	ErrNoLiquidity         = errors.New("no liquidity on the opposite side of the book")
	ErrFillOrKillNotFilled = errors.New("fill-or-kill order cannot be fully filled")

	// Lifecycle errors.
	ErrOrderNotActive   = errors.New("order is not open or partially filled")
	ErrOrderIDExhausted = errors.New("order identifier space is exhausted")
	ErrReentrantCall    = errors.New("reentrant call into the matching engine")

	// ErrCrossedBook reports a placement whose remainder would rest with the
	// best bid above the best ask, reachable when a crossing order spans more
	// levels than a single walk may sweep. The placement fails and the taker
	// is evicted from the book.
	ErrCrossedBook = errors.New("book is crossed after matching")
)
