package clob

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config carries the engine-wide settings.
type Config struct {
	// Router is the only account allowed to call state-mutating entry points.
	Router string

	// ExpiryHorizon is added to the placement time to obtain the order
	// expiry. Expiry is a logical field checked opportunistically during
	// matching and cancellation, there is no active timer.
	ExpiryHorizon time.Duration

	// MaxLevelSweeps bounds how many price levels a single matching call may
	// walk before stopping with a partial fill.
	MaxLevelSweeps int

	// Now supplies the engine clock, defaults to time.Now.
	Now func() time.Time

	// Logger receives informational events for suppressed best-effort
	// failures, defaults to a no-op logger.
	Logger *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.ExpiryHorizon <= 0 {
		c.ExpiryHorizon = defaultExpiryHorizon
	}
	if c.MaxLevelSweeps <= 0 {
		c.MaxLevelSweeps = defaultMaxLevelSweeps
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Engine manages the markets with orders and price levels and matches
// incoming orders against resting liquidity in price/time priority.
//
// The engine is a deterministic state machine executing every entry point
// sequentially and to completion: there is no interleaving of two matching
// operations and no async boundary inside the engine. All monetary side
// effects are synchronous calls to the injected gateways. Mandatory side
// effect failures abort the operation, best-effort ones are logged and
// skipped.
type Engine struct {
	cfg Config
	log *zap.Logger

	ledger  LedgerGateway
	lending LendingGateway // optional, nil disables borrow/repay hooks
	oracle  OracleGateway  // optional, nil disables trade prints

	// Order books by symbol id.
	orderBooks      []*OrderBook
	orderBooksCount int

	// Last assigned order identifier, monotonically increasing, never reused.
	lastOrderID uint64

	// Re-entrancy guard around state-mutating entry points.
	busy bool
}

// NewEngine creates and returns a new Engine instance. The ledger gateway is
// mandatory, lending and oracle gateways may be nil.
func NewEngine(cfg Config, ledger LedgerGateway, lending LendingGateway, oracle OracleGateway) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:        cfg,
		log:        cfg.Logger,
		ledger:     ledger,
		lending:    lending,
		oracle:     oracle,
		orderBooks: make([]*OrderBook, defaultReservedOrderBookSlots),
	}
}

////////////////////////////////////////////////////////////////
// Order books management
////////////////////////////////////////////////////////////////

// AddOrderBook creates a new order book and adds it to the engine.
func (e *Engine) AddOrderBook(symbol Symbol) (*OrderBook, error) {
	if !symbol.Valid() {
		return nil, ErrInvalidSymbol
	}

	// Ensure order books storage size
	newSize := len(e.orderBooks)
	for newSize <= int(symbol.id) {
		newSize *= 2
	}
	if newSize > len(e.orderBooks) {
		newOrderBooks := make([]*OrderBook, newSize)
		copy(newOrderBooks, e.orderBooks)
		e.orderBooks = newOrderBooks
	}

	// Ensure order book does not exist
	if e.orderBooks[symbol.id] != nil {
		return nil, ErrOrderBookDuplicate
	}

	orderBook := NewOrderBook(symbol)
	e.orderBooks[symbol.id] = orderBook
	e.orderBooksCount++

	return orderBook, nil
}

// OrderBook returns the order book with the given symbol id or nil.
func (e *Engine) OrderBook(id uint32) *OrderBook {
	if int(id) >= len(e.orderBooks) {
		return nil
	}
	return e.orderBooks[id]
}

// OrderBooks returns the total amount of currently existing order books.
func (e *Engine) OrderBooks() int {
	return e.orderBooksCount
}

////////////////////////////////////////////////////////////////
// Entry point guards
////////////////////////////////////////////////////////////////

// enter authorizes the caller and takes the re-entrancy guard. Every
// state-mutating entry point must pair it with leave.
func (e *Engine) enter(caller string) error {
	if caller != e.cfg.Router {
		return ErrUnauthorizedCaller
	}
	if e.busy {
		return ErrReentrantCall
	}
	e.busy = true
	return nil
}

func (e *Engine) leave() {
	e.busy = false
}

func (e *Engine) nextOrderID() (uint64, error) {
	if e.lastOrderID >= maxOrderID {
		return 0, ErrOrderIDExhausted
	}
	e.lastOrderID++
	return e.lastOrderID, nil
}

////////////////////////////////////////////////////////////////
// Order placement
////////////////////////////////////////////////////////////////

// PlaceOrder places a limit order for the given trader and returns the
// assigned order id. Unless post-only, the order is matched immediately
// against the opposite side, then the time-in-force disposition is applied:
// a GTC remainder rests, an IOC remainder is cancelled and its reserved funds
// released, and a FOK order that cannot be fully filled fails the whole
// placement with no state change.
func (e *Engine) PlaceOrder(
	caller string,
	symbolID uint32,
	price Uint,
	quantity Uint,
	side Side,
	trader string,
	timeInForce TimeInForce,
	autoRepay bool,
	autoBorrow bool,
) (uint64, error) {
	if err := e.enter(caller); err != nil {
		return 0, err
	}
	defer e.leave()

	ob := e.OrderBook(symbolID)
	if ob == nil {
		return 0, ErrOrderBookNotFound
	}

	if err := validateOrder(ob, price, quantity, side, OrderTypeLimit, timeInForce); err != nil {
		return 0, err
	}

	// One clock reading drives the fill-or-kill pre-check, the expiry stamp
	// and the matching walk, so both passes agree on which makers are alive.
	now := e.cfg.Now()

	// A fill-or-kill order is checked against present liquidity before any
	// state change, so a partial outcome fails with nothing to unwind.
	if timeInForce == TimeInForceFOK {
		if e.fillableQuantity(ob, side, price, trader, quantity, now).LessThan(quantity) {
			return 0, ErrFillOrKillNotFilled
		}
	}

	id, err := e.nextOrderID()
	if err != nil {
		return 0, err
	}

	order := &Order{
		id:          id,
		trader:      trader,
		orderType:   OrderTypeLimit,
		side:        side,
		timeInForce: timeInForce,
		status:      OrderStatusOpen,
		price:       price,
		quantity:    quantity,
		expiry:      now.Add(e.cfg.ExpiryHorizon),
		autoBorrow:  autoBorrow,
		autoRepay:   autoRepay,
	}
	e.checkAutoRepayDebt(ob, order)

	// Buy orders reserve the quote notional, sell orders the base quantity.
	lockCurrency, lockAmount := e.lockFor(ob, side, price, quantity)

	if e.lending != nil {
		if _, err := e.lending.ValidateAndBorrowIfNeeded(trader, lockCurrency, lockAmount, autoBorrow); err != nil {
			// Best effort: the following lock surfaces a real shortfall.
			e.log.Warn("auto-borrow top-up failed",
				zap.String("trader", trader),
				zap.String("currency", lockCurrency),
				zap.Error(err))
		}
	}

	if err := e.ledger.Lock(trader, lockCurrency, lockAmount); err != nil {
		return 0, fmt.Errorf("failed to lock %s %s: %w", lockAmount, lockCurrency, err)
	}
	order.reserved = lockAmount

	ob.orders.Set(order.id, order)
	ob.enqueueOrder(order)

	if timeInForce != TimeInForcePO {
		if err := e.matchOrder(ob, order, false, now); err != nil {
			e.evictFailedOrder(ob, order)
			return 0, fmt.Errorf("failed to match order: %w", err)
		}
	}

	// Time-in-force disposition of the remainder.
	switch {
	case order.Open().IsZero():
		if err := ob.unlinkOrder(order); err != nil {
			e.evictFailedOrder(ob, order)
			return 0, err
		}
		order.status = OrderStatusFilled
		// Truncating per-fill releases can leave a residue of the
		// reservation behind, it comes back with the final fill.
		if err := e.unlockRemaining(ob, order); err != nil {
			e.evictFailedOrder(ob, order)
			return 0, err
		}
	case timeInForce == TimeInForceFOK:
		// The pre-check and the walk share one clock reading, so a remainder
		// here means the book changed underneath. Never rest it.
		e.evictFailedOrder(ob, order)
		return 0, ErrFillOrKillNotFilled
	case timeInForce == TimeInForceIOC:
		if err := ob.unlinkOrder(order); err != nil {
			e.evictFailedOrder(ob, order)
			return 0, err
		}
		if err := e.unlockRemaining(ob, order); err != nil {
			e.evictFailedOrder(ob, order)
			return 0, err
		}
		order.status = OrderStatusCancelled
	case !order.filled.IsZero():
		order.status = OrderStatusPartiallyFilled
	}

	// Consistency guard: a placement must never leave the book crossed. The
	// taker is evicted before the error returns, so a remainder resting
	// beyond the walk ceiling cannot wedge the book for later placements.
	if bid, ask := ob.Best(SideBuy), ob.Best(SideSell); bid != nil && ask != nil {
		if bid.price.GreaterThan(ask.price) {
			e.evictFailedOrder(ob, order)
			return 0, ErrCrossedBook
		}
	}

	return order.id, nil
}

// PlaceMarketOrder places a quantity-denominated market order and returns the
// assigned order id together with the received amount net of the taker fee.
// Market orders never rest: a full fill ends as filled, anything less is
// terminal with the unexecuted remainder expired.
func (e *Engine) PlaceMarketOrder(
	caller string,
	symbolID uint32,
	quantity Uint,
	side Side,
	trader string,
	autoRepay bool,
	autoBorrow bool,
) (uint64, Uint, error) {
	if err := e.enter(caller); err != nil {
		return 0, Uint{}, err
	}
	defer e.leave()

	ob := e.OrderBook(symbolID)
	if ob == nil {
		return 0, Uint{}, ErrOrderBookNotFound
	}

	best := ob.Best(side.Opposite())
	if best == nil {
		return 0, Uint{}, ErrNoLiquidity
	}

	if err := validateOrder(ob, NewZeroUint(), quantity, side, OrderTypeMarket, TimeInForceIOC); err != nil {
		return 0, Uint{}, err
	}

	id, err := e.nextOrderID()
	if err != nil {
		return 0, Uint{}, err
	}

	now := e.cfg.Now()
	order := &Order{
		id:          id,
		trader:      trader,
		orderType:   OrderTypeMarket,
		side:        side,
		timeInForce: TimeInForceIOC,
		status:      OrderStatusOpen,
		quantity:    quantity,
		expiry:      now.Add(e.cfg.ExpiryHorizon),
		autoBorrow:  autoBorrow,
		autoRepay:   autoRepay,
	}
	e.checkAutoRepayDebt(ob, order)

	// Market orders reserve nothing upfront, execution is capped by the live
	// balance during matching. Collateral sufficiency is still reported to
	// the lending pool, borrowing is deferred to match time.
	if e.lending != nil {
		payCurrency, required := e.lockFor(ob, side, best.price, quantity)
		if err := e.lending.ValidateBalanceOnly(trader, payCurrency, required); err != nil {
			e.log.Warn("collateral validation failed",
				zap.String("trader", trader),
				zap.String("currency", payCurrency),
				zap.Error(err))
		}
	}

	ob.orders.Set(order.id, order)

	if err := e.matchOrder(ob, order, true, now); err != nil {
		e.evictFailedOrder(ob, order)
		return 0, Uint{}, fmt.Errorf("failed to match market order: %w", err)
	}

	// Market orders never rest: anything short of a full fill is terminal,
	// the unexecuted remainder simply expires.
	if order.Open().IsZero() {
		order.status = OrderStatusFilled
	} else {
		order.status = OrderStatusExpired
	}

	var received Uint
	if side == SideBuy {
		received = order.filled
	} else {
		received = order.filledQuote
	}

	return order.id, e.netOfTakerFee(received), nil
}

// PlaceMarketOrderWithQuote places a quote-denominated market buy: spend up
// to the given quote amount acquiring as much base as possible. It returns
// the assigned order id and the acquired base quantity net of the taker fee.
func (e *Engine) PlaceMarketOrderWithQuote(
	caller string,
	symbolID uint32,
	quoteAmount Uint,
	trader string,
	autoRepay bool,
	autoBorrow bool,
) (uint64, Uint, error) {
	if err := e.enter(caller); err != nil {
		return 0, Uint{}, err
	}
	defer e.leave()

	ob := e.OrderBook(symbolID)
	if ob == nil {
		return 0, Uint{}, ErrOrderBookNotFound
	}

	if err := validateQuoteMarketOrder(ob, quoteAmount); err != nil {
		return 0, Uint{}, err
	}

	id, err := e.nextOrderID()
	if err != nil {
		return 0, Uint{}, err
	}

	now := e.cfg.Now()
	order := &Order{
		id:            id,
		trader:        trader,
		orderType:     OrderTypeMarket,
		side:          SideBuy,
		timeInForce:   TimeInForceIOC,
		status:        OrderStatusOpen,
		quoteQuantity: quoteAmount,
		expiry:        now.Add(e.cfg.ExpiryHorizon),
		autoBorrow:    autoBorrow,
		autoRepay:     autoRepay,
	}
	e.checkAutoRepayDebt(ob, order)

	if e.lending != nil {
		if err := e.lending.ValidateBalanceOnly(trader, ob.symbol.quoteCurrency, quoteAmount); err != nil {
			e.log.Warn("collateral validation failed",
				zap.String("trader", trader),
				zap.String("currency", ob.symbol.quoteCurrency),
				zap.Error(err))
		}
	}

	ob.orders.Set(order.id, order)

	if err := e.matchQuoteOrder(ob, order, now); err != nil {
		e.evictFailedOrder(ob, order)
		return 0, Uint{}, fmt.Errorf("failed to match market order: %w", err)
	}

	if order.RestQuote().IsZero() {
		order.status = OrderStatusFilled
	} else {
		order.status = OrderStatusExpired
	}

	return order.id, e.netOfTakerFee(order.filled), nil
}

////////////////////////////////////////////////////////////////
// Order cancellation
////////////////////////////////////////////////////////////////

// CancelOrder cancels a resting order owned by the given trader and releases
// its remaining reserved amount. Terminal orders cannot be cancelled.
func (e *Engine) CancelOrder(caller string, symbolID uint32, orderID uint64, trader string) error {
	if err := e.enter(caller); err != nil {
		return err
	}
	defer e.leave()

	ob := e.OrderBook(symbolID)
	if ob == nil {
		return ErrOrderBookNotFound
	}

	order := ob.Order(orderID)
	if order == nil {
		return ErrOrderNotFound
	}
	if order.trader != trader {
		return ErrNotOrderOwner
	}
	if !order.IsActive() || !order.queued {
		return ErrOrderNotActive
	}

	order.status = OrderStatusCancelled
	if err := ob.unlinkOrder(order); err != nil {
		return err
	}

	return e.unlockRemaining(ob, order)
}

////////////////////////////////////////////////////////////////
// Read API
////////////////////////////////////////////////////////////////

// GetBestPrice returns the best price of the given side and the open volume
// resting at it. Both are zero when the side is empty.
func (e *Engine) GetBestPrice(symbolID uint32, side Side) (Uint, Uint, error) {
	ob := e.OrderBook(symbolID)
	if ob == nil {
		return Uint{}, Uint{}, ErrOrderBookNotFound
	}
	best := ob.Best(side)
	if best == nil {
		return Uint{}, Uint{}, nil
	}
	return best.price, best.volume, nil
}

// GetOrderQueue returns the order count and open volume at the given side and
// price. Both are zero when the level is not indexed.
func (e *Engine) GetOrderQueue(symbolID uint32, side Side, price Uint) (int, Uint, error) {
	ob := e.OrderBook(symbolID)
	if ob == nil {
		return 0, Uint{}, ErrOrderBookNotFound
	}
	q := ob.Level(side, price)
	if q == nil {
		return 0, Uint{}, nil
	}
	return q.orders, q.volume, nil
}

// GetOrder returns the order with the given id, terminal orders included.
func (e *Engine) GetOrder(symbolID uint32, orderID uint64) (*Order, error) {
	ob := e.OrderBook(symbolID)
	if ob == nil {
		return nil, ErrOrderBookNotFound
	}
	order := ob.Order(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetNextBestPrices returns up to count price levels of the given side
// starting from the best one, or from the level strictly beyond fromPrice
// when fromPrice is not zero.
func (e *Engine) GetNextBestPrices(symbolID uint32, side Side, fromPrice Uint, count int) ([]LevelInfo, error) {
	ob := e.OrderBook(symbolID)
	if ob == nil {
		return nil, ErrOrderBookNotFound
	}
	return ob.TopLevels(side, fromPrice, count), nil
}

////////////////////////////////////////////////////////////////
// Internal helpers
////////////////////////////////////////////////////////////////

// lockFor returns the currency and amount a resting order of the given side
// must reserve: buys reserve the quote notional, sells the base quantity.
func (e *Engine) lockFor(ob *OrderBook, side Side, price Uint, quantity Uint) (string, Uint) {
	if side == SideBuy {
		return ob.symbol.quoteCurrency, ob.symbol.Notional(quantity, price)
	}
	return ob.symbol.baseCurrency, quantity
}

// unlockRemaining releases the reservation still backing an order, used on
// cancellation, expiry, IOC disposition and the truncation residue left by a
// full fill. The amount is the one tracked on the order, not a recomputation
// from the open quantity, so truncating per-fill releases cannot strand dust
// in the lock.
func (e *Engine) unlockRemaining(ob *OrderBook, order *Order) error {
	if order.reserved.IsZero() {
		return nil
	}
	currency := ob.symbol.quoteCurrency
	if order.side == SideSell {
		currency = ob.symbol.baseCurrency
	}
	amount := order.reserved
	if err := e.ledger.Unlock(order.trader, currency, amount); err != nil {
		return fmt.Errorf("failed to unlock %s %s: %w", amount, currency, err)
	}
	order.reserved = NewZeroUint()
	return nil
}

// evictFailedOrder removes the taker of a failed placement from the book and
// releases whatever it still has reserved: an error return must never leave
// the order resting, or a remainder crossed against untouched liquidity would
// fail every later placement too. Release failures are logged, the placement
// error is already on its way to the caller.
func (e *Engine) evictFailedOrder(ob *OrderBook, order *Order) {
	order.status = OrderStatusCancelled
	if order.queued {
		if err := ob.unlinkOrder(order); err != nil {
			e.log.Warn("failed to unlink evicted order",
				zap.Uint64("order", order.id),
				zap.Error(err))
		}
	}
	if err := e.unlockRemaining(ob, order); err != nil {
		e.log.Warn("failed to release evicted order reservation",
			zap.Uint64("order", order.id),
			zap.Error(err))
	}
}

// checkAutoRepayDebt drops the auto-repay flag when the trader holds no debt
// in the token the order would receive. The lookup is best effort: a failed
// call keeps the flag and only skips the confirmation.
func (e *Engine) checkAutoRepayDebt(ob *OrderBook, order *Order) {
	if !order.autoRepay {
		return
	}
	if e.lending == nil {
		order.autoRepay = false
		return
	}
	received := ob.symbol.baseCurrency
	if order.side == SideSell {
		received = ob.symbol.quoteCurrency
	}
	debt, err := e.lending.GetUserDebt(order.trader, received)
	if err != nil {
		e.log.Warn("debt lookup failed",
			zap.String("trader", order.trader),
			zap.String("token", received),
			zap.Error(err))
		return
	}
	if debt.IsZero() {
		order.autoRepay = false
	}
}

// netOfTakerFee deducts the taker fee from a received amount.
func (e *Engine) netOfTakerFee(received Uint) Uint {
	unit := e.ledger.FeeUnit()
	if unit.IsZero() {
		return received
	}
	fee, _ := received.Mul(e.ledger.FeeTaker()).QuoRem(unit)
	return received.Sub(fee)
}
