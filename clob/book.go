package clob

import (
	"github.com/tidwall/btree"
	"github.com/tidwall/hashmap"
)

// LevelInfo is a snapshot of a single price level.
type LevelInfo struct {
	Price  Uint
	Volume Uint
	Orders int
}

// OrderBook stores buy and sell orders of a single symbol in price level
// order. Each side keeps its non-empty price levels in a B-tree ordered so
// that the best level (highest bid, lowest ask) is always the tree minimum.
// Orders themselves live in a dense map keyed by order identifier and are
// linked into their level's queue through intrusive prev/next fields.
// NOTE: Not thread-safe, the engine serializes all access.
type OrderBook struct {
	symbol Symbol

	// Bid/Ask price levels. A price is present in a tree iff its queue holds
	// at least one order.
	bids *btree.BTreeG[*OrderQueue]
	asks *btree.BTreeG[*OrderQueue]

	// Orders storage is internal for each order book. Terminal orders are
	// kept for audit and lookup, only resting orders are queue-linked.
	orders *hashmap.Map[uint64, *Order]
}

// NewOrderBook creates and returns a new OrderBook instance.
func NewOrderBook(symbol Symbol) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids: btree.NewBTreeG[*OrderQueue](func(a, b *OrderQueue) bool {
			return a.price.GreaterThan(b.price)
		}),
		asks: btree.NewBTreeG[*OrderQueue](func(a, b *OrderQueue) bool {
			return a.price.LessThan(b.price)
		}),
		orders: hashmap.New[uint64, *Order](defaultReservedOrderSlots),
	}
}

// Symbol returns the order book symbol.
func (ob *OrderBook) Symbol() Symbol {
	return ob.symbol
}

// Size returns the total amount of orders stored in the order book,
// including terminal ones retained for audit.
func (ob *OrderBook) Size() int {
	return ob.orders.Len()
}

// Order returns the order with the given id or nil.
func (ob *OrderBook) Order(id uint64) *Order {
	if order, ok := ob.orders.Get(id); ok {
		return order
	}
	return nil
}

func (ob *OrderBook) tree(side Side) *btree.BTreeG[*OrderQueue] {
	if side == SideBuy {
		return ob.bids
	}
	return ob.asks
}

// Best returns the best price level of the given side or nil: the highest
// bid or the lowest ask.
func (ob *OrderBook) Best(side Side) *OrderQueue {
	if q, ok := ob.tree(side).Min(); ok {
		return q
	}
	return nil
}

// Level returns the price level of the given side and price or nil.
func (ob *OrderBook) Level(side Side, price Uint) *OrderQueue {
	if q, ok := ob.tree(side).Get(&OrderQueue{price: price}); ok {
		return q
	}
	return nil
}

// NextLevel returns the first price level beyond the given price in the
// side's walking direction (downwards for bids, upwards for asks), or nil.
func (ob *OrderBook) NextLevel(side Side, price Uint) *OrderQueue {
	var next *OrderQueue
	ob.tree(side).Ascend(&OrderQueue{price: price}, func(q *OrderQueue) bool {
		if q.price.Equals(price) {
			return true
		}
		next = q
		return false
	})
	return next
}

// TopLevels returns up to count levels of the given side starting from the
// best one, or from the level strictly beyond fromPrice when fromPrice is
// not zero.
func (ob *OrderBook) TopLevels(side Side, fromPrice Uint, count int) []LevelInfo {
	if count <= 0 {
		return nil
	}
	levels := make([]LevelInfo, 0, count)
	iter := func(q *OrderQueue) bool {
		if !fromPrice.IsZero() && q.price.Equals(fromPrice) {
			return true
		}
		levels = append(levels, LevelInfo{Price: q.price, Volume: q.volume, Orders: q.orders})
		return len(levels) < count
	}
	if fromPrice.IsZero() {
		ob.tree(side).Scan(iter)
	} else {
		ob.tree(side).Ascend(&OrderQueue{price: fromPrice}, iter)
	}
	return levels
}

////////////////////////////////////////////////////////////////
// Orders management
////////////////////////////////////////////////////////////////

// enqueueOrder appends the order to the tail of its (side, price) queue,
// creating and indexing the price level when absent.
func (ob *OrderBook) enqueueOrder(order *Order) *OrderQueue {
	tree := ob.tree(order.side)

	q := ob.Level(order.side, order.price)
	if q == nil {
		q = &OrderQueue{side: order.side, price: order.price}
		tree.Set(q)
	}

	if q.tail != 0 {
		tailOrder := ob.Order(q.tail)
		tailOrder.next = order.id
		order.prev = q.tail
	} else {
		q.head = order.id
	}
	q.tail = order.id
	order.next = 0
	order.queued = true

	q.orders++
	q.volume = q.volume.Add(order.Open())

	return q
}

// unlinkOrder removes the order from its queue in O(1) by relinking its
// neighbors, subtracts its remaining open quantity from the queue volume and
// prunes the price level from the index when the queue drains to zero
// orders. Pruning in the same step keeps best-price queries correct.
func (ob *OrderBook) unlinkOrder(order *Order) error {
	if !order.queued {
		return nil
	}

	q := ob.Level(order.side, order.price)
	if q == nil {
		return ErrPriceLevelNotFound
	}

	if order.prev != 0 {
		ob.Order(order.prev).next = order.next
	} else {
		q.head = order.next
	}
	if order.next != 0 {
		ob.Order(order.next).prev = order.prev
	} else {
		q.tail = order.prev
	}
	order.prev, order.next = 0, 0
	order.queued = false

	q.orders--
	q.volume = q.volume.Sub(order.Open())

	if q.orders == 0 {
		ob.tree(order.side).Delete(q)
	}

	return nil
}

// reduceVolume subtracts an executed quantity from the queue's open volume.
// The order count is unchanged, fills that complete an order go through
// unlinkOrder afterwards.
func (ob *OrderBook) reduceVolume(q *OrderQueue, quantity Uint) {
	q.volume = q.volume.Sub(quantity)
}
