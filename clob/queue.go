package clob

// OrderQueue is the FIFO queue of resting orders at a single (side, price)
// pair. Orders are chained through their intrusive prev/next identifier
// fields, the queue itself only tracks the ends, the order count and the
// aggregate open volume.
//
// Invariant: orders == 0 <=> head == tail == 0 <=> volume == 0. A drained
// queue must be pruned from the price-level index in the same logical step,
// see OrderBook.
type OrderQueue struct {
	side  Side
	price Uint

	head uint64
	tail uint64

	orders int
	volume Uint // open (quantity - filled) volume summed over resident orders
}

// Side returns the book side of the queue.
func (q *OrderQueue) Side() Side {
	return q.side
}

// Price returns the price level of the queue.
func (q *OrderQueue) Price() Uint {
	return q.price
}

// Orders returns the amount of orders in the queue.
func (q *OrderQueue) Orders() int {
	return q.orders
}

// Volume returns the total open volume of the queue.
func (q *OrderQueue) Volume() Uint {
	return q.volume
}

// IsEmpty returns true if the queue holds no orders.
func (q *OrderQueue) IsEmpty() bool {
	return q.orders == 0
}
