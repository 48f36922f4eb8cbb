package clob

import "time"

const (
	// defaultReservedOrderBookSlots specifies the initial size of the array
	// storing order books by symbol id.
	defaultReservedOrderBookSlots = 64

	// defaultReservedOrderSlots specifies the initial size of the hashmap
	// storing orders by order id separately for each order book.
	defaultReservedOrderSlots = 1024

	// defaultMaxLevelSweeps bounds how many price levels a single matching
	// call may walk. Exceeding it stops matching with whatever was filled so
	// far, a partial fill is always a valid outcome.
	defaultMaxLevelSweeps = 10

	// defaultExpiryHorizon is added to the placement time to obtain the order
	// expiry when the engine config does not override it.
	defaultExpiryHorizon = 30 * 24 * time.Hour

	// maxOrderID keeps order identifiers within a 48-bit range.
	maxOrderID = 1<<48 - 1
)
