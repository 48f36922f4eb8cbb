package clob

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSymbol() Symbol {
	return NewSymbol(10, "WBTC/USDT", "WBTC", "USDT",
		0,           // base decimals
		NewUint(1),  // price tick
		NewUint(1),  // min order notional
		NewUint(1),  // min trade amount
	)
}

func testOrder(id uint64, trader string, side Side, price, quantity uint64) *Order {
	return &Order{
		id:          id,
		trader:      trader,
		orderType:   OrderTypeLimit,
		side:        side,
		timeInForce: TimeInForceGTC,
		status:      OrderStatusOpen,
		price:       NewUint(price),
		quantity:    NewUint(quantity),
		expiry:      time.Now().Add(time.Hour),
	}
}

func TestOrderBookQueueLinkage(t *testing.T) {
	ob := NewOrderBook(testSymbol())

	orders := []*Order{
		testOrder(1, "alice", SideSell, 10, 5),
		testOrder(2, "bob", SideSell, 10, 7),
		testOrder(3, "carol", SideSell, 10, 3),
	}
	for _, o := range orders {
		ob.orders.Set(o.id, o)
		ob.enqueueOrder(o)
	}

	q := ob.Level(SideSell, NewUint(10))
	require.NotNil(t, q)
	require.Equal(t, 3, q.Orders())
	require.True(t, q.Volume().Equals(NewUint(15)))
	require.Equal(t, uint64(1), q.head)
	require.Equal(t, uint64(3), q.tail)

	// Unlink from the middle: neighbors must be relinked directly.
	require.NoError(t, ob.unlinkOrder(orders[1]))
	require.Equal(t, uint64(3), orders[0].next)
	require.Equal(t, uint64(1), orders[2].prev)
	require.Equal(t, 2, q.Orders())
	require.True(t, q.Volume().Equals(NewUint(8)))

	// Unlinking twice is a no-op.
	require.NoError(t, ob.unlinkOrder(orders[1]))
	require.Equal(t, 2, q.Orders())

	// Unlink head, then tail: level must be pruned from the index.
	require.NoError(t, ob.unlinkOrder(orders[0]))
	require.Equal(t, uint64(3), q.head)
	require.NoError(t, ob.unlinkOrder(orders[2]))
	require.Nil(t, ob.Level(SideSell, NewUint(10)))
	require.Nil(t, ob.Best(SideSell))
}

func TestOrderBookBestOrdering(t *testing.T) {
	ob := NewOrderBook(testSymbol())

	for i, price := range []uint64{20, 10, 30} {
		bid := testOrder(uint64(i+1), "alice", SideBuy, price, 1)
		ob.orders.Set(bid.id, bid)
		ob.enqueueOrder(bid)

		ask := testOrder(uint64(i+101), "bob", SideSell, price+100, 1)
		ob.orders.Set(ask.id, ask)
		ob.enqueueOrder(ask)
	}

	require.True(t, ob.Best(SideBuy).Price().Equals(NewUint(30)))
	require.True(t, ob.Best(SideSell).Price().Equals(NewUint(110)))

	// Walking is strictly toward worse prices on both sides.
	next := ob.NextLevel(SideBuy, NewUint(30))
	require.True(t, next.Price().Equals(NewUint(20)))
	next = ob.NextLevel(SideBuy, next.Price())
	require.True(t, next.Price().Equals(NewUint(10)))
	require.Nil(t, ob.NextLevel(SideBuy, NewUint(10)))

	next = ob.NextLevel(SideSell, NewUint(110))
	require.True(t, next.Price().Equals(NewUint(120)))
}

func TestOrderBookTopLevels(t *testing.T) {
	ob := NewOrderBook(testSymbol())

	for i, price := range []uint64{10, 20, 30, 40} {
		o := testOrder(uint64(i+1), "alice", SideSell, price, uint64(i+1))
		ob.orders.Set(o.id, o)
		ob.enqueueOrder(o)
	}

	levels := ob.TopLevels(SideSell, NewZeroUint(), 3)
	require.Len(t, levels, 3)
	require.True(t, levels[0].Price.Equals(NewUint(10)))
	require.True(t, levels[2].Price.Equals(NewUint(30)))
	require.True(t, levels[1].Volume.Equals(NewUint(2)))

	// Paging resumes strictly beyond the cursor price.
	levels = ob.TopLevels(SideSell, NewUint(30), 3)
	require.Len(t, levels, 1)
	require.True(t, levels[0].Price.Equals(NewUint(40)))

	require.Empty(t, ob.TopLevels(SideBuy, NewZeroUint(), 3))
	require.Nil(t, ob.TopLevels(SideSell, NewZeroUint(), 0))
}

func TestOrderOpenAndExpiry(t *testing.T) {
	o := testOrder(1, "alice", SideBuy, 10, 100)
	require.True(t, o.Open().Equals(NewUint(100)))

	o.filled = NewUint(40)
	require.True(t, o.Open().Equals(NewUint(60)))

	o.filled = NewUint(100)
	require.True(t, o.Open().IsZero())

	now := time.Now()
	o.expiry = now
	require.True(t, o.IsExpired(now))
	require.False(t, o.IsExpired(now.Add(-time.Second)))
}
