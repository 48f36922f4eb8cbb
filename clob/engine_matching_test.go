package clob_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	clob "github.com/scalex-dex/clob-engine/clob"
	mockclob "github.com/scalex-dex/clob-engine/clob/mocks"
)

func placeLimit(t *testing.T, engine *clob.Engine, trader string, side clob.Side, price, quantity uint64) uint64 {
	t.Helper()
	id, err := engine.PlaceOrder(router, symbolID,
		clob.NewUint(price), clob.NewUint(quantity), side,
		trader, clob.TimeInForceGTC, false, false)
	require.NoError(t, err)
	return id
}

func orderStatus(t *testing.T, engine *clob.Engine, id uint64) clob.OrderStatus {
	t.Helper()
	order, err := engine.GetOrder(symbolID, id)
	require.NoError(t, err)
	return order.Status()
}

func TestLimitOrderMatching(t *testing.T) {
	t.Run("partial fill rests the remainder", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 500)
		engine := newTestEngine(t, ledger)

		sellID := placeLimit(t, engine, "bob", clob.SideSell, 10, 30)
		buyID := placeLimit(t, engine, "alice", clob.SideBuy, 10, 50)

		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, sellID))
		require.Equal(t, clob.OrderStatusPartiallyFilled, orderStatus(t, engine, buyID))

		price, volume, err := engine.GetBestPrice(symbolID, clob.SideBuy)
		require.NoError(t, err)
		require.True(t, price.Equals(clob.NewUint(10)))
		require.True(t, volume.Equals(clob.NewUint(20)))

		askPrice, _, err := engine.GetBestPrice(symbolID, clob.SideSell)
		require.NoError(t, err)
		require.True(t, askPrice.IsZero())
	})

	t.Run("walk takes better prices first", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 60)
		ledger.deposit("alice", "USDT", 720)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 12, 30)
		placeLimit(t, engine, "bob", clob.SideSell, 10, 10)
		placeLimit(t, engine, "bob", clob.SideSell, 11, 20)

		buyID := placeLimit(t, engine, "alice", clob.SideBuy, 12, 60)
		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, buyID))

		buy, err := engine.GetOrder(symbolID, buyID)
		require.NoError(t, err)
		// 10*10 + 20*11 + 30*12 paid walking the levels cheapest first.
		require.True(t, buy.FilledQuote().Equals(clob.NewUint(680)))

		// The 720 reserved at the limit price is fully released, price
		// improvement included.
		ledger.availableOf(t, "alice", "USDT", 40)
		ledger.lockedOf(t, "alice", "USDT", 0)
		ledger.availableOf(t, "alice", "WBTC", 60)
	})

	t.Run("fifo within a level", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("carol", "WBTC", 30)
		ledger.deposit("alice", "USDT", 400)
		engine := newTestEngine(t, ledger)

		firstID := placeLimit(t, engine, "bob", clob.SideSell, 10, 30)
		secondID := placeLimit(t, engine, "carol", clob.SideSell, 10, 30)

		placeLimit(t, engine, "alice", clob.SideBuy, 10, 40)

		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, firstID))
		require.Equal(t, clob.OrderStatusPartiallyFilled, orderStatus(t, engine, secondID))

		second, err := engine.GetOrder(symbolID, secondID)
		require.NoError(t, err)
		require.True(t, second.Open().Equals(clob.NewUint(20)))
	})

	t.Run("level sweep ceiling leaves the tail unmatched", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 360)
		engine := clob.NewEngine(clob.Config{Router: router, MaxLevelSweeps: 2}, ledger, nil, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 10)
		placeLimit(t, engine, "bob", clob.SideSell, 11, 10)
		placeLimit(t, engine, "bob", clob.SideSell, 12, 10)

		buyID := placeLimit(t, engine, "alice", clob.SideBuy, 12, 30)

		// Two levels swept, the third stays and the remainder rests.
		buy, err := engine.GetOrder(symbolID, buyID)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusPartiallyFilled, buy.Status())
		require.True(t, buy.Filled().Equals(clob.NewUint(20)))

		askPrice, askVolume, err := engine.GetBestPrice(symbolID, clob.SideSell)
		require.NoError(t, err)
		require.True(t, askPrice.Equals(clob.NewUint(12)))
		require.True(t, askVolume.Equals(clob.NewUint(10)))

		bidPrice, bidVolume, err := engine.GetBestPrice(symbolID, clob.SideBuy)
		require.NoError(t, err)
		require.True(t, bidPrice.Equals(clob.NewUint(12)))
		require.True(t, bidVolume.Equals(clob.NewUint(10)))
	})

	t.Run("crossing remainder past the sweep ceiling is evicted", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 120)
		ledger.deposit("alice", "USDT", 2310)
		engine := newTestEngine(t, ledger)

		// Eleven ask levels, one more than the default walk ceiling.
		for price := uint64(10); price <= 20; price++ {
			placeLimit(t, engine, "bob", clob.SideSell, price, 10)
		}

		// The buy sweeps ten levels and its remainder would rest above the
		// untouched ask at 20: the placement fails and nothing stays behind.
		_, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(21), clob.NewUint(110), clob.SideBuy,
			"alice", clob.TimeInForceGTC, false, false)
		require.ErrorIs(t, err, clob.ErrCrossedBook)

		bidPrice, _, err := engine.GetBestPrice(symbolID, clob.SideBuy)
		require.NoError(t, err)
		require.True(t, bidPrice.IsZero())
		askPrice, askVolume, err := engine.GetBestPrice(symbolID, clob.SideSell)
		require.NoError(t, err)
		require.True(t, askPrice.Equals(clob.NewUint(20)))
		require.True(t, askVolume.Equals(clob.NewUint(10)))

		// 1450 went into the ten fills, the rest of the 2310 reservation is
		// back available.
		ledger.availableOf(t, "alice", "USDT", 860)
		ledger.lockedOf(t, "alice", "USDT", 0)

		// The book keeps working for everyone afterwards.
		sellID := placeLimit(t, engine, "bob", clob.SideSell, 25, 10)
		require.Equal(t, clob.OrderStatusOpen, orderStatus(t, engine, sellID))
		buyID := placeLimit(t, engine, "alice", clob.SideBuy, 20, 10)
		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, buyID))
	})

	t.Run("expired makers are evicted in passing", func(t *testing.T) {
		now := time.Now()
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("carol", "WBTC", 30)
		ledger.deposit("alice", "USDT", 600)
		engine := clob.NewEngine(clob.Config{
			Router:        router,
			ExpiryHorizon: time.Hour,
			Now:           func() time.Time { return now },
		}, ledger, nil, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		staleID := placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		now = now.Add(2 * time.Hour)
		freshID := placeLimit(t, engine, "carol", clob.SideSell, 10, 30)

		buyID := placeLimit(t, engine, "alice", clob.SideBuy, 10, 60)

		// The stale order is skipped and removed, its reservation released.
		require.Equal(t, clob.OrderStatusExpired, orderStatus(t, engine, staleID))
		ledger.availableOf(t, "bob", "WBTC", 30)
		ledger.lockedOf(t, "bob", "WBTC", 0)

		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, freshID))

		buy, err := engine.GetOrder(symbolID, buyID)
		require.NoError(t, err)
		require.True(t, buy.Filled().Equals(clob.NewUint(30)))
		require.Equal(t, clob.OrderStatusPartiallyFilled, buy.Status())
	})
}

func TestTimeInForce(t *testing.T) {
	t.Run("ioc cancels the remainder", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 500)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		buyID, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(50), clob.SideBuy,
			"alice", clob.TimeInForceIOC, false, false)
		require.NoError(t, err)

		buy, err := engine.GetOrder(symbolID, buyID)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusCancelled, buy.Status())
		require.True(t, buy.Filled().Equals(clob.NewUint(30)))

		// Nothing rests on the bid side, the unspent reservation is released.
		bidPrice, _, err := engine.GetBestPrice(symbolID, clob.SideBuy)
		require.NoError(t, err)
		require.True(t, bidPrice.IsZero())
		ledger.availableOf(t, "alice", "USDT", 200)
		ledger.lockedOf(t, "alice", "USDT", 0)
	})

	t.Run("fok fails on insufficient liquidity with no state change", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 500)
		engine := newTestEngine(t, ledger)

		sellID := placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		_, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(50), clob.SideBuy,
			"alice", clob.TimeInForceFOK, false, false)
		require.ErrorIs(t, err, clob.ErrFillOrKillNotFilled)

		sell, err := engine.GetOrder(symbolID, sellID)
		require.NoError(t, err)
		require.True(t, sell.Filled().IsZero())
		ledger.availableOf(t, "alice", "USDT", 500)
		ledger.lockedOf(t, "alice", "USDT", 0)
	})

	t.Run("fok fills fully when liquidity suffices", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("carol", "WBTC", 30)
		ledger.deposit("alice", "USDT", 550)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 30)
		placeLimit(t, engine, "carol", clob.SideSell, 11, 30)

		buyID, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(11), clob.NewUint(50), clob.SideBuy,
			"alice", clob.TimeInForceFOK, false, false)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, buyID))
	})

	t.Run("fok counts makers against the placement clock", func(t *testing.T) {
		// A stepping clock: every engine call advances one second, so the
		// maker sits right at the edge of its expiry when the taker arrives.
		current := time.Unix(1_700_000_000, 0)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 300)
		engine := clob.NewEngine(clob.Config{
			Router:        router,
			ExpiryHorizon: 3 * time.Second,
			Now: func() time.Time {
				current = current.Add(time.Second)
				return current
			},
		}, ledger, nil, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		sellID := placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		// The placement takes a single clock reading: a maker counted by the
		// pre-check is still there for the walk, the order fills in full.
		buyID, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(30), clob.SideBuy,
			"alice", clob.TimeInForceFOK, false, false)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, buyID))
		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, sellID))
		ledger.lockedOf(t, "alice", "USDT", 0)
	})

	t.Run("fok pre-check excludes own liquidity", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("alice", "WBTC", 50)
		ledger.deposit("bob", "WBTC", 50)
		ledger.deposit("alice", "USDT", 600)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "alice", clob.SideSell, 10, 50)
		placeLimit(t, engine, "bob", clob.SideSell, 10, 50)

		// Only bob's 50 count toward the 60 requested.
		_, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(60), clob.SideBuy,
			"alice", clob.TimeInForceFOK, false, false)
		require.ErrorIs(t, err, clob.ErrFillOrKillNotFilled)
	})
}

func TestMarketOrders(t *testing.T) {
	t.Run("rejected on empty opposite side", func(t *testing.T) {
		engine := newTestEngine(t, newTestLedger())

		_, _, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(50), clob.SideBuy, "alice", false, false)
		require.ErrorIs(t, err, clob.ErrNoLiquidity)
	})

	t.Run("liquidity exhaustion expires the remainder", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 1000)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		buyID, received, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(50), clob.SideBuy, "alice", false, false)
		require.NoError(t, err)
		require.True(t, received.Equals(clob.NewUint(30)))

		buy, err := engine.GetOrder(symbolID, buyID)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusExpired, buy.Status())
		require.True(t, buy.Filled().Equals(clob.NewUint(30)))

		// No remainder rests.
		bidPrice, _, err := engine.GetBestPrice(symbolID, clob.SideBuy)
		require.NoError(t, err)
		require.True(t, bidPrice.IsZero())
	})

	t.Run("execution capped by the live balance", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		ledger.deposit("alice", "USDT", 150)
		engine := newTestEngine(t, ledger)

		sellID := placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		_, received, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(30), clob.SideBuy, "alice", false, false)
		require.NoError(t, err)
		require.True(t, received.Equals(clob.NewUint(15)))

		ledger.availableOf(t, "alice", "USDT", 0)
		ledger.availableOf(t, "alice", "WBTC", 15)

		sell, err := engine.GetOrder(symbolID, sellID)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusPartiallyFilled, sell.Status())
		require.True(t, sell.Open().Equals(clob.NewUint(15)))
	})

	t.Run("zero affordable quantity stops matching", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 30)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 30)

		buyID, received, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(30), clob.SideBuy, "alice", false, false)
		require.NoError(t, err)
		require.True(t, received.IsZero())
		require.Equal(t, clob.OrderStatusExpired, orderStatus(t, engine, buyID))
	})

	t.Run("market sell settles against locked quote", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "USDT", 500)
		ledger.deposit("alice", "WBTC", 50)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideBuy, 10, 50)

		_, received, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(50), clob.SideSell, "alice", false, false)
		require.NoError(t, err)
		require.True(t, received.Equals(clob.NewUint(500)))

		ledger.availableOf(t, "alice", "USDT", 500)
		ledger.availableOf(t, "bob", "WBTC", 50)
		ledger.lockedOf(t, "bob", "USDT", 0)
	})

	t.Run("taker fee deducted from the returned amount", func(t *testing.T) {
		// Taker fee 10%.
		ledger := newTestLedger().withFees(0, 1000)
		ledger.deposit("bob", "WBTC", 50)
		ledger.deposit("alice", "USDT", 500)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 50)

		_, received, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(50), clob.SideBuy, "alice", false, false)
		require.NoError(t, err)
		require.True(t, received.Equals(clob.NewUint(45)))
		ledger.availableOf(t, "alice", "WBTC", 45)
	})
}

func TestQuoteFundedMarketBuy(t *testing.T) {
	t.Run("spends the budget across levels", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 10)
		ledger.deposit("carol", "WBTC", 20)
		ledger.deposit("alice", "USDT", 300)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 10)
		carolID := placeLimit(t, engine, "carol", clob.SideSell, 20, 20)

		buyID, received, err := engine.PlaceMarketOrderWithQuote(router, symbolID,
			clob.NewUint(300), "alice", false, false)
		require.NoError(t, err)
		// 10 base at 10 (100 quote), then 10 base at 20 (200 quote).
		require.True(t, received.Equals(clob.NewUint(20)))

		buy, err := engine.GetOrder(symbolID, buyID)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusFilled, buy.Status())
		require.True(t, buy.FilledQuote().Equals(clob.NewUint(300)))

		carol, err := engine.GetOrder(symbolID, carolID)
		require.NoError(t, err)
		require.True(t, carol.Open().Equals(clob.NewUint(10)))

		ledger.availableOf(t, "alice", "USDT", 0)
		ledger.availableOf(t, "alice", "WBTC", 20)
	})

	t.Run("budget below one base unit expires unfilled", func(t *testing.T) {
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 10)
		ledger.deposit("alice", "USDT", 5)
		engine := newTestEngine(t, ledger)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 10)

		buyID, received, err := engine.PlaceMarketOrderWithQuote(router, symbolID,
			clob.NewUint(5), "alice", false, false)
		require.NoError(t, err)
		require.True(t, received.IsZero())
		require.Equal(t, clob.OrderStatusExpired, orderStatus(t, engine, buyID))
	})

	t.Run("validation", func(t *testing.T) {
		engine := newTestEngine(t, newTestLedger())

		_, _, err := engine.PlaceMarketOrderWithQuote(router, symbolID,
			clob.NewZeroUint(), "alice", false, false)
		require.ErrorIs(t, err, clob.ErrInvalidOrderQuantity)

		_, _, err = engine.PlaceMarketOrderWithQuote(router, symbolID,
			clob.NewUint(100), "alice", false, false)
		require.ErrorIs(t, err, clob.ErrNoLiquidity)
	})
}

func TestOracleIntegration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Minimum trade amount 100: only fills of at least 100 are printed.
	marketWithThreshold := func() clob.Symbol {
		return clob.NewSymbol(symbolID, "WBTC/USDT", "WBTC", "USDT",
			0, clob.NewUint(1), clob.NewUint(1), clob.NewUint(100))
	}

	t.Run("qualifying fills are printed, small fills are not", func(t *testing.T) {
		oracle := mockclob.NewMockOracleGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 150)
		ledger.deposit("alice", "USDT", 2000)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, nil, oracle)
		_, err := engine.AddOrderBook(marketWithThreshold())
		require.NoError(t, err)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 150)

		// Full 100 executed in one fill: exactly one print.
		oracle.EXPECT().UpdatePriceFromTrade("WBTC", clob.NewUint(10), clob.NewUint(100)).Return(nil)
		placeLimit(t, engine, "alice", clob.SideBuy, 10, 100)

		// Only 50 remain on the maker: the fill is below threshold, no print.
		placeLimit(t, engine, "alice", clob.SideBuy, 10, 100)
	})

	t.Run("oracle failure on a qualifying fill is fatal", func(t *testing.T) {
		oracle := mockclob.NewMockOracleGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 100)
		ledger.deposit("alice", "USDT", 1000)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, nil, oracle)
		_, err := engine.AddOrderBook(marketWithThreshold())
		require.NoError(t, err)

		placeLimit(t, engine, "bob", clob.SideSell, 10, 100)

		oracle.EXPECT().UpdatePriceFromTrade("WBTC", clob.NewUint(10), clob.NewUint(100)).
			Return(errors.New("stale oracle"))
		_, err = engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(100), clob.SideBuy,
			"alice", clob.TimeInForceGTC, false, false)
		require.Error(t, err)
	})
}

func TestLendingIntegration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("placement asks for a top-up of the locking currency", func(t *testing.T) {
		lending := mockclob.NewMockLendingGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("alice", "USDT", 1000)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, lending, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		lending.EXPECT().ValidateAndBorrowIfNeeded("alice", "USDT", clob.NewUint(1000), true).
			Return(clob.NewZeroUint(), nil)

		_, err = engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(100), clob.SideBuy,
			"alice", clob.TimeInForceGTC, false, true)
		require.NoError(t, err)
	})

	t.Run("borrow failure is best effort when the lock still succeeds", func(t *testing.T) {
		lending := mockclob.NewMockLendingGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("alice", "USDT", 1000)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, lending, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		lending.EXPECT().ValidateAndBorrowIfNeeded("alice", "USDT", clob.NewUint(1000), true).
			Return(clob.NewZeroUint(), errors.New("pool drained"))

		_, err = engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(100), clob.SideBuy,
			"alice", clob.TimeInForceGTC, false, true)
		require.NoError(t, err)
	})

	t.Run("auto repay routes fill proceeds into debt", func(t *testing.T) {
		lending := mockclob.NewMockLendingGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 50)
		ledger.deposit("alice", "USDT", 500)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, lending, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		lending.EXPECT().ValidateAndBorrowIfNeeded("bob", "WBTC", clob.NewUint(50), false).
			Return(clob.NewZeroUint(), nil)
		placeLimit(t, engine, "bob", clob.SideSell, 10, 50)

		// A buyer receives base: the debt check and the repayment are both
		// denominated in the base token.
		lending.EXPECT().GetUserDebt("alice", "WBTC").Return(clob.NewUint(1000), nil)
		lending.EXPECT().ValidateAndBorrowIfNeeded("alice", "USDT", clob.NewUint(500), false).
			Return(clob.NewZeroUint(), nil)
		lending.EXPECT().RepayFromSyntheticBalance("alice", "WBTC", "WBTC", clob.NewUint(50)).
			Return(nil)

		_, err = engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(50), clob.SideBuy,
			"alice", clob.TimeInForceGTC, true, false)
		require.NoError(t, err)
	})

	t.Run("auto repay is dropped when there is no debt", func(t *testing.T) {
		lending := mockclob.NewMockLendingGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 50)
		ledger.deposit("alice", "USDT", 500)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, lending, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		lending.EXPECT().ValidateAndBorrowIfNeeded(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(clob.NewZeroUint(), nil).AnyTimes()
		placeLimit(t, engine, "bob", clob.SideSell, 10, 50)

		lending.EXPECT().GetUserDebt("alice", "WBTC").Return(clob.NewZeroUint(), nil)

		_, err = engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(50), clob.SideBuy,
			"alice", clob.TimeInForceGTC, true, false)
		require.NoError(t, err)
	})

	t.Run("repay failure never reverts the match", func(t *testing.T) {
		lending := mockclob.NewMockLendingGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 50)
		ledger.deposit("alice", "USDT", 500)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, lending, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		lending.EXPECT().ValidateAndBorrowIfNeeded(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(clob.NewZeroUint(), nil).AnyTimes()
		placeLimit(t, engine, "bob", clob.SideSell, 10, 50)

		lending.EXPECT().GetUserDebt("alice", "WBTC").Return(clob.NewUint(1000), nil)
		lending.EXPECT().RepayFromSyntheticBalance("alice", "WBTC", "WBTC", clob.NewUint(50)).
			Return(errors.New("repay rejected"))

		buyID, err := engine.PlaceOrder(router, symbolID,
			clob.NewUint(10), clob.NewUint(50), clob.SideBuy,
			"alice", clob.TimeInForceGTC, true, false)
		require.NoError(t, err)
		require.Equal(t, clob.OrderStatusFilled, orderStatus(t, engine, buyID))
	})

	t.Run("market orders validate collateral and borrow at match time", func(t *testing.T) {
		lending := mockclob.NewMockLendingGateway(ctrl)
		ledger := newTestLedger()
		ledger.deposit("bob", "WBTC", 50)
		ledger.deposit("alice", "USDT", 500)
		engine := clob.NewEngine(clob.Config{Router: router}, ledger, lending, nil)
		_, err := engine.AddOrderBook(testMarket())
		require.NoError(t, err)

		lending.EXPECT().ValidateAndBorrowIfNeeded("bob", "WBTC", clob.NewUint(50), false).
			Return(clob.NewZeroUint(), nil)
		placeLimit(t, engine, "bob", clob.SideSell, 10, 50)

		lending.EXPECT().ValidateBalanceOnly("alice", "USDT", clob.NewUint(500)).Return(nil)
		lending.EXPECT().ValidateAndBorrowIfNeeded("alice", "USDT", clob.NewUint(500), true).
			Return(clob.NewZeroUint(), nil)

		_, received, err := engine.PlaceMarketOrder(router, symbolID,
			clob.NewUint(50), clob.SideBuy, "alice", false, true)
		require.NoError(t, err)
		require.True(t, received.Equals(clob.NewUint(50)))
	})
}
