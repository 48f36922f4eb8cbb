package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	clob "github.com/scalex-dex/clob-engine/clob"
)

const (
	symbolID = uint32(1)
	router   = "router"

	traders     = 8
	totalOrders = 100_000

	// Maker fee 10 bps, taker fee 30 bps.
	feeMaker = 10
	feeTaker = 30
)

var _ clob.LedgerGateway = &memLedger{}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ledger := newMemLedger(feeMaker, feeTaker)
	engine := clob.NewEngine(clob.Config{
		Router: router,
		Logger: logger,
	}, ledger, nil, nil)

	symbol := clob.NewSymbol(symbolID, "WBTC/USDT", "WBTC", "USDT",
		8,                        // base decimals
		clob.NewUint(1),          // price tick
		clob.NewUint(10),         // min order notional
		clob.NewUint(100_000),    // min trade amount, 0.001 WBTC
	)
	if _, err := engine.AddOrderBook(symbol); err != nil {
		logger.Fatal("failed to add order book", zap.Error(err))
	}

	names := make([]string, traders)
	for i := range names {
		names[i] = fmt.Sprintf("trader-%d", i)
		ledger.Deposit(names[i], "WBTC", clob.NewUint(1_000_000_000_000)) // 10k WBTC
		ledger.Deposit(names[i], "USDT", clob.NewUint(1_000_000_000_000))
	}

	rng := rand.New(rand.NewSource(42))

	var placed, matchedAway, cancelled, rejected int
	var open []uint64

	timeStart := time.Now()
	for i := 0; i < totalOrders; i++ {
		trader := names[rng.Intn(len(names))]

		// Mostly limit orders around a drifting mid price, a few market
		// orders and cancellations mixed in.
		switch action := rng.Intn(10); {
		case action < 7:
			side := clob.SideBuy
			price := uint64(95_000 + 100*rng.Intn(10))
			if rng.Intn(2) == 0 {
				side = clob.SideSell
				price = uint64(95_100 + 100*rng.Intn(10))
			}
			quantity := uint64(1_000_000 * (1 + rng.Intn(100)))

			id, err := engine.PlaceOrder(router, symbolID,
				clob.NewUint(price), clob.NewUint(quantity), side,
				trader, clob.TimeInForceGTC, false, false)
			if err != nil {
				rejected++
				continue
			}
			placed++
			open = append(open, id)

		case action < 9:
			quantity := uint64(1_000_000 * (1 + rng.Intn(50)))
			side := clob.SideBuy
			if rng.Intn(2) == 0 {
				side = clob.SideSell
			}
			_, _, err := engine.PlaceMarketOrder(router, symbolID,
				clob.NewUint(quantity), side, trader, false, false)
			if err != nil {
				rejected++
				continue
			}
			placed++

		default:
			if len(open) == 0 {
				continue
			}
			idx := rng.Intn(len(open))
			id := open[idx]
			open[idx] = open[len(open)-1]
			open = open[:len(open)-1]

			order, err := engine.GetOrder(symbolID, id)
			if err != nil {
				continue
			}
			err = engine.CancelOrder(router, symbolID, id, order.Trader())
			switch {
			case err == nil:
				cancelled++
			case errors.Is(err, clob.ErrOrderNotActive):
				matchedAway++
			default:
				logger.Warn("cancel failed", zap.Uint64("order_id", id), zap.Error(err))
			}
		}
	}
	elapsed := time.Since(timeStart)

	bidPrice, bidVolume, _ := engine.GetBestPrice(symbolID, clob.SideBuy)
	askPrice, askVolume, _ := engine.GetBestPrice(symbolID, clob.SideSell)

	logger.Info("simulation finished",
		zap.Int("placed", placed),
		zap.Int("cancelled", cancelled),
		zap.Int("matched_before_cancel", matchedAway),
		zap.Int("rejected", rejected),
		zap.Duration("elapsed", elapsed),
		zap.Float64("orders_per_sec", float64(totalOrders)/elapsed.Seconds()),
	)
	logger.Info("final book",
		zap.String("best_bid", bidPrice.String()),
		zap.String("bid_volume", bidVolume.String()),
		zap.String("best_ask", askPrice.String()),
		zap.String("ask_volume", askVolume.String()),
	)
	for currency, fee := range ledger.collectedFees {
		logger.Info("fees collected", zap.String("currency", currency), zap.String("amount", fee.String()))
	}

	depth, err := engine.GetNextBestPrices(symbolID, clob.SideSell, clob.NewZeroUint(), 5)
	if err == nil {
		for _, level := range depth {
			fmt.Printf("ask %s  volume %s  orders %d\n", level.Price, level.Volume, level.Orders)
		}
	}
}
