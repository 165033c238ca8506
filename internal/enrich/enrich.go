// Package enrich resolves prices around a trade: the close on or after the
// trade date, the latest known close, and the percentage move between them.
package enrich

import (
	"context"
	"math"
	"time"

	"insider-flow/internal/interfaces"
	"insider-flow/internal/logger"
	"insider-flow/internal/types"
)

// Enricher looks up price history through a shared per-run cache. It never
// returns an error: any lookup failure degrades to nil price fields so a
// flaky price provider cannot abort a run.
type Enricher struct {
	history interfaces.PriceHistory
	cache   *Cache
	window  types.LookbackWindow
}

// New creates an enricher bound to one run's cache and lookback window.
func New(history interfaces.PriceHistory, cache *Cache, window types.LookbackWindow) *Enricher {
	return &Enricher{history: history, cache: cache, window: window}
}

// Enrich resolves price fields for one trade. Each return value is nil when
// unresolvable. PctChange is derived only when both prices are present and
// the trade-date price is positive.
func (e *Enricher) Enrich(ctx context.Context, ticker string, tradeDate time.Time) (priceAtTrade, currentPrice, pctChange *float64) {
	series, err := e.cache.GetOrFetch(ticker, func() (types.PriceSeries, error) {
		return e.history.History(ctx, ticker, e.window.Start, e.window.End)
	})
	if err != nil {
		logger.Warn(ctx, "Price history lookup failed", "ticker", ticker, "error", err)
		return nil, nil, nil
	}

	if cur, ok := series.LastClose(); ok {
		currentPrice = &cur
	}
	if at, ok := series.FirstCloseOnOrAfter(tradeDate); ok {
		priceAtTrade = &at
	}

	if priceAtTrade != nil && currentPrice != nil && *priceAtTrade > 0 {
		pct := round2(100 * (*currentPrice - *priceAtTrade) / *priceAtTrade)
		pctChange = &pct
	}
	return priceAtTrade, currentPrice, pctChange
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
