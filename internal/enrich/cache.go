package enrich

import (
	"sync"

	"insider-flow/internal/types"
)

// Cache is a per-run, read-through cache of price series keyed by ticker.
// Empty series are cached too, so a ticker with no data still costs at most
// one provider call per run. Create one per pipeline run; nothing leaks
// across runs.
type Cache struct {
	mu     sync.Mutex
	series map[string]types.PriceSeries
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{series: make(map[string]types.PriceSeries)}
}

// GetOrFetch returns the cached series for ticker, populating it with fetch
// on first use. The fetch result is stored even on error (as an empty
// series), preserving the one-fetch-per-ticker guarantee.
func (c *Cache) GetOrFetch(ticker string, fetch func() (types.PriceSeries, error)) (types.PriceSeries, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.series[ticker]; ok {
		return s, nil
	}

	s, err := fetch()
	if err != nil {
		s = nil
	}
	c.series[ticker] = s
	return s, err
}

// Len reports how many tickers have been resolved this run.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.series)
}
