package interfaces

import (
	"context"
	"time"

	"insider-flow/internal/types"
)

// PriceHistory resolves daily closes for one ticker. An empty series with a
// nil error means the provider had no data for the range.
type PriceHistory interface {
	History(ctx context.Context, ticker string, start, end time.Time) (types.PriceSeries, error)
}
