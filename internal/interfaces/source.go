package interfaces

import (
	"context"

	"insider-flow/internal/types"
)

// TradeSource is implemented by every provider adapter. Fetch returns zero
// or more raw events for the given ticker universe within the window, or an
// error; a failing source never aborts a pipeline run.
type TradeSource interface {
	Name() string
	Fetch(ctx context.Context, universe []string, window types.LookbackWindow) ([]types.RawTradeEvent, error)
}
