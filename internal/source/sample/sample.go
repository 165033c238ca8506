// Package sample provides deterministic built-in trade events. It backs the
// SAMPLE data source mode and is the last-resort fallback when every live
// provider is blocked or rate limited.
package sample

import (
	"context"

	"insider-flow/internal/types"
)

const sourceName = "Sample Data"

// Source emits a fixed set of events dated relative to the window.
type Source struct{}

// NewSource creates the sample source.
func NewSource() *Source { return &Source{} }

func (s *Source) Name() string { return sourceName }

// Fetch returns the built-in events. Dates track the window end so the
// records always land inside the lookback window.
func (s *Source) Fetch(_ context.Context, _ []string, window types.LookbackWindow) ([]types.RawTradeEvent, error) {
	end := window.End.Format("2006-01-02")
	weekAgo := window.End.AddDate(0, 0, -7).Format("2006-01-02")

	return []types.RawTradeEvent{
		{
			Ticker:          "NVDA",
			CompanyName:     "NVIDIA Corporation",
			TraderName:      "Jensen Huang",
			RoleText:        "CEO",
			TransactionCode: "P",
			Shares:          "50,000",
			Value:           "$8.5M",
			FiledDate:       end,
			Source:          sourceName,
		},
		{
			Ticker:          "TSLA",
			CompanyName:     "Tesla Inc",
			TraderName:      "Elon Musk",
			RoleText:        "CEO",
			TransactionCode: "S",
			Shares:          "100,000",
			Value:           "$25.3M",
			FiledDate:       end,
			Source:          sourceName,
		},
		{
			Ticker:          "MSFT",
			CompanyName:     "Microsoft Corporation",
			TraderName:      "Satya Nadella",
			RoleText:        "CEO",
			TransactionText: "buy",
			Shares:          "25,000",
			Value:           "$9.2M",
			FiledDate:       weekAgo,
			Source:          sourceName,
		},
		{
			Ticker:          "AAPL",
			CompanyName:     "Apple Inc",
			TraderName:      "Jane Smith",
			RoleText:        "U.S. Senator",
			TransactionText: "Purchase",
			Value:           "$15,001 - $50,000",
			FiledDate:       weekAgo,
			Source:          sourceName,
		},
	}, nil
}
