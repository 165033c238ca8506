// Package capitolwatch adapts congressional stock-trade disclosure feeds
// (senate-stock-watcher style aggregate JSON) into raw trade events.
package capitolwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"insider-flow/internal/types"
)

const sourceName = "Capitol Watch"

// Client fetches the aggregate transaction feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a congressional disclosure client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://senate-stock-watcher-data.s3-us-west-2.amazonaws.com"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return sourceName }

type feedTransaction struct {
	TransactionDate string `json:"transaction_date"`
	Ticker          string `json:"ticker"`
	AssetName       string `json:"asset_description"`
	Type            string `json:"type"` // purchase, sale_full, sale_partial, exchange
	Amount          string `json:"amount"`
	Senator         string `json:"senator"`
}

// Fetch downloads the aggregate feed and keeps transactions for tickers in
// the universe that fall inside the window. The feed covers the whole
// market, so both filters matter.
func (c *Client) Fetch(ctx context.Context, universe []string, window types.LookbackWindow) ([]types.RawTradeEvent, error) {
	url := c.baseURL + "/aggregate/all_transactions.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch disclosure feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("disclosure feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var txns []feedTransaction
	if err := json.Unmarshal(body, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode disclosure feed: %w", err)
	}

	wanted := make(map[string]bool, len(universe))
	for _, t := range universe {
		wanted[strings.ToUpper(t)] = true
	}

	var events []types.RawTradeEvent
	for _, tx := range txns {
		ticker := strings.ToUpper(strings.TrimSpace(tx.Ticker))
		if ticker == "" || ticker == "--" {
			continue
		}
		if len(wanted) > 0 && !wanted[ticker] {
			continue
		}
		if d, err := time.Parse("01/02/2006", tx.TransactionDate); err == nil && !window.Contains(d) {
			continue
		}

		events = append(events, types.RawTradeEvent{
			Ticker:          ticker,
			CompanyName:     tx.AssetName,
			TraderName:      tx.Senator,
			RoleText:        "U.S. Senator",
			TransactionText: transactionText(tx.Type),
			Value:           tx.Amount,
			FiledDate:       tx.TransactionDate,
			Source:          sourceName,
		})
	}
	return events, nil
}

// transactionText maps feed type tags to readable descriptions the
// classifier's token search understands.
func transactionText(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "purchase":
		return "Purchase"
	case "sale_full":
		return "Sale (Full)"
	case "sale_partial":
		return "Sale (Partial)"
	default:
		return t
	}
}
