// Package yahoo scrapes the Yahoo Finance insider-transactions table for
// each ticker in the universe.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"insider-flow/internal/types"
)

const sourceName = "Yahoo Finance"

// Client scrapes insider transactions per ticker.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxPerTicker int
	headers      map[string]string
}

// NewClient creates a Yahoo scraper. maxPerTicker bounds how many rows are
// taken per symbol.
func NewClient(baseURL string, timeout time.Duration, maxPerTicker int) *Client {
	if baseURL == "" {
		baseURL = "https://finance.yahoo.com"
	}
	if maxPerTicker <= 0 {
		maxPerTicker = 5
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		maxPerTicker: maxPerTicker,
		headers: map[string]string{
			"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			"Accept":          "text/html,application/xhtml+xml",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

func (c *Client) Name() string { return sourceName }

// Fetch scrapes the insider-transactions page of every ticker in the
// universe. A ticker whose page cannot be fetched or parsed contributes
// nothing; the method fails only when no ticker yields anything and at
// least one request errored.
func (c *Client) Fetch(ctx context.Context, universe []string, window types.LookbackWindow) ([]types.RawTradeEvent, error) {
	var events []types.RawTradeEvent
	var lastErr error

	for _, ticker := range universe {
		if err := ctx.Err(); err != nil {
			return events, err
		}

		got, err := c.fetchTicker(ctx, ticker, window)
		if err != nil {
			lastErr = err
			continue
		}
		events = append(events, got...)
	}

	if len(events) == 0 && lastErr != nil {
		return nil, fmt.Errorf("no insider transactions scraped: %w", lastErr)
	}
	return events, nil
}

func (c *Client) fetchTicker(ctx context.Context, ticker string, window types.LookbackWindow) ([]types.RawTradeEvent, error) {
	url := fmt.Sprintf("%s/quote/%s/insider-transactions/", c.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticker %s: unexpected status %d", ticker, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	return c.parseTable(doc, ticker, window), nil
}

// parseTable extracts up to maxPerTicker rows from the first transaction
// table on the page. Column layout: insider, title, transaction, shares,
// value, and optionally a date; rows without a date column fall back to the
// window end, matching how Yahoo reports "latest" activity.
func (c *Client) parseTable(doc *goquery.Document, ticker string, window types.LookbackWindow) []types.RawTradeEvent {
	var events []types.RawTradeEvent

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		rows.Each(func(i int, row *goquery.Selection) {
			if i == 0 || len(events) >= c.maxPerTicker {
				return
			}
			cells := row.Find("td")
			if cells.Length() < 5 {
				return
			}

			filed := window.End.Format("2006-01-02")
			if cells.Length() >= 6 {
				if d := strings.TrimSpace(cells.Eq(5).Text()); d != "" {
					filed = d
				}
			}

			events = append(events, types.RawTradeEvent{
				Ticker:          ticker,
				CompanyName:     ticker,
				TraderName:      strings.TrimSpace(cells.Eq(0).Text()),
				RoleText:        strings.TrimSpace(cells.Eq(1).Text()),
				TransactionText: strings.TrimSpace(cells.Eq(2).Text()),
				Shares:          strings.TrimSpace(cells.Eq(3).Text()),
				Value:           strings.TrimSpace(cells.Eq(4).Text()),
				FiledDate:       filed,
				Source:          sourceName,
			})
		})
		return len(events) < c.maxPerTicker
	})

	return events
}
