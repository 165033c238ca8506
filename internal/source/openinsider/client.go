// Package openinsider crawls the OpenInsider screener for the latest
// disclosed insider trades per ticker.
package openinsider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"insider-flow/internal/logger"
	"insider-flow/internal/types"
)

const sourceName = "OpenInsider"

// Client crawls screener result tables.
type Client struct {
	baseURL      string
	timeout      time.Duration
	maxPerTicker int
}

// NewClient creates an OpenInsider crawler.
func NewClient(baseURL string, timeout time.Duration, maxPerTicker int) *Client {
	if baseURL == "" {
		baseURL = "http://openinsider.com"
	}
	if maxPerTicker <= 0 {
		maxPerTicker = 5
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		timeout:      timeout,
		maxPerTicker: maxPerTicker,
	}
}

func (c *Client) Name() string { return sourceName }

// Fetch crawls the screener once per ticker. A failing ticker is logged and
// skipped; the fetch fails only when every ticker failed.
func (c *Client) Fetch(ctx context.Context, universe []string, _ types.LookbackWindow) ([]types.RawTradeEvent, error) {
	var events []types.RawTradeEvent
	var lastErr error

	for _, ticker := range universe {
		if err := ctx.Err(); err != nil {
			return events, err
		}

		got, err := c.crawlTicker(ctx, ticker)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to crawl screener", err, "source", sourceName, "ticker", ticker)
			lastErr = err
			continue
		}
		events = append(events, got...)
	}

	if len(events) == 0 && lastErr != nil {
		return nil, fmt.Errorf("screener yielded nothing: %w", lastErr)
	}
	return events, nil
}

func (c *Client) crawlTicker(ctx context.Context, ticker string) ([]types.RawTradeEvent, error) {
	var events []types.RawTradeEvent

	col := colly.NewCollector(
		colly.AllowedDomains(getDomain(c.baseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	col.SetRequestTimeout(c.timeout)

	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	// Screener rows: X | filing date | trade date | ticker | insider |
	// title | trade type | price | qty | owned | dOwn | value.
	col.OnHTML("table.tinytable tbody tr", func(e *colly.HTMLElement) {
		if len(events) >= c.maxPerTicker {
			return
		}
		cells := e.ChildTexts("td")
		if len(cells) < 12 {
			return
		}

		tradeType := strings.TrimSpace(cells[6])
		events = append(events, types.RawTradeEvent{
			Ticker:          strings.TrimSpace(cells[3]),
			CompanyName:     strings.TrimSpace(cells[3]),
			TraderName:      strings.TrimSpace(cells[4]),
			RoleText:        strings.TrimSpace(cells[5]),
			TransactionCode: codeFromTradeType(tradeType),
			TransactionText: tradeType,
			Shares:          strings.TrimSpace(cells[8]),
			Value:           strings.TrimSpace(cells[11]),
			FiledDate:       strings.TrimSpace(cells[1]),
			Source:          sourceName,
		})
	})

	var visitErr error
	col.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	screenerURL := fmt.Sprintf("%s/screener?s=%s", c.baseURL, url.QueryEscape(ticker))
	if err := col.Visit(screenerURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", screenerURL, err)
	}
	col.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	return events, nil
}

// codeFromTradeType extracts the Form 4 code prefix from screener trade
// type strings like "P - Purchase" or "S - Sale+OE".
func codeFromTradeType(s string) string {
	code, _, found := strings.Cut(s, " - ")
	if !found {
		return ""
	}
	return strings.TrimSpace(code)
}

func getDomain(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base
	}
	return u.Host
}
