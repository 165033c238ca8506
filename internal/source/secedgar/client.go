// Package secedgar adapts SEC EDGAR Form 4 filing listings into raw trade
// events. EDGAR is market-wide, so the ticker universe is not applied here;
// the pipeline bounds results by its lookback window.
package secedgar

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

const sourceName = "SEC EDGAR"

// Client fetches recent Form 4 filings from the EDGAR browse endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

// NewClient creates an EDGAR client. baseURL defaults to the public SEC
// host when empty.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://www.sec.gov"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			// SEC requires an identifying User-Agent on automated requests.
			"User-Agent": "insider-flow/1.0 (research; admin@insider-flow.local)",
			"Accept":     "application/json",
		},
	}
}

func (c *Client) Name() string { return sourceName }

type browseResponse struct {
	Filings []struct {
		Ticker          string `json:"ticker"`
		CompanyName     string `json:"company_name"`
		CIK             string `json:"cik_str"`
		FilingDate      string `json:"filing_date"`
		FormType        string `json:"form_type"`
		ReportingOwner  string `json:"reporting_owner"`
		OwnerTitle      string `json:"owner_title"`
		TransactionCode string `json:"transaction_code"`
		Shares          string `json:"shares"`
		Value           string `json:"value"`
	} `json:"filings"`
}

// Fetch retrieves the most recent Form 4 filings.
func (c *Client) Fetch(ctx context.Context, _ []string, _ types.LookbackWindow) ([]types.RawTradeEvent, error) {
	url := fmt.Sprintf("%s/cgi-bin/browse-edgar?action=getcompany&type=4&owner=exclude&count=40&myJSON=1", c.baseURL)

	data, err := c.makeRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch EDGAR filings: %w", err)
	}

	var resp browseResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode EDGAR payload: %w", err)
	}

	events := make([]types.RawTradeEvent, 0, len(resp.Filings))
	for _, f := range resp.Filings {
		ticker := strings.ToUpper(strings.TrimSpace(f.Ticker))
		if ticker == "" || ticker == "N/A" {
			continue
		}
		events = append(events, types.RawTradeEvent{
			Ticker:          ticker,
			CompanyName:     f.CompanyName,
			TraderName:      f.ReportingOwner,
			RoleText:        f.OwnerTitle,
			TransactionCode: f.TransactionCode,
			TransactionText: f.FormType,
			Shares:          f.Shares,
			Value:           f.Value,
			FiledDate:       f.FilingDate,
			Source:          sourceName,
		})
	}
	return events, nil
}

func (c *Client) makeRequest(ctx context.Context, url string) ([]byte, error) {
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
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
