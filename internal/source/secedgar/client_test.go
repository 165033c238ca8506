package secedgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"insider-flow/internal/types"
)

const browsePayload = `{
	"filings": [
		{
			"ticker": "NVDA",
			"company_name": "NVIDIA Corporation",
			"cik_str": "0001045810",
			"filing_date": "2024-05-28",
			"form_type": "4",
			"reporting_owner": "Huang Jen-Hsun",
			"owner_title": "CEO",
			"transaction_code": "S",
			"shares": "120000",
			"value": "$13,200,000"
		},
		{
			"ticker": "N/A",
			"company_name": "Mystery Corp",
			"filing_date": "2024-05-28",
			"form_type": "4"
		},
		{
			"ticker": "aapl",
			"company_name": "Apple Inc",
			"filing_date": "2024-05-27",
			"form_type": "4",
			"reporting_owner": "Cook Timothy",
			"owner_title": "CEO",
			"transaction_code": "M"
		}
	]
}`

func testWindow() types.LookbackWindow {
	end, _ := time.Parse("2006-01-02", "2024-06-01")
	return types.NewLookbackWindow(end, 90)
}

func TestFetchParsesFilings(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(browsePayload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	events, err := c.Fetch(context.Background(), nil, testWindow())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events (N/A ticker dropped), got %d", len(events))
	}
	if events[0].Ticker != "NVDA" || events[0].TransactionCode != "S" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[0].Source != "SEC EDGAR" {
		t.Errorf("unexpected source %q", events[0].Source)
	}
	if events[1].Ticker != "AAPL" {
		t.Errorf("expected upper-cased ticker AAPL, got %q", events[1].Ticker)
	}
	if gotUA == "" {
		t.Error("expected an identifying User-Agent header")
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background(), nil, testWindow()); err == nil {
		t.Error("expected error on 429 response")
	}
}

func TestFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>blocked</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background(), nil, testWindow()); err == nil {
		t.Error("expected error on non-JSON payload")
	}
}
