package openinsider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"insider-flow/internal/types"
)

const screenerHTML = `<html><body>
<table class="tinytable">
<thead><tr><th>X</th><th>Filing Date</th><th>Trade Date</th><th>Ticker</th><th>Insider</th><th>Title</th><th>Trade Type</th><th>Price</th><th>Qty</th><th>Owned</th><th>dOwn</th><th>Value</th></tr></thead>
<tbody>
<tr>
  <td></td><td>2024-05-28</td><td>2024-05-27</td><td>NVDA</td><td>Huang Jen-Hsun</td>
  <td>CEO</td><td>S - Sale+OE</td><td>$110.00</td><td>-120,000</td><td>80,000,000</td><td>-1%</td><td>-$13,200,000</td>
</tr>
<tr>
  <td></td><td>2024-05-26</td><td>2024-05-25</td><td>NVDA</td><td>Kress Colette</td>
  <td>CFO</td><td>P - Purchase</td><td>$105.00</td><td>+1,000</td><td>500,000</td><td>+1%</td><td>+$105,000</td>
</tr>
<tr><td></td><td>short row</td></tr>
</tbody>
</table>
</body></html>`

func testWindow() types.LookbackWindow {
	end, _ := time.Parse("2006-01-02", "2024-06-01")
	return types.NewLookbackWindow(end, 90)
}

func TestCodeFromTradeType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"P - Purchase", "P"},
		{"S - Sale+OE", "S"},
		{"M - Option Exercise", "M"},
		{"Purchase", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := codeFromTradeType(c.in); got != c.want {
			t.Errorf("codeFromTradeType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCrawlScreenerTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "NVDA" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		w.Write([]byte(screenerHTML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 5)
	events, err := c.Fetch(context.Background(), []string{"NVDA"}, testWindow())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events (short row skipped), got %d", len(events))
	}
	first := events[0]
	if first.Ticker != "NVDA" || first.TraderName != "Huang Jen-Hsun" {
		t.Errorf("unexpected first event: %+v", first)
	}
	if first.TransactionCode != "S" || first.TransactionText != "S - Sale+OE" {
		t.Errorf("unexpected transaction fields: code=%q text=%q", first.TransactionCode, first.TransactionText)
	}
	if first.FiledDate != "2024-05-28" {
		t.Errorf("expected filing date from second column, got %q", first.FiledDate)
	}
	if events[1].TransactionCode != "P" {
		t.Errorf("expected code P for second row, got %q", events[1].TransactionCode)
	}
}

func TestCrawlRowCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(screenerHTML))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 1)
	events, err := c.Fetch(context.Background(), []string{"NVDA"}, testWindow())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected cap of 1 row per ticker, got %d", len(events))
	}
}

func TestFetchAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 5)
	if _, err := c.Fetch(context.Background(), []string{"NVDA"}, testWindow()); err == nil {
		t.Error("expected error when every ticker fails")
	}
}

func TestGetDomain(t *testing.T) {
	if got := getDomain("http://openinsider.com"); got != "openinsider.com" {
		t.Errorf("getDomain = %q", got)
	}
	if got := getDomain("http://127.0.0.1:8080"); got != "127.0.0.1:8080" {
		t.Errorf("getDomain with port = %q", got)
	}
}
