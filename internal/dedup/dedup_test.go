package dedup

import (
	"reflect"
	"testing"

	"insider-flow/internal/types"
)

func rec(ticker, date, trader, source string) types.CanonicalTradeRecord {
	return types.CanonicalTradeRecord{
		Ticker:    ticker,
		FiledDate: date,
		Trader:    trader,
		Source:    source,
	}
}

func TestCollapseFirstWins(t *testing.T) {
	in := []types.CanonicalTradeRecord{
		rec("NVDA", "2024-05-01", "Jensen Huang", "SEC EDGAR"),
		rec("TSLA", "2024-05-02", "Elon Musk", "SEC EDGAR"),
		rec("NVDA", "2024-05-01", "Jensen Huang", "Yahoo Finance"), // duplicate
		rec("NVDA", "2024-05-02", "Jensen Huang", "Yahoo Finance"), // different date
	}

	out := Collapse(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	if out[0].Source != "SEC EDGAR" {
		t.Errorf("expected first occurrence to survive, got source %s", out[0].Source)
	}
	if out[0].Ticker != "NVDA" || out[1].Ticker != "TSLA" || out[2].Ticker != "NVDA" {
		t.Errorf("input order not preserved: %v", out)
	}
}

func TestCollapseKeyUniqueness(t *testing.T) {
	in := []types.CanonicalTradeRecord{
		rec("NVDA", "2024-05-01", "Jensen Huang", "a"),
		rec("NVDA", "2024-05-01", "Jensen Huang", "b"),
		rec("MSFT", "2024-05-01", "Satya Nadella", "a"),
		rec("MSFT", "2024-05-01", "Satya Nadella", "c"),
	}

	out := Collapse(in)
	keys := make(map[string]bool)
	for _, r := range out {
		if r.DedupKey == "" {
			t.Errorf("record missing dedup_key: %+v", r)
		}
		if keys[r.DedupKey] {
			t.Errorf("duplicate dedup_key %s in output", r.DedupKey)
		}
		keys[r.DedupKey] = true
	}
}

func TestCollapseDropsEmptyTicker(t *testing.T) {
	in := []types.CanonicalTradeRecord{
		rec("", "2024-05-01", "Nobody", "a"),
		rec("NVDA", "2024-05-01", "Jensen Huang", "a"),
	}

	out := Collapse(in)
	if len(out) != 1 || out[0].Ticker != "NVDA" {
		t.Fatalf("expected only NVDA record, got %v", out)
	}
}

func TestCollapseIdempotent(t *testing.T) {
	in := []types.CanonicalTradeRecord{
		rec("NVDA", "2024-05-01", "Jensen Huang", "a"),
		rec("NVDA", "2024-05-01", "Jensen Huang", "b"),
		rec("TSLA", "2024-05-02", "Elon Musk", "a"),
	}

	once := Collapse(in)
	twice := Collapse(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("collapse not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestCollapseEmptyInput(t *testing.T) {
	if out := Collapse(nil); len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}
