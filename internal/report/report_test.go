package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"insider-flow/internal/types"
)

func ptr(f float64) *float64 { return &f }

func sampleTrades() []types.CanonicalTradeRecord {
	return []types.CanonicalTradeRecord{
		{
			Ticker:              "NVDA",
			CompanyName:         "NVIDIA Corporation",
			Trader:              "Jensen Huang",
			Role:                "CEO",
			ActorType:           types.ActorTypeInsider,
			TradeType:           types.TradeTypeBuy,
			Shares:              "50000",
			Value:               "$6,000,000",
			FiledDate:           "2024-05-28",
			PriceAtTrade:        ptr(100),
			CurrentPrice:        ptr(120),
			PctChangeSinceTrade: ptr(20),
			Source:              "Sample Data",
		},
		{
			Ticker:    "TSLA",
			Trader:    "Elon Musk",
			Role:      "CEO",
			ActorType: types.ActorTypeInsider,
			TradeType: types.TradeTypeSell,
			FiledDate: "2024-05-27",
			Source:    "Sample Data",
		},
		{
			Ticker:    "AAPL",
			Trader:    "Jane Smith",
			Role:      "U.S. Senator",
			ActorType: types.ActorTypePolitician,
			TradeType: types.TradeTypeUnknown,
			FiledDate: "2024-05-26",
			Source:    "Sample Data",
		},
	}
}

func TestRenderSections(t *testing.T) {
	html, err := Render(sampleTrades(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	for _, want := range []string{
		"BUY TRADES",
		"SELL TRADES",
		"NVDA",
		"Jensen Huang",
		"TSLA",
		"+20.00%",
		"Buy Orders:</strong> 1",
		"Sell Orders:</strong> 1",
		"Total Trades:</strong> 3",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Missing prices render as dashes, not zeros.
	if strings.Contains(html, "0.00%") && !strings.Contains(html, "+20.00%") {
		t.Errorf("unexpected zero percentage in report")
	}
}

func TestRenderEmpty(t *testing.T) {
	html, err := Render(nil, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(html, "BUY TRADES") || strings.Contains(html, "SELL TRADES") {
		t.Errorf("empty report should omit trade sections")
	}
	if !strings.Contains(html, "Limited data collection") {
		t.Errorf("empty report should flag sparse data")
	}
	if !strings.Contains(html, "Total Trades:</strong> 0") {
		t.Errorf("empty report should show zero total")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	trades := []types.CanonicalTradeRecord{{
		Ticker:    "EVIL",
		Trader:    "<script>alert(1)</script>",
		TradeType: types.TradeTypeBuy,
		FiledDate: "2024-05-28",
	}}
	html, err := Render(trades, time.Now())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Errorf("trader name not escaped")
	}
}

func TestMailerUnconfiguredSkips(t *testing.T) {
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("SENDER_PASSWORD", "")
	t.Setenv("RECIPIENT_EMAIL", "")

	m := NewMailer("smtp.gmail.com", 587)
	if m.Configured() {
		t.Fatalf("mailer should be unconfigured without credentials")
	}
	if err := m.Send(context.Background(), "subject", "<html></html>"); err != nil {
		t.Errorf("unconfigured Send should be a no-op, got %v", err)
	}
}

func TestMailerConfigured(t *testing.T) {
	t.Setenv("SENDER_EMAIL", "bot@example.com")
	t.Setenv("SENDER_PASSWORD", "secret")
	t.Setenv("RECIPIENT_EMAIL", "me@example.com")

	m := NewMailer("smtp.example.com", 587)
	if !m.Configured() {
		t.Errorf("mailer should be configured with all credentials set")
	}
}
