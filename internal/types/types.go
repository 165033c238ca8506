package types

import "time"

// TradeType is the direction of a disclosed transaction.
type TradeType string

const (
	TradeTypeBuy     TradeType = "buy"
	TradeTypeSell    TradeType = "sell"
	TradeTypeUnknown TradeType = "unknown"
)

// ActorType classifies the trading party.
type ActorType string

const (
	ActorTypeInsider    ActorType = "insider"
	ActorTypePolitician ActorType = "politician"
	ActorTypeUnknown    ActorType = "unknown"
)

// RawTradeEvent is the minimal shape every source adapter must produce.
// All fields except Ticker and Source are optional; numeric-ish fields stay
// strings because providers disagree on formats ("50,000", "$8.5M").
type RawTradeEvent struct {
	Ticker          string
	CompanyName     string
	TraderName      string
	RoleText        string
	TransactionCode string // structured Form 4 code when the source has one
	TransactionText string // free-text description otherwise
	Shares          string
	Value           string
	FiledDate       string // as supplied; normalized by the pipeline
	Source          string
}

// CanonicalTradeRecord is one normalized, enriched, deduplicated trade.
// Records are immutable once emitted by the pipeline.
type CanonicalTradeRecord struct {
	Ticker              string    `json:"ticker"`
	CompanyName         string    `json:"company_name"`
	Trader              string    `json:"trader"`
	Role                string    `json:"role"`
	ActorType           ActorType `json:"actor_type"`
	TradeType           TradeType `json:"trade_type"`
	Shares              string    `json:"shares,omitempty"`
	Value               string    `json:"value,omitempty"`
	FiledDate           string    `json:"filed_date"`
	PriceAtTrade        *float64  `json:"price_at_trade"`
	CurrentPrice        *float64  `json:"current_price"`
	PctChangeSinceTrade *float64  `json:"pct_change_since_trade"`
	Source              string    `json:"source"`
	DedupKey            string    `json:"dedup_key"`
}

// DeriveDedupKey builds the composite identity used to collapse duplicate
// disclosures of the same event across sources.
func (r CanonicalTradeRecord) DeriveDedupKey() string {
	return r.Ticker + "|" + r.FiledDate + "|" + r.Trader
}

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is ordered ascending by date.
type PriceSeries []PricePoint

// LastClose returns the most recent close in the series.
func (s PriceSeries) LastClose() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].Close, true
}

// FirstCloseOnOrAfter returns the close of the first entry whose date is not
// before d. Approximates the first trading day on or after an event date,
// tolerating weekends and holidays.
func (s PriceSeries) FirstCloseOnOrAfter(d time.Time) (float64, bool) {
	for _, p := range s {
		if !p.Date.Before(d) {
			return p.Close, true
		}
	}
	return 0, false
}

// LookbackWindow bounds how far back the pipeline looks for filings and
// price history.
type LookbackWindow struct {
	Start time.Time
	End   time.Time
}

// NewLookbackWindow builds a window covering the given number of days up to
// and including end.
func NewLookbackWindow(end time.Time, days int) LookbackWindow {
	return LookbackWindow{Start: end.AddDate(0, 0, -days), End: end}
}

// Contains reports whether d falls inside the window, inclusive of both ends.
func (w LookbackWindow) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}
