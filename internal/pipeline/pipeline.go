// Package pipeline orchestrates one run over the configured sources:
// COLLECT -> CLASSIFY+ENRICH -> DEDUPLICATE -> SORT -> EMIT.
package pipeline

import (
	"context"
	"sort"
	"strings"
	"time"

	"insider-flow/internal/classify"
	"insider-flow/internal/dedup"
	"insider-flow/internal/enrich"
	"insider-flow/internal/interfaces"
	"insider-flow/internal/logger"
	"insider-flow/internal/store"
	"insider-flow/internal/types"
)

const (
	maxTraderLen  = 50
	maxRoleLen    = 50
	maxCompanyLen = 60
)

// Runner executes the normalization pipeline. Sources are queried in the
// order given; price history is shared through a fresh per-run cache.
type Runner struct {
	cfg     *store.Config
	sources []interfaces.TradeSource
	history interfaces.PriceHistory
	now     func() time.Time
}

// New creates a runner. history may be nil when price enrichment is
// disabled; price fields then stay null.
func New(cfg *store.Config, sources []interfaces.TradeSource, history interfaces.PriceHistory) *Runner {
	if history == nil {
		history = noopHistory{}
	}
	return &Runner{
		cfg:     cfg,
		sources: sources,
		history: history,
		now:     time.Now,
	}
}

// Result summarizes one pipeline pass.
type Result struct {
	Trades     []types.CanonicalTradeRecord
	Collected  int
	Dropped    int
	Duplicates int
	PerSource  map[string]int
}

// Run executes one pipeline pass and returns the canonical ordered sequence.
// It never fails: provider errors, malformed records and price lookup
// failures all degrade to absence. Total source exhaustion yields an empty
// sequence, not an error.
func (r *Runner) Run(ctx context.Context) *Result {
	op := logger.StartOperation(ctx, "pipeline.run", "sources", len(r.sources))
	ctx = op.GetContext()

	window := types.NewLookbackWindow(truncateDay(r.now()), r.cfg.LookbackDays)

	res := &Result{PerSource: make(map[string]int)}

	raw := r.collect(ctx, window, res.PerSource)
	res.Collected = len(raw)

	cache := enrich.NewCache()
	enricher := enrich.New(r.history, cache, window)
	records := r.normalize(ctx, raw, enricher, window)
	res.Dropped = len(raw) - len(records)

	deduped := dedup.Collapse(records)
	res.Duplicates = len(records) - len(deduped)
	sortRecords(deduped)
	res.Trades = deduped

	op.End("collected", len(raw), "emitted", len(deduped), "tickers_priced", cache.Len())
	return res
}

// Persist writes the canonical sequence to the configured output path.
func (r *Runner) Persist(records []types.CanonicalTradeRecord) error {
	if err := store.WriteTrades(r.cfg.Output.Path, records); err != nil {
		return &PersistError{Path: r.cfg.Output.Path, Err: err}
	}
	return nil
}

// collect queries sources in priority order, chaining to lower-priority
// sources while the running total stays below the configured minimum. A
// failing source is logged and skipped.
func (r *Runner) collect(ctx context.Context, window types.LookbackWindow, perSource map[string]int) []types.RawTradeEvent {
	var events []types.RawTradeEvent

	for _, src := range r.sources {
		if len(events) >= r.cfg.MinRawEvents {
			break
		}

		fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.SourceTimeout())
		got, err := src.Fetch(fetchCtx, r.cfg.Universe.Static, window)
		cancel()

		if err != nil {
			perr := &ProviderError{Source: src.Name(), Err: err}
			logger.Provider(ctx, src.Name(), 0, perr)
			continue
		}
		logger.Provider(ctx, src.Name(), len(got), nil)
		perSource[src.Name()] += len(got)
		events = append(events, got...)
	}

	return events
}

// normalize converts raw events into partial canonical records in arrival
// order, classifying and enriching each. Events without a usable ticker or
// filing date are dropped here, before deduplication.
func (r *Runner) normalize(ctx context.Context, raw []types.RawTradeEvent, enricher *enrich.Enricher, window types.LookbackWindow) []types.CanonicalTradeRecord {
	records := make([]types.CanonicalTradeRecord, 0, len(raw))

	for _, ev := range raw {
		rec, perr := r.toCanonical(ev, window)
		if perr != nil {
			logger.Drop(ctx, ev.Source, ev.Ticker, perr.Reason)
			continue
		}

		rec.TradeType, rec.ActorType = classify.Classify(ev.TransactionCode, ev.TransactionText, ev.RoleText)

		tradeDate, _ := time.Parse("2006-01-02", rec.FiledDate)
		rec.PriceAtTrade, rec.CurrentPrice, rec.PctChangeSinceTrade = enricher.Enrich(ctx, rec.Ticker, tradeDate)

		records = append(records, rec)
	}

	return records
}

func (r *Runner) toCanonical(ev types.RawTradeEvent, window types.LookbackWindow) (types.CanonicalTradeRecord, *ParseError) {
	ticker := strings.ToUpper(strings.TrimSpace(ev.Ticker))
	if ticker == "" || ticker == "N/A" {
		return types.CanonicalTradeRecord{}, &ParseError{Source: ev.Source, Ticker: ev.Ticker, Reason: "missing ticker"}
	}

	filed, err := normalizeDate(ev.FiledDate)
	if err != nil {
		return types.CanonicalTradeRecord{}, &ParseError{Source: ev.Source, Ticker: ticker, Reason: "unparseable filing date"}
	}
	if !window.Contains(filed) {
		return types.CanonicalTradeRecord{}, &ParseError{Source: ev.Source, Ticker: ticker, Reason: "outside lookback window"}
	}

	trader := strings.TrimSpace(ev.TraderName)
	if trader == "" {
		trader = "Unknown"
	}
	role := strings.TrimSpace(ev.RoleText)
	if role == "" {
		role = "Insider"
	}
	company := strings.TrimSpace(ev.CompanyName)
	if company == "" {
		company = ticker
	}

	return types.CanonicalTradeRecord{
		Ticker:      ticker,
		CompanyName: truncate(company, maxCompanyLen),
		Trader:      truncate(trader, maxTraderLen),
		Role:        truncate(role, maxRoleLen),
		Shares:      strings.TrimSpace(ev.Shares),
		Value:       strings.TrimSpace(ev.Value),
		FiledDate:   filed.Format("2006-01-02"),
		Source:      ev.Source,
	}, nil
}

// sortRecords orders by filed_date descending, ticker ascending, keeping
// arrival order for full ties. ISO dates compare correctly as strings.
func sortRecords(records []types.CanonicalTradeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].FiledDate != records[j].FiledDate {
			return records[i].FiledDate > records[j].FiledDate
		}
		return records[i].Ticker < records[j].Ticker
	})
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
}

func normalizeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return truncateDay(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// noopHistory backs runs with price enrichment disabled.
type noopHistory struct{}

func (noopHistory) History(context.Context, string, time.Time, time.Time) (types.PriceSeries, error) {
	return nil, nil
}
