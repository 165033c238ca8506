package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
data_source: SAMPLE
universe:
  static: [NVDA, TSLA]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.LookbackDays != 90 {
		t.Errorf("expected default lookback_days 90, got %d", cfg.LookbackDays)
	}
	if cfg.MinRawEvents != 5 {
		t.Errorf("expected default min_raw_events 5, got %d", cfg.MinRawEvents)
	}
	if cfg.Output.Path != "data/insider_trades_data.json" {
		t.Errorf("unexpected default output path %s", cfg.Output.Path)
	}
	if len(cfg.Sources.Priority) == 0 || cfg.Sources.Priority[0] != "sec_edgar" {
		t.Errorf("unexpected default source priority %v", cfg.Sources.Priority)
	}
	if cfg.SourceTimeout().Seconds() != 15 {
		t.Errorf("expected 15s source timeout, got %v", cfg.SourceTimeout())
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad data_source", "data_source: MAYBE\nuniverse:\n  static: [NVDA]\n"},
		{"empty universe", "data_source: SAMPLE\n"},
		{"negative lookback", "data_source: SAMPLE\nlookback_days: -3\nuniverse:\n  static: [NVDA]\n"},
	}
	for _, c := range cases {
		path := writeConfig(t, c.body)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
