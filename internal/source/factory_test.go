package source

import (
	"testing"

	"insider-flow/internal/store"
)

func baseConfig() *store.Config {
	cfg := &store.Config{}
	cfg.DataSource = "LIVE"
	cfg.LookbackDays = 90
	cfg.Sources.TimeoutSeconds = 15
	cfg.Sources.MaxPerTicker = 5
	cfg.Universe.Static = []string{"NVDA"}
	return cfg
}

func TestBuildSampleMode(t *testing.T) {
	cfg := baseConfig()
	cfg.DataSource = "SAMPLE"
	cfg.Sources.Priority = []string{"sec_edgar", "yahoo"}

	sources, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("SAMPLE mode should yield exactly one source, got %d", len(sources))
	}
	if sources[0].Name() != "Sample Data" {
		t.Errorf("unexpected source %q", sources[0].Name())
	}
}

func TestBuildPriorityOrder(t *testing.T) {
	cfg := baseConfig()
	cfg.Sources.Priority = []string{"capitolwatch", "sec_edgar", "sample"}

	sources, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	want := []string{"Capitol Watch", "SEC EDGAR", "Sample Data"}
	if len(sources) != len(want) {
		t.Fatalf("expected %d sources, got %d", len(want), len(sources))
	}
	for i, w := range want {
		if sources[i].Name() != w {
			t.Errorf("position %d: expected %s, got %s", i, w, sources[i].Name())
		}
	}
}

func TestBuildUnknownSource(t *testing.T) {
	cfg := baseConfig()
	cfg.Sources.Priority = []string{"sec_edgar", "reddit"}

	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown source name")
	}
}
