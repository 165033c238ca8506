// Package source assembles the configured trade source chain.
package source

import (
	"fmt"

	"insider-flow/internal/interfaces"
	"insider-flow/internal/source/capitolwatch"
	"insider-flow/internal/source/openinsider"
	"insider-flow/internal/source/sample"
	"insider-flow/internal/source/secedgar"
	"insider-flow/internal/source/yahoo"
	"insider-flow/internal/store"
)

// Build creates the source chain in configured priority order. In SAMPLE
// data source mode only the built-in sample source is used.
func Build(cfg *store.Config) ([]interfaces.TradeSource, error) {
	if cfg.DataSource == "SAMPLE" {
		return []interfaces.TradeSource{sample.NewSource()}, nil
	}

	timeout := cfg.SourceTimeout()
	sources := make([]interfaces.TradeSource, 0, len(cfg.Sources.Priority))

	for _, name := range cfg.Sources.Priority {
		switch name {
		case "sec_edgar":
			sources = append(sources, secedgar.NewClient(cfg.Sources.SECEdgar.BaseURL, timeout))
		case "yahoo":
			sources = append(sources, yahoo.NewClient(cfg.Sources.Yahoo.BaseURL, timeout, cfg.Sources.MaxPerTicker))
		case "openinsider":
			sources = append(sources, openinsider.NewClient(cfg.Sources.OpenInsider.BaseURL, timeout, cfg.Sources.MaxPerTicker))
		case "capitolwatch":
			sources = append(sources, capitolwatch.NewClient(cfg.Sources.CapitolWatch.BaseURL, timeout))
		case "sample":
			sources = append(sources, sample.NewSource())
		default:
			return nil, fmt.Errorf("unknown trade source %q (valid: sec_edgar, yahoo, openinsider, capitolwatch, sample)", name)
		}
	}
	return sources, nil
}
