package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"insider-flow/internal/types"
)

// WriteTrades serializes the canonical sequence as a JSON array at path,
// overwriting any previous run's output. The write goes through a temp file
// and rename so the reporting side never observes a half-written file. A
// failure here is the one error class that must abort a run.
func WriteTrades(path string, trades []types.CanonicalTradeRecord) error {
	if trades == nil {
		trades = []types.CanonicalTradeRecord{}
	}

	b, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trades: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".insider_trades_*.json")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace output %s: %w", path, err)
	}
	return nil
}
