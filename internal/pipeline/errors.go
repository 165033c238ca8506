package pipeline

import "fmt"

// ProviderError marks a source fetch that failed as a whole. It is logged
// and absorbed inside the run; that source simply contributes nothing.
type ProviderError struct {
	Source string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Source, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError marks one raw event that could not be normalized. The event is
// dropped; its siblings are unaffected.
type ParseError struct {
	Source string
	Ticker string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record from %s (ticker %q) dropped: %s", e.Source, e.Ticker, e.Reason)
}

// PersistError is the one failure class that aborts a run: a missing or
// half-written output file would silently break the reporting side.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist output to %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
