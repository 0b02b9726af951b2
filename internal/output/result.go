package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reasons a run finished without saving
const (
	ReasonSaveDisabled = "save_disabled"
	ReasonSetupFailed  = "setup_failed"
	ReasonEmptyCache   = "empty_cache"
	ReasonDryRun       = "dry_run"
	ReasonFailed       = "failed"
)

type Outcome struct {
	Saved        bool   `json:"saved"`
	Key          string `json:"key,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Backend      string `json:"backend,omitempty"`
	CacheSize    string `json:"cache_size,omitempty"`
	ArchiveBytes int64  `json:"archive_bytes,omitempty"`
	DryRun       bool   `json:"dry_run,omitempty"`
	Error        string `json:"error,omitempty"`
}

// WriteFile writes the outcome as indented JSON to path
func WriteFile(path string, outcome *Outcome) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}
