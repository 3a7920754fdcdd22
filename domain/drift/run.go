package drift

import (
	"driftlens/domain/core"
)

// Run is one persisted analysis: its configuration, result table and
// fingerprint. Runs are immutable once recorded.
type Run struct {
	ID              core.RunID     `json:"id"`
	NumericStrategy string         `json:"numeric_strategy"`
	Alpha           float64        `json:"alpha"`
	IgnoreFields    []string       `json:"ignore_fields,omitempty"`
	Table           Table          `json:"table"`
	Fingerprint     core.Hash      `json:"fingerprint"`
	CreatedAt       core.Timestamp `json:"created_at"`
}

// NewRun records a completed analysis under a fresh run ID
func NewRun(numericStrategy string, alpha float64, ignore []string, table Table) *Run {
	return &Run{
		ID:              core.RunID(core.NewID()),
		NumericStrategy: numericStrategy,
		Alpha:           alpha,
		IgnoreFields:    ignore,
		Table:           table,
		Fingerprint:     table.Fingerprint(),
		CreatedAt:       core.Now(),
	}
}
