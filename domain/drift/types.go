package drift

import (
	"fmt"
	"strings"

	"driftlens/domain/core"
)

const (
	// MaxProbability is the score assigned to schema-drift rows. Kept just
	// below 1.0 so drift rows remain distinguishable from a hypothetical
	// absolute maximum in sorts and charts.
	MaxProbability = 0.99999

	// DefaultAlpha is the significance threshold below which a p-value is
	// reported as a divergence.
	DefaultAlpha = 0.05
)

// Status tags the outcome of comparing one field
type Status string

const (
	// StatusCompared means a statistical test produced a p-value
	StatusCompared Status = "compared"
	// StatusMissing means the field exists in the reference but not the candidate
	StatusMissing Status = "missing_in_candidate"
	// StatusAdditional means the field exists in the candidate but not the reference
	StatusAdditional Status = "additional_in_candidate"
	// StatusUnclassifiable means the field could not be typed for comparison
	StatusUnclassifiable Status = "unclassifiable"
)

// Drift reports whether the status is a schema-drift condition
func (s Status) Drift() bool {
	return s == StatusMissing || s == StatusAdditional
}

// Detail returns the human-readable detail string for drift statuses,
// empty otherwise.
func (s Status) Detail() string {
	switch s {
	case StatusMissing:
		return "Missing in candidate data"
	case StatusAdditional:
		return "Additional in candidate data"
	default:
		return ""
	}
}

// Outcome is the tagged per-field comparison result. PValue is meaningful
// only when Status is StatusCompared.
type Outcome struct {
	Status Status
	PValue float64
}

// Compared builds an outcome carrying a p-value
func Compared(pValue float64) Outcome {
	return Outcome{Status: StatusCompared, PValue: pValue}
}

// Result is one row of the result table
type Result struct {
	Field string `json:"field"`
	// Probability is the bounded error-probability score in [0, 100]
	Probability float64 `json:"probability"`
	// ExtraStatus is true exactly for schema-drift rows
	ExtraStatus bool `json:"extra_status"`
	// Details is present only for drift rows
	Details string `json:"details,omitempty"`
	// PValue is the raw significance value for compared rows, nil for drift rows
	PValue *float64 `json:"p_value,omitempty"`
}

// Table is the ordered collection of per-field results for one analysis run
type Table struct {
	Rows []Result `json:"rows"`
}

// Fingerprint returns a deterministic hash of the table contents, useful for
// asserting that repeated runs over immutable inputs agree.
func (t Table) Fingerprint() core.Hash {
	var b strings.Builder
	for _, r := range t.Rows {
		fmt.Fprintf(&b, "%s|%.10f|%t|%s;", r.Field, r.Probability, r.ExtraStatus, r.Details)
	}
	return core.NewHash([]byte(b.String()))
}

// Fields returns the field names in row order
func (t Table) Fields() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Field
	}
	return out
}

// Lookup returns the row for a field and whether it exists
func (t Table) Lookup(field string) (Result, bool) {
	for _, r := range t.Rows {
		if r.Field == field {
			return r, true
		}
	}
	return Result{}, false
}
