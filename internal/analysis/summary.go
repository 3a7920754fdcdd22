package analysis

import (
	"fmt"
	"strings"

	"driftlens/domain/drift"
)

// MarkdownSummary renders a result table as a markdown document: a headline,
// a findings table ordered as analyzed, and a drift call-out when schema
// drift was detected. The ui renders this to HTML; the CLI prints it as-is.
func MarkdownSummary(table drift.Table) string {
	var b strings.Builder

	driftCount := 0
	flagged := 0
	for _, r := range table.Rows {
		if r.ExtraStatus {
			driftCount++
		} else if r.Probability > 0 {
			flagged++
		}
	}

	fmt.Fprintf(&b, "# Drift Analysis\n\n")
	fmt.Fprintf(&b, "%d fields analyzed, %d flagged for divergence, %d schema-drift findings.\n\n",
		len(table.Rows), flagged, driftCount)

	b.WriteString("| Field | Error Probability | Detail |\n")
	b.WriteString("|---|---|---|\n")
	for _, r := range table.Rows {
		detail := r.Details
		if detail == "" && r.PValue != nil {
			detail = fmt.Sprintf("p = %.4g", *r.PValue)
		}
		fmt.Fprintf(&b, "| %s | %.3f | %s |\n", r.Field, r.Probability, detail)
	}

	if driftCount > 0 {
		b.WriteString("\n**Schema drift detected** — fields above with the maximum score exist in only one dataset.\n")
	}

	return b.String()
}
