package strategies

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"driftlens/domain/core"
)

// ChiSquaredName is the wire name of the categorical association strategy
const ChiSquaredName = "chi-squared"

// ChiSquared tests whether the category frequencies of the candidate sample
// diverge from the reference sample. The contingency table is 2 rows
// (dataset) by k columns (category), which tolerates unequal sample sizes.
// The table shape is validated before the statistic is computed: fewer than
// two observed categories or a zero expected cell is a degenerate input.
type ChiSquared struct{}

// NewChiSquared creates a new chi-squared association strategy
func NewChiSquared() *ChiSquared {
	return &ChiSquared{}
}

// Name returns the strategy's wire name
func (s *ChiSquared) Name() string { return ChiSquaredName }

// Describe returns a human-readable description
func (s *ChiSquared) Describe() string {
	return "Chi-squared association test on a dataset-by-category frequency table"
}

// CalculateProbability returns the p-value of the association test
func (s *ChiSquared) CalculateProbability(reference, candidate []string) (float64, error) {
	if len(reference) == 0 || len(candidate) == 0 {
		return 0, core.ErrEmptySample
	}

	refCounts := countLabels(reference)
	candCounts := countLabels(candidate)

	categories := labelUnion(refCounts, candCounts)
	if len(categories) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 categories, got %d", core.ErrDegenerateTable, len(categories))
	}

	total := float64(len(reference) + len(candidate))
	rowTotals := [2]float64{float64(len(reference)), float64(len(candidate))}

	chiSq := 0.0
	for _, cat := range categories {
		colTotal := float64(refCounts[cat] + candCounts[cat])
		observed := [2]float64{float64(refCounts[cat]), float64(candCounts[cat])}
		for row := 0; row < 2; row++ {
			expected := rowTotals[row] * colTotal / total
			if expected == 0 {
				return 0, fmt.Errorf("%w: zero expected frequency for category %q", core.ErrDegenerateTable, cat)
			}
			diff := observed[row] - expected
			chiSq += diff * diff / expected
		}
	}

	df := float64(len(categories) - 1) // (2-1) * (k-1)
	chiDist := distuv.ChiSquared{K: df}
	pValue := 1 - chiDist.CDF(chiSq)
	return pValue, nil
}

func countLabels(values []string) map[string]int {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	return counts
}

func labelUnion(a, b map[string]int) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
