package strategies

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"driftlens/domain/core"
)

// MannWhitneyName is the wire name of the rank-based strategy
const MannWhitneyName = "mann-whitney"

// MannWhitneyU is the non-parametric rank-based two-sample test. All values
// from both samples are ranked jointly (ties get mid-ranks), the U statistic
// is derived from the rank sums, and the two-sided p-value uses the
// tie-corrected normal approximation with continuity correction. Preferred
// over the t-test when normality cannot be assumed.
type MannWhitneyU struct{}

// NewMannWhitneyU creates a new Mann-Whitney U strategy
func NewMannWhitneyU() *MannWhitneyU {
	return &MannWhitneyU{}
}

// Name returns the strategy's wire name
func (s *MannWhitneyU) Name() string { return MannWhitneyName }

// Describe returns a human-readable description
func (s *MannWhitneyU) Describe() string {
	return "Mann-Whitney U rank test for distributional differences"
}

// CalculateProbability returns the two-sided p-value for the U statistic
func (s *MannWhitneyU) CalculateProbability(reference, candidate []float64) (float64, error) {
	if len(reference) == 0 || len(candidate) == 0 {
		return 0, core.ErrEmptySample
	}

	n1 := float64(len(reference))
	n2 := float64(len(candidate))
	n := n1 + n2

	ranks, tieTerm := jointRanks(reference, candidate)

	// Rank sum of the reference sample
	r1 := 0.0
	for i := range reference {
		r1 += ranks[i]
	}

	u1 := r1 - n1*(n1+1)/2
	u2 := n1*n2 - u1
	u := math.Min(u1, u2)

	meanU := n1 * n2 / 2
	// Tie-corrected variance of U
	varU := n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if varU <= 0 {
		return 0, core.ErrZeroVariance
	}

	// Continuity correction: U is discrete
	z := (u - meanU + 0.5) / math.Sqrt(varU)

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	pValue := 2 * normal.CDF(z)
	if pValue > 1 {
		pValue = 1
	}
	return pValue, nil
}

// jointRanks ranks the concatenation of the two samples, assigning mid-ranks
// to ties. It returns one rank per value (sample order: reference then
// candidate) and the tie-correction term sum(t^3 - t) over tie groups.
func jointRanks(reference, candidate []float64) ([]float64, float64) {
	total := len(reference) + len(candidate)

	type indexed struct {
		value float64
		pos   int
	}
	all := make([]indexed, 0, total)
	for i, v := range reference {
		all = append(all, indexed{value: v, pos: i})
	}
	for i, v := range candidate {
		all = append(all, indexed{value: v, pos: len(reference) + i})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	ranks := make([]float64, total)
	tieTerm := 0.0

	for i := 0; i < total; {
		j := i
		for j < total && all[j].value == all[i].value {
			j++
		}
		// Mid-rank for the tie group [i, j)
		midRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[all[k].pos] = midRank
		}
		t := float64(j - i)
		if t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}

	return ranks, tieTerm
}
