package strategies

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"driftlens/domain/core"
)

// WelchName is the wire name of the Welch t-test strategy
const WelchName = "welch"

// WelchTTest compares sample means without assuming equal variances.
// Degrees of freedom follow the Welch-Satterthwaite equation and the
// two-sided p-value comes from the Student's t distribution.
type WelchTTest struct{}

// NewWelchTTest creates a new Welch t-test strategy
func NewWelchTTest() *WelchTTest {
	return &WelchTTest{}
}

// Name returns the strategy's wire name
func (s *WelchTTest) Name() string { return WelchName }

// Describe returns a human-readable description
func (s *WelchTTest) Describe() string {
	return "Welch's two-sample t-test for means with unequal variances"
}

// CalculateProbability returns the two-sided p-value for the difference in means
func (s *WelchTTest) CalculateProbability(reference, candidate []float64) (float64, error) {
	if len(reference) == 0 || len(candidate) == 0 {
		return 0, core.ErrEmptySample
	}
	if len(reference) < 2 || len(candidate) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 values per sample", core.ErrInsufficientData)
	}

	n1 := float64(len(reference))
	n2 := float64(len(candidate))

	mean1, _ := stats.Mean(reference)
	mean2, _ := stats.Mean(candidate)
	var1, _ := stats.SampleVariance(reference)
	var2, _ := stats.SampleVariance(candidate)

	se2 := var1/n1 + var2/n2
	if se2 == 0 {
		return 0, core.ErrZeroVariance
	}

	tStat := (mean2 - mean1) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom
	df := se2 * se2 / (math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * tDist.CDF(-math.Abs(tStat))
	if pValue > 1 {
		pValue = 1
	}
	return pValue, nil
}
