// Package strategies holds the pluggable two-sample statistical tests the
// comparison engine dispatches to. Numeric strategies are interchangeable and
// selected by the caller at construction time; the categorical strategy is
// currently fixed to the chi-squared association test.
package strategies

import (
	"fmt"

	"driftlens/domain/core"
)

// NumericStrategy produces a two-sided significance value for two independent
// numeric samples. Implementations must tolerate unequal sample sizes and
// fail on degenerate input rather than returning a fabricated p-value.
type NumericStrategy interface {
	Name() string
	Describe() string
	CalculateProbability(reference, candidate []float64) (float64, error)
}

// CategoricalStrategy produces a two-sided significance value for two
// independent categorical samples.
type CategoricalStrategy interface {
	Name() string
	Describe() string
	CalculateProbability(reference, candidate []string) (float64, error)
}

// NumericByName resolves a numeric strategy from its wire name
func NumericByName(name string) (NumericStrategy, error) {
	switch name {
	case WelchName:
		return NewWelchTTest(), nil
	case MannWhitneyName:
		return NewMannWhitneyU(), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownStrategy, name)
	}
}

// NumericNames lists the wire names accepted by NumericByName
func NumericNames() []string {
	return []string{WelchName, MannWhitneyName}
}
