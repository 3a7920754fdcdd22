package analysis

import (
	"fmt"

	"driftlens/domain/core"
)

// AdjustmentBonferroni is the only supported multiple-comparison correction
const AdjustmentBonferroni = "bonferroni"

// AdjustPValues applies a multiple-comparison correction to a batch of raw
// p-values. Bonferroni multiplies each p-value by the number of tests and
// caps at 1.0. Any other method is an unsupported-method error. Callers
// decide when to invoke this; Analyze never applies it internally.
func AdjustPValues(pValues []float64, method string) ([]float64, error) {
	if method != AdjustmentBonferroni {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedAdjustment, method)
	}

	n := float64(len(pValues))
	adjusted := make([]float64, len(pValues))
	for i, p := range pValues {
		v := p * n
		if v > 1.0 {
			v = 1.0
		}
		adjusted[i] = v
	}
	return adjusted, nil
}
