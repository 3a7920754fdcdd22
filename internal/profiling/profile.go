// Package profiling computes per-column summary statistics used to annotate
// reports. Profiles are descriptive only; they never feed score conversion.
package profiling

import (
	"github.com/montanaflynn/stats"

	"driftlens/domain/dataset"
)

// ColumnProfile summarizes one numeric column
type ColumnProfile struct {
	Field  string  `json:"field"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Profile computes a profile for a column. The second return is false when
// the column is empty or not numeric.
func Profile(field string, col dataset.Column) (ColumnProfile, bool) {
	values, ok := col.Floats()
	if !ok || len(values) == 0 {
		return ColumnProfile{}, false
	}

	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviationSample(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)

	return ColumnProfile{
		Field:  field,
		Count:  len(values),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
	}, true
}

// ProfileDataset profiles every numeric column of a dataset in field order
func ProfileDataset(ds *dataset.Dataset) []ColumnProfile {
	var out []ColumnProfile
	for _, field := range ds.Fields() {
		col, _ := ds.Column(field)
		if p, ok := Profile(field, col); ok {
			out = append(out, p)
		}
	}
	return out
}
