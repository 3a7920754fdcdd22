// Package testkit generates deterministic demo datasets for CLI runs and
// tests: produce-style rows (size, color, weight) with a weighted color
// distribution, plus a corruption injector producing a candidate dataset with
// a known anomaly.
package testkit

import (
	"math/rand"

	"driftlens/domain/dataset"
)

// GeneratorConfig configures the produce data generator
type GeneratorConfig struct {
	SampleCount int
	Seed        int64
}

// DefaultConfig returns sensible defaults for demo data generation
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		SampleCount: 10000,
		Seed:        42,
	}
}

// ProduceGenerator generates produce-style demo rows
type ProduceGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewProduceGenerator creates a new generator seeded from the config
func NewProduceGenerator(config GeneratorConfig) *ProduceGenerator {
	return &ProduceGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// colorPool is weighted 18:6:1 green/yellow/red
var colorPool = func() []string {
	pool := make([]string, 0, 25)
	for i := 0; i < 18; i++ {
		pool = append(pool, "green")
	}
	for i := 0; i < 6; i++ {
		pool = append(pool, "yellow")
	}
	return append(pool, "red")
}()

// Generate produces a dataset with numeric size and weight columns and a
// categorical color column
func (g *ProduceGenerator) Generate() *dataset.Dataset {
	n := g.config.SampleCount

	size := make(dataset.Column, n)
	color := make(dataset.Column, n)
	weight := make(dataset.Column, n)

	for i := 0; i < n; i++ {
		size[i] = dataset.Num(float64(100 + g.rng.Intn(501)))
		color[i] = dataset.Str(colorPool[g.rng.Intn(len(colorPool))])
		weight[i] = dataset.Num(float64(1 + g.rng.Intn(5)))
	}

	ds := dataset.New()
	ds.SetColumn("size", size)
	ds.SetColumn("color", color)
	ds.SetColumn("weight", weight)
	return ds
}

// Corrupt returns a copy of a generated dataset with every 4th color forced
// to red, a categorical anomaly the chi-squared strategy should flag.
func (g *ProduceGenerator) Corrupt(ds *dataset.Dataset) *dataset.Dataset {
	out := dataset.New()
	for _, field := range ds.Fields() {
		col, _ := ds.Column(field)
		copied := make(dataset.Column, len(col))
		copy(copied, col)
		if field == "color" {
			for i := 0; i < len(copied); i += 4 {
				copied[i] = dataset.Str("red")
			}
		}
		out.SetColumn(field, copied)
	}
	return out
}
