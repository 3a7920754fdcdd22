package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftlens/domain/core"
	"driftlens/domain/dataset"
	"driftlens/domain/drift"
)

func numericColumn(values ...float64) dataset.Column {
	col := make(dataset.Column, len(values))
	for i, v := range values {
		col[i] = dataset.Num(v)
	}
	return col
}

func categoricalColumn(values ...string) dataset.Column {
	col := make(dataset.Column, len(values))
	for i, v := range values {
		col[i] = dataset.Str(v)
	}
	return col
}

func demoDatasets() (*dataset.Dataset, *dataset.Dataset) {
	reference := dataset.New()
	reference.SetColumn("size", numericColumn(20, 22, 21, 23, 18))
	reference.SetColumn("color", categoricalColumn("green", "green", "yellow", "green", "red"))
	reference.SetColumn("legacy", numericColumn(1, 2, 3))

	candidate := dataset.New()
	candidate.SetColumn("size", numericColumn(35, 32, 40, 30, 38))
	candidate.SetColumn("color", categoricalColumn("red", "red", "yellow", "green", "red"))
	candidate.SetColumn("surprise", categoricalColumn("x", "y"))

	return reference, candidate
}

func TestAnalyze_SharedFields(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{})

	table, err := engine.Analyze(context.Background())
	require.NoError(t, err)

	row, ok := table.Lookup("size")
	require.True(t, ok)
	assert.False(t, row.ExtraStatus)
	assert.Empty(t, row.Details)
	require.NotNil(t, row.PValue)
	assert.GreaterOrEqual(t, row.Probability, 0.0)
	assert.LessOrEqual(t, row.Probability, 100.0)
	// Wildly different means: significant, so score = (1-p)*100
	assert.Greater(t, row.Probability, 99.0)

	_, ok = table.Lookup("color")
	require.True(t, ok)
}

func TestAnalyze_DriftRows(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{})

	table, err := engine.Analyze(context.Background())
	require.NoError(t, err)

	missing, ok := table.Lookup("legacy")
	require.True(t, ok, "reference-only field must emit a drift row")
	assert.True(t, missing.ExtraStatus)
	assert.Equal(t, 99.999, missing.Probability)
	assert.Equal(t, "Missing in candidate data", missing.Details)
	assert.Nil(t, missing.PValue)

	extra, ok := table.Lookup("surprise")
	require.True(t, ok, "candidate-only field must emit a drift row")
	assert.True(t, extra.ExtraStatus)
	assert.Equal(t, 99.999, extra.Probability)
	assert.Equal(t, "Additional in candidate data", extra.Details)
	assert.NotEqual(t, missing.Details, extra.Details)
}

func TestAnalyze_RowOrdering(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{})

	table, err := engine.Analyze(context.Background())
	require.NoError(t, err)

	// Reference fields in native order, then candidate-only fields
	assert.Equal(t, []string{"size", "color", "legacy", "surprise"}, table.Fields())
}

func TestAnalyze_IgnoredFieldsNeverAppear(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{
		IgnoreFields: []string{"legacy", "surprise", "color"},
	})

	table, err := engine.Analyze(context.Background())
	require.NoError(t, err)

	for _, field := range []string{"legacy", "surprise", "color"} {
		_, ok := table.Lookup(field)
		assert.False(t, ok, "ignored field %s must not appear, even as drift", field)
	}
	assert.Equal(t, []string{"size"}, table.Fields())
}

func TestAnalyze_UnclassifiableAndEmptySkipped(t *testing.T) {
	reference := dataset.New()
	reference.SetColumn("mixed", dataset.Column{dataset.Num(1), dataset.Str("a")})
	reference.SetColumn("empty", dataset.Column{})
	reference.SetColumn("size", numericColumn(1, 2, 3, 4))

	candidate := dataset.New()
	candidate.SetColumn("mixed", categoricalColumn("a", "b"))
	candidate.SetColumn("empty", dataset.Column{})
	candidate.SetColumn("size", numericColumn(1, 2, 3, 5))

	engine := NewEngine(reference, candidate, Config{})
	table, err := engine.Analyze(context.Background())
	require.NoError(t, err)

	_, ok := table.Lookup("mixed")
	assert.False(t, ok, "mixed-type fields are silently excluded")
	_, ok = table.Lookup("empty")
	assert.False(t, ok, "empty fields are silently excluded")
	_, ok = table.Lookup("size")
	assert.True(t, ok)
}

func TestAnalyze_Deterministic(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{Parallelism: 4})

	first, err := engine.Analyze(context.Background())
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestAnalyze_DegeneratePolicies(t *testing.T) {
	reference := dataset.New()
	reference.SetColumn("flat", numericColumn(5, 5, 5, 5))
	reference.SetColumn("size", numericColumn(1, 2, 3, 4))

	candidate := dataset.New()
	candidate.SetColumn("flat", numericColumn(5, 5, 5, 5))
	candidate.SetColumn("size", numericColumn(1, 2, 3, 5))

	// Default policy aborts the run naming the field
	engine := NewEngine(reference, candidate, Config{})
	_, err := engine.Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInput(err))
	assert.Contains(t, err.Error(), "flat")

	// Skip policy drops the field and keeps the rest
	engine = NewEngine(reference, candidate, Config{OnDegenerate: DegenerateSkip})
	table, err := engine.Analyze(context.Background())
	require.NoError(t, err)
	_, ok := table.Lookup("flat")
	assert.False(t, ok)
	_, ok = table.Lookup("size")
	assert.True(t, ok)
}

func TestScoreConversion(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{})

	// At or above alpha: collapsed to zero
	r := engine.toResult("f", drift.Compared(0.05))
	assert.Equal(t, 0.0, r.Probability)
	r = engine.toResult("f", drift.Compared(0.9))
	assert.Equal(t, 0.0, r.Probability)

	// Below alpha: lower p-value means higher score
	low := engine.toResult("f", drift.Compared(0.001))
	high := engine.toResult("f", drift.Compared(0.04))
	assert.Greater(t, low.Probability, high.Probability)
	assert.InDelta(t, 99.9, low.Probability, 0.001)

	// Drift rows pin to the near-maximum score
	d := engine.toResult("f", drift.Outcome{Status: drift.StatusMissing})
	assert.Equal(t, 99.999, d.Probability)
	assert.True(t, d.ExtraStatus)
}

func TestEffectSize(t *testing.T) {
	reference := dataset.New()
	reference.SetColumn("size", numericColumn(20, 22, 21, 23, 18))
	reference.SetColumn("same", numericColumn(1, 2, 3))
	reference.SetColumn("color", categoricalColumn("a", "b"))

	candidate := dataset.New()
	candidate.SetColumn("size", numericColumn(35, 32, 40, 30, 38))
	candidate.SetColumn("same", numericColumn(1, 2, 3))
	candidate.SetColumn("color", categoricalColumn("a", "b"))

	engine := NewEngine(reference, candidate, Config{})

	d := engine.EffectSize("size")
	assert.Greater(t, d, 0.0)
	assert.False(t, d != d, "effect size must be finite") // NaN check

	assert.InDelta(t, 0.0, engine.EffectSize("same"), 1e-9)

	// No-signal sentinels: non-numeric, unknown and ignored fields
	assert.Equal(t, 0.0, engine.EffectSize("color"))
	assert.Equal(t, 0.0, engine.EffectSize("nope"))

	ignoring := NewEngine(reference, candidate, Config{IgnoreFields: []string{"size"}})
	assert.Equal(t, 0.0, ignoring.EffectSize("size"))
}

func TestProfiles_NumericNonIgnoredOnly(t *testing.T) {
	reference, candidate := demoDatasets()
	engine := NewEngine(reference, candidate, Config{IgnoreFields: []string{"legacy"}})

	profiles := engine.Profiles()
	require.Len(t, profiles, 1, "only size is numeric and not ignored")
	assert.Equal(t, "size", profiles[0].Field)
	assert.Equal(t, 5, profiles[0].Count)
	assert.InDelta(t, 20.8, profiles[0].Mean, 1e-9)
}

func TestEffectSize_KnownValue(t *testing.T) {
	reference := dataset.New()
	reference.SetColumn("size", numericColumn(20, 22, 21, 23, 18))
	candidate := dataset.New()
	candidate.SetColumn("size", numericColumn(35, 32, 40, 30, 38))

	engine := NewEngine(reference, candidate, Config{})

	// means 20.8 vs 35, pooled std sqrt((4*3.7+4*17)/8) = 3.217
	assert.InDelta(t, 4.414, engine.EffectSize("size"), 0.01)
}
