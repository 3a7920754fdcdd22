// Package analysis implements the field-comparison engine: it classifies each
// field shared by the reference and candidate datasets, dispatches to a
// statistical strategy for a p-value, converts significance into a bounded
// error-probability score, and flags schema drift for fields present in only
// one dataset.
package analysis

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"driftlens/adapters/stats/strategies"
	"driftlens/domain/core"
	"driftlens/domain/dataset"
	"driftlens/domain/drift"
	"driftlens/internal/profiling"
)

// DegeneratePolicy decides what happens when a statistical test reports a
// degenerate input (empty sample, zero variance, singular table).
type DegeneratePolicy string

const (
	// DegenerateFail aborts the whole analysis naming the offending field
	DegenerateFail DegeneratePolicy = "fail"
	// DegenerateSkip drops the field from the result, like an unclassifiable one
	DegenerateSkip DegeneratePolicy = "skip"
)

// Config carries the tunable parts of an engine. Zero values are replaced
// with defaults by NewEngine.
type Config struct {
	// Alpha is the significance threshold for score conversion
	Alpha float64
	// IgnoreFields are excluded from analysis and drift detection
	IgnoreFields []string
	// Numeric is the strategy for numeric fields (default Welch t-test)
	Numeric strategies.NumericStrategy
	// Categorical is the strategy for categorical fields (default chi-squared)
	Categorical strategies.CategoricalStrategy
	// OnDegenerate selects the degenerate-input policy (default fail)
	OnDegenerate DegeneratePolicy
	// Parallelism bounds the per-field worker fan-out (default NumCPU)
	Parallelism int
}

// Engine compares two datasets field by field. It is immutable after
// construction: datasets, ignore-list and strategies are fixed, and Analyze
// may be called repeatedly and concurrently.
type Engine struct {
	reference   *dataset.Dataset
	candidate   *dataset.Dataset
	ignore      map[string]bool
	alpha       float64
	numeric     strategies.NumericStrategy
	categorical strategies.CategoricalStrategy
	degenerate  DegeneratePolicy
	parallelism int
}

// NewEngine creates a comparison engine over a reference and candidate dataset
func NewEngine(reference, candidate *dataset.Dataset, cfg Config) *Engine {
	if cfg.Alpha == 0 {
		cfg.Alpha = drift.DefaultAlpha
	}
	if cfg.Numeric == nil {
		cfg.Numeric = strategies.NewWelchTTest()
	}
	if cfg.Categorical == nil {
		cfg.Categorical = strategies.NewChiSquared()
	}
	if cfg.OnDegenerate == "" {
		cfg.OnDegenerate = DegenerateFail
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.NumCPU()
	}

	ignore := make(map[string]bool, len(cfg.IgnoreFields))
	for _, f := range cfg.IgnoreFields {
		ignore[f] = true
	}

	return &Engine{
		reference:   reference,
		candidate:   candidate,
		ignore:      ignore,
		alpha:       cfg.Alpha,
		numeric:     cfg.Numeric,
		categorical: cfg.Categorical,
		degenerate:  cfg.OnDegenerate,
		parallelism: cfg.Parallelism,
	}
}

// fieldPlan is one scheduled unit of work: a drift row to emit or a
// statistical comparison to run.
type fieldPlan struct {
	field  string
	status drift.Status
	kind   dataset.FieldKind
}

// Analyze compares every non-ignored field and returns the result table.
// Row order is deterministic: reference fields in native order, then
// candidate-only fields in native order. Per-field tests run concurrently;
// assembly is sequential so the order contract holds regardless of
// parallelism.
func (e *Engine) Analyze(ctx context.Context) (drift.Table, error) {
	plan := e.plan()

	outcomes := make([]drift.Outcome, len(plan))
	skipped := make([]bool, len(plan))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, p := range plan {
		if p.status != drift.StatusCompared {
			outcomes[i] = drift.Outcome{Status: p.status}
			continue
		}
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pValue, err := e.compare(p)
			if err != nil {
				if core.IsDegenerateInput(err) && e.degenerate == DegenerateSkip {
					skipped[i] = true
					return nil
				}
				return core.NewDegenerateInputError(p.field, err)
			}
			outcomes[i] = drift.Compared(pValue)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return drift.Table{}, err
	}

	var table drift.Table
	for i, p := range plan {
		if skipped[i] {
			continue
		}
		table.Rows = append(table.Rows, e.toResult(p.field, outcomes[i]))
	}

	log.Printf("[Engine] analyzed %d fields (%d rows emitted)", len(plan), len(table.Rows))
	return table, nil
}

// plan walks both schemas and schedules one unit of work per reportable
// field. Ignored fields contribute nothing; unclassifiable and empty shared
// fields are silently excluded from comparison but still drift-checked by
// membership above.
func (e *Engine) plan() []fieldPlan {
	var plan []fieldPlan

	for _, field := range e.reference.Fields() {
		if e.ignore[field] {
			continue
		}
		if !e.candidate.HasField(field) {
			plan = append(plan, fieldPlan{field: field, status: drift.StatusMissing})
			continue
		}
		col, _ := e.reference.Column(field)
		kind := dataset.Classify(col)
		if !kind.Comparable() {
			continue
		}
		plan = append(plan, fieldPlan{field: field, status: drift.StatusCompared, kind: kind})
	}

	for _, field := range e.candidate.Fields() {
		if e.ignore[field] || e.reference.HasField(field) {
			continue
		}
		plan = append(plan, fieldPlan{field: field, status: drift.StatusAdditional})
	}

	return plan
}

// compare dispatches one shared field to the strategy matching its kind
func (e *Engine) compare(p fieldPlan) (float64, error) {
	refCol, _ := e.reference.Column(p.field)
	candCol, _ := e.candidate.Column(p.field)

	switch p.kind {
	case dataset.KindNumeric:
		ref, _ := refCol.Floats()
		cand, ok := candCol.Floats()
		if !ok {
			// Candidate column disagrees with the reference's type; the
			// field cannot be tested numerically.
			return 0, fmt.Errorf("%w: candidate column is not numeric", core.ErrInsufficientData)
		}
		return e.numeric.CalculateProbability(ref, cand)
	case dataset.KindCategorical:
		ref, _ := refCol.Labels()
		cand, ok := candCol.Labels()
		if !ok {
			return 0, fmt.Errorf("%w: candidate column is not categorical", core.ErrInsufficientData)
		}
		return e.categorical.CalculateProbability(ref, cand)
	default:
		return 0, fmt.Errorf("%w: field kind %s", core.ErrInsufficientData, p.kind)
	}
}

// toResult converts an outcome into a result row, applying score conversion:
// drift rows carry the near-maximum score, significant p-values map to
// (1-p)*100, and anything at or above alpha collapses to zero.
func (e *Engine) toResult(field string, outcome drift.Outcome) drift.Result {
	if outcome.Status.Drift() {
		return drift.Result{
			Field:       field,
			Probability: drift.MaxProbability * 100,
			ExtraStatus: true,
			Details:     outcome.Status.Detail(),
		}
	}

	p := outcome.PValue
	score := 0.0
	if p < e.alpha {
		score = (1 - p) * 100
	}
	return drift.Result{
		Field:       field,
		Probability: score,
		PValue:      &p,
	}
}

// EffectSize returns the pooled-standard-deviation Cohen's d between the
// reference and candidate values of one numeric field. It returns 0.0 as a
// deliberate no-signal sentinel when the field is ignored, absent from either
// dataset, or not numeric on both sides.
func (e *Engine) EffectSize(field string) float64 {
	if e.ignore[field] {
		return 0
	}
	refCol, ok := e.reference.Column(field)
	if !ok {
		return 0
	}
	candCol, ok := e.candidate.Column(field)
	if !ok {
		return 0
	}
	if dataset.Classify(refCol) != dataset.KindNumeric {
		return 0
	}

	ref, _ := refCol.Floats()
	cand, ok := candCol.Floats()
	if !ok || len(ref) < 2 || len(cand) < 2 {
		return 0
	}

	mean1, _ := stats.Mean(ref)
	mean2, _ := stats.Mean(cand)
	var1, _ := stats.SampleVariance(ref)
	var2, _ := stats.SampleVariance(cand)

	n1 := float64(len(ref))
	n2 := float64(len(cand))
	pooledStd := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	if pooledStd == 0 {
		return 0
	}
	return math.Abs(mean1-mean2) / pooledStd
}

// Profiles returns summary statistics for the reference dataset's numeric,
// non-ignored columns in field order. Descriptive only; profiles never feed
// score conversion.
func (e *Engine) Profiles() []profiling.ColumnProfile {
	var out []profiling.ColumnProfile
	for _, field := range e.reference.Fields() {
		if e.ignore[field] {
			continue
		}
		col, _ := e.reference.Column(field)
		if p, ok := profiling.Profile(field, col); ok {
			out = append(out, p)
		}
	}
	return out
}

// Alpha returns the engine's significance threshold
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// Descriptors returns the field descriptors for the engine's datasets, with
// ignored fields marked out by omission.
func (e *Engine) Descriptors() []dataset.FieldDescriptor {
	all := dataset.Describe(e.reference, e.candidate)
	out := make([]dataset.FieldDescriptor, 0, len(all))
	for _, d := range all {
		if e.ignore[d.Name] {
			continue
		}
		out = append(out, d)
	}
	return out
}
