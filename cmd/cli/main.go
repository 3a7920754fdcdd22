package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"driftlens/adapters/excel"
	"driftlens/adapters/postgres"
	"driftlens/adapters/stats/strategies"
	"driftlens/domain/dataset"
	"driftlens/domain/drift"
	"driftlens/internal/analysis"
	"driftlens/internal/config"
	"driftlens/internal/testkit"
)

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	reference, candidate, err := loadDatasets(cfg)
	if err != nil {
		log.Fatalf("failed to load datasets: %v", err)
	}

	numeric, err := strategies.NumericByName(cfg.Analysis.NumericStrategy)
	if err != nil {
		log.Fatalf("invalid numeric strategy: %v", err)
	}

	engine := analysis.NewEngine(reference, candidate, analysis.Config{
		Alpha:        cfg.Analysis.Alpha,
		Numeric:      numeric,
		OnDegenerate: analysis.DegeneratePolicy(cfg.Analysis.DegeneratePolicy),
		Parallelism:  cfg.Analysis.Parallelism,
	})

	ctx := context.Background()
	table, err := engine.Analyze(ctx)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	fmt.Println(analysis.MarkdownSummary(table))
	printProfiles(engine)
	printEffectSizes(engine, reference, table)

	reporter := excel.NewReportWriter()
	if err := reporter.Render(table, engine.Descriptors(), cfg.Paths.ReportFile); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}

	if cfg.Database.URL != "" {
		persistRun(ctx, cfg, table)
	}
}

// loadDatasets reads reference and candidate from files when configured,
// otherwise falls back to the deterministic demo generator.
func loadDatasets(cfg *config.Config) (*dataset.Dataset, *dataset.Dataset, error) {
	if cfg.Paths.ReferenceFile != "" && cfg.Paths.CandidateFile != "" {
		reference, err := excel.NewDataReader(cfg.Paths.ReferenceFile).ReadDataset()
		if err != nil {
			return nil, nil, err
		}
		candidate, err := excel.NewDataReader(cfg.Paths.CandidateFile).ReadDataset()
		if err != nil {
			return nil, nil, err
		}
		return reference, candidate, nil
	}

	log.Println("no input files configured, generating demo datasets")
	gen := testkit.NewProduceGenerator(testkit.DefaultConfig())
	reference := gen.Generate()
	candidate := gen.Corrupt(testkit.NewProduceGenerator(testkit.DefaultConfig()).Generate())
	return reference, candidate, nil
}

func printProfiles(engine *analysis.Engine) {
	for _, p := range engine.Profiles() {
		fmt.Printf("reference %s: n=%d mean=%.2f std=%.2f min=%.2f median=%.2f max=%.2f\n",
			p.Field, p.Count, p.Mean, p.StdDev, p.Min, p.Median, p.Max)
	}
}

func printEffectSizes(engine *analysis.Engine, reference *dataset.Dataset, table drift.Table) {
	for _, field := range reference.Fields() {
		if _, ok := table.Lookup(field); !ok {
			continue
		}
		if d := engine.EffectSize(field); d > 0 {
			fmt.Printf("effect size (Cohen's d) for %s: %.4f\n", field, d)
		}
	}
}

func persistRun(ctx context.Context, cfg *config.Config, table drift.Table) {
	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Printf("skipping run persistence: %v", err)
		return
	}
	defer db.Close()

	run := drift.NewRun(cfg.Analysis.NumericStrategy, cfg.Analysis.Alpha, nil, table)
	if err := postgres.NewRunRepository(db).Save(ctx, run); err != nil {
		log.Printf("failed to persist run: %v", err)
		return
	}
	log.Printf("run %s persisted (fingerprint %s)", run.ID, run.Fingerprint)
}
