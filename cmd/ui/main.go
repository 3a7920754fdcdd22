package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"driftlens/adapters/excel"
	"driftlens/adapters/stats/strategies"
	"driftlens/domain/dataset"
	"driftlens/internal/analysis"
	"driftlens/internal/config"
	"driftlens/internal/testkit"
	"driftlens/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

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
	})

	server, err := ui.NewServer(engine, excel.NewReportWriter())
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	log.Printf("starting driftlens UI on http://localhost:%s", cfg.Server.Port)
	log.Fatal(server.Start(":" + cfg.Server.Port))
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
