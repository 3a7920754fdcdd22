package main

import (
	"log"

	"github.com/joho/godotenv"

	"driftlens/internal/api"
	"driftlens/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	server := api.NewServer(cfg.Analysis.Alpha)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
