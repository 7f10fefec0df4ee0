// Package main is the entry point for cavecrawl.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cavecrawl/internal/game"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
)

func main() {
	// .env is optional; it usually carries HONEYCOMB_CAVECRAWL_API_KEY.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ParseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	if cfg.Dump {
		if err := game.Dump(os.Stdout, cfg); err != nil {
			log.Fatalf("Dump failed: %v", err)
		}
		return
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb using our own env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Built here because .env files often hold an unexpanded reference.
	apiKey := os.Getenv("HONEYCOMB_CAVECRAWL_API_KEY")
	dataset := os.Getenv("HONEYCOMB_CAVECRAWL_DATASET")
	if dataset == "" {
		dataset = "cavecrawl"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
