package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dcarrillo/splitser-export/internal/config"
	"github.com/dcarrillo/splitser-export/internal/export"
	"github.com/dcarrillo/splitser-export/internal/logger"
	"github.com/dcarrillo/splitser-export/internal/splitser"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	listID := flag.String("list-id", "", "Splitser list ID (defaults to SPLITSER_LIST_ID)")
	page := flag.Int("page", 1, "Page number to fetch")
	perPage := flag.Int("per-page", 500, "Items per page")
	outDir := flag.String("out", ".", "Directory the output files are written to")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall timeout for the export")
	flag.Parse()

	// Load configuration; a missing COOKIE aborts before any network call.
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if *listID == "" {
		*listID = cfg.ListID
	}

	// Create context with timeout so the CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("list_id", *listID).
		Int("page", *page).
		Int("per_page", *perPage).
		Msg("Starting export")

	client := splitser.NewClient(cfg.Cookie)
	opts := export.Options{
		ListID:  *listID,
		Page:    *page,
		PerPage: *perPage,
		OutDir:  *outDir,
	}

	if err := export.Run(ctx, client, opts); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Println("done")
}
