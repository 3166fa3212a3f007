package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/shopstream/internal/catalog"
	"github.com/dvloznov/shopstream/internal/config"
	"github.com/dvloznov/shopstream/internal/engine"
	exportbq "github.com/dvloznov/shopstream/internal/export/bigquery"
	exportgcs "github.com/dvloznov/shopstream/internal/export/gcs"
	"github.com/dvloznov/shopstream/internal/logger"
	"github.com/dvloznov/shopstream/internal/output"
	"github.com/dvloznov/shopstream/internal/rng"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(log)
	case "upload":
		runUpload(log)
	case "load":
		runLoad(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("shopstream dataset generator")
	fmt.Println("\nUsage:")
	fmt.Println("  datagen <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate  Generate the synthetic dataset to an output directory")
	fmt.Println("  upload    Upload a generated output directory to a GCS bucket")
	fmt.Println("  load      Load a generated output directory into BigQuery")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'datagen <command> -h' for more information on a command.")
}

func runGenerate(log zerolog.Logger) {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Loading configuration failed")
	}

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.IntVar(&cfg.NumUsers, "users", cfg.NumUsers, "number of users")
	fs.IntVar(&cfg.NumProducts, "products", cfg.NumProducts, "number of products")
	fs.IntVar(&cfg.NumCategories, "categories", cfg.NumCategories, "number of categories")
	fs.IntVar(&cfg.NumSessions, "sessions", cfg.NumSessions, "target session count")
	fs.IntVar(&cfg.NumTransactions, "transactions", cfg.NumTransactions, "target transaction count")
	fs.IntVar(&cfg.TimespanDays, "timespan-days", cfg.TimespanDays, "activity window in days")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "sessions per chunk file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "root random seed (0 picks one randomly)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel session builders")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	anchorFlag := fs.String("reference-time", "", "RFC3339 anchor for all timestamps (default: now)")
	fs.Parse(os.Args[2:])

	if *anchorFlag != "" {
		anchor, err := time.Parse(time.RFC3339, *anchorFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -reference-time")
		}
		cfg.ReferenceTime = anchor
	}

	if cfg.Seed == 0 {
		seed, err := rng.NewRootSeed()
		if err != nil {
			log.Fatal().Err(err).Msg("Picking a random seed failed")
		}
		cfg.Seed = seed
		log.Info().Int64("seed", seed).Msg("Using randomly picked seed")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	log.Info().
		Int("users", cfg.NumUsers).
		Int("products", cfg.NumProducts).
		Int("categories", cfg.NumCategories).
		Int("target_sessions", cfg.NumSessions).
		Int("target_transactions", cfg.NumTransactions).
		Int64("seed", cfg.Seed).
		Int("workers", cfg.Workers).
		Msg("Starting dataset generation")

	started := time.Now()

	cat, err := catalog.Generate(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Catalog generation failed")
	}
	log.Info().
		Int("categories", len(cat.Categories)).
		Int("products", len(cat.Products)).
		Int("users", len(cat.Users)).
		Msg("Catalog generated")

	loop := engine.NewLoop(cfg, cat, log)
	ds, report, err := loop.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Generation failed")
	}

	if !report.TargetsMet {
		log.Warn().
			Int("sessions", report.Sessions).
			Int("transactions", report.Transactions).
			Int("iterations", report.Iterations).
			Msg("Iteration cap hit before targets were met; emitting partial dataset")
	}

	writer, err := output.NewWriter(cfg.OutputDir, cfg.ChunkSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Preparing output writer failed")
	}
	paths, err := writer.WriteDataset(ctx, ds)
	if err != nil {
		log.Fatal().Err(err).Msg("Writing output failed")
	}

	log.Info().
		Int("sessions", report.Sessions).
		Int("transactions", report.Transactions).
		Int("iterations", report.Iterations).
		Bool("targets_met", report.TargetsMet).
		Int("files", len(paths)).
		Dur("elapsed", time.Since(started)).
		Msg("Dataset generation complete")
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucket := fs.String("bucket", "", "GCS bucket name")
	prefix := fs.String("prefix", "", "object name prefix")
	dir := fs.String("dir", "out", "output directory to upload")
	file := fs.String("file", "", "upload a single file instead of a directory")
	fs.Parse(os.Args[2:])

	if *bucket == "" {
		log.Fatal().Msg("Usage: datagen upload -bucket NAME [-prefix P] [-dir DIR | -file PATH]")
	}

	ctx := logger.WithContext(context.Background(), log)

	if *file != "" {
		objectName := path.Join(*prefix, filepath.Base(*file))
		if err := exportgcs.UploadFile(ctx, *bucket, objectName, *file); err != nil {
			log.Fatal().Err(err).Msg("Upload failed")
		}
		log.Info().Str("object", objectName).Str("bucket", *bucket).Msg("Upload complete")
		return
	}

	objects, err := exportgcs.UploadDataset(ctx, *bucket, *prefix, *dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}
	log.Info().Int("objects", len(objects)).Str("bucket", *bucket).Msg("Upload complete")
}

func runLoad(log zerolog.Logger) {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	project := fs.String("project", "", "GCP project id")
	bqDataset := fs.String("dataset", "", "BigQuery dataset id")
	dir := fs.String("dir", "out", "output directory to load")
	fs.Parse(os.Args[2:])

	if *project == "" || *bqDataset == "" {
		log.Fatal().Msg("Usage: datagen load -project ID -dataset ID [-dir DIR]")
	}

	ctx := logger.WithContext(context.Background(), log)

	ds, err := output.ReadDataset(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Reading output directory failed")
	}

	loader := exportbq.NewLoader(*project, *bqDataset)
	if err := loader.LoadDataset(ctx, ds); err != nil {
		log.Fatal().Err(err).Msg("Load failed")
	}
	log.Info().
		Int("users", len(ds.Users)).
		Int("products", len(ds.Products)).
		Int("sessions", len(ds.Sessions)).
		Int("transactions", len(ds.Transactions)).
		Msg("Load complete")
}
