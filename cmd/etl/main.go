package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"healthetl/internal/config"
	"healthetl/internal/infrastructure"
	"healthetl/internal/load"
	"healthetl/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	doctorsFile := flag.String("doctors", "", "path to the doctors .xlsx export")
	appointmentsFile := flag.String("appointments", "", "path to the appointments .xlsx export")
	dbURL := flag.String("db-url", "", "PostgreSQL connection URL (overrides config)")
	schema := flag.String("schema", "", "destination schema name (overrides config, default healthtech)")
	outDir := flag.String("out", "", "directory for audit CSV exports (overrides config)")
	dryRun := flag.Bool("dry-run", false, "run against an in-memory store, leaving the database untouched")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags win over environment and file values.
	if *doctorsFile != "" {
		cfg.Input.DoctorsFile = *doctorsFile
	}
	if *appointmentsFile != "" {
		cfg.Input.AppointmentsFile = *appointmentsFile
	}
	if *dbURL != "" {
		cfg.Database.URL = *dbURL
	}
	if *schema != "" {
		cfg.Database.Schema = *schema
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())

	if err := run(ctx, cfg, logger, *dryRun); err != nil {
		logger.ErrorContext(ctx, "Pipeline failed", "error", err)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, dryRun bool) error {
	var store load.Store
	if dryRun {
		logger.InfoContext(ctx, "Dry run: loading into in-memory store, database untouched")
		store = load.NewMemoryStore()
	} else {
		pgStore, err := load.NewPostgresStore(ctx, cfg.Database.URL, cfg.Database.Schema, cfg.Database.MaxConns, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		store = pgStore
	}
	defer store.Close()

	report, err := pipeline.New(cfg, store, logger).Run(ctx)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Run summary",
		slog.Int("raw_doctor_rows", report.Doctors.Input),
		slog.Int("raw_appointment_rows", report.Appointments.Input),
		slog.Any("doctor_rows_dropped", report.Doctors.Dropped),
		slog.Any("appointment_rows_dropped", report.Appointments.Dropped),
		slog.Int("duplicate_doctors_discarded", report.Doctors.DuplicatesDiscarded),
		slog.Int("duplicate_bookings_discarded", report.Appointments.DuplicatesDiscarded),
		slog.Int("placeholder_doctors", report.PlaceholdersAdded),
		slog.Int("doctors_loaded", report.LoadedDoctors),
		slog.Int("appointments_loaded", report.LoadedAppointments))

	return nil
}
