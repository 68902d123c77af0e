package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"healthetl/internal/config"
	"healthetl/internal/exporter"
	"healthetl/internal/extract"
	"healthetl/internal/infrastructure"
	"healthetl/internal/load"
	"healthetl/internal/transform"
)

// Pipeline wires the extract, transform, export, and load stages for one run.
// Everything before the loader is a pure function of its input; the loader is
// the only component touching persistent state.
type Pipeline struct {
	cfg    *config.Config
	store  load.Store
	logger *slog.Logger
}

// New creates a Pipeline over the given store. A nil logger falls back to
// slog.Default().
func New(cfg *config.Config, store load.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, store: store, logger: logger}
}

// Run executes one batch run end to end and returns its report. The error is
// non-nil only for run-fatal conditions (extraction, audit export, load);
// row-level defects are absorbed into the report counts.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	started := time.Now()
	logger := infrastructure.LoggerWithContext(ctx, p.logger)

	logger.Info("Starting ETL run",
		slog.String("doctors_file", p.cfg.Input.DoctorsFile),
		slog.String("appointments_file", p.cfg.Input.AppointmentsFile),
		slog.String("schema", p.cfg.Database.Schema))

	reader := extract.NewReader(logger)
	rawDoctors, err := reader.ReadDoctors(p.cfg.Input.DoctorsFile)
	if err != nil {
		return nil, fmt.Errorf("extract doctors: %w", err)
	}
	rawAppointments, err := reader.ReadAppointments(p.cfg.Input.AppointmentsFile)
	if err != nil {
		return nil, fmt.Errorf("extract appointments: %w", err)
	}

	cleaner := transform.NewCleaner(logger)
	doctors, doctorReport := cleaner.CleanDoctors(rawDoctors)
	appointments, appointmentReport := cleaner.CleanAppointments(rawAppointments)
	doctors, placeholders := cleaner.Repair(doctors, appointments)

	report := &RunReport{
		Doctors:            doctorReport,
		Appointments:       appointmentReport,
		PlaceholdersAdded:  placeholders,
		LoadedDoctors:      len(doctors),
		LoadedAppointments: len(appointments),
	}

	csvWriter := exporter.NewCSVWriter(p.cfg.Output.Dir, logger)
	if _, err := csvWriter.WriteDoctors(doctors); err != nil {
		return report, fmt.Errorf("export doctors audit file: %w", err)
	}
	if _, err := csvWriter.WriteAppointments(appointments); err != nil {
		return report, fmt.Errorf("export appointments audit file: %w", err)
	}

	loader := load.NewLoader(p.store, logger)
	if err := loader.Load(ctx, doctors, appointments); err != nil {
		return report, err
	}

	report.Duration = time.Since(started)
	logger.Info("ETL run completed",
		slog.Int("doctors_loaded", report.LoadedDoctors),
		slog.Int("appointments_loaded", report.LoadedAppointments),
		slog.Int("doctor_rows_dropped", doctorReport.TotalDropped()),
		slog.Int("appointment_rows_dropped", appointmentReport.TotalDropped()),
		slog.Int("duplicate_bookings_discarded", appointmentReport.DuplicatesDiscarded),
		slog.Int("placeholder_doctors", placeholders),
		slog.Duration("duration", report.Duration))

	return report, nil
}
