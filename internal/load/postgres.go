package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthetl/pkg/contracts/domain"
)

// integrity constraint violation class in the PostgreSQL error code space
const pgIntegrityViolationClass = "23"

// PostgresStore persists the cleaned sets in a PostgreSQL schema.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
	logger *slog.Logger
}

// NewPostgresStore connects to PostgreSQL and verifies the connection.
// The schema name must have been validated upstream; it is interpolated
// into DDL and statement text.
func NewPostgresStore(ctx context.Context, databaseURL, schema string, maxConns int32, logger *slog.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStore{pool: pool, schema: schema, logger: logger}, nil
}

// EnsureSchema creates the destination schema and both tables if they do not
// exist. The appointments table carries the foreign key to doctors and the
// status check; booking_id uniqueness is the primary key, enforced here as a
// backstop only — duplicates are resolved before load, never at this layer.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.doctors (
    doctor_id INTEGER PRIMARY KEY,
    name      TEXT NOT NULL,
    specialty TEXT
)`, s.schema),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.appointments (
    booking_id   BIGINT PRIMARY KEY,
    patient_id   BIGINT NOT NULL,
    doctor_id    INTEGER NOT NULL REFERENCES %s.doctors(doctor_id),
    booking_date DATE NOT NULL,
    status       TEXT NOT NULL CHECK (status IN ('confirmed','cancelled'))
)`, s.schema, s.schema),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema %s: %w", s.schema, err)
		}
	}

	s.logger.Info("Destination schema ready", slog.String("schema", s.schema))
	return nil
}

// Replace clears and reloads both tables inside one transaction. Sequencing
// satisfies the foreign key: appointments cleared first, doctors inserted
// before appointments. Any failure rolls the whole unit back.
func (s *PostgresStore) Replace(ctx context.Context, doctors []domain.Doctor, appointments []domain.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s.appointments`, s.schema)); err != nil {
		return classify(fmt.Errorf("clear appointments: %w", err))
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s.doctors`, s.schema)); err != nil {
		return classify(fmt.Errorf("clear doctors: %w", err))
	}

	batch := &pgx.Batch{}
	insertDoctor := fmt.Sprintf(
		`INSERT INTO %s.doctors (doctor_id, name, specialty) VALUES ($1, $2, $3)`, s.schema)
	for _, d := range doctors {
		batch.Queue(insertDoctor, d.DoctorID, d.Name, nullable(d.Specialty))
	}

	insertAppointment := fmt.Sprintf(
		`INSERT INTO %s.appointments (booking_id, patient_id, doctor_id, booking_date, status)
         VALUES ($1, $2, $3, $4, $5)`, s.schema)
	for _, a := range appointments {
		batch.Queue(insertAppointment, a.BookingID, a.PatientID, a.DoctorID, a.DateOnly(), string(a.Status))
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return classify(fmt.Errorf("insert rows: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("commit load transaction: %w", err))
	}

	s.logger.Info("Replaced persisted datasets",
		slog.String("schema", s.schema),
		slog.Int("doctors", len(doctors)),
		slog.Int("appointments", len(appointments)))

	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// classify wraps integrity-violation errors with ErrConstraint so callers can
// distinguish data defects from environment failures.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgIntegrityViolationClass {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}

// nullable maps an empty text field to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
