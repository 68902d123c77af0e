package load

import (
	"context"
	"fmt"
	"log/slog"

	"healthetl/pkg/contracts/domain"
)

// Loader applies the cleaned sets to a Store. It exists so the pipeline
// depends on one operation rather than on store mechanics.
type Loader struct {
	store  Store
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger falls back to slog.Default().
func NewLoader(store Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, logger: logger}
}

// Load ensures the destination schema exists and atomically replaces the
// persisted content of both collections. Errors are run-fatal to the caller;
// they are never retried here — a constraint violation means a defect
// upstream, not a transient condition.
func (l *Loader) Load(ctx context.Context, doctors []domain.Doctor, appointments []domain.Appointment) error {
	if err := l.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure destination schema: %w", err)
	}

	if err := l.store.Replace(ctx, doctors, appointments); err != nil {
		return fmt.Errorf("atomic load unit failed, storage unchanged: %w", err)
	}

	l.logger.InfoContext(ctx, "Load completed",
		slog.Int("doctors", len(doctors)),
		slog.Int("appointments", len(appointments)))

	return nil
}
