package load

import (
	"context"
	"errors"

	"healthetl/pkg/contracts/domain"
)

// ErrConstraint marks a load failure caused by a storage constraint
// violation. It indicates a logic or data defect upstream and is never
// retried.
var ErrConstraint = errors.New("constraint violation")

// Store is the persistence boundary for the cleaned datasets.
type Store interface {
	// EnsureSchema creates the destination schema and tables if absent,
	// including primary keys, the doctor foreign key, and the status check.
	EnsureSchema(ctx context.Context) error

	// Replace swaps the entire persisted content of both collections for
	// the given sets as one atomic unit. On error, prior state is intact.
	Replace(ctx context.Context, doctors []domain.Doctor, appointments []domain.Appointment) error

	// Close releases the store's resources.
	Close()
}
