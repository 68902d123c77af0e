package load

import (
	"context"
	"fmt"

	"healthetl/pkg/contracts/domain"
)

// MemoryStore is an in-memory Store with the same observable semantics as the
// PostgreSQL store: Replace stages the new content, enforces the structural
// constraints of the destination schema, and only then swaps it in. On any
// error the previous content is untouched.
type MemoryStore struct {
	schemaReady  bool
	doctors      []domain.Doctor
	appointments []domain.Appointment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// EnsureSchema marks the schema as created.
func (s *MemoryStore) EnsureSchema(ctx context.Context) error {
	s.schemaReady = true
	return nil
}

// Replace swaps the stored content for the given sets after checking the same
// constraints the SQL schema enforces. Staging happens on copies; the live
// slices are replaced only after every check passes.
func (s *MemoryStore) Replace(ctx context.Context, doctors []domain.Doctor, appointments []domain.Appointment) error {
	if !s.schemaReady {
		return fmt.Errorf("schema does not exist")
	}

	stagedDoctors := make([]domain.Doctor, 0, len(doctors))
	doctorIDs := make(map[int]struct{}, len(doctors))
	for _, d := range doctors {
		if _, dup := doctorIDs[d.DoctorID]; dup {
			return fmt.Errorf("%w: duplicate doctor_id %d", ErrConstraint, d.DoctorID)
		}
		if d.Name == "" {
			return fmt.Errorf("%w: doctor %d has NULL name", ErrConstraint, d.DoctorID)
		}
		doctorIDs[d.DoctorID] = struct{}{}
		stagedDoctors = append(stagedDoctors, d)
	}

	stagedAppointments := make([]domain.Appointment, 0, len(appointments))
	bookingIDs := make(map[int64]struct{}, len(appointments))
	for _, a := range appointments {
		if _, dup := bookingIDs[a.BookingID]; dup {
			return fmt.Errorf("%w: duplicate booking_id %d", ErrConstraint, a.BookingID)
		}
		if _, ok := doctorIDs[a.DoctorID]; !ok {
			return fmt.Errorf("%w: appointment %d references missing doctor_id %d",
				ErrConstraint, a.BookingID, a.DoctorID)
		}
		if !a.Status.IsValid() {
			return fmt.Errorf("%w: appointment %d has status %q", ErrConstraint, a.BookingID, a.Status)
		}
		if a.BookingDate.IsZero() {
			return fmt.Errorf("%w: appointment %d has NULL booking_date", ErrConstraint, a.BookingID)
		}
		bookingIDs[a.BookingID] = struct{}{}
		staged := a
		staged.BookingDate = a.DateOnly()
		stagedAppointments = append(stagedAppointments, staged)
	}

	s.doctors = stagedDoctors
	s.appointments = stagedAppointments
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() {}

// Doctors returns a copy of the stored doctor rows.
func (s *MemoryStore) Doctors() []domain.Doctor {
	out := make([]domain.Doctor, len(s.doctors))
	copy(out, s.doctors)
	return out
}

// Appointments returns a copy of the stored appointment rows.
func (s *MemoryStore) Appointments() []domain.Appointment {
	out := make([]domain.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}
