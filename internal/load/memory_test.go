package load

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthetl/pkg/contracts/domain"
)

var day = time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)

func cleanSets() ([]domain.Doctor, []domain.Appointment) {
	doctors := []domain.Doctor{
		{DoctorID: 100, Name: "Dr. Pérez", Specialty: "Vein"},
		{DoctorID: 105, Name: "Unknown", Specialty: "Unknown"},
	}
	appointments := []domain.Appointment{
		{BookingID: 1, PatientID: 34, DoctorID: 100, BookingDate: day, Status: domain.StatusConfirmed},
		{BookingID: 2, PatientID: 34, DoctorID: 105, BookingDate: day.AddDate(0, 0, 2), Status: domain.StatusCancelled},
	}
	return doctors, appointments
}

func TestMemoryStore_ReplaceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.EnsureSchema(ctx))

	doctors, appointments := cleanSets()

	require.NoError(t, store.Replace(ctx, doctors, appointments))
	first := store.Doctors()
	firstAppointments := store.Appointments()

	require.NoError(t, store.Replace(ctx, doctors, appointments))

	assert.Equal(t, first, store.Doctors())
	assert.Equal(t, firstAppointments, store.Appointments())
	assert.Len(t, store.Doctors(), 2)
	assert.Len(t, store.Appointments(), 2)
}

func TestMemoryStore_RequiresSchema(t *testing.T) {
	store := NewMemoryStore()
	doctors, appointments := cleanSets()

	err := store.Replace(context.Background(), doctors, appointments)
	assert.Error(t, err)
}

func TestMemoryStore_ConstraintViolationLeavesStateIntact(t *testing.T) {
	ctx := context.Background()
	goodDoctors, goodAppointments := cleanSets()

	tests := []struct {
		name         string
		doctors      []domain.Doctor
		appointments []domain.Appointment
	}{
		{
			name:    "duplicate booking id",
			doctors: goodDoctors,
			appointments: []domain.Appointment{
				{BookingID: 9, PatientID: 1, DoctorID: 100, BookingDate: day, Status: domain.StatusConfirmed},
				{BookingID: 9, PatientID: 2, DoctorID: 100, BookingDate: day, Status: domain.StatusConfirmed},
			},
		},
		{
			name:    "foreign key gap",
			doctors: goodDoctors,
			appointments: []domain.Appointment{
				{BookingID: 9, PatientID: 1, DoctorID: 999, BookingDate: day, Status: domain.StatusConfirmed},
			},
		},
		{
			name:    "status outside check constraint",
			doctors: goodDoctors,
			appointments: []domain.Appointment{
				{BookingID: 9, PatientID: 1, DoctorID: 100, BookingDate: day, Status: "pending"},
			},
		},
		{
			name: "duplicate doctor id",
			doctors: []domain.Doctor{
				{DoctorID: 100, Name: "Dr. A"},
				{DoctorID: 100, Name: "Dr. B"},
			},
			appointments: nil,
		},
		{
			name:         "null doctor name",
			doctors:      []domain.Doctor{{DoctorID: 100, Name: ""}},
			appointments: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.EnsureSchema(ctx))
			require.NoError(t, store.Replace(ctx, goodDoctors, goodAppointments))

			before := store.Doctors()
			beforeAppointments := store.Appointments()

			err := store.Replace(ctx, tt.doctors, tt.appointments)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConstraint)

			// The failed unit must not leave any partial writes behind.
			assert.Equal(t, before, store.Doctors())
			assert.Equal(t, beforeAppointments, store.Appointments())
		})
	}
}

func TestMemoryStore_ReplaceNormalizesDatesToCalendarDays(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.EnsureSchema(ctx))

	doctors := []domain.Doctor{{DoctorID: 100, Name: "Dr. Pérez"}}
	appointments := []domain.Appointment{
		{
			BookingID:   1,
			PatientID:   34,
			DoctorID:    100,
			BookingDate: time.Date(2025, 10, 21, 15, 30, 45, 0, time.UTC),
			Status:      domain.StatusConfirmed,
		},
	}

	require.NoError(t, store.Replace(ctx, doctors, appointments))
	require.Len(t, store.Appointments(), 1)
	assert.True(t, day.Equal(store.Appointments()[0].BookingDate))
}
