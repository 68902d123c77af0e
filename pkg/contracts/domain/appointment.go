package domain

import (
	"time"
)

// AppointmentStatus represents the canonical state of a booking
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the canonical values.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booking row in the cleaned dataset
type Appointment struct {
	BookingID   int64             `json:"booking_id" db:"booking_id" validate:"required"`
	PatientID   int64             `json:"patient_id" db:"patient_id" validate:"required"`
	DoctorID    int               `json:"doctor_id" db:"doctor_id" validate:"required"`
	BookingDate time.Time         `json:"booking_date" db:"booking_date" validate:"required"`
	Status      AppointmentStatus `json:"status" db:"status" validate:"required"`
}

// DateOnly normalizes the booking date to midnight UTC. The persisted column
// is a calendar date; any time-of-day component from the source is dropped.
func (a Appointment) DateOnly() time.Time {
	return time.Date(a.BookingDate.Year(), a.BookingDate.Month(), a.BookingDate.Day(), 0, 0, 0, 0, time.UTC)
}
