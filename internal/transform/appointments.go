package transform

import (
	"log/slog"
	"math"
	"sort"

	"healthetl/internal/extract"
	"healthetl/pkg/contracts/domain"
)

// CleanAppointments normalizes, validates, and deduplicates raw appointment
// rows. All five fields are required; status must canonicalize. Rows sharing
// a booking_id are reduced to the one with the earliest booking_date, ties
// keeping the earliest source position. The result is sorted by
// (booking_date, booking_id).
func (c *Cleaner) CleanAppointments(rows []extract.Row) ([]domain.Appointment, *Report) {
	report := newReport(len(rows))

	var appointments []domain.Appointment
	for _, row := range rows {
		appt, ok := c.normalizeAppointment(row, report)
		if !ok {
			continue
		}
		appointments = append(appointments, appt)
	}

	appointments, discarded := dedupeByBookingID(appointments)
	report.DuplicatesDiscarded = discarded
	if discarded > 0 {
		c.logger.Warn("Discarded duplicate booking ids, keeping earliest booking_date each",
			slog.Int("discarded", discarded))
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		if !appointments[i].BookingDate.Equal(appointments[j].BookingDate) {
			return appointments[i].BookingDate.Before(appointments[j].BookingDate)
		}
		return appointments[i].BookingID < appointments[j].BookingID
	})

	report.Kept = len(appointments)
	c.logger.Info("Cleaned appointments",
		slog.Int("input", report.Input),
		slog.Int("kept", report.Kept),
		slog.Int("dropped", report.TotalDropped()),
		slog.Int("duplicates_discarded", report.DuplicatesDiscarded))

	return appointments, report
}

// normalizeAppointment coerces one raw row. Coercion failure is a
// data-quality signal: the row is counted and skipped, never a program fault.
func (c *Cleaner) normalizeAppointment(row extract.Row, report *Report) (domain.Appointment, bool) {
	var appt domain.Appointment

	ids := []struct {
		col string
		dst func(int64)
	}{
		{extract.ColBookingID, func(v int64) { appt.BookingID = v }},
		{extract.ColPatientID, func(v int64) { appt.PatientID = v }},
		{extract.ColDoctorID, func(v int64) { appt.DoctorID = int(v) }},
	}
	for _, field := range ids {
		raw := cleanText(row.Get(field.col))
		if raw == "" {
			c.dropRow("appointments", row, DropMissingField, field.col, report)
			return appt, false
		}
		v, err := parseID(raw)
		if err != nil || (field.col == extract.ColDoctorID && (v < math.MinInt32 || v > math.MaxInt32)) {
			c.dropRow("appointments", row, DropInvalidInteger, field.col, report)
			return appt, false
		}
		field.dst(v)
	}

	rawDate := cleanText(row.Get(extract.ColBookingDate))
	if rawDate == "" {
		c.dropRow("appointments", row, DropMissingField, extract.ColBookingDate, report)
		return appt, false
	}
	date, err := parseDate(rawDate)
	if err != nil {
		c.dropRow("appointments", row, DropInvalidDate, extract.ColBookingDate, report)
		return appt, false
	}
	appt.BookingDate = date

	rawStatus := cleanText(row.Get(extract.ColStatus))
	if rawStatus == "" {
		c.dropRow("appointments", row, DropMissingField, extract.ColStatus, report)
		return appt, false
	}
	status, ok := CanonicalStatus(rawStatus)
	if !ok {
		c.dropRow("appointments", row, DropUnknownStatus, extract.ColStatus, report)
		return appt, false
	}
	appt.Status = status

	return appt, true
}

// dedupeByBookingID keeps exactly one row per booking_id: the one with the
// minimum booking_date, ties resolved by input order. Input order is the
// source extract order, which makes the choice deterministic.
func dedupeByBookingID(appointments []domain.Appointment) ([]domain.Appointment, int) {
	kept := make([]domain.Appointment, 0, len(appointments))
	index := make(map[int64]int, len(appointments))
	discarded := 0

	for _, appt := range appointments {
		at, ok := index[appt.BookingID]
		if !ok {
			index[appt.BookingID] = len(kept)
			kept = append(kept, appt)
			continue
		}
		discarded++
		if appt.BookingDate.Before(kept[at].BookingDate) {
			kept[at] = appt
		}
	}

	return kept, discarded
}
