package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"healthetl/pkg/contracts/domain"
)

// File names of the audit exports written before load.
const (
	DoctorsFile      = "final_doctors.csv"
	AppointmentsFile = "final_appointments.csv"
)

const dateFormat = "2006-01-02"

// CSVWriter writes the cleaned datasets to CSV files for inspection and audit
// before anything touches storage. The loader never reads these files.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer targeting the given output directory.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteDoctors exports the cleaned doctor set to final_doctors.csv.
func (w *CSVWriter) WriteDoctors(doctors []domain.Doctor) (string, error) {
	records := make([][]string, 0, len(doctors))
	for _, d := range doctors {
		records = append(records, []string{
			strconv.Itoa(d.DoctorID),
			d.Name,
			d.Specialty,
		})
	}
	return w.write(DoctorsFile, []string{"doctor_id", "name", "specialty"}, records)
}

// WriteAppointments exports the cleaned appointment set to
// final_appointments.csv with booking_date formatted as a calendar date.
func (w *CSVWriter) WriteAppointments(appointments []domain.Appointment) (string, error) {
	records := make([][]string, 0, len(appointments))
	for _, a := range appointments {
		records = append(records, []string{
			strconv.FormatInt(a.BookingID, 10),
			strconv.FormatInt(a.PatientID, 10),
			strconv.Itoa(a.DoctorID),
			a.BookingDate.Format(dateFormat),
			string(a.Status),
		})
	}
	return w.write(AppointmentsFile, []string{"booking_id", "patient_id", "doctor_id", "booking_date", "status"}, records)
}

// write creates the output directory if needed and writes one CSV file with a
// UTF-8 BOM so Excel opens it correctly.
func (w *CSVWriter) write(name string, headers []string, records [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM helps Excel recognize the encoding
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	if err := writeRecords(file, headers, records); err != nil {
		return "", err
	}

	w.logger.Info("Wrote audit export",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	return path, nil
}

// writeRecords encodes the header and data rows. The flush runs before the
// error check so a write failure surfacing at flush time still fails the
// export.
func writeRecords(out io.Writer, headers []string, records [][]string) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
