package transform

import (
	"log/slog"
	"math"
	"sort"

	"healthetl/internal/extract"
	"healthetl/pkg/contracts/domain"
)

// Cleaner runs the transform stage over raw extract rows.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a Cleaner. A nil logger falls back to slog.Default().
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// CleanDoctors normalizes and validates raw doctor rows. A row needs a
// coercible doctor_id and a non-empty name; specialty is kept as-is after
// trimming and may be empty. Duplicate doctor_id rows keep the first valid
// occurrence. The result is sorted by doctor_id.
func (c *Cleaner) CleanDoctors(rows []extract.Row) ([]domain.Doctor, *Report) {
	report := newReport(len(rows))

	seen := make(map[int]struct{}, len(rows))
	var doctors []domain.Doctor

	for _, row := range rows {
		rawID := cleanText(row.Get(extract.ColDoctorID))
		if rawID == "" {
			c.dropRow("doctors", row, DropMissingField, extract.ColDoctorID, report)
			continue
		}
		id, err := parseID(rawID)
		if err != nil || id < math.MinInt32 || id > math.MaxInt32 {
			c.dropRow("doctors", row, DropInvalidInteger, extract.ColDoctorID, report)
			continue
		}

		name := cleanText(row.Get(extract.ColName))
		if name == "" {
			c.dropRow("doctors", row, DropMissingField, extract.ColName, report)
			continue
		}

		if _, dup := seen[int(id)]; dup {
			report.DuplicatesDiscarded++
			c.logger.Warn("Discarding duplicate doctor row",
				slog.Int("source_row", row.SourceRow),
				slog.Int64("doctor_id", id))
			continue
		}
		seen[int(id)] = struct{}{}

		doctors = append(doctors, domain.Doctor{
			DoctorID:  int(id),
			Name:      name,
			Specialty: cleanText(row.Get(extract.ColSpecialty)),
		})
	}

	sort.Slice(doctors, func(i, j int) bool {
		return doctors[i].DoctorID < doctors[j].DoctorID
	})

	report.Kept = len(doctors)
	c.logger.Info("Cleaned doctors",
		slog.Int("input", report.Input),
		slog.Int("kept", report.Kept),
		slog.Int("dropped", report.TotalDropped()),
		slog.Int("duplicates_discarded", report.DuplicatesDiscarded))

	return doctors, report
}

// dropRow records and logs one excluded row.
func (c *Cleaner) dropRow(table string, row extract.Row, reason DropReason, field string, report *Report) {
	report.drop(reason)
	c.logger.Warn("Dropping invalid row",
		slog.String("table", table),
		slog.Int("source_row", row.SourceRow),
		slog.String("reason", string(reason)),
		slog.String("field", field))
}
