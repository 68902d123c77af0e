package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Raw column names after header canonicalization.
const (
	ColDoctorID    = "doctor_id"
	ColName        = "name"
	ColSpecialty   = "specialty"
	ColBookingID   = "booking_id"
	ColPatientID   = "patient_id"
	ColBookingDate = "booking_date"
	ColStatus      = "status"
)

// Row holds one raw data row keyed by canonical column name. Cell values are
// the untouched cell texts; coercion happens in the transform stage.
type Row struct {
	// SourceRow is the 1-based row number in the source sheet, for log context.
	SourceRow int
	Cells     map[string]string
}

// Get returns the raw cell text for a canonical column, or "" when the source
// sheet has no such column or the row is short.
func (r Row) Get(col string) string {
	return r.Cells[col]
}

// tableSpec declares the expected shape of one source sheet.
type tableSpec struct {
	name     string
	required []string
	optional []string
	// strayHeader reports whether a data row is a repeated header row that
	// slipped into the data region and must be stripped.
	strayHeader func(cells map[string]string) bool
}

var doctorsSpec = tableSpec{
	name:     "doctors",
	required: []string{ColDoctorID, ColName},
	optional: []string{ColSpecialty},
	strayHeader: func(cells map[string]string) bool {
		return strings.EqualFold(strings.TrimSpace(cells[ColDoctorID]), ColDoctorID)
	},
}

var appointmentsSpec = tableSpec{
	name:     "appointments",
	required: []string{ColBookingID, ColPatientID, ColDoctorID, ColBookingDate, ColStatus},
	strayHeader: func(cells map[string]string) bool {
		return strings.Contains(strings.ToLower(cells[ColBookingID]), "booking")
	},
}

// Reader runs the extract stage over source workbooks.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger falls back to slog.Default().
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadDoctors reads the doctors workbook and returns its raw rows in source
// order. The sheet must contain doctor_id and name columns (any header casing
// or spacing); specialty is optional.
func (r *Reader) ReadDoctors(path string) ([]Row, error) {
	return r.readSheet(path, doctorsSpec)
}

// ReadAppointments reads the appointments workbook and returns its raw rows in
// source order. The sheet must contain booking_id, patient_id, doctor_id,
// booking_date, and status columns.
func (r *Reader) ReadAppointments(path string) ([]Row, error) {
	return r.readSheet(path, appointmentsSpec)
}

// readSheet opens a workbook, locates the header row on the first sheet, maps
// expected columns by canonical header name, and returns the data rows below
// it. A missing required column is an extraction failure, not a row-level one:
// the whole sheet is misaligned and nothing downstream can be trusted.
func (r *Reader) readSheet(path string, spec tableSpec) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s workbook: %w", spec.name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s workbook has no sheets", spec.name)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	headerRow, columnMap, err := r.mapColumns(rows, spec)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Mapped sheet columns",
		slog.String("table", spec.name),
		slog.String("sheet", sheetName),
		slog.Int("header_row", headerRow+1),
		slog.Any("columns", columnMap))

	var out []Row
	stripped := 0
	for i := headerRow + 1; i < len(rows); i++ {
		cells := make(map[string]string, len(columnMap))
		empty := true
		for col, idx := range columnMap {
			if idx < len(rows[i]) {
				cells[col] = rows[i][idx]
				if strings.TrimSpace(rows[i][idx]) != "" {
					empty = false
				}
			}
		}
		if empty {
			continue
		}
		if spec.strayHeader != nil && spec.strayHeader(cells) {
			stripped++
			continue
		}
		out = append(out, Row{SourceRow: i + 1, Cells: cells})
	}

	r.logger.Info("Extract completed",
		slog.String("table", spec.name),
		slog.String("file", path),
		slog.Int("rows", len(out)),
		slog.Int("stray_header_rows", stripped))

	return out, nil
}

// mapColumns finds the header row and resolves each expected column to its
// position. The header row is the first row that carries every required
// column after canonicalization.
func (r *Reader) mapColumns(rows [][]string, spec tableSpec) (int, map[string]int, error) {
	for i, row := range rows {
		columnMap := make(map[string]int, len(spec.required)+len(spec.optional))
		for j, header := range row {
			canon := CanonicalHeader(header)
			if canon == "" {
				continue
			}
			if _, dup := columnMap[canon]; !dup {
				columnMap[canon] = j
			}
		}

		missing := missingColumns(columnMap, spec.required)
		if len(missing) == 0 {
			for _, col := range spec.optional {
				if _, ok := columnMap[col]; !ok {
					r.logger.Warn("Optional column not found in sheet",
						slog.String("table", spec.name),
						slog.String("column", col))
				}
			}
			return i, columnMap, nil
		}

		// Rows that match some but not all headers are treated as noise
		// above the real header; keep scanning.
		if len(missing) < len(spec.required) {
			r.logger.Debug("Partial header match, scanning on",
				slog.String("table", spec.name),
				slog.Int("row", i+1),
				slog.Any("missing", missing))
		}
	}

	return 0, nil, fmt.Errorf("%s sheet is missing expected columns %v", spec.name, spec.required)
}

// missingColumns returns the required columns absent from the mapping.
func missingColumns(columnMap map[string]int, required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := columnMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// CanonicalHeader normalizes a header cell: trim, lowercase, and collapse
// internal whitespace runs to single underscores, so "Doctor ID", "doctor_id"
// and " DOCTOR  ID " all map to "doctor_id".
func CanonicalHeader(h string) string {
	fields := strings.Fields(strings.ToLower(h))
	return strings.Join(fields, "_")
}
