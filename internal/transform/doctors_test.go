package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthetl/internal/extract"
	"healthetl/pkg/contracts/domain"
)

func doctorRow(sourceRow int, id, name, specialty string) extract.Row {
	return extract.Row{
		SourceRow: sourceRow,
		Cells: map[string]string{
			extract.ColDoctorID:  id,
			extract.ColName:      name,
			extract.ColSpecialty: specialty,
		},
	}
}

func TestCleanDoctors(t *testing.T) {
	cleaner := NewCleaner(nil)

	t.Run("valid rows are normalized and sorted", func(t *testing.T) {
		doctors, report := cleaner.CleanDoctors([]extract.Row{
			doctorRow(2, "200", "  Dr. House ", "Diagnostics"),
			doctorRow(3, "100", "Dr. Pérez", " Vein "),
		})

		require.Len(t, doctors, 2)
		assert.Equal(t, domain.Doctor{DoctorID: 100, Name: "Dr. Pérez", Specialty: "Vein"}, doctors[0])
		assert.Equal(t, domain.Doctor{DoctorID: 200, Name: "Dr. House", Specialty: "Diagnostics"}, doctors[1])
		assert.Equal(t, 2, report.Kept)
		assert.Equal(t, 0, report.TotalDropped())
	})

	t.Run("missing required fields drop the row", func(t *testing.T) {
		doctors, report := cleaner.CleanDoctors([]extract.Row{
			doctorRow(2, "", "Dr. NoID", "Surgery"),
			doctorRow(3, "nan", "Dr. NaNID", "Surgery"),
			doctorRow(4, "300", "", "Surgery"),
			doctorRow(5, "301", "nan", "Surgery"),
			doctorRow(6, "302", "Dr. Valid", ""),
		})

		require.Len(t, doctors, 1)
		assert.Equal(t, 302, doctors[0].DoctorID)
		assert.Equal(t, 4, report.Dropped[DropMissingField])
	})

	t.Run("non numeric ids drop the row", func(t *testing.T) {
		doctors, report := cleaner.CleanDoctors([]extract.Row{
			doctorRow(2, "abc", "Dr. Text", ""),
			doctorRow(3, "10.5", "Dr. Fraction", ""),
			doctorRow(4, "9999999999", "Dr. Overflow", ""),
		})

		assert.Empty(t, doctors)
		assert.Equal(t, 3, report.Dropped[DropInvalidInteger])
	})

	t.Run("negative ids are integral and kept", func(t *testing.T) {
		doctors, report := cleaner.CleanDoctors([]extract.Row{
			doctorRow(2, "-3", "Dr. Negative", "Surgery"),
			doctorRow(3, "0", "Dr. Zero", ""),
		})

		require.Len(t, doctors, 2)
		assert.Equal(t, -3, doctors[0].DoctorID)
		assert.Equal(t, 0, doctors[1].DoctorID)
		assert.Equal(t, 0, report.TotalDropped())
	})

	t.Run("duplicate doctor ids keep the first valid occurrence", func(t *testing.T) {
		doctors, report := cleaner.CleanDoctors([]extract.Row{
			doctorRow(2, "100", "Dr. First", "Cardiology"),
			doctorRow(3, "100", "Dr. Second", "Dermatology"),
			doctorRow(4, "100", "Dr. Third", ""),
		})

		require.Len(t, doctors, 1)
		assert.Equal(t, "Dr. First", doctors[0].Name)
		assert.Equal(t, 2, report.DuplicatesDiscarded)
	})

	t.Run("missing specialty persists as empty", func(t *testing.T) {
		doctors, _ := cleaner.CleanDoctors([]extract.Row{
			doctorRow(2, "100", "Dr. Pérez", "nan"),
		})

		require.Len(t, doctors, 1)
		assert.Equal(t, "", doctors[0].Specialty)
	})
}
