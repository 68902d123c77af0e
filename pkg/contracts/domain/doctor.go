package domain

// Placeholder values used when a doctor row is synthesized to cover an
// appointment whose real doctor record is absent from the source extract.
const (
	PlaceholderName      = "Unknown"
	PlaceholderSpecialty = "Unknown"
)

// Doctor represents a practitioner row in the cleaned dataset
type Doctor struct {
	DoctorID  int    `json:"doctor_id" db:"doctor_id" validate:"required"`
	Name      string `json:"name" db:"name" validate:"required"`
	Specialty string `json:"specialty,omitempty" db:"specialty"`
}

// IsPlaceholder reports whether the row was synthesized by referential repair
// rather than sourced from the doctors extract.
func (d Doctor) IsPlaceholder() bool {
	return d.Name == PlaceholderName && d.Specialty == PlaceholderSpecialty
}

// NewPlaceholderDoctor builds the synthetic row inserted for a doctor id that
// appointments reference but the doctors extract does not contain.
func NewPlaceholderDoctor(doctorID int) Doctor {
	return Doctor{
		DoctorID:  doctorID,
		Name:      PlaceholderName,
		Specialty: PlaceholderSpecialty,
	}
}
