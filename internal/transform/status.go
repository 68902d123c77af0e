package transform

import (
	"strings"

	"healthetl/pkg/contracts/domain"
)

// statusVariants maps known source spellings to the canonical vocabulary.
// The Spanish forms show up in exports from Latin American clinics.
var statusVariants = map[string]domain.AppointmentStatus{
	"confirmed":  domain.StatusConfirmed,
	"confirmado": domain.StatusConfirmed,
	"confirmada": domain.StatusConfirmed,
	"cancelled":  domain.StatusCancelled,
	"canceled":   domain.StatusCancelled,
}

// CanonicalStatus maps a raw status cell to its canonical value. The lookup
// is exact after trim and lowercase: unknown variants are never guessed, the
// caller drops the row instead.
func CanonicalStatus(raw string) (domain.AppointmentStatus, bool) {
	status, ok := statusVariants[strings.ToLower(cleanText(raw))]
	return status, ok
}
