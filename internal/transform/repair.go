package transform

import (
	"log/slog"
	"sort"

	"healthetl/pkg/contracts/domain"
)

// Repair synthesizes placeholder doctor rows for every doctor_id referenced
// by an appointment but absent from the doctor set, so no appointment is
// orphaned at load time. Appointments carry the analytic signal; repairing
// the weaker side keeps them all. Placeholders are appended in ascending id
// order and the combined set is returned sorted by doctor_id.
//
// Repair is idempotent: a second pass over its own output adds nothing.
func (c *Cleaner) Repair(doctors []domain.Doctor, appointments []domain.Appointment) ([]domain.Doctor, int) {
	known := make(map[int]struct{}, len(doctors))
	for _, d := range doctors {
		known[d.DoctorID] = struct{}{}
	}

	missing := make(map[int]struct{})
	for _, a := range appointments {
		if _, ok := known[a.DoctorID]; !ok {
			missing[a.DoctorID] = struct{}{}
		}
	}

	if len(missing) == 0 {
		return doctors, 0
	}

	ids := make([]int, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	repaired := make([]domain.Doctor, len(doctors), len(doctors)+len(ids))
	copy(repaired, doctors)
	for _, id := range ids {
		repaired = append(repaired, domain.NewPlaceholderDoctor(id))
	}

	sort.Slice(repaired, func(i, j int) bool {
		return repaired[i].DoctorID < repaired[j].DoctorID
	})

	c.logger.Info("Synthesized placeholder doctors for missing ids",
		slog.Int("placeholders", len(ids)),
		slog.Any("doctor_ids", ids))

	return repaired, len(ids)
}
