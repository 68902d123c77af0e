package pipeline

import (
	"time"

	"healthetl/internal/transform"
)

// RunReport summarizes one batch run: what came in, what was dropped and why,
// what was repaired, and what was loaded. It is the run's observable surface
// for row-level issues, which never fail the run on their own.
type RunReport struct {
	Doctors            *transform.Report
	Appointments       *transform.Report
	PlaceholdersAdded  int
	LoadedDoctors      int
	LoadedAppointments int
	Duration           time.Duration
}
