package transform

// DropReason classifies why a source row was excluded from the cleaned set.
type DropReason string

const (
	// DropMissingField marks a row missing a required field.
	DropMissingField DropReason = "missing_required_field"
	// DropInvalidInteger marks a row whose id field could not be coerced
	// to an integral value.
	DropInvalidInteger DropReason = "invalid_integer"
	// DropInvalidDate marks a row whose booking date could not be parsed.
	DropInvalidDate DropReason = "invalid_date"
	// DropUnknownStatus marks an appointment whose status text is not in
	// the canonical variant table.
	DropUnknownStatus DropReason = "unrecognized_status"
)

// Report aggregates the outcome of cleaning one entity stream. It replaces
// any global mutable counters: each stage returns its own report and the
// pipeline merges them into the run summary.
type Report struct {
	// Input is the number of raw rows handed to the stage.
	Input int
	// Kept is the number of rows surviving validation and deduplication.
	Kept int
	// Dropped counts excluded rows per reason.
	Dropped map[DropReason]int
	// DuplicatesDiscarded counts rows removed by key deduplication.
	DuplicatesDiscarded int
}

func newReport(input int) *Report {
	return &Report{
		Input:   input,
		Dropped: make(map[DropReason]int),
	}
}

func (r *Report) drop(reason DropReason) {
	r.Dropped[reason]++
}

// TotalDropped returns the number of rows excluded by validation, not
// counting deduplicated rows.
func (r *Report) TotalDropped() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}
