// Package transform implements the cleaning stage of the pipeline: per-row
// type coercion and text normalization, status canonicalization, row
// validation with per-reason drop accounting, booking-id deduplication, and
// referential-integrity repair between the doctor and appointment sets.
//
// Every function in this package is a pure transform over in-memory rows.
// Row-level defects never abort the run; they are counted in the stage Report
// and logged. The only persistent-state concerns live in internal/load.
package transform
