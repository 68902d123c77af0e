// Package load persists the cleaned doctor and appointment sets. The Store
// interface has two implementations: a PostgreSQL store backed by pgx, and an
// in-memory store with the same transactional and constraint semantics, used
// by tests and dry runs. Replace is the one atomic unit in the system: clear
// appointments, clear doctors, insert doctors, insert appointments, all inside
// a single transaction that either commits whole or leaves prior state intact.
package load
