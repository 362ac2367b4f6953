// Package store provides the byte store that holds the serialized profile.
//
// Every backend implements the same three-operation contract: Get returns
// ErrNotFound for a missing key, Set overwrites, and Delete is a no-op for a
// missing key. SQLite is the default backend; bbolt, a directory of files, and
// an in-memory map are available for other deployments and tests.
//
// Open selects the backend from configuration, takes an exclusive lock on the
// data directory so only one process edits the record at a time, and applies
// the configured per-entry quota. Callers treat every error as recoverable;
// the persistence layer decides whether to fall back or report.
package store
