// Package persistence round-trips the profile record through a byte store
// under a single fixed key.
//
// Gateway.Load never fails: a missing key, a store error, or unreadable bytes
// all yield the canonical defaults, with the cause reported in LoadResult and
// logged. Gateway.Save reports write failures to the caller. Session holds the
// in-memory record for one editing session and writes once per mutation, in
// call order, keeping the edited record even when a write fails.
package persistence
