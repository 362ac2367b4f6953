package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. "profile_save_failed").
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step a user can take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldStoreKey names the byte store key being read or written.
	FieldStoreKey = "store_key"
	// FieldBackend names the byte store backend.
	FieldBackend = "backend"
	// FieldPath is a filesystem path.
	FieldPath = "path"
)
