package avdata

import "errors"

// Protocol error kinds. Callers classify failures with errors.Is; every
// error surfaced by the sync client wraps exactly one of these.
var (
	// ErrConfig marks a missing or invalid base URL. User-actionable,
	// raised before any network I/O, never retried automatically.
	ErrConfig = errors.New("configuration error")

	// ErrNetwork marks a transport failure or non-success HTTP status.
	// Transient; the whole update attempt may be retried later.
	ErrNetwork = errors.New("network error")

	// ErrFormat marks a manifest or dataset file that fails structural
	// validation. Indicates a server-side authoring mistake.
	ErrFormat = errors.New("format error")

	// ErrCancelled marks a user- or system-initiated abort of an update
	// attempt.
	ErrCancelled = errors.New("cancelled")
)
