package monitoring

import "errors"

var (
	// ErrUnknownCollection indicates a collection name outside the closed set.
	ErrUnknownCollection = errors.New("monitoring: unknown collection")
	// ErrConfirmRequired guards destructive actions that need explicit consent.
	ErrConfirmRequired = errors.New("monitoring: confirmation required")
	// ErrNotReady is returned when a mutation arrives before the initial load completed.
	ErrNotReady = errors.New("monitoring: store still loading")
)
