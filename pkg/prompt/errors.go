package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoTracker is returned when ConfirmLeave runs without a tracker.
	ErrNoTracker = errors.New("prompt: tracker is nil")
)
