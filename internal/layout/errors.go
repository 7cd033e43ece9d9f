package layout

import "errors"

var (
	// ErrUpdateInProgress is returned by BeginUpdate when the previous update
	// has not been finalized yet.
	ErrUpdateInProgress = errors.New("layout update already in progress")
	// ErrConflictingOptions reports an attempt to reconfigure an engine with
	// different options.
	ErrConflictingOptions = errors.New("layout already configured with different options")
)
