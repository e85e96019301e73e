package logic

import "errors"

var (
	// ErrOverride reports more than one explicit logic override.
	ErrOverride = errors.New("conflicting logic overrides")

	// ErrUnsupported reports a required feature the capability record
	// marks unsupported.
	ErrUnsupported = errors.New("unsupported by target solver")
)
