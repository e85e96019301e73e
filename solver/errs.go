package solver

import "errors"

var (
	ErrCapsTable = errors.New("bad capability table")
)
