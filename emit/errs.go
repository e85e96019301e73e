package emit

import (
	"errors"

	"github.com/provekit/smtgen/logic"
)

var (
	// ErrInternal marks invariant violations: defects to report, not
	// usage errors. Every operator/kind combination with no encoding
	// wraps this.
	ErrInternal = errors.New("internal error: invariant violated")

	// ErrNotSupported marks constructs deliberately rejected rather
	// than designed, such as non-constant array initializers inside a
	// quantified context.
	ErrNotSupported = errors.New("not yet supported")

	// ErrNamedQuantified reports named constraints combined with a
	// universal-variable set; the two are mutually exclusive.
	ErrNamedQuantified = errors.New("named constraints cannot be combined with universal variables")

	// ErrSoftQuantified reports soft constraints combined with a
	// universal-variable set.
	ErrSoftQuantified = errors.New("soft constraints cannot be combined with universal variables")

	// ErrLogicOverride and ErrUnsupported re-export the selector's
	// fatal conditions so callers need only this package.
	ErrLogicOverride = logic.ErrOverride
	ErrUnsupported   = logic.ErrUnsupported
)
