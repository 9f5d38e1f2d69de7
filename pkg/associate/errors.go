/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package associate

/*****************************************************************************************************************/

import "fmt"

/*****************************************************************************************************************/

// Kind distinguishes the core's error taxonomy so callers can decide what is fatal for
// the enclosing sky-region group versus what must abort the entire run.
type Kind int

/*****************************************************************************************************************/

const (
	// ConfigError is raised for an unknown association method or a negative radius.
	ConfigError Kind = iota
	// InputError is raised for a missing required measurement column or a non-finite
	// coordinate.
	InputError
	// GeometryError is raised when a spatial index fails to build.
	GeometryError
	// InvariantViolation is raised when an identity collision is detected after a merge;
	// it is a programmer error and must abort the run.
	InvariantViolation
)

/*****************************************************************************************************************/

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case InputError:
		return "InputError"
	case GeometryError:
		return "GeometryError"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "UnknownError"
	}
}

/*****************************************************************************************************************/

// Error is the core's typed error: a Kind plus a human-readable message, optionally
// wrapping an underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

/*****************************************************************************************************************/

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

/*****************************************************************************************************************/

func (e *Error) Unwrap() error {
	return e.Cause
}

/*****************************************************************************************************************/

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

/*****************************************************************************************************************/

// NewInputError wraps cause as an InputError: a missing required measurement column or a
// non-finite coordinate detected while preparing a batch for association. Callers outside
// this package (the loader-facing side of the sky-region sharder) use this to report
// measurement-level problems in the core's error taxonomy.
func NewInputError(cause error) *Error {
	return newError(InputError, cause, "invalid measurement input")
}

/*****************************************************************************************************************/

// NewInvariantViolation reports a programmer error: an invariant the core guarantees -
// such as dense, collision-free identities after a sky-region merge - was violated. It is
// fatal for the entire run, never just the enclosing group.
func NewInvariantViolation(format string, args ...any) *Error {
	return newError(InvariantViolation, nil, format, args...)
}

/*****************************************************************************************************************/
