package domain

import "errors"

// Pipeline error taxonomy. Everything after credential validation is caught at
// the orchestrator boundary and converted into a fixed, user-readable message;
// the credential errors abort before any network attempt.
var (
	ErrMissingAPIKey    = errors.New("missing API key")
	ErrInvalidAPIKey    = errors.New("API key looks invalid")
	ErrBadResponse      = errors.New("no usable field in provider response")
	ErrUnavailable      = errors.New("provider unavailable")
	ErrValidationFailed = errors.New("plan validation failed")
	ErrUnsupportedShell = errors.New("unsupported shell")
	ErrNoHomeDir        = errors.New("home directory not found")
)

// Plan parsing failures, distinguished so the retry loop can log the reason.
var (
	ErrPlanSyntax       = errors.New("plan is not valid JSON")
	ErrPlanUnknownField = errors.New("plan contains an unknown field")
	ErrPlanMissingField = errors.New("plan is missing a required field")
	ErrPlanInvalidValue = errors.New("plan field has an invalid value")
)

// FailureMessage maps an unrecovered pipeline error to the fixed text the
// caller acts on. The orchestrator never lets these errors escape as hard
// failures.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return "AI provider unreachable. Check your network connection and try again."
	case errors.Is(err, ErrBadResponse):
		return "AI provider returned an unexpected response. Try rephrasing your request."
	case errors.Is(err, ErrValidationFailed):
		return "AI provider could not produce a valid command plan. Try rephrasing your request."
	default:
		return "Something went wrong while generating a command. Try again."
	}
}
