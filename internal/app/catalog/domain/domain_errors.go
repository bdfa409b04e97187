package domain

import "errors"

// Error kinds. Every specific domain error wraps exactly one kind, so callers
// can branch on the kind with errors.Is without knowing every sentinel.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrConfiguration        = errors.New("configuration error")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrNothingToExport      = errors.New("nothing to export")
	ErrStorage              = errors.New("storage unavailable")
)

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = newError(ErrNotFound, "product not found")
	ErrEmptyName       = newError(ErrValidation, "product name cannot be empty")
	ErrInvalidPrice    = newError(ErrValidation, "product price must be a non-negative number")
	ErrDuplicateName   = newError(ErrValidation, "product already exists")

	// Image errors
	ErrImageTooLarge = newError(ErrPayloadTooLarge, "image must be under 5MB")
	ErrInvalidImage  = newError(ErrValidation, "image must be a base64 data URL")

	// Entry errors
	ErrEntryNotFound  = newError(ErrNotFound, "customer entry not found")
	ErrEmptyEntryData = newError(ErrValidation, "customer data cannot be empty")
	ErrUnknownState   = newError(ErrValidation, "workflow state is not configured")

	// Business configuration errors
	ErrNoStatesConfigured = newError(ErrConfiguration, "no workflow states configured")
	ErrEmptyStateName     = newError(ErrValidation, "state name cannot be empty")
	ErrDuplicateState     = newError(ErrValidation, "state already exists")
	ErrInvalidColor       = newError(ErrValidation, "state color must be a #RRGGBB value")
)

type domainError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &domainError{kind: kind, msg: msg}
}

func (e *domainError) Error() string { return e.msg }

func (e *domainError) Unwrap() error { return e.kind }
