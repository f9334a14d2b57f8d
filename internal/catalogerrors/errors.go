package catalogerrors

import "errors"

// Repository-level errors
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrViewerNotFound     = errors.New("viewer not found")
	ErrConflict           = errors.New("concurrent update conflict")
	ErrBackendUnavailable = errors.New("catalog backend unavailable")
	ErrReadOnly           = errors.New("catalog backend is read-only")
)

// business logic errors
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient privileges")
	ErrInvalidItem  = errors.New("invalid item")
)

// attribute extraction errors
var (
	ErrExtractionUnavailable = errors.New("attribute extraction not configured")
	ErrExtractionFailed      = errors.New("attribute extraction failed")
)
