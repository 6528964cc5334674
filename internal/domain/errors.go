package domain

import "errors"

var (
	// Invalid-input family: detected during validation, before any
	// slot or scratch storage is acquired.
	ErrEmptyFile           = errors.New("empty file")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMalformedDocument   = errors.New("document is malformed or corrupt")
	ErrUnknownTier         = errors.New("unknown parsing tier")

	// Execution outcomes.
	ErrEngineFailure     = errors.New("engine failed to parse document")
	ErrResourceExhausted = errors.New("accelerator memory exhausted")
	ErrPoolSaturated     = errors.New("all worker slots busy")
	ErrTimeout           = errors.New("request deadline exceeded")
)

// IsInvalidInput reports whether err belongs to the invalid-input
// family, i.e. the request was rejected before any resource was
// acquired and the engine was never invoked.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrUnsupportedFileType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrMalformedDocument) ||
		errors.Is(err, ErrUnknownTier)
}
