package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External AI service errors
var (
	ErrAINotConfigured = errors.New("AI service not configured. Please add GEMINI_API_KEY to .env")
	ErrAIUpstream      = errors.New("AI generation failed")
)

// Database errors
var (
	ErrDatabase       = errors.New("database operation failed")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// NewAINotConfiguredError reports that no upstream AI credential is set.
func NewAINotConfiguredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrAINotConfigured,
	}
}

func NewAIUpstreamError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrAIUpstream,
		Cause:      cause,
	}
}

func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabase,
		Details:    fmt.Sprintf("Failed to %s for %s", operation, entity),
		Cause:      cause,
	}
}

func NewDuplicateEntryError(entity, field string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateEntry,
		Details:    fmt.Sprintf("%s with this %s already exists", entity, field),
		Field:      field,
	}
}

func IsAINotConfiguredError(err error) bool {
	return errors.Is(err, ErrAINotConfigured)
}

func IsAIUpstreamError(err error) bool {
	return errors.Is(err, ErrAIUpstream)
}

func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func IsDuplicateEntryError(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}
