package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-editor/internal/markup"
	"github.com/jonathan/resume-editor/internal/photo"
	"github.com/jonathan/resume-editor/internal/schemas"
)

// ErrVersionNotFound indicates no version has the requested id
type ErrVersionNotFound struct {
	ID string
}

func (e *ErrVersionNotFound) Error() string {
	return fmt.Sprintf("version not found: %s", e.ID)
}

// ErrDraftNotDeletable indicates an attempt to delete the draft
type ErrDraftNotDeletable struct{}

func (e *ErrDraftNotDeletable) Error() string {
	return "the draft cannot be deleted"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrVersionNotFound
		draft      *ErrDraftNotDeletable
		validation *ErrValidation
		schemaErr  *schemas.ValidationError
		parseErr   *markup.ParseError
		decodeErr  *photo.DecodeError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &draft):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &parseErr), errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
