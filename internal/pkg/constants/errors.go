package constants

import (
	"errors"
	"net/http"
)

// CodedError несет HTTP-код, который error handler отдает клиенту.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

// BadRequest оборачивает ошибку валидации в 400.
func BadRequest(err error) error {
	return NewCodedError(http.StatusBadRequest, err.Error())
}

var (
	ErrDBNotFound          = NewCodedError(http.StatusNotFound, "not found in db")
	ErrUnauthorized        = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrDestinationNotFound = NewCodedError(http.StatusNotFound, "destination not found")
	ErrInvalidTripParams   = NewCodedError(http.StatusBadRequest, "invalid trip parameters")
	ErrUnknownTier         = NewCodedError(http.StatusBadRequest, "unknown style tier")
	ErrCatalogEmpty        = NewCodedError(http.StatusServiceUnavailable, "destination catalog is not loaded")
	ErrMissingSource       = errors.New("source is not configured")
)
