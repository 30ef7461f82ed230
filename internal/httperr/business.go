package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a business error so handlers can map it to an HTTP status.
type Kind int

const (
	KindInvalid Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrInvalid(code, message string) error {
	return BusinessError{Kind: KindInvalid, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// Respond writes a business error with the status implied by its kind.
// Non-business errors become a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	status := http.StatusBadRequest
	switch be.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindForbidden:
		status = http.StatusForbidden
	case KindConflict:
		status = http.StatusConflict
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	Write(c, status, be.Code, msg)
}
