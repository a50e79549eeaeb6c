package domain

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateIdentity  = errors.New("duplicate username or email")
	ErrInvalidCredentials = errors.New("email or password not correct")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrOwnerNotFound      = errors.New("task owner not found")
	ErrInternal           = errors.New("internal server error")
)

// FieldError is a single validation failure, keyed by the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects validation failures for one request. It is the only
// error kind that carries per-field detail across the service boundary.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

func (e FieldErrors) Add(field, message string) FieldErrors {
	return append(e, FieldError{Field: field, Message: message})
}

// Err returns nil when no failures were recorded, so validate steps can
// end with `return errs.Err()`.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
