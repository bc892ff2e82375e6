package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrEmptyCart    = errors.New("cart empty")   // 400, distinct from field errors
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
	ErrUnauthorized = errors.New("unauthorized") // 401
)

// FieldErrors carries one message per invalid input field, surfaced inline
// by the client. It matches ErrValidation under errors.Is.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

func (FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
