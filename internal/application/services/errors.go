package services

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound    = errors.New("editor session not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrThemeNotFound      = errors.New("theme not found")
	ErrComponentNotFound  = errors.New("component not found")
	ErrProtectedComponent = errors.New("component is protected")
)

// ValidationError reports input that breaks a layout or request limit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
