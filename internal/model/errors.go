package model

import "fmt"

// ValidationError marks malformed or inconsistent caller input. The message
// is written in user terms and is safe to surface verbatim.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) ValidationError {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}
