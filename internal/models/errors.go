package models

import "fmt"

// ValidationError reports an intake field that is missing or out of range.
// The pipeline never advances past intake while one of these is pending.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
