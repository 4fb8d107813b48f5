package models

import "fmt"

// Validator is implemented by models that carry required fields. Decode
// paths call it after unmarshalling to catch payloads that parsed but are
// structurally incomplete.
type Validator interface {
	Validate() error
}

// MissingFieldError reports a payload that decoded without a field the
// model requires.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s payload is missing required field %q", e.Type, e.Field)
}
