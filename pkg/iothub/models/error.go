package models

import "strings"

// ErrorResponse is the error document the hub returns on non-success
// statuses. Message packs a machine-readable code and a human-readable
// text into one string, separated by a semicolon.
type ErrorResponse struct {
	Message          string `json:"Message,omitempty"`
	ExceptionMessage string `json:"ExceptionMessage,omitempty"`
}

// ErrorCode extracts the code from a message of the form
// "ErrorCode:DeviceNotFound;...". It returns an empty string when the
// message does not follow that form.
func (e ErrorResponse) ErrorCode() string {
	value, ok := strings.CutPrefix(e.Message, "ErrorCode:")

	if !ok {
		return ""
	}

	code, _, _ := strings.Cut(value, ";")

	return strings.TrimSpace(code)
}

// Detail returns the human-readable part of the message, or the whole
// message when no code prefix is present.
func (e ErrorResponse) Detail() string {
	value, ok := strings.CutPrefix(e.Message, "ErrorCode:")

	if !ok {
		return e.Message
	}

	_, detail, ok := strings.Cut(value, ";")

	if !ok {
		return ""
	}

	return strings.TrimSpace(detail)
}
