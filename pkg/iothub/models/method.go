package models

import "encoding/json"

// DirectMethodRequest invokes a method on a connected device or module.
// Timeouts are in seconds; the service rejects values outside 5..300 for
// the response timeout and 0..300 for the connect timeout.
type DirectMethodRequest struct {
	MethodName string `json:"methodName"`

	Payload json.RawMessage `json:"payload,omitempty"`

	ResponseTimeoutInSeconds int `json:"responseTimeoutInSeconds,omitempty"`
	ConnectTimeoutInSeconds  int `json:"connectTimeoutInSeconds,omitempty"`
}

// Validate reports whether the request names a method.
func (r *DirectMethodRequest) Validate() error {
	if r.MethodName == "" {
		return &MissingFieldError{Type: "direct method request", Field: "methodName"}
	}

	return nil
}

// DirectMethodResponse is the device-produced result of a method call.
// Status is the device's own result code, not the HTTP status.
type DirectMethodResponse struct {
	Status  int             `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
