package iothub

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

var (
	ErrMissingHost       = errors.New("host is required")
	ErrMissingCredential = errors.New("credential is required")

	ErrMissingDeviceID        = errors.New("device id is required")
	ErrMissingModuleID        = errors.New("module id is required")
	ErrMissingConfigurationID = errors.New("configuration id is required")
	ErrMissingJobID           = errors.New("job id is required")
	ErrMissingQuery           = errors.New("query is required")

	ErrNoMorePages = errors.New("no more pages")
)

// TransportError reports a request that never produced a usable response:
// connection failures, TLS errors, and cancelled or expired contexts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response that arrived but could not be turned
// into the documented model, including payloads missing required fields.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ServiceError reports a non-success status from the hub. Code carries
// the hub error code when the response body follows the documented error
// format, for example "DeviceNotFound".
type ServiceError struct {
	StatusCode int

	Code    string
	Message string

	RequestID string
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
}

func newServiceError(status int, requestID string, body io.Reader) error {
	data, _ := io.ReadAll(io.LimitReader(body, 1<<20))

	result := &ServiceError{
		StatusCode: status,
		RequestID:  requestID,
	}

	var response models.ErrorResponse

	if err := json.Unmarshal(data, &response); err == nil && response.Message != "" {
		result.Code = response.ErrorCode()
		result.Message = response.Detail()

		if result.Message == "" {
			result.Message = response.ExceptionMessage
		}

		return result
	}

	result.Message = strings.TrimSpace(string(data))

	return result
}

// StatusCode returns the HTTP status of a service error, or zero when
// err is not one.
func StatusCode(err error) int {
	var serviceErr *ServiceError

	if errors.As(err, &serviceErr) {
		return serviceErr.StatusCode
	}

	return 0
}

// IsNotFound reports whether err is a service error for a missing
// device, module, configuration, or job.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the service rejected the credentials.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsConflict reports whether the operation collided with an existing
// identity.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// IsPreconditionFailed reports whether an If-Match etag did not match.
func IsPreconditionFailed(err error) bool {
	return StatusCode(err) == http.StatusPreconditionFailed
}

// IsThrottled reports whether the hub rejected the request for exceeding
// its quota or throttle limits.
func IsThrottled(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}
