package models

// Module is a module identity scoped to a device in the hub registry.
type Module struct {
	ModuleID     string `json:"moduleId"`
	DeviceID     string `json:"deviceId"`
	GenerationID string `json:"generationId,omitempty"`
	ETag         string `json:"etag,omitempty"`

	ConnectionState            ConnectionState `json:"connectionState,omitempty"`
	ConnectionStateUpdatedTime *Time           `json:"connectionStateUpdatedTime,omitempty"`
	LastActivityTime           *Time           `json:"lastActivityTime,omitempty"`

	CloudToDeviceMessageCount int `json:"cloudToDeviceMessageCount,omitempty"`

	Authentication *AuthenticationMechanism `json:"authentication,omitempty"`

	ManagedBy string `json:"managedBy,omitempty"`
}

// Validate reports whether a decoded payload carries the fields the
// registry guarantees for a module.
func (m *Module) Validate() error {
	if m.ModuleID == "" {
		return &MissingFieldError{Type: "module", Field: "moduleId"}
	}

	if m.DeviceID == "" {
		return &MissingFieldError{Type: "module", Field: "deviceId"}
	}

	return nil
}
