package models

// Twin is the cloud-side state document of a device or module. Tags are
// only visible to the service; desired and reported properties are
// synchronized with the device.
type Twin struct {
	DeviceID string `json:"deviceId,omitempty"`
	ModuleID string `json:"moduleId,omitempty"`
	ETag     string `json:"etag,omitempty"`

	Tags       map[string]any  `json:"tags,omitempty"`
	Properties *TwinProperties `json:"properties,omitempty"`

	Version int64 `json:"version,omitempty"`

	DeviceETag   string       `json:"deviceEtag,omitempty"`
	Status       DeviceStatus `json:"status,omitempty"`
	StatusReason string       `json:"statusReason,omitempty"`

	StatusUpdateTime *Time `json:"statusUpdateTime,omitempty"`
	LastActivityTime *Time `json:"lastActivityTime,omitempty"`

	ConnectionState           ConnectionState    `json:"connectionState,omitempty"`
	CloudToDeviceMessageCount int                `json:"cloudToDeviceMessageCount,omitempty"`
	AuthenticationType        AuthenticationType `json:"authenticationType,omitempty"`

	X509Thumbprint *X509Thumbprint     `json:"x509Thumbprint,omitempty"`
	Capabilities   *DeviceCapabilities `json:"capabilities,omitempty"`

	DeviceScope string `json:"deviceScope,omitempty"`
}

// Validate reports whether a decoded payload carries the fields the
// service guarantees for a twin.
func (t *Twin) Validate() error {
	if t.DeviceID == "" {
		return &MissingFieldError{Type: "twin", Field: "deviceId"}
	}

	return nil
}

// TwinProperties holds the two synchronized property documents of a twin.
type TwinProperties struct {
	Desired  map[string]any `json:"desired,omitempty"`
	Reported map[string]any `json:"reported,omitempty"`
}
