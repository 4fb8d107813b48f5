// Package models provides the data transfer objects for the IoT hub
// management API. Field names mirror the wire format of the service;
// optional values carry omitempty so encode/decode round-trips losslessly.
package models

// DeviceStatus controls whether a device may connect to the hub.
type DeviceStatus string

const (
	DeviceStatusEnabled  DeviceStatus = "enabled"
	DeviceStatusDisabled DeviceStatus = "disabled"
)

// ConnectionState is the hub-observed connectivity of a device or module.
type ConnectionState string

const (
	ConnectionStateDisconnected ConnectionState = "Disconnected"
	ConnectionStateConnected    ConnectionState = "Connected"
)

// AuthenticationType names the credential scheme of a registry identity.
type AuthenticationType string

const (
	AuthenticationTypeSAS                  AuthenticationType = "sas"
	AuthenticationTypeSelfSigned           AuthenticationType = "selfSigned"
	AuthenticationTypeCertificateAuthority AuthenticationType = "certificateAuthority"
	AuthenticationTypeNone                 AuthenticationType = "none"
)

// Device is a device identity in the hub registry.
type Device struct {
	DeviceID     string `json:"deviceId"`
	GenerationID string `json:"generationId,omitempty"`
	ETag         string `json:"etag,omitempty"`

	ConnectionState ConnectionState `json:"connectionState,omitempty"`
	Status          DeviceStatus    `json:"status,omitempty"`
	StatusReason    string          `json:"statusReason,omitempty"`

	ConnectionStateUpdatedTime *Time `json:"connectionStateUpdatedTime,omitempty"`
	StatusUpdatedTime          *Time `json:"statusUpdatedTime,omitempty"`
	LastActivityTime           *Time `json:"lastActivityTime,omitempty"`

	CloudToDeviceMessageCount int `json:"cloudToDeviceMessageCount,omitempty"`

	Authentication *AuthenticationMechanism `json:"authentication,omitempty"`
	Capabilities   *DeviceCapabilities      `json:"capabilities,omitempty"`

	DeviceScope string `json:"deviceScope,omitempty"`
}

// Validate reports whether a decoded payload carries the fields the
// registry guarantees for a device.
func (d *Device) Validate() error {
	if d.DeviceID == "" {
		return &MissingFieldError{Type: "device", Field: "deviceId"}
	}

	return nil
}

// AuthenticationMechanism holds the credentials of a registry identity.
type AuthenticationMechanism struct {
	SymmetricKey   *SymmetricKey      `json:"symmetricKey,omitempty"`
	X509Thumbprint *X509Thumbprint    `json:"x509Thumbprint,omitempty"`
	Type           AuthenticationType `json:"type,omitempty"`
}

type SymmetricKey struct {
	PrimaryKey   string `json:"primaryKey,omitempty"`
	SecondaryKey string `json:"secondaryKey,omitempty"`
}

type X509Thumbprint struct {
	PrimaryThumbprint   string `json:"primaryThumbprint,omitempty"`
	SecondaryThumbprint string `json:"secondaryThumbprint,omitempty"`
}

// DeviceCapabilities marks optional features a device advertises.
type DeviceCapabilities struct {
	IoTEdge bool `json:"iotEdge"`
}
