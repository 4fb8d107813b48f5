package models

// QuerySpecification is an IoT hub query, for example
// "SELECT * FROM devices WHERE tags.building = '43'".
type QuerySpecification struct {
	Query string `json:"query"`
}

// RegistryStatistics summarizes the identity registry.
type RegistryStatistics struct {
	TotalDeviceCount    int64 `json:"totalDeviceCount"`
	EnabledDeviceCount  int64 `json:"enabledDeviceCount"`
	DisabledDeviceCount int64 `json:"disabledDeviceCount"`
}

// ServiceStatistics summarizes hub-side connectivity.
type ServiceStatistics struct {
	ConnectedDeviceCount int64 `json:"connectedDeviceCount"`
}

// PurgeMessageQueueResult reports how many queued cloud-to-device
// messages were dropped for a device.
type PurgeMessageQueueResult struct {
	TotalMessagesPurged int    `json:"totalMessagesPurged"`
	DeviceID            string `json:"deviceId,omitempty"`
	ModuleID            string `json:"moduleId,omitempty"`
}

// ImportMode selects the registry action applied to one entry of a bulk
// operation.
type ImportMode string

const (
	ImportModeCreate                ImportMode = "create"
	ImportModeUpdate                ImportMode = "update"
	ImportModeUpdateIfMatchETag     ImportMode = "updateIfMatchETag"
	ImportModeDelete                ImportMode = "delete"
	ImportModeDeleteIfMatchETag     ImportMode = "deleteIfMatchETag"
	ImportModeUpdateTwin            ImportMode = "updateTwin"
	ImportModeUpdateTwinIfMatchETag ImportMode = "updateTwinIfMatchETag"
)

// ExportImportDevice is one entry of a bulk registry operation. The
// service uses eTag casing here, unlike the device model.
type ExportImportDevice struct {
	DeviceID string `json:"id"`
	ModuleID string `json:"moduleId,omitempty"`

	ETag       string     `json:"eTag,omitempty"`
	ImportMode ImportMode `json:"importMode,omitempty"`

	Status       DeviceStatus `json:"status,omitempty"`
	StatusReason string       `json:"statusReason,omitempty"`

	Authentication *AuthenticationMechanism `json:"authentication,omitempty"`

	TwinETag   string             `json:"twinETag,omitempty"`
	Tags       map[string]any     `json:"tags,omitempty"`
	Properties *PropertyContainer `json:"properties,omitempty"`

	Capabilities *DeviceCapabilities `json:"capabilities,omitempty"`
	DeviceScope  string              `json:"deviceScope,omitempty"`
}

// Validate reports whether a bulk entry names a device.
func (d *ExportImportDevice) Validate() error {
	if d.DeviceID == "" {
		return &MissingFieldError{Type: "export import device", Field: "id"}
	}

	return nil
}

// PropertyContainer carries twin properties in bulk operations.
type PropertyContainer struct {
	Desired  map[string]any `json:"desired,omitempty"`
	Reported map[string]any `json:"reported,omitempty"`
}

// BulkRegistryOperationResult is the outcome of a bulk registry call.
// IsSuccessful is false when any entry failed; Errors lists the failures.
type BulkRegistryOperationResult struct {
	IsSuccessful bool `json:"isSuccessful"`

	Errors   []DeviceRegistryOperationError   `json:"errors,omitempty"`
	Warnings []DeviceRegistryOperationWarning `json:"warnings,omitempty"`
}

// DeviceRegistryOperationError describes one failed entry of a bulk
// registry operation.
type DeviceRegistryOperationError struct {
	DeviceID    string `json:"deviceId"`
	ModuleID    string `json:"moduleId,omitempty"`
	ErrorCode   string `json:"errorCode,omitempty"`
	ErrorStatus string `json:"errorStatus,omitempty"`
	Operation   string `json:"operation,omitempty"`
}

// DeviceRegistryOperationWarning describes one non-fatal condition of a
// bulk registry operation.
type DeviceRegistryOperationWarning struct {
	DeviceID      string `json:"deviceId"`
	WarningCode   string `json:"warningCode,omitempty"`
	WarningStatus string `json:"warningStatus,omitempty"`
}
