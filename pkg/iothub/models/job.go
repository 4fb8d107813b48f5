package models

import "encoding/json"

// JobType names the kind of work a scheduled job performs.
type JobType string

const (
	JobTypeScheduleUpdateTwin   JobType = "scheduleUpdateTwin"
	JobTypeScheduleDeviceMethod JobType = "scheduleDeviceMethod"
	JobTypeExport               JobType = "export"
	JobTypeImport               JobType = "import"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusUnknown   JobStatus = "unknown"
	JobStatusEnqueued  JobStatus = "enqueued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusQueued    JobStatus = "queued"
)

// JobRequest schedules a twin update or a direct method call against the
// set of devices selected by QueryCondition.
type JobRequest struct {
	JobID string  `json:"jobId,omitempty"`
	Type  JobType `json:"type,omitempty"`

	CloudToDeviceMethod *DirectMethodRequest `json:"cloudToDeviceMethod,omitempty"`
	UpdateTwin          *Twin                `json:"updateTwin,omitempty"`

	QueryCondition string `json:"queryCondition,omitempty"`

	StartTime                 *Time `json:"startTime,omitempty"`
	MaxExecutionTimeInSeconds int64 `json:"maxExecutionTimeInSeconds,omitempty"`
}

// JobResponse is the service-side record of a job.
type JobResponse struct {
	JobID  string    `json:"jobId"`
	Type   JobType   `json:"type,omitempty"`
	Status JobStatus `json:"status,omitempty"`

	CloudToDeviceMethod *DirectMethodRequest `json:"cloudToDeviceMethod,omitempty"`
	UpdateTwin          *Twin                `json:"updateTwin,omitempty"`

	QueryCondition string `json:"queryCondition,omitempty"`

	CreatedTime *Time `json:"createdTime,omitempty"`
	StartTime   *Time `json:"startTime,omitempty"`
	EndTime     *Time `json:"endTime,omitempty"`

	MaxExecutionTimeInSeconds int64 `json:"maxExecutionTimeInSeconds,omitempty"`

	FailureReason string `json:"failureReason,omitempty"`
	StatusMessage string `json:"statusMessage,omitempty"`

	DeviceJobStatistics *DeviceJobStatistics `json:"deviceJobStatistics,omitempty"`

	Error *RawError `json:"error,omitempty"`
}

// Validate reports whether a decoded payload carries the fields the
// service guarantees for a job record.
func (j *JobResponse) Validate() error {
	if j.JobID == "" {
		return &MissingFieldError{Type: "job", Field: "jobId"}
	}

	return nil
}

// DeviceJobStatistics counts per-device outcomes of a job.
type DeviceJobStatistics struct {
	DeviceCount    int `json:"deviceCount"`
	FailedCount    int `json:"failedCount"`
	SucceededCount int `json:"succeededCount"`
	RunningCount   int `json:"runningCount"`
	PendingCount   int `json:"pendingCount"`
}

// RawError preserves an embedded service error document verbatim.
type RawError struct {
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}
