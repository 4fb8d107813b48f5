package models

// Configuration describes an automatic device configuration or an edge
// deployment. TargetCondition selects devices by a query expression;
// Priority breaks ties when several configurations target one device.
type Configuration struct {
	ID   string `json:"id"`
	ETag string `json:"etag,omitempty"`

	SchemaVersion string            `json:"schemaVersion,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`

	Content *ConfigurationContent `json:"content,omitempty"`

	TargetCondition string `json:"targetCondition,omitempty"`
	Priority        int    `json:"priority,omitempty"`

	CreatedTimeUTC     *Time `json:"createdTimeUtc,omitempty"`
	LastUpdatedTimeUTC *Time `json:"lastUpdatedTimeUtc,omitempty"`

	SystemMetrics *ConfigurationMetrics `json:"systemMetrics,omitempty"`
	Metrics       *ConfigurationMetrics `json:"metrics,omitempty"`
}

// Validate reports whether a decoded payload carries the fields the
// service guarantees for a configuration.
func (c *Configuration) Validate() error {
	if c.ID == "" {
		return &MissingFieldError{Type: "configuration", Field: "id"}
	}

	return nil
}

// ConfigurationContent carries the per-target payloads of a configuration.
// ModulesContent is keyed by module name, then by property path.
type ConfigurationContent struct {
	DeviceContent  map[string]any            `json:"deviceContent,omitempty"`
	ModulesContent map[string]map[string]any `json:"modulesContent,omitempty"`
	ModuleContent  map[string]any            `json:"moduleContent,omitempty"`
}

// ConfigurationMetrics pairs metric queries with their latest results.
type ConfigurationMetrics struct {
	Results map[string]int64  `json:"results,omitempty"`
	Queries map[string]string `json:"queries,omitempty"`
}

// ConfigurationQueriesTestInput asks the service to evaluate a
// configuration's target condition and metric queries without applying it.
type ConfigurationQueriesTestInput struct {
	TargetCondition     string            `json:"targetCondition,omitempty"`
	CustomMetricQueries map[string]string `json:"customMetricQueries,omitempty"`
}

// ConfigurationQueriesTestResponse reports which queries the service
// rejected.
type ConfigurationQueriesTestResponse struct {
	TargetConditionError    string            `json:"targetConditionError,omitempty"`
	CustomMetricQueryErrors map[string]string `json:"customMetricQueryErrors,omitempty"`
}
