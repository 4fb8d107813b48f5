// Package inventory keeps a local snapshot of the hub's twins in an
// embedded SQLite database, so fleet state can be inspected and diffed
// without hitting the service.
package inventory

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"

	"github.com/edgetap/iothub-go/pkg/iothub/models"
)

var ErrNotFound = errors.New("device not found in inventory")

type Store struct {
	db *gorm.DB
}

type DeviceRecord struct {
	gorm.Model

	DeviceID string `gorm:"uniqueIndex"`

	ETag    string `gorm:"column:etag"`
	Version int64

	Status          string
	ConnectionState string

	IoTEdge bool `gorm:"column:iot_edge"`

	Tags     datatypes.JSONMap
	Desired  datatypes.JSONMap
	Reported datatypes.JSONMap

	LastActivity *time.Time
}

// Device is one inventoried device, independent of the storage schema.
type Device struct {
	DeviceID string

	ETag    string
	Version int64

	Status          string
	ConnectionState string

	IoTEdge bool

	Tags     map[string]any
	Desired  map[string]any
	Reported map[string]any

	LastActivity *time.Time

	SyncedAt time.Time
}

// Changes lists what an Apply did to the snapshot.
type Changes struct {
	Added   []string
	Updated []string
	Removed []string
}

func New(path string) (*Store, error) {
	db, err := gorm.Open(gormlite.Open(path), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&DeviceRecord{}); err != nil {
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Apply replaces the snapshot with the given twins. Devices no longer
// present are removed; the returned changes tell added, updated (by twin
// version or etag), and removed device ids.
func (s *Store) Apply(ctx context.Context, twins []models.Twin) (*Changes, error) {
	var existing []DeviceRecord

	if result := s.db.WithContext(ctx).Find(&existing); result.Error != nil {
		return nil, result.Error
	}

	known := map[string]DeviceRecord{}

	for _, record := range existing {
		known[record.DeviceID] = record
	}

	changes := &Changes{}

	seen := map[string]bool{}

	for _, twin := range twins {
		if twin.DeviceID == "" || twin.ModuleID != "" {
			continue
		}

		seen[twin.DeviceID] = true

		record := recordFromTwin(twin)

		previous, ok := known[twin.DeviceID]

		if !ok {
			changes.Added = append(changes.Added, twin.DeviceID)
		} else if previous.ETag != record.ETag || previous.Version != record.Version {
			changes.Updated = append(changes.Updated, twin.DeviceID)
		}

		result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "device_id"}},

			UpdateAll: true,
		}).Create(&record)

		if result.Error != nil {
			return nil, result.Error
		}
	}

	for deviceID := range known {
		if seen[deviceID] {
			continue
		}

		result := s.db.WithContext(ctx).Unscoped().Where("device_id = ?", deviceID).Delete(&DeviceRecord{})

		if result.Error != nil {
			return nil, result.Error
		}

		changes.Removed = append(changes.Removed, deviceID)
	}

	return changes, nil
}

// Get reads one inventoried device.
func (s *Store) Get(ctx context.Context, deviceID string) (*Device, error) {
	var record DeviceRecord

	result := s.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if result.Error != nil {
		return nil, result.Error
	}

	device := deviceFromRecord(record)

	return &device, nil
}

type ListOptions struct {
	Limit *int

	Cursor string
}

type Page[T any] struct {
	Items []T

	Cursor string
}

// List pages through the snapshot ordered by device id.
func (s *Store) List(ctx context.Context, options *ListOptions) (*Page[Device], error) {
	if options == nil {
		options = new(ListOptions)
	}

	type cursor struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}

	var limit int
	var offset int

	if options.Limit != nil {
		limit = *options.Limit
	}

	if options.Cursor != "" {
		var cursor cursor

		data, err := base64.StdEncoding.DecodeString(options.Cursor)

		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(data, &cursor); err != nil {
			return nil, err
		}

		limit = cursor.Limit
		offset = cursor.Offset
	}

	if limit <= 0 {
		limit = 50
	}

	var records []DeviceRecord

	if result := s.db.WithContext(ctx).Order("device_id").Offset(offset).Limit(limit).Find(&records); result.Error != nil {
		return nil, result.Error
	}

	page := &Page[Device]{}

	for _, record := range records {
		page.Items = append(page.Items, deviceFromRecord(record))
	}

	if len(page.Items) == limit {
		c := cursor{
			Limit:  limit,
			Offset: offset + len(page.Items),
		}

		data, _ := json.Marshal(c)
		page.Cursor = base64.StdEncoding.EncodeToString(data)
	}

	return page, nil
}

// FindByTag returns devices whose twin tag at key equals value.
func (s *Store) FindByTag(ctx context.Context, key, value string) ([]Device, error) {
	var records []DeviceRecord

	result := s.db.WithContext(ctx).Where(datatypes.JSONQuery("tags").Equals(value, key)).Order("device_id").Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}

	var devices []Device

	for _, record := range records {
		devices = append(devices, deviceFromRecord(record))
	}

	return devices, nil
}

// Stats summarizes the snapshot.
type Stats struct {
	Total int64

	Enabled  int64
	Disabled int64

	Connected int64

	Edge int64
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	db := s.db.WithContext(ctx).Model(&DeviceRecord{})

	if result := db.Count(&stats.Total); result.Error != nil {
		return nil, result.Error
	}

	counts := []struct {
		target *int64

		column string
		value  any
	}{
		{&stats.Enabled, "status", string(models.DeviceStatusEnabled)},
		{&stats.Disabled, "status", string(models.DeviceStatusDisabled)},
		{&stats.Connected, "connection_state", string(models.ConnectionStateConnected)},
		{&stats.Edge, "iot_edge", true},
	}

	for _, count := range counts {
		result := s.db.WithContext(ctx).Model(&DeviceRecord{}).Where(count.column+" = ?", count.value).Count(count.target)

		if result.Error != nil {
			return nil, result.Error
		}
	}

	return stats, nil
}

func recordFromTwin(twin models.Twin) DeviceRecord {
	record := DeviceRecord{
		DeviceID: twin.DeviceID,

		ETag:    twin.ETag,
		Version: twin.Version,

		Status:          string(twin.Status),
		ConnectionState: string(twin.ConnectionState),
	}

	if twin.Capabilities != nil {
		record.IoTEdge = twin.Capabilities.IoTEdge
	}

	if twin.Tags != nil {
		record.Tags = datatypes.JSONMap(twin.Tags)
	}

	if twin.Properties != nil {
		if twin.Properties.Desired != nil {
			record.Desired = datatypes.JSONMap(twin.Properties.Desired)
		}

		if twin.Properties.Reported != nil {
			record.Reported = datatypes.JSONMap(twin.Properties.Reported)
		}
	}

	if twin.LastActivityTime != nil {
		t := twin.LastActivityTime.Time
		record.LastActivity = &t
	}

	return record
}

func deviceFromRecord(record DeviceRecord) Device {
	return Device{
		DeviceID: record.DeviceID,

		ETag:    record.ETag,
		Version: record.Version,

		Status:          record.Status,
		ConnectionState: record.ConnectionState,

		IoTEdge: record.IoTEdge,

		Tags:     record.Tags,
		Desired:  record.Desired,
		Reported: record.Reported,

		LastActivity: record.LastActivity,

		SyncedAt: record.UpdatedAt,
	}
}
