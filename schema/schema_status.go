package schema

import "time"

// StoreStatus represents the status of the state store.
type StoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	Key           string    `json:"key"`
	KeyPresent    bool      `json:"key_present"`
	SizeBytes     int64     `json:"size_bytes"`
	Version       int64     `json:"version,omitempty"`
	LastWriteTime time.Time `json:"last_write_time"`
}
