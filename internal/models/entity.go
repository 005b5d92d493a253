package models

import (
	"encoding/json"
	"time"
)

// Kind represents the domain type of an entity
type Kind string

const (
	KindProfile     Kind = "profile"     // User profile fields
	KindWorkout     Kind = "workout"     // Workout session
	KindMeal        Kind = "meal"        // Meal log entry
	KindMeasurement Kind = "measurement" // Body measurement
)

// Kinds lists all known entity kinds
var Kinds = []Kind{KindProfile, KindWorkout, KindMeal, KindMeasurement}

// Valid reports whether k is a known entity kind
func (k Kind) Valid() bool {
	switch k {
	case KindProfile, KindWorkout, KindMeal, KindMeasurement:
		return true
	}
	return false
}

// SyncStatus represents the synchronization state of an entity
type SyncStatus string

const (
	StatusLocal    SyncStatus = "local"    // Written locally, not yet queued for this version
	StatusPending  SyncStatus = "pending"  // In flight during a sync cycle
	StatusSynced   SyncStatus = "synced"   // Acknowledged by the server for the current version
	StatusConflict SyncStatus = "conflict" // Server refused the version
	StatusFailed   SyncStatus = "failed"   // Permanent failure, needs caller action
)

// Source indicates where the current entity revision originated
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Entity represents a domain record stored on the client.
// Version strictly increases on every local mutation. SyncStatus is set
// to StatusSynced only by the sync coordinator after a remote
// acknowledgment matching that exact version.
type Entity struct {
	UpdatedAt  time.Time       `json:"updated_at"`
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	SyncStatus SyncStatus      `json:"sync_status"`
	Source     Source          `json:"source"`
	Payload    json.RawMessage `json:"payload"`
	Version    int64           `json:"version"`
	Deleted    bool            `json:"deleted"`
}

// Clone creates a deep copy of the entity
func (e *Entity) Clone() *Entity {
	payload := make(json.RawMessage, len(e.Payload))
	copy(payload, e.Payload)

	return &Entity{
		ID:         e.ID,
		Kind:       e.Kind,
		Payload:    payload,
		Version:    e.Version,
		SyncStatus: e.SyncStatus,
		Source:     e.Source,
		UpdatedAt:  e.UpdatedAt,
		Deleted:    e.Deleted,
	}
}
