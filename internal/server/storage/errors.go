package storage

import "errors"

// Common storage errors
var (
	// ErrDeviceNotFound indicates that the device is not registered
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDeviceAlreadyExists indicates that the device id is taken
	ErrDeviceAlreadyExists = errors.New("device already exists")

	// ErrEntityNotFound indicates that the entity does not exist
	ErrEntityNotFound = errors.New("entity not found")

	// ErrVersionConflict indicates that the stored version is newer
	// than the incoming revision
	ErrVersionConflict = errors.New("version conflict")
)
