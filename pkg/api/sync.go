// Package api contains the wire types shared by the client and the
// reference sync server.
package api

// UpsertRequest carries one entity revision to the server. The entity
// kind and id travel in the URL; the body holds the payload snapshot
// and the client version the snapshot belongs to.
type UpsertRequest struct {
	Payload []byte `json:"payload"`
	Version int64  `json:"version"`
}

// UpsertResponse acknowledges an upsert. Applied is false when the
// server already held this or a newer version; either way the request
// is acknowledged, which is what makes replays idempotent.
type UpsertResponse struct {
	EntityID string `json:"entity_id"`
	Version  int64  `json:"version"`
	Applied  bool   `json:"applied"`
}

// TombstoneResponse acknowledges a delete. Deleting an entity that is
// already gone still acknowledges.
type TombstoneResponse struct {
	EntityID string `json:"entity_id"`
	Deleted  bool   `json:"deleted"`
}

// EntityRecord is the server-side view of an entity, returned by the
// list endpoint.
type EntityRecord struct {
	EntityID  string `json:"entity_id"`
	Kind      string `json:"kind"`
	Payload   []byte `json:"payload"`
	Version   int64  `json:"version"`
	UpdatedAt int64  `json:"updated_at"` // Unix seconds
}

// ListResponse is the response of GET /api/v1/entities/{kind}
type ListResponse struct {
	Entities []EntityRecord `json:"entities"`
}

// ErrorResponse is the error body returned on non-2xx statuses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes used in ErrorResponse.Code
const (
	CodeValidation = "validation_failed"
	CodeConflict   = "version_conflict"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)
