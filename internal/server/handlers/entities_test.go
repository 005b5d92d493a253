package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/server/storage"
	"github.com/vitalog/vitalog/pkg/api"
)

// mockEntityStorage is an in-memory EntityStorage for handler tests
type mockEntityStorage struct {
	records     map[string]*storage.EntityRecord // device_id/entity_id -> record
	upsertError error
	listError   error
	tombstoned  []string
}

func newMockEntityStorage() *mockEntityStorage {
	return &mockEntityStorage{records: make(map[string]*storage.EntityRecord)}
}

func (m *mockEntityStorage) key(deviceID, entityID string) string {
	return deviceID + "/" + entityID
}

func (m *mockEntityStorage) Upsert(ctx context.Context, rec *storage.EntityRecord) (bool, error) {
	if m.upsertError != nil {
		return false, m.upsertError
	}
	existing, ok := m.records[m.key(rec.DeviceID, rec.EntityID)]
	if ok {
		if existing.Version == rec.Version {
			return false, nil
		}
		if existing.Version > rec.Version {
			return false, storage.ErrVersionConflict
		}
	}
	m.records[m.key(rec.DeviceID, rec.EntityID)] = rec
	return true, nil
}

func (m *mockEntityStorage) Tombstone(ctx context.Context, deviceID, entityID string, version int64, at time.Time) error {
	delete(m.records, m.key(deviceID, entityID))
	m.tombstoned = append(m.tombstoned, entityID)
	return nil
}

func (m *mockEntityStorage) List(ctx context.Context, deviceID, kind string) ([]*storage.EntityRecord, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []*storage.EntityRecord
	for _, rec := range m.records {
		if rec.DeviceID == deviceID && rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}

func upsertRequest(t *testing.T, kind, id string, version int64, payload string) *http.Request {
	t.Helper()
	body, err := json.Marshal(api.UpsertRequest{Payload: []byte(payload), Version: version})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/entities/"+kind+"/"+id, bytes.NewBuffer(body))
	req.SetPathValue("kind", kind)
	req.SetPathValue("id", id)
	return authenticated(req, "device-1")
}

// authenticated mimics the auth middleware placing the device id in
// the request context
func authenticated(req *http.Request, deviceID string) *http.Request {
	ctx := context.WithValue(req.Context(), DeviceIDKey, deviceID)
	return req.WithContext(ctx)
}

func TestEntityHandler_Upsert(t *testing.T) {
	entities := newMockEntityStorage()
	handler := NewEntityHandler(setupTestLogger(), entities)

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 1, `{"name":"run"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.UpsertResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "w-1", resp.EntityID)
	assert.Equal(t, int64(1), resp.Version)
	assert.True(t, resp.Applied)

	rec, ok := entities.records["device-1/w-1"]
	require.True(t, ok)
	assert.Equal(t, "workout", rec.Kind)
	assert.Equal(t, "device-1", rec.DeviceID)
}

func TestEntityHandler_Upsert_ReplayAcks(t *testing.T) {
	entities := newMockEntityStorage()
	handler := NewEntityHandler(setupTestLogger(), entities)

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 2, `{"name":"run"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 2, `{"name":"run"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.UpsertResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Applied)
}

func TestEntityHandler_Upsert_StaleVersionConflicts(t *testing.T) {
	entities := newMockEntityStorage()
	handler := NewEntityHandler(setupTestLogger(), entities)

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 5, `{"name":"run"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 4, `{"name":"old run"}`))

	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, api.CodeConflict, errResp.Code)
}

func TestEntityHandler_Upsert_InvalidPayload(t *testing.T) {
	handler := NewEntityHandler(setupTestLogger(), newMockEntityStorage())

	// Workout payload requires a name
	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 1, `{"distance":5}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, api.CodeValidation, errResp.Code)
}

func TestEntityHandler_Upsert_UnknownKind(t *testing.T) {
	handler := NewEntityHandler(setupTestLogger(), newMockEntityStorage())

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "sleep", "s-1", 1, `{"hours":8}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntityHandler_Upsert_ZeroVersion(t *testing.T) {
	handler := NewEntityHandler(setupTestLogger(), newMockEntityStorage())

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 0, `{"name":"run"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntityHandler_Upsert_Unauthenticated(t *testing.T) {
	handler := NewEntityHandler(setupTestLogger(), newMockEntityStorage())

	body, err := json.Marshal(api.UpsertRequest{Payload: []byte(`{"name":"run"}`), Version: 1})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/entities/workout/w-1", bytes.NewBuffer(body))
	req.SetPathValue("kind", "workout")
	req.SetPathValue("id", "w-1")
	// No device id in context

	w := httptest.NewRecorder()
	handler.Upsert(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEntityHandler_Tombstone(t *testing.T) {
	entities := newMockEntityStorage()
	handler := NewEntityHandler(setupTestLogger(), entities)

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 1, `{"name":"run"}`))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/entities/workout/w-1", nil)
	req.SetPathValue("kind", "workout")
	req.SetPathValue("id", "w-1")

	w = httptest.NewRecorder()
	handler.Tombstone(w, authenticated(req, "device-1"))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.TombstoneResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "w-1", resp.EntityID)
	assert.True(t, resp.Deleted)
	assert.Equal(t, []string{"w-1"}, entities.tombstoned)
}

func TestEntityHandler_Tombstone_UnknownEntityStillAcks(t *testing.T) {
	handler := NewEntityHandler(setupTestLogger(), newMockEntityStorage())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/entities/workout/ghost", nil)
	req.SetPathValue("kind", "workout")
	req.SetPathValue("id", "ghost")

	w := httptest.NewRecorder()
	handler.Tombstone(w, authenticated(req, "device-1"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEntityHandler_List(t *testing.T) {
	entities := newMockEntityStorage()
	handler := NewEntityHandler(setupTestLogger(), entities)

	w := httptest.NewRecorder()
	handler.Upsert(w, upsertRequest(t, "workout", "w-1", 3, `{"name":"run"}`))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities/workout", nil)
	req.SetPathValue("kind", "workout")

	w = httptest.NewRecorder()
	handler.List(w, authenticated(req, "device-1"))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.ListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Entities, 1)
	assert.Equal(t, "w-1", resp.Entities[0].EntityID)
	assert.Equal(t, int64(3), resp.Entities[0].Version)
	assert.JSONEq(t, `{"name":"run"}`, string(resp.Entities[0].Payload))
}

func TestEntityHandler_List_Empty(t *testing.T) {
	handler := NewEntityHandler(setupTestLogger(), newMockEntityStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities/meal", nil)
	req.SetPathValue("kind", "meal")

	w := httptest.NewRecorder()
	handler.List(w, authenticated(req, "device-1"))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.ListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.Entities)
}
