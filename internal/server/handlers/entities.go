package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/server/storage"
	"github.com/vitalog/vitalog/internal/validation"
	"github.com/vitalog/vitalog/pkg/api"
)

// EntityHandler handles the entity sync endpoints
type EntityHandler struct {
	logger  *slog.Logger
	storage storage.EntityStorage
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(logger *slog.Logger, entityStorage storage.EntityStorage) *EntityHandler {
	return &EntityHandler{
		logger:  logger,
		storage: entityStorage,
	}
}

// Upsert handles PUT /api/v1/entities/{kind}/{id}. The write is
// last-writer-wins by version; a replayed request acknowledges without
// a second write, so clients can retry safely.
func (h *EntityHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "device id not found in context")
		sendError(w, h.logger, api.CodeInternal, "unauthorized", http.StatusUnauthorized)
		return
	}

	kind := models.Kind(r.PathValue("kind"))
	entityID := r.PathValue("id")

	if !kind.Valid() {
		sendError(w, h.logger, api.CodeValidation, "unknown entity kind", http.StatusBadRequest)
		return
	}
	if entityID == "" {
		sendError(w, h.logger, api.CodeValidation, "entity id is required", http.StatusBadRequest)
		return
	}

	var req api.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode upsert request", slog.Any("error", err))
		sendError(w, h.logger, api.CodeValidation, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Version < 1 {
		sendError(w, h.logger, api.CodeValidation, "version must be positive", http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePayload(kind, req.Payload); err != nil {
		h.logger.WarnContext(ctx, "payload rejected",
			slog.String("entity_id", entityID), slog.Any("error", err))
		sendError(w, h.logger, api.CodeValidation, err.Error(), http.StatusBadRequest)
		return
	}

	rec := &storage.EntityRecord{
		EntityID:  entityID,
		DeviceID:  deviceID,
		Kind:      string(kind),
		Payload:   req.Payload,
		Version:   req.Version,
		UpdatedAt: time.Now(),
	}

	applied, err := h.storage.Upsert(ctx, rec)
	if err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			h.logger.WarnContext(ctx, "version conflict",
				slog.String("entity_id", entityID),
				slog.Int64("version", req.Version))
			sendError(w, h.logger, api.CodeConflict, "a newer version exists on the server", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to upsert entity", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "entity upserted",
		slog.String("device_id", deviceID),
		slog.String("entity_id", entityID),
		slog.Int64("version", req.Version),
		slog.Bool("applied", applied))

	resp := api.UpsertResponse{
		EntityID: entityID,
		Version:  req.Version,
		Applied:  applied,
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// Tombstone handles DELETE /api/v1/entities/{kind}/{id}. Deletes are
// idempotent: removing an unknown or already deleted entity still
// acknowledges.
func (h *EntityHandler) Tombstone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "device id not found in context")
		sendError(w, h.logger, api.CodeInternal, "unauthorized", http.StatusUnauthorized)
		return
	}

	entityID := r.PathValue("id")
	if entityID == "" {
		sendError(w, h.logger, api.CodeValidation, "entity id is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.Tombstone(ctx, deviceID, entityID, 0, time.Now()); err != nil {
		h.logger.ErrorContext(ctx, "failed to tombstone entity", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "entity tombstoned",
		slog.String("device_id", deviceID),
		slog.String("entity_id", entityID))

	resp := api.TombstoneResponse{
		EntityID: entityID,
		Deleted:  true,
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// List handles GET /api/v1/entities/{kind}
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "device id not found in context")
		sendError(w, h.logger, api.CodeInternal, "unauthorized", http.StatusUnauthorized)
		return
	}

	kind := models.Kind(r.PathValue("kind"))
	if !kind.Valid() {
		sendError(w, h.logger, api.CodeValidation, "unknown entity kind", http.StatusBadRequest)
		return
	}

	records, err := h.storage.List(ctx, deviceID, string(kind))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list entities", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ListResponse{
		Entities: make([]api.EntityRecord, 0, len(records)),
	}
	for _, rec := range records {
		resp.Entities = append(resp.Entities, api.EntityRecord{
			EntityID:  rec.EntityID,
			Kind:      rec.Kind,
			Payload:   rec.Payload,
			Version:   rec.Version,
			UpdatedAt: rec.UpdatedAt.Unix(),
		})
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}
