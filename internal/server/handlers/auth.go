package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vitalog/vitalog/internal/server/storage"
	"github.com/vitalog/vitalog/pkg/api"
)

// contextKey is the type for request context keys
type contextKey string

// DeviceIDKey carries the authenticated device id in the request
// context
const DeviceIDKey contextKey = "device_id"

// GetDeviceID extracts the authenticated device id from the context
func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDKey).(string)
	return deviceID, ok
}

// AuthHandler handles device registration and login
type AuthHandler struct {
	logger    *slog.Logger
	devices   storage.DeviceStorage
	jwtConfig JWTConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, devices storage.DeviceStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:    logger,
		devices:   devices,
		jwtConfig: jwtConfig,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(w, h.logger, api.CodeValidation, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.DeviceID == "" {
		sendError(w, h.logger, api.CodeValidation, "device_id is required", http.StatusBadRequest)
		return
	}
	if req.Secret == "" {
		sendError(w, h.logger, api.CodeValidation, "secret is required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash secret", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	device := &storage.Device{
		ID:         req.DeviceID,
		SecretHash: string(hash),
		CreatedAt:  time.Now(),
	}

	if err := h.devices.CreateDevice(ctx, device); err != nil {
		if errors.Is(err, storage.ErrDeviceAlreadyExists) {
			h.logger.WarnContext(ctx, "device already registered", slog.String("device_id", req.DeviceID))
			sendError(w, h.logger, api.CodeConflict, "device already registered", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create device", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "device registered", slog.String("device_id", req.DeviceID))

	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(w, h.logger, api.CodeValidation, "invalid request body", http.StatusBadRequest)
		return
	}

	device, err := h.devices.GetDevice(ctx, req.DeviceID)
	if err != nil {
		if errors.Is(err, storage.ErrDeviceNotFound) {
			h.logger.WarnContext(ctx, "login failed: unknown device", slog.String("device_id", req.DeviceID))
			sendError(w, h.logger, api.CodeValidation, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get device", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(device.SecretHash), []byte(req.Secret)); err != nil {
		h.logger.WarnContext(ctx, "login failed: bad secret", slog.String("device_id", req.DeviceID))
		sendError(w, h.logger, api.CodeValidation, "invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, device.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(w, h.logger, api.CodeInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.devices.UpdateLastLogin(ctx, device.ID, time.Now()); err != nil {
		// Not critical, the login still succeeds
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "device logged in", slog.String("device_id", device.ID))

	resp := api.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// sendJSON writes a JSON response
func sendJSON(w http.ResponseWriter, logger *slog.Logger, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error response
func sendError(w http.ResponseWriter, logger *slog.Logger, code, message string, statusCode int) {
	resp := api.ErrorResponse{
		Code:    code,
		Message: message,
	}
	sendJSON(w, logger, resp, statusCode)
}
