package api

// RegisterRequest registers a device with the server. The secret is
// stored bcrypt-hashed server-side and exchanged for tokens afterwards.
type RegisterRequest struct {
	DeviceID string `json:"device_id"`
	Secret   string `json:"secret"`
}

// LoginRequest exchanges device credentials for an access token
type LoginRequest struct {
	DeviceID string `json:"device_id"`
	Secret   string `json:"secret"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}
