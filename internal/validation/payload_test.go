package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalog/vitalog/internal/models"
)

func TestValidatePayload_UnknownKind(t *testing.T) {
	err := ValidatePayload("sleep", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestValidatePayload_Empty(t *testing.T) {
	err := ValidatePayload(models.KindProfile, nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestValidatePayload_NotAnObject(t *testing.T) {
	err := ValidatePayload(models.KindProfile, json.RawMessage(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestValidatePayload_TooLarge(t *testing.T) {
	big := `{"name":"` + strings.Repeat("x", MaxPayloadSize) + `"}`
	err := ValidatePayload(models.KindWorkout, json.RawMessage(big))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestValidatePayload_Profile(t *testing.T) {
	err := ValidatePayload(models.KindProfile, json.RawMessage(`{"display_name":"Dana","height_cm":178}`))
	assert.NoError(t, err)
}

func TestValidatePayload_Workout(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"name":"Morning run","duration_min":30}`, false},
		{"missing name", `{"duration_min":30}`, true},
		{"empty name", `{"name":""}`, true},
		{"name not a string", `{"name":42}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(models.KindWorkout, json.RawMessage(tt.payload))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePayload_Meal(t *testing.T) {
	err := ValidatePayload(models.KindMeal, json.RawMessage(`{"name":"Lunch","calories":650}`))
	assert.NoError(t, err)

	err = ValidatePayload(models.KindMeal, json.RawMessage(`{"calories":650}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestValidatePayload_Measurement(t *testing.T) {
	err := ValidatePayload(models.KindMeasurement, json.RawMessage(`{"value":70.5,"unit":"kg"}`))
	assert.NoError(t, err)

	err = ValidatePayload(models.KindMeasurement, json.RawMessage(`{"unit":"kg"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	err = ValidatePayload(models.KindMeasurement, json.RawMessage(`{"value":"70"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
