package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/client/data"
	"github.com/vitalog/vitalog/internal/models"
)

func TestRunPut(t *testing.T) {
	mockData := &data.ServiceMock{
		PutFunc: func(ctx context.Context, kind models.Kind, id string, payload json.RawMessage) (*models.Entity, error) {
			return &models.Entity{ID: "w-1", Kind: kind, Version: 1}, nil
		},
	}

	err := RunPut(context.Background(), []string{"workout", `{"name":"run"}`}, mockData)
	require.NoError(t, err)

	calls := mockData.PutCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.KindWorkout, calls[0].Kind)
	assert.Empty(t, calls[0].ID)
	assert.JSONEq(t, `{"name":"run"}`, string(calls[0].Payload))
}

func TestRunPut_WithExplicitID(t *testing.T) {
	mockData := &data.ServiceMock{
		PutFunc: func(ctx context.Context, kind models.Kind, id string, payload json.RawMessage) (*models.Entity, error) {
			return &models.Entity{ID: id, Kind: kind, Version: 2}, nil
		},
	}

	err := RunPut(context.Background(), []string{"meal", `{"name":"lunch"}`, "meal-1"}, mockData)
	require.NoError(t, err)

	calls := mockData.PutCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "meal-1", calls[0].ID)
}

func TestRunPut_MissingArgs(t *testing.T) {
	mockData := &data.ServiceMock{}

	err := RunPut(context.Background(), []string{"workout"}, mockData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
	assert.Empty(t, mockData.PutCalls())
}

func TestRunGet(t *testing.T) {
	mockData := &data.ServiceMock{
		GetFunc: func(ctx context.Context, id string) (*models.Entity, error) {
			return &models.Entity{
				ID:        id,
				Kind:      models.KindMeasurement,
				Payload:   json.RawMessage(`{"value":72.5}`),
				Version:   1,
				UpdatedAt: time.Now(),
			}, nil
		},
	}

	err := RunGet(context.Background(), []string{"m-1"}, mockData)
	require.NoError(t, err)

	calls := mockData.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "m-1", calls[0].ID)
}

func TestRunGet_MissingID(t *testing.T) {
	err := RunGet(context.Background(), nil, &data.ServiceMock{})
	require.Error(t, err)
}

func TestRunList(t *testing.T) {
	mockData := &data.ServiceMock{
		ListFunc: func(ctx context.Context, kind models.Kind, limit int) ([]*models.Entity, error) {
			return []*models.Entity{
				{ID: "w-1", Kind: kind, Payload: json.RawMessage(`{"name":"run"}`), UpdatedAt: time.Now()},
			}, nil
		},
	}

	err := RunList(context.Background(), []string{"workout", "5"}, mockData)
	require.NoError(t, err)

	calls := mockData.ListCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.KindWorkout, calls[0].Kind)
	assert.Equal(t, 5, calls[0].Limit)
}

func TestRunList_InvalidLimit(t *testing.T) {
	mockData := &data.ServiceMock{}

	err := RunList(context.Background(), []string{"workout", "many"}, mockData)
	require.Error(t, err)
	assert.Empty(t, mockData.ListCalls())
}

func TestRunDelete(t *testing.T) {
	mockData := &data.ServiceMock{
		DeleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	err := RunDelete(context.Background(), []string{"w-1"}, mockData)
	require.NoError(t, err)

	calls := mockData.DeleteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "w-1", calls[0].ID)
}

func TestRunDelete_ServiceError(t *testing.T) {
	mockData := &data.ServiceMock{
		DeleteFunc: func(ctx context.Context, id string) error {
			return errors.New("storage failure")
		},
	}

	err := RunDelete(context.Background(), []string{"w-1"}, mockData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete record")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.0 KiB", formatBytes(2048))
	assert.Equal(t, "1.5 MiB", formatBytes(3*1024*1024/2))
}
