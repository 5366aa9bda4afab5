package predictors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	var zero Slot[Regressor]
	assert.False(t, zero.IsAvailable(), "zero value is unavailable")

	_, ok := Unavailable[Classifier]().Get()
	assert.False(t, ok)

	slot := Available[Regressor](RegressorFunc(func(ctx context.Context, f Features) (float64, error) {
		return 42, nil
	}))
	regressor, ok := slot.Get()
	require.True(t, ok)

	value, err := regressor.Predict(context.Background(), Features{"month": 6})
	require.NoError(t, err)
	assert.Equal(t, 42.0, value)
}

func TestRegistryStatus(t *testing.T) {
	registry := Registry{
		Cost: Available[Regressor](RegressorFunc(func(ctx context.Context, f Features) (float64, error) {
			return 0, nil
		})),
	}

	status := registry.Status()
	require.Len(t, status, 4)

	assert.Equal(t, SlotStatus{Slot: SlotOnTime, Artifact: "supply_chain_on_time_model", Kind: "classifier", Available: false}, status[0])
	assert.Equal(t, SlotCost, status[1].Slot)
	assert.True(t, status[1].Available)
	assert.False(t, status[2].Available)
	assert.False(t, status[3].Available)
}
