package registry

import (
	"testing"
	"time"

	"wastewatch-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsThreeEmptyBins(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	reg := New(now)

	bins := reg.List()
	require.Len(t, bins, 3)

	ids := []string{bins[0].ID, bins[1].ID, bins[2].ID}
	assert.Equal(t, []string{"metal", "bio", "nonbio"}, ids)

	for _, bin := range bins {
		assert.Equal(t, 0, bin.Level)
		assert.Equal(t, models.StatusOK, bin.Status)
		assert.Equal(t, now, bin.LastEmpty)
		assert.False(t, bin.AutoDispatchEnabled)
	}
}

func TestListReturnsCopy(t *testing.T) {
	reg := New(time.Now())

	bins := reg.List()
	bins[0].Level = 99

	fresh, err := reg.Find("metal")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Level, "mutating a snapshot must not touch the registry")
}

func TestFindUnknownBin(t *testing.T) {
	reg := New(time.Now())

	_, err := reg.Find("plastic")
	assert.ErrorIs(t, err, ErrBinNotFound)
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	reg := New(time.Now())

	updated, err := reg.Update("bio", func(bin models.Bin) models.Bin {
		bin.Level = 65
		bin.Status = models.StatusForLevel(65)
		return bin
	})
	require.NoError(t, err)
	assert.Equal(t, 65, updated.Level)
	assert.Equal(t, models.StatusCollectSoon, updated.Status)

	stored, err := reg.Find("bio")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateUnknownBinIsNoOp(t *testing.T) {
	reg := New(time.Now())
	before := reg.List()

	_, err := reg.Update("plastic", func(bin models.Bin) models.Bin {
		bin.Level = 100
		return bin
	})
	assert.ErrorIs(t, err, ErrBinNotFound)
	assert.Equal(t, before, reg.List())
}

func TestPickupsNewestFirst(t *testing.T) {
	reg := New(time.Now())

	first := reg.AppendPickup("metal", "agent-a@example.com")
	second := reg.AppendPickup("bio", models.ServicedByManual)

	history := reg.Pickups()
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}

func TestPickupsForBin(t *testing.T) {
	reg := New(time.Now())

	reg.AppendPickup("metal", "agent-a@example.com")
	reg.AppendPickup("bio", models.ServicedByManual)
	reg.AppendPickup("metal", models.ServicedByUnknown)

	metal := reg.PickupsForBin("metal")
	require.Len(t, metal, 2)
	assert.Equal(t, models.ServicedByUnknown, metal[0].ServicedBy)

	assert.Empty(t, reg.PickupsForBin("nonbio"))
}
