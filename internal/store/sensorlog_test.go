package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wastewatch-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *SensorLog {
	t.Helper()
	return NewSensorLog(filepath.Join(t.TempDir(), "logs.json"))
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	logStore := newTestLog(t)

	entries, err := logStore.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewSensorLog(path).All()
	assert.Error(t, err)
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	logStore := newTestLog(t)

	stored, err := logStore.Append(models.SensorLogEntry{BinID: "bio", Moisture: 3800, Gas: 720})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())

	entries, err := logStore.All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, stored.ID, entries[0].ID)
	assert.Equal(t, "bio", entries[0].BinID)
}

func TestAppendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")

	_, err := NewSensorLog(path).Append(models.SensorLogEntry{BinID: "metal"})
	require.NoError(t, err)

	entries, err := NewSensorLog(path).All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "metal", entries[0].BinID)
}

func TestLatestReturnsNewestFirst(t *testing.T) {
	logStore := newTestLog(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		_, err := logStore.Append(models.SensorLogEntry{
			ID:        fmt.Sprintf("log-%03d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	latest, err := logStore.Latest(10)
	require.NoError(t, err)
	require.Len(t, latest, 10)
	assert.Equal(t, "log-014", latest[0].ID)
	assert.Equal(t, "log-005", latest[9].ID)
}

func TestLogIsCappedAtHundredEntries(t *testing.T) {
	logStore := newTestLog(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 101; i++ {
		_, err := logStore.Append(models.SensorLogEntry{
			ID:        fmt.Sprintf("log-%03d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := logStore.All()
	require.NoError(t, err)
	require.Len(t, entries, 100)

	// The oldest entry fell off the end.
	for _, entry := range entries {
		assert.NotEqual(t, "log-000", entry.ID)
	}
	assert.Equal(t, "log-100", entries[0].ID)
}

func TestCountToday(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)

	entries := []models.SensorLogEntry{
		{ID: "a", BinID: "bio", Timestamp: today},
		{ID: "b", BinID: "bio", Timestamp: today.Add(time.Hour)},
		{ID: "c", Timestamp: today.Add(2 * time.Hour)}, // no bin id
		{ID: "d", BinID: "metal", Timestamp: yesterday},
	}

	counts := CountToday(entries, now)
	assert.Equal(t, CollectionCounts{Total: 3, Metal: 0, Bio: 2, NonBio: 0}, counts)
}

func TestCountTodayIncludesMidnightBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	counts := CountToday([]models.SensorLogEntry{
		{ID: "a", BinID: "nonbio", Timestamp: midnight},
	}, now)
	assert.Equal(t, CollectionCounts{Total: 1, NonBio: 1}, counts)
}
