package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opencode-ai/thememode/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	applied, err := database.MigrateUp(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(migrations), applied)
	return database
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	database := setupTestDB(t)

	applied, err := database.MigrateUp(context.Background())
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestEventRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(setupTestDB(t))

	event := &models.Event{
		Type:     models.EventTypeThemeChanged,
		Value:    "dark",
		Source:   "serve",
		Metadata: map[string]string{"signal": "static"},
	}
	require.NoError(t, repo.Create(ctx, event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())

	got, err := repo.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, models.EventTypeThemeChanged, got.Type)
	assert.Equal(t, "dark", got.Value)
	assert.Equal(t, "serve", got.Source)
	assert.Equal(t, "static", got.Metadata["signal"])
	assert.True(t, event.Timestamp.Equal(got.Timestamp))
}

func TestEventRepositoryGetNotFound(t *testing.T) {
	repo := NewEventRepository(setupTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestEventRepositoryCreateRejectsInvalid(t *testing.T) {
	repo := NewEventRepository(setupTestDB(t))

	err := repo.Create(context.Background(), &models.Event{Type: models.EventTypeModeChanged})
	assert.True(t, errors.Is(err, ErrInvalidEvent))
}

func TestEventRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(setupTestDB(t))

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	values := []struct {
		typ   models.EventType
		value string
	}{
		{models.EventTypeModeChanged, "system"},
		{models.EventTypeThemeChanged, "light"},
		{models.EventTypeModeChanged, "dark"},
		{models.EventTypeThemeChanged, "dark"},
	}
	for i, v := range values {
		require.NoError(t, repo.Create(ctx, &models.Event{
			Type:      v.typ,
			Value:     v.value,
			Source:    "test",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	all, err := repo.List(ctx, EventQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "dark", all[0].Value)
	assert.Equal(t, "system", all[3].Value)

	modeType := models.EventTypeModeChanged
	modes, err := repo.List(ctx, EventQuery{Type: &modeType})
	require.NoError(t, err)
	require.Len(t, modes, 2)
	assert.Equal(t, "dark", modes[0].Value)
	assert.Equal(t, "system", modes[1].Value)

	limited, err := repo.List(ctx, EventQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	since := base.Add(2 * time.Second)
	recent, err := repo.List(ctx, EventQuery{Since: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
