package storage

import (
	"context"
	"testing"
	"time"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryHealth_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	h := &model.DirectoryHealth{
		Key:                 "yelp",
		DisplayName:         "Yelp",
		LastSuccess:         &now,
		ConsecutiveFailures: 0,
		IsDegraded:          false,
		LastCheckedAt:       now,
	}
	require.NoError(t, store.SaveDirectoryHealth(ctx, h))

	got, err := store.GetDirectoryHealth(ctx, "yelp")
	require.NoError(t, err)
	assert.Equal(t, "Yelp", got.DisplayName)
	require.NotNil(t, got.LastSuccess)
	assert.WithinDuration(t, now, *got.LastSuccess, time.Second)
	assert.Nil(t, got.LastFailure)
	assert.False(t, got.IsDegraded)
}

func TestDirectoryHealth_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetDirectoryHealth(context.Background(), "never-probed")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDirectoryHealth_UpsertOverwrites(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.SaveDirectoryHealth(ctx, &model.DirectoryHealth{
		Key:           "bbb",
		DisplayName:   "Better Business Bureau",
		LastCheckedAt: now,
	}))

	failed := now.Add(time.Hour)
	require.NoError(t, store.SaveDirectoryHealth(ctx, &model.DirectoryHealth{
		Key:                 "bbb",
		DisplayName:         "Better Business Bureau",
		LastFailure:         &failed,
		ConsecutiveFailures: 2,
		IsDegraded:          true,
		LastCheckedAt:       failed,
	}))

	got, err := store.GetDirectoryHealth(ctx, "bbb")
	require.NoError(t, err)
	assert.True(t, got.IsDegraded)
	assert.Equal(t, 2, got.ConsecutiveFailures)
	require.NotNil(t, got.LastFailure)
}

func TestListDirectoryHealth_OrderedByKey(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now()
	for _, key := range []string{"yelp", "bbb", "manta"} {
		require.NoError(t, store.SaveDirectoryHealth(ctx, &model.DirectoryHealth{
			Key:           key,
			DisplayName:   key,
			LastCheckedAt: now,
		}))
	}

	records, err := store.ListDirectoryHealth(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "bbb", records[0].Key)
	assert.Equal(t, "manta", records[1].Key)
	assert.Equal(t, "yelp", records[2].Key)
}

func TestSaveDirectoryHealth_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	assert.Error(t, store.SaveDirectoryHealth(ctx, nil))
	assert.Error(t, store.SaveDirectoryHealth(ctx, &model.DirectoryHealth{DisplayName: "no key"}))
	assert.Error(t, store.SaveDirectoryHealth(ctx, &model.DirectoryHealth{Key: "x", ConsecutiveFailures: -1}))
}
