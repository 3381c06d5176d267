package storage

import (
	"context"
	"testing"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTask(clientID, directory, title string) *model.TaskRequest {
	return &model.TaskRequest{
		ClientID:     clientID,
		DirectoryKey: directory,
		Title:        title,
		Category:     "Local SEO",
		Priority:     model.PriorityP2,
		Source:       model.TaskSourceCitationScan,
		Description:  "Citation inconsistency detected.",
	}
}

func TestCreateAndListTasks(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.CreateTask(ctx, testTask("client-1", "yelp", "Fix NAP on Yelp")))
	require.NoError(t, store.CreateTask(ctx, testTask("client-1", "bbb", "Create listing on Better Business Bureau")))
	require.NoError(t, store.CreateTask(ctx, testTask("client-2", "yelp", "Fix NAP on Yelp")))

	tasks, err := store.ListTasks(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, "client-1", task.ClientID)
		assert.Equal(t, model.TaskSourceCitationScan, task.Source)
	}
}

func TestCreateTask_DuplicateReturnsSentinel(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	task := testTask("client-1", "yelp", "Fix NAP on Yelp")
	require.NoError(t, store.CreateTask(ctx, task))

	err := store.CreateTask(ctx, testTask("client-1", "yelp", "Fix NAP on Yelp"))
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// The original row is untouched.
	tasks, listErr := store.ListTasks(ctx, "client-1")
	require.NoError(t, listErr)
	assert.Len(t, tasks, 1)
}

func TestCreateTask_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	assert.Error(t, store.CreateTask(ctx, nil))
	assert.Error(t, store.CreateTask(ctx, &model.TaskRequest{Title: "no client"}))
	assert.Error(t, store.CreateTask(ctx, &model.TaskRequest{ClientID: "c"}))
}
