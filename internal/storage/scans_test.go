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

func testScan(clientID string, score int) *model.CitationScan {
	return &model.CitationScan{
		ClientID:     clientID,
		TotalChecked: 2,
		Matches:      1,
		Mismatches:   1,
		HealthScore:  score,
		Results: []model.DirectoryResult{
			{
				Key:         "yelp",
				DisplayName: "Yelp",
				Importance:  model.ImportanceCritical,
				Status:      model.StatusMatch,
				Confidence:  100,
				NameMatch:   true, AddressMatch: true, PhoneMatch: true,
				FoundName:    "Acme Plumbing",
				FoundAddress: "123 Main St, Austin, TX",
				FoundPhone:   "512-555-0100",
				ListingURL:   "https://www.yelp.com/biz/acme-plumbing",
			},
			{
				Key:         "bbb",
				DisplayName: "Better Business Bureau",
				Importance:  model.ImportanceHigh,
				Status:      model.StatusPartial,
				Confidence:  66,
				NameMatch:   true, PhoneMatch: true,
				Details:      []string{`Address: found "456 Oak Ave", expected "123 Main St, Austin, TX"`},
				FoundName:    "Acme Plumbing",
				FoundAddress: "456 Oak Ave",
				FoundPhone:   "512-555-0100",
			},
		},
	}
}

func TestSaveCitationScan_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveClient(ctx, testClient("client-1")))

	scan := testScan("client-1", 80)
	require.NoError(t, store.SaveCitationScan(ctx, scan))
	assert.NotZero(t, scan.ID)

	got, err := store.GetLatestScan(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, scan.ID, got.ID)
	assert.Equal(t, 80, got.HealthScore)
	assert.Equal(t, 2, got.TotalChecked)

	// Results come back in the order they were stored.
	require.Len(t, got.Results, 2)
	assert.Equal(t, "yelp", got.Results[0].Key)
	assert.Equal(t, model.StatusMatch, got.Results[0].Status)
	assert.True(t, got.Results[0].PhoneMatch)
	assert.Equal(t, "bbb", got.Results[1].Key)
	assert.Equal(t, model.StatusPartial, got.Results[1].Status)
	require.Len(t, got.Results[1].Details, 1)
	assert.Contains(t, got.Results[1].Details[0], "Address:")
}

func TestGetLatestScan_PicksNewest(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveClient(ctx, testClient("client-1")))

	older := testScan("client-1", 40)
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveCitationScan(ctx, older))

	newer := testScan("client-1", 90)
	require.NoError(t, store.SaveCitationScan(ctx, newer))

	got, err := store.GetLatestScan(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, 90, got.HealthScore)
}

func TestGetLatestScan_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetLatestScan(context.Background(), "never-scanned")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListScans_NewestFirstWithLimit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveClient(ctx, testClient("client-1")))

	base := time.Now().Add(-3 * time.Hour)
	for i, score := range []int{10, 50, 90} {
		scan := testScan("client-1", score)
		scan.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.SaveCitationScan(ctx, scan))
	}

	scans, err := store.ListScans(ctx, "client-1", 2)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, 90, scans[0].HealthScore)
	assert.Equal(t, 50, scans[1].HealthScore)
	// History rows carry aggregates only.
	assert.Empty(t, scans[0].Results)
}

func TestSaveCitationScan_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	assert.Error(t, store.SaveCitationScan(ctx, nil))
	assert.Error(t, store.SaveCitationScan(ctx, &model.CitationScan{HealthScore: 50}))
	assert.Error(t, store.SaveCitationScan(ctx, &model.CitationScan{ClientID: "c", HealthScore: 101}))
}
