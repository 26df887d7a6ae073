package internal

import (
	"context"
	"testing"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func neighborhoodNames(neighborhoods []*db.NeighborhoodModel) []string {
	names := make([]string, 0, len(neighborhoods))
	for _, neighborhood := range neighborhoods {
		names = append(names, neighborhood.Name)
	}

	return names
}

func saveStatistics(t *testing.T, connection bun.IDB, daysBefore int, neighborhood *string) {
	t.Helper()

	statistics := &db.StatisticsModel{
		Date:         testDate.AddDate(0, 0, -daysBefore),
		Neighborhood: neighborhood,
	}
	for _, bedrooms := range BedroomCategories {
		statistics.SetBand(bedrooms, 2000, 2500, 3000)
	}

	require.NoError(t, db.ReplaceStatistics(context.Background(), connection, statistics))
}

func TestSyncNeighborhoods(t *testing.T) {
	ctx := context.Background()
	connection := dbtest.NewConnection(t)
	factory := &listingFactory{}

	insert(t, connection, []*db.ListingModel{
		factory.listing("Mission District", 0, 2500, testDate),
		factory.listing("Mission District", 1, 3100, testDate),
		factory.listing("SOMA / south beach", 2, 4200, testDate),
		factory.listing("", 1, 2900, testDate),
	})

	insertedCount, err := SyncNeighborhoods(ctx, connection)
	require.NoError(t, err)
	assert.Equal(t, 2, insertedCount)

	insert(t, connection, []*db.ListingModel{factory.listing("noe valley", 0, 2300, testDate)})

	insertedCount, err = SyncNeighborhoods(ctx, connection)
	require.NoError(t, err)
	assert.Equal(t, 1, insertedCount)

	neighborhoods, err := db.GetNeighborhoods(ctx, connection)
	require.NoError(t, err)
	require.Len(t, neighborhoods, 3)

	assert.Equal(t, []string{"Mission District", "SOMA / south beach", "noe valley"}, neighborhoodNames(neighborhoods))
	assert.Equal(t, "mission-district", neighborhoods[0].Slug)
	assert.Equal(t, "soma-south-beach", neighborhoods[1].Slug)
	for _, neighborhood := range neighborhoods {
		assert.False(t, neighborhood.Active)
	}

	bySlug, err := db.GetNeighborhoodBySlug(ctx, connection, "noe-valley")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, "noe valley", bySlug.Name)
}

func TestRefreshActiveNeighborhoods(t *testing.T) {
	ctx := context.Background()
	connection := dbtest.NewConnection(t)
	factory := &listingFactory{}

	mission, noe, castro := "mission district", "noe valley", "castro"
	insert(t, connection, []*db.ListingModel{
		factory.listing(mission, 0, 2500, testDate),
		factory.listing(noe, 0, 2500, testDate),
		factory.listing(castro, 0, 2500, testDate),
	})
	_, err := SyncNeighborhoods(ctx, connection)
	require.NoError(t, err)

	// two days ago: mission and castro, yesterday: mission and noe
	saveStatistics(t, connection, 2, nil)
	saveStatistics(t, connection, 2, &mission)
	saveStatistics(t, connection, 2, &castro)
	saveStatistics(t, connection, 1, nil)
	saveStatistics(t, connection, 1, &mission)
	saveStatistics(t, connection, 1, &noe)

	require.NoError(t, RefreshActiveNeighborhoods(ctx, connection, testDate.AddDate(0, 0, -1)))
	active, err := db.GetActiveNeighborhoods(ctx, connection)
	require.NoError(t, err)
	assert.Equal(t, []string{castro, mission}, neighborhoodNames(active))

	// castro is no longer in the latest statistics and must be switched off
	require.NoError(t, RefreshActiveNeighborhoods(ctx, connection, testDate))
	active, err = db.GetActiveNeighborhoods(ctx, connection)
	require.NoError(t, err)
	assert.Equal(t, []string{mission, noe}, neighborhoodNames(active))
}

func TestRefreshActiveNeighborhoods_FallsBackToLatestDate(t *testing.T) {
	ctx := context.Background()
	connection := dbtest.NewConnection(t)
	factory := &listingFactory{}

	mission := "mission district"
	insert(t, connection, []*db.ListingModel{factory.listing(mission, 0, 2500, testDate)})
	_, err := SyncNeighborhoods(ctx, connection)
	require.NoError(t, err)

	saveStatistics(t, connection, 0, nil)
	saveStatistics(t, connection, 0, &mission)

	require.NoError(t, RefreshActiveNeighborhoods(ctx, connection, testDate.AddDate(0, 0, -10)))

	active, err := db.GetActiveNeighborhoods(ctx, connection)
	require.NoError(t, err)
	assert.Equal(t, []string{mission}, neighborhoodNames(active))
}

func TestRefreshActiveNeighborhoods_NoStatistics(t *testing.T) {
	ctx := context.Background()
	connection := dbtest.NewConnection(t)
	factory := &listingFactory{}

	insert(t, connection, []*db.ListingModel{factory.listing("mission district", 0, 2500, testDate)})
	_, err := SyncNeighborhoods(ctx, connection)
	require.NoError(t, err)

	require.NoError(t, RefreshActiveNeighborhoods(ctx, connection, testDate))

	active, err := db.GetActiveNeighborhoods(ctx, connection)
	require.NoError(t, err)
	assert.Empty(t, active)
}
