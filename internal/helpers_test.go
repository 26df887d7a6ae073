package internal

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var testDate = time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)

type listingFactory struct {
	nextPostId int64
}

func (f *listingFactory) listing(neighborhood string, bedrooms, price int, posted time.Time) *db.ListingModel {
	f.nextPostId++

	return &db.ListingModel{
		PostId:       7000000000 + f.nextPostId,
		Name:         "apartment",
		Price:        price,
		Url:          "https://sfbay.craigslist.org/sfc/apa/d/listing.html",
		Neighborhood: neighborhood,
		Bedrooms:     bedrooms,
		Posted:       posted,
		PostedDate:   time.Date(posted.Year(), posted.Month(), posted.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// spread creates count listings cycling through the bedroom categories,
// posted on the days before testDate and priced evenly in [2000, 4000).
func (f *listingFactory) spread(neighborhood string, count int) []*db.ListingModel {
	listings := make([]*db.ListingModel, 0, count)
	for i := 0; i < count; i++ {
		posted := testDate.AddDate(0, 0, -(i % 28)).Add(12 * time.Hour)
		price := 2000 + (i*37)%2000
		listings = append(listings, f.listing(neighborhood, i%3, price, posted))
	}

	return listings
}

func insert(t *testing.T, connection bun.IDB, listings []*db.ListingModel) {
	t.Helper()

	_, err := db.InsertListings(context.Background(), connection, listings)
	require.NoError(t, err)
}

func testOptions(seed uint64) BootstrapOptions {
	opts := DefaultBootstrapOptions()
	opts.Rand = rand.New(rand.NewPCG(seed, seed+1))

	return opts
}
