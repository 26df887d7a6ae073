package db

import (
	"context"
	"fmt"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"github.com/uptrace/bun"
	"time"
)

// InsertListings stores listings not seen before, keyed by the source post id.
// A known post id is skipped, never updated. Each insert commits on its own,
// so a failure keeps the rows stored before it.
func InsertListings(ctx context.Context, connection bun.IDB, listings []*ListingModel) (insertedCount int, err error) {
	logger := log.GetLogger()

	for _, listing := range listings {
		exists, err := connection.NewSelect().
			Model((*ListingModel)(nil)).
			Where("post_id = ?", listing.PostId).
			Exists(ctx)
		if err != nil {
			return insertedCount, fmt.Errorf("error looking up listing %d: %w", listing.PostId, err)
		}

		if exists {
			logger.WithField("Url", listing.Url).Info("listing already inserted: {Url}")
			continue
		}

		if _, err = connection.NewInsert().Model(listing).Exec(ctx); err != nil {
			return insertedCount, fmt.Errorf("error inserting listing %d: %w", listing.PostId, err)
		}

		insertedCount++
	}

	logger.WithField("InsertedCount", insertedCount).Info("inserted {InsertedCount} new listings")

	return insertedCount, nil
}

// GetListingsInWindow returns listings posted in (end - windowDays, end].
// An empty neighborhood selects every neighborhood.
func GetListingsInWindow(ctx context.Context, connection bun.IDB, end time.Time, windowDays int, neighborhood string) (listings []*ListingModel, err error) {
	query := connection.NewSelect().
		Model(&listings).
		Where("posted_date > ?", util.WindowStart(end, windowDays)).
		Where("posted_date <= ?", end)

	if neighborhood != "" {
		query = query.Where("neighborhood = ?", neighborhood)
	}

	err = query.Scan(ctx)

	return listings, err
}

// GetLatestListings returns up to limit listings posted in (end - windowDays, end],
// newest first.
func GetLatestListings(ctx context.Context, connection bun.IDB, end time.Time, windowDays, limit int, neighborhood string) (listings []*ListingModel, err error) {
	query := connection.NewSelect().
		Model(&listings).
		Where("posted_date > ?", util.WindowStart(end, windowDays)).
		Where("posted_date <= ?", end).
		Order("posted DESC", "id DESC").
		Limit(limit)

	if neighborhood != "" {
		query = query.Where("neighborhood = ?", neighborhood)
	}

	err = query.Scan(ctx)

	return listings, err
}

func GetListingNeighborhoods(ctx context.Context, connection bun.IDB) (names []string, err error) {
	err = connection.NewSelect().
		Model((*ListingModel)(nil)).
		ColumnExpr("DISTINCT neighborhood").
		Where("neighborhood IS NOT NULL").
		Where("neighborhood <> ''").
		OrderExpr("neighborhood").
		Scan(ctx, &names)

	return names, err
}

func CountListings(ctx context.Context, connection bun.IDB) (int, error) {
	return connection.NewSelect().Model((*ListingModel)(nil)).Count(ctx)
}
