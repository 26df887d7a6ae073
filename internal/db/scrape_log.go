package db

import (
	"context"
	"database/sql"
	"errors"
	"github.com/uptrace/bun"
	"time"
)

// AddScrapeStamp appends an ingestion outcome. A failed run carries no count.
func AddScrapeStamp(ctx context.Context, connection bun.IDB, scrapedAt time.Time, listingsAdded *int, success bool) error {
	stamp := &ScrapeLogModel{
		ScrapedAt:     scrapedAt.UTC(),
		ListingsAdded: listingsAdded,
		Success:       success,
	}

	_, err := connection.NewInsert().Model(stamp).Exec(ctx)

	return err
}

// GetLatestScrapeStamp returns nil if no ingestion ran yet.
func GetLatestScrapeStamp(ctx context.Context, connection bun.IDB) (*ScrapeLogModel, error) {
	stamp := new(ScrapeLogModel)

	err := connection.NewSelect().
		Model(stamp).
		Order("scraped_at DESC", "id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return stamp, nil
}
