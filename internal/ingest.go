package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/uptrace/bun"
)

// Ingest converts and stores a batch of raw listings and stamps the scrape log
// with the outcome. Any failure stamps the run as failed and is returned.
func Ingest(ctx context.Context, connection bun.IDB, raws []*RawListing, loc *time.Location) (insertedCount int, err error) {
	logger := log.GetLogger()

	listings, err := NewListings(raws, loc)
	if err != nil {
		return 0, StampFailedRun(ctx, connection, fmt.Errorf("error converting raw listings: %w", err))
	}
	logger.WithField("ListingCount", len(listings)).Debug("converted {ListingCount} raw listings")

	insertedCount, err = db.InsertListings(ctx, connection, listings)
	if err != nil {
		return insertedCount, StampFailedRun(ctx, connection, fmt.Errorf("error saving listings: %w", err))
	}

	if err = db.AddScrapeStamp(ctx, connection, time.Now(), &insertedCount, true); err != nil {
		return insertedCount, fmt.Errorf("error saving scrape stamp: %w", err)
	}

	return insertedCount, nil
}

// StampFailedRun records a failed ingestion attempt and returns cause, joined
// with the stamping error if the stamp could not be saved.
func StampFailedRun(ctx context.Context, connection bun.IDB, cause error) error {
	if err := db.AddScrapeStamp(ctx, connection, time.Now(), nil, false); err != nil {
		return errors.Join(cause, fmt.Errorf("error saving failed scrape stamp: %w", err))
	}

	return cause
}
