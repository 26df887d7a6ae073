package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

// SyncNeighborhoods registers every neighborhood name seen in listings that
// is not registered yet. New neighborhoods start inactive.
func SyncNeighborhoods(ctx context.Context, connection bun.IDB) (insertedCount int, err error) {
	logger := log.GetLogger()

	names, err := db.GetListingNeighborhoods(ctx, connection)
	if err != nil {
		return 0, fmt.Errorf("error loading listing neighborhoods: %w", err)
	}

	for _, name := range names {
		exists, err := db.NeighborhoodExists(ctx, connection, name)
		if err != nil {
			return insertedCount, err
		}

		if exists {
			logger.WithField("Neighborhood", name).Debug("neighborhood already inserted: {Neighborhood}")
			continue
		}

		neighborhood := &db.NeighborhoodModel{
			Name:   name,
			Slug:   util.Slugify(name),
			Active: false,
		}

		if err = db.InsertNeighborhood(ctx, connection, neighborhood); err != nil {
			return insertedCount, fmt.Errorf("error inserting neighborhood %q: %w", name, err)
		}

		insertedCount++
	}

	logger.WithField("InsertedCount", insertedCount).Info("inserted {InsertedCount} new neighborhoods")

	return insertedCount, nil
}

// RefreshActiveNeighborhoods marks a neighborhood active iff it has statistics
// on the latest statistics date before referenceDate, falling back to the
// latest date overall. Every neighborhood is rewritten, so ones without
// recent statistics are switched off.
func RefreshActiveNeighborhoods(ctx context.Context, connection bun.IDB, referenceDate time.Time) error {
	logger := log.GetLogger()
	referenceDate = util.CalendarDate(referenceDate)

	date, ok, err := db.GetLatestStatisticsDate(ctx, connection, referenceDate)
	if err != nil {
		return fmt.Errorf("error loading latest statistics date: %w", err)
	}
	if !ok {
		date, ok, err = db.GetLatestStatisticsDate(ctx, connection, time.Time{})
		if err != nil {
			return fmt.Errorf("error loading latest statistics date: %w", err)
		}
	}

	active := make(map[string]struct{})
	if ok {
		names, err := db.GetStatisticsNeighborhoods(ctx, connection, date)
		if err != nil {
			return fmt.Errorf("error loading neighborhoods with statistics: %w", err)
		}

		for _, name := range names {
			active[name] = struct{}{}
		}
	} else {
		logger.Warn("no statistics computed yet, all neighborhoods will be inactive")
	}

	return connection.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		neighborhoods, err := db.GetNeighborhoods(ctx, tx)
		if err != nil {
			return err
		}

		activeCount := 0
		for _, neighborhood := range neighborhoods {
			_, neighborhood.Active = active[neighborhood.Name]
			if neighborhood.Active {
				activeCount++
			}

			if err = db.SetNeighborhoodActive(ctx, tx, neighborhood); err != nil {
				return fmt.Errorf("error updating neighborhood %q: %w", neighborhood.Name, err)
			}
		}

		logger.WithFields(logrus.Fields{
			"StatisticsDate": date.Format(time.DateOnly),
			"ActiveCount":    activeCount,
			"TotalCount":     len(neighborhoods),
		}).Info("{ActiveCount} of {TotalCount} neighborhoods active")

		return nil
	})
}
