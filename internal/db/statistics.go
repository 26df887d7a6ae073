package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/uptrace/bun"
	"time"
)

// ReplaceStatistics removes the row for the same (date, neighborhood) and
// inserts the new one within a single transaction.
func ReplaceStatistics(ctx context.Context, connection bun.IDB, statistics *StatisticsModel) error {
	return connection.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		query := tx.NewDelete().
			Model((*StatisticsModel)(nil)).
			Where("date = ?", statistics.Date)

		if statistics.Neighborhood == nil {
			query = query.Where("neighborhood IS NULL")
		} else {
			query = query.Where("neighborhood = ?", *statistics.Neighborhood)
		}

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("error removing previous statistics: %w", err)
		}

		statistics.Id = 0
		if _, err := tx.NewInsert().Model(statistics).Exec(ctx); err != nil {
			return fmt.Errorf("error inserting statistics: %w", err)
		}

		return nil
	})
}

// GetStatisticsFor returns nil when nothing was computed for the pair.
// A nil neighborhood selects the citywide row.
func GetStatisticsFor(ctx context.Context, connection bun.IDB, date time.Time, neighborhood *string) (*StatisticsModel, error) {
	statistics := new(StatisticsModel)

	query := connection.NewSelect().Model(statistics).Where("date = ?", date)
	if neighborhood == nil {
		query = query.Where("neighborhood IS NULL")
	} else {
		query = query.Where("neighborhood = ?", *neighborhood)
	}

	err := query.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return statistics, nil
}

// GetStatistics returns rows dated in [from, to] for the given neighborhoods,
// plus the citywide rows when includeCitywide is set. Empty names selects
// every neighborhood.
func GetStatistics(ctx context.Context, connection bun.IDB, from, to time.Time, names []string, includeCitywide bool) (statistics []*StatisticsModel, err error) {
	query := connection.NewSelect().
		Model(&statistics).
		Where("date >= ?", from).
		Where("date <= ?", to)

	query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		if len(names) > 0 {
			q = q.WhereOr("neighborhood IN (?)", bun.In(names))
		} else {
			q = q.WhereOr("neighborhood IS NOT NULL")
		}

		if includeCitywide {
			q = q.WhereOr("neighborhood IS NULL")
		}

		return q
	})

	err = query.Order("date", "neighborhood").Scan(ctx)

	return statistics, err
}

// GetLatestStatisticsDate returns the most recent date with statistics
// strictly before the given date; a zero before means no bound.
// ok is false when there is no such date.
func GetLatestStatisticsDate(ctx context.Context, connection bun.IDB, before time.Time) (date time.Time, ok bool, err error) {
	latest := new(StatisticsModel)

	query := connection.NewSelect().
		Model(latest).
		Column("date").
		Order("date DESC").
		Limit(1)

	if !before.IsZero() {
		query = query.Where("date < ?", before)
	}

	err = query.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	return latest.Date, true, nil
}

// GetStatisticsNeighborhoods lists the neighborhoods with a snapshot on the date.
func GetStatisticsNeighborhoods(ctx context.Context, connection bun.IDB, date time.Time) (names []string, err error) {
	err = connection.NewSelect().
		Model((*StatisticsModel)(nil)).
		Column("neighborhood").
		Where("date = ?", date).
		Where("neighborhood IS NOT NULL").
		Scan(ctx, &names)

	return names, err
}

func CountStatistics(ctx context.Context, connection bun.IDB) (int, error) {
	return connection.NewSelect().Model((*StatisticsModel)(nil)).Count(ctx)
}
