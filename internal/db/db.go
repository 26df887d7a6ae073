package db

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func GetConnection(config *util.Config) (*bun.DB, error) {
	sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DbConnectionString.Value)))
	db := bun.NewDB(sqlDb, pgdialect.New())

	AddDebugHook(db)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func AddDebugHook(db *bun.DB) {
	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG")))
}

var models = []interface{}{
	(*ListingModel)(nil),
	(*NeighborhoodModel)(nil),
	(*StatisticsModel)(nil),
	(*ScrapeLogModel)(nil),
}

// CreateSchema creates all tables and indexes, dropping existing tables first if drop is set.
func CreateSchema(ctx context.Context, connection bun.IDB, drop bool) error {
	if drop {
		for _, model := range models {
			if _, err := connection.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("error dropping table: %w", err)
			}
		}
	}

	for _, model := range models {
		if _, err := connection.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("error creating table: %w", err)
		}
	}

	indexes := []struct {
		model  interface{}
		name   string
		column string
	}{
		{(*ListingModel)(nil), "listings_posted_date_idx", "posted_date"},
		{(*ListingModel)(nil), "listings_neighborhood_idx", "neighborhood"},
		{(*StatisticsModel)(nil), "listing_price_statistics_date_idx", "date"},
		{(*ScrapeLogModel)(nil), "scrape_log_scraped_at_idx", "scraped_at"},
	}

	for _, index := range indexes {
		_, err := connection.NewCreateIndex().
			Model(index.model).
			Index(index.name).
			Column(index.column).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", index.name, err)
		}
	}

	// NULL neighborhoods are distinct under the composite unique constraint
	_, err := connection.NewCreateIndex().
		Model((*StatisticsModel)(nil)).
		Index("listing_price_statistics_citywide_date_idx").
		Unique().
		Column("date").
		Where("neighborhood IS NULL").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("error creating citywide statistics index: %w", err)
	}

	return nil
}
