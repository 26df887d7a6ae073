package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/csr-ugra/rent-tracker/internal"
	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/csr-ugra/rent-tracker/internal/source"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

const usage = "usage: rent-tracker <createdb|ingest|update-neighborhoods|run-bootstrap|status> [flags]"

func Run(ctx context.Context, connection bun.IDB, config *util.Config, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	command, args := args[0], args[1:]
	log.AddGlobalField("Command", command)

	switch command {
	case "createdb":
		return createDb(ctx, connection, args)
	case "ingest":
		return ingest(ctx, connection, config, args)
	case "update-neighborhoods":
		return updateNeighborhoods(ctx, connection, config, args)
	case "run-bootstrap":
		return runBootstrap(ctx, connection, config, args)
	case "status":
		return status(ctx, connection)
	}

	return fmt.Errorf("unknown command %q\n%s", command, usage)
}

func createDb(ctx context.Context, connection bun.IDB, args []string) error {
	flags := flag.NewFlagSet("createdb", flag.ContinueOnError)
	drop := flags.Bool("drop", false, "drop existing tables before creating them")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger := log.GetLogger()
	logger.WithField("Drop", *drop).Info("creating database tables")

	return db.CreateSchema(ctx, connection, *drop)
}

func ingest(ctx context.Context, connection bun.IDB, config *util.Config, args []string) error {
	flags := flag.NewFlagSet("ingest", flag.ContinueOnError)
	file := flags.String("file", "", "csv file with raw listings")
	dryRun := flags.Bool("dry", false, "dry run")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *file == "" {
		return errors.New("ingest: -file is required")
	}

	logger := log.GetLogger()
	if *dryRun {
		logger = log.AddGlobalField("DryRun", *dryRun)
	}

	raws, err := source.ReadListingsFile(*file)
	if err != nil {
		if *dryRun {
			return err
		}

		return internal.StampFailedRun(ctx, connection, fmt.Errorf("error reading raw listings: %w", err))
	}
	logger.WithField("RecordCount", len(raws)).Info("read {RecordCount} raw listings")

	if *dryRun {
		listings, err := internal.NewListings(raws, config.Location())
		if err != nil {
			return err
		}

		logger.WithField("ListingCount", len(listings)).Info("would save {ListingCount} listings")
		return nil
	}

	insertedCount, err := internal.Ingest(ctx, connection, raws, config.Location())
	if err != nil {
		return err
	}
	logger.WithField("InsertedCount", insertedCount).Info("ingested {InsertedCount} new listings")

	return nil
}

func updateNeighborhoods(ctx context.Context, connection bun.IDB, config *util.Config, args []string) error {
	flags := flag.NewFlagSet("update-neighborhoods", flag.ContinueOnError)
	dateFlag := flags.String("date", "", "reference date (YYYY-MM-DD), today by default")
	if err := flags.Parse(args); err != nil {
		return err
	}

	date, err := parseDateFlag(*dateFlag, config)
	if err != nil {
		return err
	}

	if _, err = internal.SyncNeighborhoods(ctx, connection); err != nil {
		return err
	}

	return internal.RefreshActiveNeighborhoods(ctx, connection, date)
}

func runBootstrap(ctx context.Context, connection bun.IDB, config *util.Config, args []string) error {
	opts := internal.NewBootstrapOptions(config)

	flags := flag.NewFlagSet("run-bootstrap", flag.ContinueOnError)
	dateFlag := flags.String("date", "", "statistics date (YYYY-MM-DD), today by default")
	flags.IntVar(&opts.Trials, "trials", opts.Trials, "bootstrap trials per bedroom category")
	if err := flags.Parse(args); err != nil {
		return err
	}

	date, err := parseDateFlag(*dateFlag, config)
	if err != nil {
		return err
	}

	written, err := internal.RunBootstrap(ctx, connection, date, opts)
	if err != nil {
		return err
	}

	logger := log.GetLogger()
	for _, statistics := range written {
		logger.WithFields(logrus.Fields{
			"Neighborhood": statistics.NeighborhoodName(),
			"Mean0":        statistics.Mean0,
			"Mean1":        statistics.Mean1,
			"Mean2":        statistics.Mean2,
		}).Info("statistics saved for {Neighborhood}")
	}

	return nil
}

func status(ctx context.Context, connection bun.IDB) error {
	logger := log.GetLogger()

	stamp, err := db.GetLatestScrapeStamp(ctx, connection)
	if err != nil {
		return err
	}
	if stamp == nil {
		logger.Warn("no scrape recorded yet")
	} else {
		fields := logrus.Fields{
			"ScrapedAt": stamp.ScrapedAt.Format(time.RFC3339),
			"Success":   stamp.Success,
		}
		if stamp.ListingsAdded != nil {
			fields["ListingsAdded"] = *stamp.ListingsAdded
		}
		logger.WithFields(fields).Info("last scrape at {ScrapedAt}")
	}

	neighborhoods, err := db.GetActiveNeighborhoods(ctx, connection)
	if err != nil {
		return err
	}
	for _, neighborhood := range neighborhoods {
		logger.WithFields(logrus.Fields{
			"Neighborhood": neighborhood.Name,
			"Slug":         neighborhood.Slug,
		}).Info("active neighborhood {Neighborhood}")
	}

	return nil
}

func parseDateFlag(value string, config *util.Config) (time.Time, error) {
	if value == "" {
		return util.Today(config.Location()), nil
	}

	date, err := util.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return date, nil
}
