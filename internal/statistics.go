package internal

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/csr-ugra/rent-tracker/internal/stats"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"github.com/csr-ugra/rent-tracker/internal/util/assert"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

var BedroomCategories = []int{0, 1, 2}

type BootstrapOptions struct {
	Trials      int
	WindowDays  int
	MinListings int
	// Rand is shared by every resampling of the run; nil draws from the global source
	Rand *rand.Rand
}

func DefaultBootstrapOptions() BootstrapOptions {
	return BootstrapOptions{
		Trials:      1000,
		WindowDays:  28,
		MinListings: 100,
	}
}

func NewBootstrapOptions(config *util.Config) BootstrapOptions {
	return BootstrapOptions{
		Trials:      config.BootstrapTrials.Int(),
		WindowDays:  config.WindowDays.Int(),
		MinListings: config.MinNeighborhoodListings.Int(),
	}
}

// RunBootstrap computes price statistics for date over the trailing window and
// replaces the stored rows: one citywide row and one per neighborhood with at
// least MinListings listings. Neighborhoods whose computation fails are skipped,
// a failing citywide computation or a storage error aborts the run, keeping
// rows already replaced.
func RunBootstrap(ctx context.Context, connection bun.IDB, date time.Time, opts BootstrapOptions) (written []*db.StatisticsModel, err error) {
	date = util.CalendarDate(date)
	logger := log.GetLogger().WithField("Date", date.Format(time.DateOnly))

	listings, err := db.GetListingsInWindow(ctx, connection, date, opts.WindowDays, "")
	if err != nil {
		return nil, fmt.Errorf("error loading listings: %w", err)
	}
	logger.WithField("ListingCount", len(listings)).Info("loaded {ListingCount} listings for {Date}")

	citywide, err := newStatistics(date, nil, listings, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("error computing citywide statistics: %w", err)
	}

	if err = db.ReplaceStatistics(ctx, connection, citywide); err != nil {
		return nil, fmt.Errorf("error saving citywide statistics: %w", err)
	}
	written = append(written, citywide)

	byNeighborhood := make(map[string][]*db.ListingModel)
	for _, listing := range listings {
		if listing.Neighborhood == "" {
			continue
		}

		byNeighborhood[listing.Neighborhood] = append(byNeighborhood[listing.Neighborhood], listing)
	}

	names := make([]string, 0, len(byNeighborhood))
	for name := range byNeighborhood {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err = ctx.Err(); err != nil {
			return written, err
		}

		hoodLogger := logger.WithField("Neighborhood", name)
		hoodListings := byNeighborhood[name]

		if len(hoodListings) < opts.MinListings {
			hoodLogger.Debug(NewInsufficientSampleError(name, len(hoodListings), opts.MinListings))
			continue
		}

		statistics, err := newStatistics(date, &name, hoodListings, opts, hoodLogger)
		if errors.Is(err, &stats.EmptyTrimResultError{}) {
			hoodLogger.WithError(err).Warn("skipping statistics for {Neighborhood}")
			continue
		}
		if err != nil {
			return written, fmt.Errorf("error computing statistics for %q: %w", name, err)
		}

		if err = db.ReplaceStatistics(ctx, connection, statistics); err != nil {
			return written, fmt.Errorf("error saving statistics for %q: %w", name, err)
		}
		written = append(written, statistics)
	}

	logger.WithField("RowCount", len(written)).Info("saved {RowCount} statistics rows for {Date}")

	return written, nil
}

func newStatistics(date time.Time, neighborhood *string, listings []*db.ListingModel, opts BootstrapOptions, logger log.Logger) (*db.StatisticsModel, error) {
	statistics := &db.StatisticsModel{
		Date:         date,
		Neighborhood: neighborhood,
	}

	for _, bedrooms := range BedroomCategories {
		prices := make([]float64, 0, len(listings))
		for _, listing := range listings {
			if listing.Bedrooms == bedrooms {
				prices = append(prices, float64(listing.Price))
			}
		}

		categoryLogger := logger.WithFields(logrus.Fields{
			"Bedrooms":    bedrooms,
			"SampleCount": len(prices),
		})
		categoryLogger.Debug("generating bootstrap statistics for bedrooms={Bedrooms}")

		band, err := stats.Bootstrap(prices, opts.Trials, opts.Rand)
		if err != nil {
			return nil, fmt.Errorf("bedrooms=%d: %w", bedrooms, err)
		}

		assert.Assert(band.Lower <= band.Mean && band.Mean <= band.Upper,
			"bootstrap percentiles out of order",
			"Bedrooms", bedrooms, "Lower", band.Lower, "Mean", band.Mean, "Upper", band.Upper)

		categoryLogger.WithFields(logrus.Fields{
			"Lower": band.Lower,
			"Mean":  band.Mean,
			"Upper": band.Upper,
		}).Debug("statistics generated: {Lower} < {Mean} < {Upper}")

		statistics.SetBand(bedrooms, band.Lower, band.Mean, band.Upper)
	}

	return statistics, nil
}
