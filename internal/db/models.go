package db

import (
	"fmt"
	"github.com/uptrace/bun"
	"time"
)

type ListingModel struct {
	bun.BaseModel `bun:"table:listings,alias:l"`
	Id            int64     `bun:"id,pk,autoincrement"`
	PostId        int64     `bun:"post_id,notnull,unique"`
	Name          string    `bun:"name,notnull"`
	Price         int       `bun:"price,notnull"`
	Url           string    `bun:"url,notnull"`
	Neighborhood  string    `bun:"neighborhood,nullzero"`
	Area          *int      `bun:"area"`
	Bedrooms      int       `bun:"bedrooms,notnull"`
	Posted        time.Time `bun:"posted,notnull"`
	PostedDate    time.Time `bun:"posted_date,type:date,notnull"`
	Latitude      *float64  `bun:"latitude"`
	Longitude     *float64  `bun:"longitude"`
	HasImage      bool      `bun:"has_image,notnull"`
	HasMap        bool      `bun:"has_map,notnull"`
}

// PricePerSqft is nil when the listing does not state its area.
func (l *ListingModel) PricePerSqft() *float64 {
	if l.Area == nil || *l.Area <= 0 {
		return nil
	}

	v := float64(l.Price) / float64(*l.Area)
	return &v
}

type NeighborhoodModel struct {
	bun.BaseModel `bun:"table:neighborhoods,alias:n"`
	Id            int64  `bun:"id,pk,autoincrement"`
	Name          string `bun:"name,notnull,unique"`
	Slug          string `bun:"slug,notnull"`
	Active        bool   `bun:"active,notnull"`
}

// StatisticsModel holds bootstrap bands of the mean price for studios,
// one and two bedroom listings. A nil Neighborhood is the citywide row.
type StatisticsModel struct {
	bun.BaseModel `bun:"table:listing_price_statistics,alias:lps"`
	Id            int64     `bun:"id,pk,autoincrement"`
	Date          time.Time `bun:"date,type:date,notnull,unique:date_neighborhood"`
	Neighborhood  *string   `bun:"neighborhood,unique:date_neighborhood"`
	Lower0        float64   `bun:"lower0,notnull"`
	Mean0         float64   `bun:"mean0,notnull"`
	Upper0        float64   `bun:"upper0,notnull"`
	Lower1        float64   `bun:"lower1,notnull"`
	Mean1         float64   `bun:"mean1,notnull"`
	Upper1        float64   `bun:"upper1,notnull"`
	Lower2        float64   `bun:"lower2,notnull"`
	Mean2         float64   `bun:"mean2,notnull"`
	Upper2        float64   `bun:"upper2,notnull"`
}

func (s *StatisticsModel) Band(bedrooms int) (lower, mean, upper float64) {
	switch bedrooms {
	case 0:
		return s.Lower0, s.Mean0, s.Upper0
	case 1:
		return s.Lower1, s.Mean1, s.Upper1
	case 2:
		return s.Lower2, s.Mean2, s.Upper2
	}

	panic(fmt.Sprintf("unsupported bedroom count %d", bedrooms))
}

func (s *StatisticsModel) SetBand(bedrooms int, lower, mean, upper float64) {
	switch bedrooms {
	case 0:
		s.Lower0, s.Mean0, s.Upper0 = lower, mean, upper
	case 1:
		s.Lower1, s.Mean1, s.Upper1 = lower, mean, upper
	case 2:
		s.Lower2, s.Mean2, s.Upper2 = lower, mean, upper
	default:
		panic(fmt.Sprintf("unsupported bedroom count %d", bedrooms))
	}
}

// NeighborhoodName returns the empty string for the citywide row.
func (s *StatisticsModel) NeighborhoodName() string {
	if s.Neighborhood == nil {
		return ""
	}

	return *s.Neighborhood
}

type ScrapeLogModel struct {
	bun.BaseModel `bun:"table:scrape_log,alias:sl"`
	Id            int64     `bun:"id,pk,autoincrement"`
	ScrapedAt     time.Time `bun:"scraped_at,notnull"`
	ListingsAdded *int      `bun:"listings_added"`
	Success       bool      `bun:"success,notnull"`
}
