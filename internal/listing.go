package internal

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/csr-ugra/rent-tracker/internal/log"
	"github.com/csr-ugra/rent-tracker/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	postedLayout = "2006-01-02 15:04"
	maxBedrooms  = 2
)

// RawListing is a listing as handed over by the listings source, all fields as text.
type RawListing struct {
	Id        string `csv:"id"`
	Name      string `csv:"name"`
	Price     string `csv:"price"`
	Url       string `csv:"url"`
	Where     string `csv:"where"`
	Area      string `csv:"area"`
	Bedrooms  string `csv:"bedrooms"`
	Datetime  string `csv:"datetime"`
	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`
	HasImage  string `csv:"has_image"`
	HasMap    string `csv:"has_map"`
}

// NewListing converts a raw record. Posting time is read in loc.
func NewListing(raw *RawListing, loc *time.Location) (*db.ListingModel, error) {
	postId, err := strconv.ParseInt(strings.TrimSpace(raw.Id), 10, 64)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "id", raw.Id, err)
	}

	price, err := parsePrice(raw.Price)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "price", raw.Price, err)
	}

	area, err := parseArea(raw.Area)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "area", raw.Area, err)
	}

	bedrooms := 0
	if v := strings.TrimSpace(raw.Bedrooms); v != "" {
		bedrooms, err = strconv.Atoi(v)
		if err != nil {
			return nil, NewSourceParseError(raw.Id, "bedrooms", raw.Bedrooms, err)
		}
		if bedrooms < 0 {
			return nil, NewSourceParseError(raw.Id, "bedrooms", raw.Bedrooms, errors.New("negative bedroom count"))
		}
	}

	if loc == nil {
		loc = time.UTC
	}

	posted, err := time.ParseInLocation(postedLayout, strings.TrimSpace(raw.Datetime), loc)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "datetime", raw.Datetime, err)
	}

	latitude, longitude, err := parseGeotag(raw.Latitude, raw.Longitude)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "geotag", raw.Latitude+","+raw.Longitude, err)
	}

	hasImage, err := parseFlag(raw.HasImage)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "has_image", raw.HasImage, err)
	}

	hasMap, err := parseFlag(raw.HasMap)
	if err != nil {
		return nil, NewSourceParseError(raw.Id, "has_map", raw.HasMap, err)
	}

	return &db.ListingModel{
		PostId:       postId,
		Name:         strings.TrimSpace(raw.Name),
		Price:        price,
		Url:          strings.TrimSpace(raw.Url),
		Neighborhood: strings.TrimSpace(raw.Where),
		Area:         area,
		Bedrooms:     bedrooms,
		Posted:       posted,
		PostedDate:   util.Date(posted, loc),
		Latitude:     latitude,
		Longitude:    longitude,
		HasImage:     hasImage,
		HasMap:       hasMap,
	}, nil
}

// NewListings converts a whole batch, dropping listings with more than two
// bedrooms. The first record that fails to parse fails the batch.
func NewListings(raws []*RawListing, loc *time.Location) ([]*db.ListingModel, error) {
	logger := log.GetLogger()

	listings := make([]*db.ListingModel, 0, len(raws))
	for _, raw := range raws {
		listing, err := NewListing(raw, loc)
		if err != nil {
			return nil, err
		}

		if listing.Bedrooms > maxBedrooms {
			logger.WithFields(logrus.Fields{
				"PostId":   listing.PostId,
				"Bedrooms": listing.Bedrooms,
			}).Debug("skipping listing with {Bedrooms} bedrooms")
			continue
		}

		listings = append(listings, listing)
	}

	return listings, nil
}

func parsePrice(value string) (int, error) {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")

	return strconv.Atoi(value)
}

func parseArea(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	area, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(value, "ft2")))
	if err != nil {
		return nil, err
	}

	return &area, nil
}

func parseGeotag(latitude, longitude string) (*float64, *float64, error) {
	latitude, longitude = strings.TrimSpace(latitude), strings.TrimSpace(longitude)
	if latitude == "" && longitude == "" {
		return nil, nil, nil
	}
	if latitude == "" || longitude == "" {
		return nil, nil, errors.New("latitude and longitude must be given together")
	}

	lat, err := strconv.ParseFloat(latitude, 64)
	if err != nil {
		return nil, nil, err
	}

	lon, err := strconv.ParseFloat(longitude, 64)
	if err != nil {
		return nil, nil, err
	}

	return &lat, &lon, nil
}

func parseFlag(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	return strconv.ParseBool(value)
}
