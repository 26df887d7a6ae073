package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/csr-ugra/rent-tracker/internal"
	"github.com/jszwec/csvutil"
)

// ReadListings decodes raw listings from csv with a header row naming the
// RawListing columns. Unknown columns are ignored.
func ReadListings(reader io.Reader) ([]*internal.RawListing, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create csv decoder for listings: %w", err)
	}

	var records []internal.RawListing
	if err = decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode listings csv: %w", err)
	}

	listings := make([]*internal.RawListing, len(records))
	for i := range records {
		listings[i] = &records[i]
	}

	return listings, nil
}

func ReadListingsFile(path string) ([]*internal.RawListing, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	return ReadListings(file)
}
