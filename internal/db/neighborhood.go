package db

import (
	"context"
	"database/sql"
	"errors"
	"github.com/uptrace/bun"
)

func GetNeighborhoods(ctx context.Context, connection bun.IDB) (neighborhoods []*NeighborhoodModel, err error) {
	err = connection.NewSelect().Model(&neighborhoods).Order("name").Scan(ctx)

	return neighborhoods, err
}

func GetActiveNeighborhoods(ctx context.Context, connection bun.IDB) (neighborhoods []*NeighborhoodModel, err error) {
	err = connection.NewSelect().
		Model(&neighborhoods).
		Where("active = ?", true).
		Order("name").
		Scan(ctx)

	return neighborhoods, err
}

// GetNeighborhoodBySlug returns nil when no neighborhood has the slug.
func GetNeighborhoodBySlug(ctx context.Context, connection bun.IDB, slug string) (*NeighborhoodModel, error) {
	neighborhood := new(NeighborhoodModel)

	err := connection.NewSelect().Model(neighborhood).Where("slug = ?", slug).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return neighborhood, nil
}

func NeighborhoodExists(ctx context.Context, connection bun.IDB, name string) (bool, error) {
	return connection.NewSelect().
		Model((*NeighborhoodModel)(nil)).
		Where("name = ?", name).
		Exists(ctx)
}

func InsertNeighborhood(ctx context.Context, connection bun.IDB, neighborhood *NeighborhoodModel) error {
	_, err := connection.NewInsert().Model(neighborhood).Exec(ctx)

	return err
}

func SetNeighborhoodActive(ctx context.Context, connection bun.IDB, neighborhood *NeighborhoodModel) error {
	_, err := connection.NewUpdate().
		Model(neighborhood).
		Column("active").
		WherePK().
		Exec(ctx)

	return err
}
