// Package dbtest provides an ephemeral in-memory database with the
// production schema for tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/csr-ugra/rent-tracker/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func NewConnection(t testing.TB) *bun.DB {
	t.Helper()

	// every test gets its own named in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	sqlDb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)

	// the database lives as long as its last connection
	sqlDb.SetMaxOpenConns(1)
	sqlDb.SetMaxIdleConns(1)

	connection := bun.NewDB(sqlDb, sqlitedialect.New())
	db.AddDebugHook(connection)

	require.NoError(t, db.CreateSchema(context.Background(), connection, false))

	t.Cleanup(func() {
		_ = connection.Close()
	})

	return connection
}
