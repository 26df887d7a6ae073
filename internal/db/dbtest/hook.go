package dbtest

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
)

// failingHook hands a cancelled context to matching queries, so they fail
// with context.Canceled before reaching the database.
type failingHook struct {
	match func(event *bun.QueryEvent) bool
}

var _ bun.QueryHook = (*failingHook)(nil)

func (h *failingHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	if !h.match(event) {
		return ctx
	}

	ctx, cancel := context.WithCancel(ctx)
	cancel()

	return ctx
}

func (h *failingHook) AfterQuery(context.Context, *bun.QueryEvent) {}

// FailInserts makes every INSERT into table whose SQL contains all fragments fail.
func FailInserts(connection *bun.DB, table string, fragments ...string) {
	quoted := `"` + table + `"`

	connection.AddQueryHook(&failingHook{match: func(event *bun.QueryEvent) bool {
		if event.Operation() != "INSERT" || !strings.Contains(event.Query, quoted) {
			return false
		}

		for _, fragment := range fragments {
			if !strings.Contains(event.Query, fragment) {
				return false
			}
		}

		return true
	}})
}
