package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenSQLite returns an isolated in-memory bun database for tests. The
// connection is torn down with the test.
func OpenSQLite(t *testing.T, name string) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CreateTables creates tables for the provided bun models, failing the test
// on error.
func CreateTables(t *testing.T, db *bun.DB, models ...any) {
	t.Helper()

	ctx := context.Background()
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}
}
