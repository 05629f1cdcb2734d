package tasks

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"modernc.org/sqlite"
)

// sqliteLowerFunc folds case with Go's Unicode rules. SQLite's built-in
// LOWER only folds ASCII, so "ÉCOLE" would never match "école".
const sqliteLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", sqliteLowerFunc, v)
	}
}

// SQLiteRepository keeps timestamps as unix milliseconds (see sqliteDialect).
type SQLiteRepository struct {
	store
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{store{db: db, d: sqliteDialect}}
}

var _ Repository = (*SQLiteRepository)(nil)
