package tasks

import (
	"fmt"
	"strconv"
	"time"
)

// dialect captures the two ways the supported databases differ for this
// table: placeholder syntax, how timestamps are stored and which function
// folds case for search.
type dialect struct {
	name        string
	lower       string
	placeholder func(n int) string
	toDB        func(t time.Time) any
	fromDB      func(v any) (time.Time, error)
}

var postgresDialect = dialect{
	name:        "postgres",
	lower:       "LOWER",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	toDB:        func(t time.Time) any { return t.UTC() },
	fromDB: func(v any) (time.Time, error) {
		t, ok := v.(time.Time)
		if !ok {
			return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
		}
		return t.UTC(), nil
	},
}

// sqliteDialect stores timestamps as unix milliseconds so that range
// comparisons are plain integer comparisons.
var sqliteDialect = dialect{
	name:        "sqlite",
	lower:       sqliteLowerFunc,
	placeholder: func(int) string { return "?" },
	toDB:        func(t time.Time) any { return t.UTC().UnixMilli() },
	fromDB: func(v any) (time.Time, error) {
		ms, ok := v.(int64)
		if !ok {
			return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
		}
		return time.UnixMilli(ms).UTC(), nil
	},
}

// normalize rounds t to what both dialects can store without loss.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
