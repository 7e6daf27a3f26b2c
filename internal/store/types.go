package store

import "strings"

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
	DBTypeFirebase DatabaseType = "firebase"
)

// DetectType resolves the backend from the DSN shape: an https URL points at
// the hosted realtime database, a postgres URL at Postgres, anything else is
// treated as a SQLite path.
func DetectType(dsn string) DatabaseType {
	switch {
	case strings.HasPrefix(dsn, "https"):
		return DBTypeFirebase
	case strings.HasPrefix(dsn, "postgres"):
		return DBTypePostgres
	default:
		return DBTypeSQLite
	}
}

type EventCount struct {
	Event string `db:"event_type"`
	Count int64  `db:"n"`
}
