package app

import (
	"fmt"

	"github.com/bitesys/registrar/internal/store"
	"github.com/bitesys/registrar/internal/store/firebase"
	"github.com/bitesys/registrar/internal/store/postgres"
	"github.com/bitesys/registrar/internal/store/sqlite"
)

// NewStore picks a backend from the DSN. collectionPath and authToken only
// apply to the hosted realtime database.
func NewStore(dsn, collectionPath, authToken string) (store.RegistrationStore, error) {
	switch store.DetectType(dsn) {
	case store.DBTypeFirebase:
		return firebase.NewFirebaseStore(dsn, collectionPath, authToken)
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dsn)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(dsn)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}
