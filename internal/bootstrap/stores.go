// Package bootstrap opens the backends selected by configuration. Both the
// web server and the import command build their dependencies here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"examen-portal/internal/config"
	"examen-portal/internal/database"
	"examen-portal/internal/storage"
	"examen-portal/internal/storage/mongostore"
	"examen-portal/internal/storage/postgres"

	"github.com/rs/zerolog/log"
)

// Stores holds the persistence dependencies for the configured driver.
//
// Users, Payroll and Pinger are always set. Mongo/Connector are set for
// STORE_DRIVER=mongo and SQL for STORE_DRIVER=postgres.
type Stores struct {
	Users   storage.UserStore
	Payroll storage.PayrollStore
	Pinger  storage.Pinger

	Connector *database.Connector
	Mongo     *mongostore.Store
	SQL       *postgres.Store
}

// OpenStores builds the stores. The Mongo connector connects lazily on first
// use; the SQL backend connects and migrates immediately.
func OpenStores(cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		conn := database.NewConnector(cfg.MongoURI, cfg.DatabaseName, cfg.MongoConnectTimeout())
		store := mongostore.NewStore(conn)
		return &Stores{
			Users:     store,
			Payroll:   store,
			Pinger:    store,
			Connector: conn,
			Mongo:     store,
		}, nil

	case config.DriverPostgres:
		db, err := database.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		store, err := postgres.NewStore(db)
		if err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return &Stores{
			Users:   store,
			Payroll: store,
			Pinger:  store,
			SQL:     store,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// EnsureSchema creates the unique indexes on the usuario collection. The SQL
// backend already did the equivalent during migration.
func (s *Stores) EnsureSchema(ctx context.Context) error {
	if s.Mongo == nil {
		return nil
	}
	return s.Mongo.EnsureIndexes(ctx)
}

// Close releases whichever backend is open.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	if s.Connector != nil {
		errs = append(errs, s.Connector.Close(ctx))
	}
	if s.SQL != nil {
		errs = append(errs, s.SQL.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	log.Info().Msg("store connections closed")
	return nil
}
