package mongostore

import (
	"context"
	"errors"
	"fmt"

	"examen-portal/internal/database"
	"examen-portal/internal/storage"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsuarioCollection  = "usuario"
	PlanillaCollection = "planilla_sueldos"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.PayrollStore = (*Store)(nil)
	_ storage.Pinger       = (*Store)(nil)
)

// Store provides MongoDB-backed persistence. Collections are resolved through
// the connector on every call, so a store built before the database is
// reachable starts working once it is.
type Store struct {
	conn *database.Connector
}

func NewStore(conn *database.Connector) *Store {
	return &Store{conn: conn}
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// translate maps driver errors onto the storage sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
	default:
		return err
	}
}
