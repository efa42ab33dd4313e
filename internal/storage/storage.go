package storage

import (
	"context"
	"errors"

	"examen-portal/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations behind the credential store.
type UserStore interface {
	InsertUser(ctx context.Context, user models.Usuario) (string, error)
	FindUserByUsername(ctx context.Context, username string) (models.Usuario, error)
	FindUserByEmail(ctx context.Context, email string) (models.Usuario, error)
}

// PayrollStore receives the rows produced by the planilla import.
type PayrollStore interface {
	InsertRegistro(ctx context.Context, registro models.RegistroPlanilla) (string, error)
	DeleteAllRegistros(ctx context.Context) (int64, error)
}

// Pinger is implemented by backends that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
