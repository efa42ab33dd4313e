package postgres

import (
	"errors"
	"fmt"
	"testing"

	"examen-portal/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, storage.ErrNotFound, translate(gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(translate(gorm.ErrDuplicatedKey), storage.ErrAlreadyExists))

	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	assert.True(t, errors.Is(translate(fmt.Errorf("insert: %w", pgErr)), storage.ErrAlreadyExists))

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "usuario", usuarioRow{}.TableName())
	assert.Equal(t, "planilla_sueldos", registroRow{}.TableName())
}
