//go:build integration

package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"examen-portal/internal/database"
	"examen-portal/internal/models"
	"examen-portal/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcMongo.RunContainer(ctx, testcontainers.WithImage("mongo:7"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	conn := database.NewConnector(uri, "examen_test", 10*time.Second)
	t.Cleanup(func() { _ = conn.Close(ctx) })

	store := NewStore(conn)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestStore_UserRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created := time.Now().UTC().Truncate(time.Millisecond)
	id, err := store.InsertUser(ctx, models.Usuario{
		Nombre: "Ana", Apellido: "Quispe", Celular: "999111222",
		Email: "ana@example.com", Usuario: "ana", Password: "$2a$04$hash", CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := store.FindUserByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.True(t, created.Equal(got.CreatedAt))

	byEmail, err := store.FindUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	_, err = store.FindUserByUsername(ctx, "ANA")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestStore_UniqueIndexRejectsDuplicates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.InsertUser(ctx, models.Usuario{Usuario: "ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = store.InsertUser(ctx, models.Usuario{Usuario: "ana", Email: "otra@example.com"})
	assert.True(t, errors.Is(err, storage.ErrAlreadyExists))

	_, err = store.InsertUser(ctx, models.Usuario{Usuario: "otra", Email: "ana@example.com"})
	assert.True(t, errors.Is(err, storage.ErrAlreadyExists))
}

func TestStore_RegistrosInsertAndClear(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sueldo := 1500.0
	for i := 0; i < 3; i++ {
		_, err := store.InsertRegistro(ctx, models.RegistroPlanilla{Nombre: "Luis", Sueldo: &sueldo})
		require.NoError(t, err)
	}

	deleted, err := store.DeleteAllRegistros(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
