package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnector_InvalidURI(t *testing.T) {
	c := NewConnector("not-a-mongo-uri", "examen", time.Second)

	client, err := c.Client(context.Background())
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, errors.Is(err, ErrConnectionFailed))
	assert.False(t, c.Connected())
}

func TestConnector_UnreachableServerResetsState(t *testing.T) {
	c := NewConnector("mongodb://127.0.0.1:1/?directConnection=true", "examen", 300*time.Millisecond)

	_, err := c.Database(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionFailed))
	assert.False(t, c.Connected())

	// a second attempt reconnects from scratch instead of reusing a broken client
	err = c.Ping(context.Background())
	assert.True(t, errors.Is(err, ErrConnectionFailed))
	assert.False(t, c.Connected())
}

func TestConnector_CloseWithoutClient(t *testing.T) {
	c := NewConnector("mongodb://localhost:27017/", "examen", time.Second)
	assert.NoError(t, c.Close(context.Background()))
	assert.Equal(t, "examen", c.DatabaseName())
}

func TestRedactURI(t *testing.T) {
	assert.Equal(t, "mongodb://***@db:27017/", redactURI("mongodb://user:secret@db:27017/"))
	assert.Equal(t, "mongodb://localhost:27017/", redactURI("mongodb://localhost:27017/"))
	assert.Equal(t, "mongodb+srv://***@cluster.example.net/", redactURI("mongodb+srv://a:b@cluster.example.net/"))
}
