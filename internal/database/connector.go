package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrConnectionFailed is returned when the document store cannot be reached.
var ErrConnectionFailed = errors.New("database connection failed")

// Connector owns a single MongoDB client for the process that created it.
// The client is created on first use and kept until Close.
type Connector struct {
	uri     string
	dbName  string
	timeout time.Duration

	mu     sync.Mutex
	client *mongo.Client
}

func NewConnector(uri, dbName string, timeout time.Duration) *Connector {
	return &Connector{uri: uri, dbName: dbName, timeout: timeout}
}

// Client returns the memoized client, connecting and pinging on first call.
// A failed attempt leaves the connector uninitialized so the next call tries again.
func (c *Connector) Client(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	opts := options.Client().
		ApplyURI(c.uri).
		SetConnectTimeout(c.timeout).
		SetServerSelectionTimeout(c.timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error().Err(err).Str("uri", redactURI(c.uri)).Msg("failed to connect to MongoDB")
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error().Err(err).Str("uri", redactURI(c.uri)).Msg("MongoDB ping failed")
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	log.Info().Str("uri", redactURI(c.uri)).Str("database", c.DatabaseName()).Msg("connected to MongoDB")
	c.client = client
	return client, nil
}

// Database returns the handle to the configured logical database.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.DatabaseName()), nil
}

// Ping checks liveness of the existing client, connecting first if needed.
func (c *Connector) Ping(ctx context.Context) error {
	client, err := c.Client(ctx)
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// Close disconnects the client if present and resets the connector.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	log.Info().Msg("MongoDB connection closed")
	return err
}

// Connected reports whether a client is currently held.
func (c *Connector) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

func (c *Connector) DatabaseName() string {
	return c.dbName
}

// redactURI hides the userinfo part of a connection string.
func redactURI(uri string) string {
	schemeEnd := 0
	if i := strings.Index(uri, "://"); i >= 0 {
		schemeEnd = i + 3
	}
	if at := strings.LastIndex(uri, "@"); at >= schemeEnd && at > 0 {
		return uri[:schemeEnd] + "***" + uri[at:]
	}
	return uri
}
