package db

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/kayceeDev/altschooltestingBE/core"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

const (
	defaultDatabase      = "test"
	readinessPingTimeout = 2 * time.Second
	disconnectTimeout    = 5 * time.Second
)

// Connection owns the process wide MongoDB client.
// The client is established in the background; until then Database returns core.ErrNotConnected.
// Readiness follows the latest ping, so it recovers once an unreachable server comes up.
type Connection struct {
	uri      string
	database string

	mu     sync.RWMutex
	client *mongo.Client
	closed bool
	ready  atomic.Bool

	ping func(ctx context.Context, client *mongo.Client) error
}

func NewConnection(uri, database string) *Connection {
	return &Connection{uri: uri, database: database, ping: pingPrimary}
}

func pingPrimary(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

// Connect creates the client and pings the primary. It is safe to call from a goroutine.
// A client whose first ping fails is kept so that CheckReady and Monitor can pick it up later.
func (c *Connection) Connect(ctx context.Context) error {
	if c.uri == "" {
		return fmt.Errorf("failed to connect to MongoDB: connection string is empty")
	}
	if c.isClosed() {
		return fmt.Errorf("failed to connect to MongoDB: %w", core.ErrClosed)
	}

	database, err := resolveDatabase(c.uri, c.database)
	if err != nil {
		return err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("❌ Failed to disconnect MongoDB client created after close: %v", err)
		}
		return fmt.Errorf("failed to connect to MongoDB: %w", core.ErrClosed)
	}
	c.client = client
	c.database = database
	c.mu.Unlock()

	if err := c.ping(ctx, client); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	if c.isClosed() {
		return fmt.Errorf("failed to connect to MongoDB: %w", core.ErrClosed)
	}

	c.setReady(true)
	return nil
}

// ConnectAsync starts Connect in the background and logs the outcome.
// The returned channel receives the result once and is then closed.
func (c *Connection) ConnectAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := c.Connect(ctx)
		if err != nil {
			log.Printf("❌ Failed to connect to MongoDB: %v", err)
		} else {
			log.Printf("✅ Connected to MongoDB (database: %s)", c.databaseName())
		}
		done <- err
	}()
	return done
}

// IsReady reports whether the latest ping succeeded
func (c *Connection) IsReady() bool {
	return c.ready.Load()
}

// CheckReady pings the current client and records the outcome.
// Without a client there is nothing to ping and the connection stays not ready.
func (c *Connection) CheckReady(ctx context.Context) bool {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, readinessPingTimeout)
	defer cancel()
	err := c.ping(pingCtx, client)

	wasReady := c.IsReady()
	c.setReady(err == nil)
	switch {
	case err == nil && !wasReady:
		log.Printf("✅ MongoDB is reachable")
	case err != nil && wasReady:
		log.Printf("⚠️ MongoDB became unreachable: %v", err)
	}
	return c.IsReady()
}

// Monitor runs CheckReady every interval until ctx is done
func (c *Connection) Monitor(ctx context.Context, interval time.Duration) {
	utils.AssertInvariant(interval > 0, "readiness check interval must be positive")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckReady(ctx)
		}
	}
}

// Database returns the configured database handle
func (c *Connection) Database() (*mongo.Database, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.client == nil {
		return nil, core.ErrNotConnected
	}
	return c.client.Database(c.database), nil
}

// Close disconnects the client if one was created. A Connect still in flight will not install its client.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.ready.Store(false)
	if c.client == nil {
		return nil
	}
	client := c.client
	c.client = nil
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}

// setReady records readiness unless the connection has been closed
func (c *Connection) setReady(ready bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	c.ready.Store(ready)
}

func (c *Connection) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Connection) databaseName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.database
}

// resolveDatabase picks the explicit database name, then the one in the URI path, then "test"
func resolveDatabase(uri, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB connection string: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return defaultDatabase, nil
}
