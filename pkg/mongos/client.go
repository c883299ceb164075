package mongos

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/logger"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/guneyilmaz0/MongoS/pkg/storage"
)

// closeTimeout bounds the graceful disconnect during Close.
const closeTimeout = 10 * time.Second

// isConnectedTimeout bounds the liveness probe issued by IsConnected.
const isConnectedTimeout = 3 * time.Second

// Client wraps mongo.Client and exposes the key/value surface through
// Database handles. It implements storage.Client; connection pooling,
// retries, and I/O threading stay with the underlying driver.
//
// Example usage:
//
//	opts := mongos.NewOptions()
//	opts.Host = "localhost"
//	opts.Database = "game"
//
//	client, err := mongos.New(opts)
//	if err != nil {
//	    log.Fatalf("failed to create MongoS client: %v", err)
//	}
//	defer client.Close()
//
//	db := client.DB()
//	_ = db.Set(ctx, "moneys", "p1", 5000)
type Client struct {
	client   *mongo.Client
	database *Database
	opts     *Options
}

// New creates a client from the provided options. It completes and
// validates the options, builds the connection URI, connects with the
// configured pool settings, and verifies the connection with a ping.
func New(opts *Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a client with the context bounding connection
// establishment and the initial ping.
func NewWithContext(ctx context.Context, opts *Options) (*Client, error) {
	if opts == nil {
		return nil, storage.ErrInvalidConfig.WithMessage("mongos options cannot be nil")
	}

	if err := opts.Complete(); err != nil {
		return nil, storage.ErrInvalidConfig.WithCause(err)
	}
	if err := opts.Validate(); err != nil {
		return nil, storage.ErrInvalidConfig.WithCause(err)
	}

	uri := BuildURI(opts)

	clientOpts := mongoopts.Client().ApplyURI(uri)

	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(opts.MinPoolSize)
	}
	if opts.MaxConnIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(opts.MaxConnIdleTime)
	}

	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.SocketTimeout > 0 {
		clientOpts.SetSocketTimeout(opts.SocketTimeout)
	}
	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}

	if opts.Direct {
		clientOpts.SetDirect(opts.Direct)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	var database *Database
	if opts.Database != "" {
		database = newDatabase(client.Database(opts.Database))
	}

	logger.Infow("connected to MongoDB", "host", opts.Host, "port", opts.Port, "database", opts.Database)

	return &Client{
		client:   client,
		database: database,
		opts:     opts,
	}, nil
}

// Name returns the storage type identifier. Implements storage.Client.
func (c *Client) Name() string {
	return "mongodb"
}

// Ping checks whether the connection is alive. Implements storage.Client.
func (c *Client) Ping(ctx context.Context) error {
	if c.client == nil {
		return storage.ErrNotConnected
	}
	return c.client.Ping(ctx, readpref.Primary())
}

// IsConnected issues a lightweight liveness probe and reports the outcome
// as a boolean. Any failure during the probe is caught here, never
// propagated.
func (c *Client) IsConnected(ctx context.Context) bool {
	if c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, isConnectedTimeout)
	defer cancel()
	return c.client.Ping(ctx, readpref.Primary()) == nil
}

// Close disconnects gracefully, releasing all driver resources. Safe to
// call multiple times. Implements storage.Client.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := c.client.Disconnect(ctx); err != nil {
		return err
	}
	logger.Infow("disconnected from MongoDB", "database", c.opts.Database)
	c.client = nil
	return nil
}

// Health returns a HealthChecker for monitoring integration. Implements
// storage.Client.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), isConnectedTimeout)
		defer cancel()
		return c.Ping(ctx)
	}
}

// DB returns the default database handle, or nil when no database was
// configured in the options.
func (c *Client) DB() *Database {
	return c.database
}

// DatabaseByName returns a handle for another database on the same
// connection.
func (c *Client) DatabaseByName(name string) *Database {
	if c.client == nil {
		return nil
	}
	return newDatabase(c.client.Database(name))
}

// Collection returns a raw driver collection from the default database,
// for operations this wrapper does not expose.
func (c *Client) Collection(name string) *mongo.Collection {
	if c.database == nil {
		panic(fmt.Sprintf("no default database set, use DatabaseByName to access collection %q", name))
	}
	return c.database.Collection(name)
}

// Raw returns the underlying mongo.Client for advanced driver usage.
func (c *Client) Raw() *mongo.Client {
	return c.client
}

// Compile-time check that Client implements storage.Client.
var _ storage.Client = (*Client)(nil)
