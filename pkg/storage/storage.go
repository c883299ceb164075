// Package storage defines backend-agnostic abstractions for the MongoS
// client library: the base Client interface, health checking primitives,
// a Factory for dependency injection, and a Manager registry for
// applications that hold more than one client at a time.
package storage

import (
	"context"
	"time"
)

// Client is the base interface every storage client implements. It covers
// connection management, health checking, and graceful shutdown; the
// actual data operations live on the concrete client types.
//
// Example usage:
//
//	var client storage.Client = mongoClient
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer client.Close()
type Client interface {
	// Name returns a lowercase identifier for the storage type,
	// e.g. "mongodb". Used for logging and health check reporting.
	Name() string

	// Ping checks whether the connection to the backend is alive.
	// It performs a lightweight probe and returns an error if the
	// backend is unreachable or unhealthy. The context controls
	// timeout and cancellation of the probe.
	Ping(ctx context.Context) error

	// Close releases the connection and all associated resources.
	// Close is idempotent and safe to call multiple times.
	Close() error

	// Health returns a HealthChecker bound to this client. The
	// returned function can be handed to monitoring code without
	// exposing the client itself.
	Health() HealthChecker
}

// HealthChecker performs a health check against a storage backend.
// It captures the client it probes, so it can be invoked independently.
type HealthChecker func() error

// HealthStatus is the result of a single health check.
type HealthStatus struct {
	// Name identifies the client that was checked. Matches Client.Name()
	// for direct checks and the registration name for Manager checks.
	Name string

	// Healthy reports whether the backend responded normally.
	Healthy bool

	// Latency is how long the probe took. Useful for spotting
	// degradation before the backend actually fails.
	Latency time.Duration

	// Error holds the probe failure. Nil when Healthy is true.
	Error error
}

// Factory creates storage clients. It encapsulates construction so callers
// can inject configuration once and create clients on demand, and so tests
// can substitute mock implementations.
type Factory interface {
	// Create builds and initializes a new client. The returned client
	// is connected and verified; the context bounds the initialization.
	Create(ctx context.Context) (Client, error)
}
