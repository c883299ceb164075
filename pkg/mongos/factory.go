package mongos

import (
	"context"

	"github.com/guneyilmaz0/MongoS/pkg/storage"
)

// Factory implements storage.Factory for MongoS clients, encapsulating
// the construction so configuration is injected once and clients are
// created on demand.
//
// Example usage:
//
//	factory := mongos.NewFactory(opts)
//	client, err := factory.Create(ctx)
//	if err != nil {
//	    log.Fatalf("failed to create client: %v", err)
//	}
//	defer client.Close()
type Factory struct {
	opts *Options
}

// NewFactory creates a factory with the provided options. The same factory
// can create multiple clients sharing one configuration.
func NewFactory(opts *Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create builds and verifies a new client. Implements storage.Factory.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	if f.opts == nil {
		return nil, storage.ErrInvalidConfig.WithMessage("mongos options cannot be nil")
	}
	return NewWithContext(ctx, f.opts)
}

// Options returns the options used by this factory, for inspection or
// cloning.
func (f *Factory) Options() *Options {
	return f.opts
}

// Clone returns a factory with a copy of the current options, for deriving
// variants from one base configuration.
//
//	base := mongos.NewFactory(opts)
//	dev := base.Clone()
//	dev.Options().Database = "game_dev"
func (f *Factory) Clone() *Factory {
	optsCopy := *f.opts
	return &Factory{
		opts: &optsCopy,
	}
}

// Compile-time check that Factory implements storage.Factory.
var _ storage.Factory = (*Factory)(nil)
