package mongos_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/guneyilmaz0/MongoS/pkg/mongos"
	"github.com/guneyilmaz0/MongoS/pkg/storage"
)

// TestClientImplementsStorageInterface verifies that mongos.Client implements storage.Client.
func TestClientImplementsStorageInterface(t *testing.T) {
	var _ storage.Client = (*mongos.Client)(nil)
}

// TestFactoryImplementsStorageFactory verifies that mongos.Factory implements storage.Factory.
func TestFactoryImplementsStorageFactory(t *testing.T) {
	var _ storage.Factory = (*mongos.Factory)(nil)
}

// Example demonstrates basic key/value usage.
func ExampleNew() {
	opts := mongos.NewOptions()
	opts.Host = "localhost"
	opts.Port = 27017
	opts.Database = "game"

	// Create client (this will fail if no MongoDB is running)
	client, err := mongos.New(opts)
	if err != nil {
		// Handle error
		return
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	db := client.DB()

	_ = db.Set(ctx, "moneys", "p1", 5000)
	money, _ := db.GetInt(ctx, "moneys", "p1", 0)
	fmt.Println(money)
}

// Example demonstrates case-insensitive key matching.
func ExampleCaseInsensitive() {
	opts := mongos.NewOptions()
	opts.Database = "game"

	client, err := mongos.New(opts)
	if err != nil {
		return
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	db := client.DB()

	_ = db.Set(ctx, "names", "ABC", "v")
	ok, _ := db.Exists(ctx, "names", mongos.ByKey(mongos.CaseInsensitive("abc")))
	fmt.Println(ok) // true
}

// Example demonstrates structured object storage.
func ExampleGetObject() {
	type Player struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	opts := mongos.NewOptions()
	opts.Database = "game"

	client, err := mongos.New(opts)
	if err != nil {
		return
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	db := client.DB()

	p, err := mongos.GetObject[Player](ctx, db, "players", "p1")
	if mongos.IsNotFound(err) {
		// No such player yet.
		return
	}
	fmt.Println(p.Name, p.Score)
}

// Example demonstrates factory usage with the storage manager.
func ExampleNewFactory() {
	opts := mongos.NewOptions()
	opts.Host = "localhost"
	opts.Database = "game"

	factory := mongos.NewFactory(opts)
	client, err := factory.Create(context.Background())
	if err != nil {
		return
	}

	mgr := storage.NewManager()
	mgr.MustRegister("mongo-primary", client)
	defer func() { _ = mgr.CloseAll() }()

	status := mgr.HealthCheck(context.Background(), "mongo-primary")
	fmt.Println(status.Healthy)
}
