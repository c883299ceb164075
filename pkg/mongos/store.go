package mongos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kart-io/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// asyncSetTimeout bounds a background Set dispatched via SetAsync.
const asyncSetTimeout = 30 * time.Second

// Record is the fundamental persisted unit: a two-field document mapping
// a key to a value. Within a named collection at most one record exists
// per distinct key, enforced by the upsert in Set rather than by a
// uniqueness constraint in storage.
type Record struct {
	Key   any `bson:"key" json:"key"`
	Value any `bson:"value" json:"value"`
}

// Database owns the {key, value} document convention over the collections
// of one MongoDB database. It holds no state of its own beyond the driver
// handle, so it is safe for concurrent use; collections are created
// implicitly by the server on first write.
type Database struct {
	db *mongo.Database
}

// newDatabase wraps a driver database handle.
func newDatabase(db *mongo.Database) *Database {
	return &Database{db: db}
}

// NewDatabase builds a Database over an externally managed driver handle.
// Useful when the mongo.Client lifetime is owned elsewhere.
func NewDatabase(db *mongo.Database) *Database {
	return newDatabase(db)
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.db.Name()
}

// Collection returns the raw driver collection, for operations this
// wrapper does not expose.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Exists reports whether a record matching the descriptor is present.
func (d *Database) Exists(ctx context.Context, collection string, desc Descriptor) (bool, error) {
	err := d.db.Collection(collection).FindOne(ctx, desc.filter()).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, operationFailed("exists", collection, err)
	}
	return true, nil
}

// GetDocument fetches the first record matching the descriptor. Matching
// is unordered: should multiple records transiently share a key under
// concurrent writers, which record is returned is arbitrary. Returns
// ErrNotFound when nothing matches.
func (d *Database) GetDocument(ctx context.Context, collection string, desc Descriptor) (*Record, error) {
	var rec Record
	err := d.db.Collection(collection).FindOne(ctx, desc.filter()).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound.WithMessage(fmt.Sprintf("no record in %q for %s=%v", collection, desc.Field, desc.Value))
	}
	if err != nil {
		return nil, operationFailed("getDocument", collection, err)
	}
	return &rec, nil
}

// GetDocuments returns a cursor over all records matching the descriptor.
// The sequence is lazy and finite; it can only be restarted by re-invoking
// the query. The caller owns closing the cursor.
func (d *Database) GetDocuments(ctx context.Context, collection string, desc Descriptor) (*mongo.Cursor, error) {
	cur, err := d.db.Collection(collection).Find(ctx, desc.filter())
	if err != nil {
		return nil, operationFailed("getDocuments", collection, err)
	}
	return cur, nil
}

// Set stores a value under a key with replace-not-merge semantics: any
// existing record for the key is replaced wholesale by a single atomic
// replace-or-insert, and the record's internal identity is carried forward
// by the server. Values implementing Object are stored as embedded
// documents.
func (d *Database) Set(ctx context.Context, collection string, key, value any) error {
	stored, err := encodeValue(value)
	if err != nil {
		return err
	}

	replacement := bson.M{DefaultKeyField: storedKey(key), valueField: stored}
	_, err = d.db.Collection(collection).ReplaceOne(
		ctx,
		ByKey(key).filter(),
		replacement,
		mongoopts.Replace().SetUpsert(true),
	)
	if err != nil {
		return operationFailed("set", collection, err)
	}
	return nil
}

// SetAsync dispatches Set on a background goroutine and returns a buffered
// channel carrying the single result. Fire-and-forget callers can drop the
// channel; failures are logged either way.
func (d *Database) SetAsync(collection string, key, value any) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		ctx, cancel := context.WithTimeout(context.Background(), asyncSetTimeout)
		defer cancel()

		err := d.Set(ctx, collection, key, value)
		if err != nil {
			logger.Errorw("async set failed", "collection", collection, "key", key, "error", err)
		}
		errc <- err
	}()
	return errc
}

// SetMany bulk-inserts records without any existence check. The caller is
// responsible for ensuring the keys do not collide with existing records;
// values implementing Object are encoded the same way Set encodes them.
func (d *Database) SetMany(ctx context.Context, collection string, records []Record) (*mongo.InsertManyResult, error) {
	docs := make([]any, 0, len(records))
	for _, rec := range records {
		stored, err := encodeValue(rec.Value)
		if err != nil {
			return nil, err
		}
		docs = append(docs, bson.M{DefaultKeyField: storedKey(rec.Key), valueField: stored})
	}

	res, err := d.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return nil, operationFailed("setMany", collection, err)
	}
	return res, nil
}

// SetIfNotExists stores the value only when no record exists for the key.
// NOT atomic: the existence check and the insert are two operations, so a
// concurrent writer can slip between them. Best-effort by contract.
func (d *Database) SetIfNotExists(ctx context.Context, collection string, key, value any) error {
	exists, err := d.Exists(ctx, collection, ByKey(key))
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return d.Set(ctx, collection, key, value)
}

// RemoveData atomically finds and deletes the record matching the
// descriptor, returning the removed record. Returns ErrNotFound when
// nothing matched.
func (d *Database) RemoveData(ctx context.Context, collection string, desc Descriptor) (*Record, error) {
	var rec Record
	err := d.db.Collection(collection).FindOneAndDelete(ctx, desc.filter()).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound.WithMessage(fmt.Sprintf("no record in %q for %s=%v", collection, desc.Field, desc.Value))
	}
	if err != nil {
		return nil, operationFailed("removeData", collection, err)
	}
	return &rec, nil
}

// RenameKey moves a record from oldKey to newKey, preserving the value and
// the record's internal identity. NOT atomic: the delete and the re-insert
// are separate operations, and a crash or concurrent writer between them
// can be observed. Returns ErrNotFound when no record exists for oldKey.
func (d *Database) RenameKey(ctx context.Context, collection string, oldKey, newKey any) error {
	coll := d.db.Collection(collection)

	var doc bson.M
	err := coll.FindOneAndDelete(ctx, ByKey(oldKey).filter()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound.WithMessage(fmt.Sprintf("no record in %q for key=%v", collection, oldKey))
	}
	if err != nil {
		return operationFailed("renameKey", collection, err)
	}

	doc[DefaultKeyField] = storedKey(newKey)
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return operationFailed("renameKey", collection, err)
	}
	return nil
}

// GetKeys returns the keys of every record in the collection. Full scan.
func (d *Database) GetKeys(ctx context.Context, collection string) ([]string, error) {
	opts := mongoopts.Find().SetProjection(bson.M{DefaultKeyField: 1, "_id": 0})
	cur, err := d.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, operationFailed("getKeys", collection, err)
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var rec Record
		if err := cur.Decode(&rec); err != nil {
			return nil, operationFailed("getKeys", collection, err)
		}
		keys = append(keys, keyString(rec.Key))
	}
	if err := cur.Err(); err != nil {
		return nil, operationFailed("getKeys", collection, err)
	}
	return keys, nil
}

// GetAll materializes the collection into a key-to-value map. Optional
// descriptors narrow the scan with additional equality filters.
func (d *Database) GetAll(ctx context.Context, collection string, filters ...Descriptor) (map[string]any, error) {
	filter := bson.M{}
	for _, desc := range filters {
		for field, value := range desc.filter() {
			filter[field] = value
		}
	}

	cur, err := d.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, operationFailed("getAll", collection, err)
	}
	defer cur.Close(ctx)

	all := make(map[string]any)
	for cur.Next(ctx) {
		var rec Record
		if err := cur.Decode(&rec); err != nil {
			return nil, operationFailed("getAll", collection, err)
		}
		all[keyString(rec.Key)] = rec.Value
	}
	if err := cur.Err(); err != nil {
		return nil, operationFailed("getAll", collection, err)
	}
	return all, nil
}

// keyString renders a stored key as a string for enumeration results.
func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
