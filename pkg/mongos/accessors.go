package mongos

import (
	"context"
	"errors"
)

// Typed accessors layered on the document store and the value codec. The
// defaulting variants never report absence or a type mismatch as an error;
// they return the caller-supplied default instead. Only connectivity and
// operation failures surface, so read paths stay non-throwing.

// Get returns the raw stored value for a key, or ErrNotFound.
func (d *Database) Get(ctx context.Context, collection string, key any) (any, error) {
	rec, err := d.GetDocument(ctx, collection, ByKey(key))
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// GetString returns the stored string for a key, or def when the key is
// absent or the value is not a string.
func (d *Database) GetString(ctx context.Context, collection string, key any, def string) (string, error) {
	var out string
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// GetInt returns the stored integer for a key, or def. A stored double is
// never narrowed to an integer; it yields def.
func (d *Database) GetInt(ctx context.Context, collection string, key any, def int) (int, error) {
	var out int
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// GetInt32 returns the stored value as int32, or def.
func (d *Database) GetInt32(ctx context.Context, collection string, key any, def int32) (int32, error) {
	var out int32
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// GetInt64 returns the stored value as int64, or def.
func (d *Database) GetInt64(ctx context.Context, collection string, key any, def int64) (int64, error) {
	var out int64
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// GetFloat64 returns the stored value as float64, or def. Stored integers
// widen to float64.
func (d *Database) GetFloat64(ctx context.Context, collection string, key any, def float64) (float64, error) {
	var out float64
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// GetBool returns the stored boolean for a key, or def.
func (d *Database) GetBool(ctx context.Context, collection string, key any, def bool) (bool, error) {
	var out bool
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// getTyped fetches the value for a key and decodes it into out.
func (d *Database) getTyped(ctx context.Context, collection string, key, out any) error {
	raw, err := d.Get(ctx, collection, key)
	if err != nil {
		return err
	}
	return decodeValue(raw, out)
}

// unlessConnectivity keeps connectivity and operation failures, swallowing
// the semantic absence errors the defaulting accessors convert to defaults.
func unlessConnectivity(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTypeMismatch) {
		return nil
	}
	return err
}

// GetObject fetches the record for a key and decodes its value into T.
// The target type's json tags drive the field-by-field decode. Without a
// record the result is ErrNotFound; a value that cannot be rebuilt as T
// is ErrTypeMismatch.
func GetObject[T any](ctx context.Context, d *Database, collection string, key any) (T, error) {
	var out T
	if err := d.getTyped(ctx, collection, key, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// GetObjectOr is GetObject with a fallback: absence and type mismatches
// yield def instead of an error.
func GetObjectOr[T any](ctx context.Context, d *Database, collection string, key any, def T) (T, error) {
	out, err := GetObject[T](ctx, d, collection, key)
	if err != nil {
		return def, unlessConnectivity(err)
	}
	return out, nil
}

// GetList fetches a record whose value is a homogeneous sequence and
// decodes each element to T. A missing key yields ErrNotFound, which is
// distinct from a key mapping to an empty sequence: that returns an empty,
// non-nil slice.
func GetList[T any](ctx context.Context, d *Database, collection string, key any) ([]T, error) {
	raw, err := d.Get(ctx, collection, key)
	if err != nil {
		return nil, err
	}

	arr, ok := asArray(raw)
	if !ok {
		return nil, typeMismatch(raw, "sequence")
	}

	out := make([]T, 0, len(arr))
	for _, el := range arr {
		var item T
		if err := decodeValue(el, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
