package mongos

import (
	"encoding/json"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Object marks a domain type for structured storage. A value implementing
// Object is converted to an embedded document on write (so it stays
// queryable) and rebuilt field-by-field on read. Field mapping follows the
// type's json tags.
//
//	type Player struct {
//	    Name  string `json:"name"`
//	    Score int    `json:"score"`
//	}
//
//	func (Player) MongoSObject() {}
type Object interface {
	MongoSObject()
}

// encodeValue converts an application value to its stored representation.
// Marked objects become embedded documents via a JSON round-trip; anything
// else is stored as-is and left to the driver's native encoding.
func encodeValue(v any) (any, error) {
	if _, ok := v.(Object); !ok {
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}

	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode object as document: %w", err)
	}
	return doc, nil
}

// decodeValue converts a stored value into the target out, which must be a
// non-nil pointer. Primitive targets use strict casts; struct and map
// targets decode the stored document field-by-field. A value that cannot
// be converted yields ErrTypeMismatch, never a panic.
func decodeValue(stored any, out any) error {
	switch p := out.(type) {
	case *any:
		*p = stored
		return nil
	case *string:
		s, ok := asString(stored)
		if !ok {
			return typeMismatch(stored, "string")
		}
		*p = s
		return nil
	case *int:
		n, ok := asInt64(stored)
		if !ok {
			return typeMismatch(stored, "int")
		}
		*p = int(n)
		return nil
	case *int32:
		n, ok := asInt64(stored)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return typeMismatch(stored, "int32")
		}
		*p = int32(n)
		return nil
	case *int64:
		n, ok := asInt64(stored)
		if !ok {
			return typeMismatch(stored, "int64")
		}
		*p = n
		return nil
	case *float64:
		f, ok := asFloat64(stored)
		if !ok {
			return typeMismatch(stored, "float64")
		}
		*p = f
		return nil
	case *bool:
		b, ok := stored.(bool)
		if !ok {
			return typeMismatch(stored, "bool")
		}
		*p = b
		return nil
	}

	return decodeDocument(stored, out)
}

// decodeDocument rebuilds a stored document into a typed target through a
// relaxed extended-JSON round-trip.
func decodeDocument(stored any, out any) error {
	doc, ok := asDocument(stored)
	if !ok {
		return typeMismatch(stored, "document")
	}

	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return ErrTypeMismatch.WithCause(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return ErrTypeMismatch.WithCause(err)
	}
	return nil
}

// asDocument accepts the document shapes the driver may hand back.
func asDocument(v any) (any, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case bson.D:
		return d, true
	case map[string]any:
		return bson.M(d), true
	}
	return nil, false
}

// asArray accepts the sequence shapes the driver may hand back.
func asArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case primitive.A:
		return []any(a), true
	case []any:
		return a, true
	}
	return nil, false
}

// asString is a strict cast: only string values qualify.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt64 widens any stored integer kind to int64. Floating point values
// are never narrowed to an integer: a stored double stays a double.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// asFloat64 accepts stored doubles and widens integers, which is lossless
// for the magnitudes this library deals in.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func typeMismatch(stored any, want string) error {
	return ErrTypeMismatch.WithMessage(
		fmt.Sprintf("stored value of type %T cannot be converted to %s", stored, want))
}
