package mongos

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultKeyField is the document field holding the record key.
const DefaultKeyField = "key"

// valueField is the document field holding the record value.
const valueField = "value"

// CaseInsensitiveKey is a key variant whose lookup ignores letter casing
// but is otherwise exact: no partial or substring matches. It compiles
// to an anchored, case-insensitive pattern in the lookup filter.
type CaseInsensitiveKey string

// CaseInsensitive wraps a string key for case-insensitive matching.
//
//	db.Exists(ctx, "users", mongos.ByKey(mongos.CaseInsensitive("abc")))
func CaseInsensitive(key string) CaseInsensitiveKey {
	return CaseInsensitiveKey(key)
}

// normalizeKey converts a caller-supplied key into the comparison token
// used in a lookup filter. Case-insensitive keys become anchored regex
// patterns; any other type passes through as an exact-match scalar.
func normalizeKey(key any) any {
	if ci, ok := key.(CaseInsensitiveKey); ok {
		return primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(string(ci)) + "$",
			Options: "i",
		}
	}
	return key
}

// storedKey returns the value persisted in the key field. A case-insensitive
// key is stored as its raw string; matching happens at lookup time.
func storedKey(key any) any {
	if ci, ok := key.(CaseInsensitiveKey); ok {
		return string(ci)
	}
	return key
}

// Descriptor is a (field name, key value) pair used to build a lookup
// filter. The zero Field targets DefaultKeyField, so ad hoc secondary
// lookups only need ByField.
type Descriptor struct {
	Field string
	Value any
}

// ByKey builds a descriptor targeting the default key field.
func ByKey(value any) Descriptor {
	return Descriptor{Field: DefaultKeyField, Value: value}
}

// ByField builds a descriptor targeting an arbitrary document field.
func ByField(field string, value any) Descriptor {
	return Descriptor{Field: field, Value: value}
}

// filter builds the equality (or pattern) filter document.
func (d Descriptor) filter() bson.M {
	field := d.Field
	if field == "" {
		field = DefaultKeyField
	}
	return bson.M{field: normalizeKey(d.Value)}
}
