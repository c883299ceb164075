// Package mongos is a convenience key/value client layered directly on the
// official MongoDB Go driver. Every stored value is a two-field document
// {key, value} inside a named collection, and every operation is a thin
// pass-through: build a filter, call the driver, optionally convert the
// value. The driver owns pooling, transactions, and the wire protocol.
//
// # Basic Usage
//
//	opts := mongos.NewOptions()
//	opts.Host = "localhost"
//	opts.Database = "game"
//
//	client, err := mongos.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	db := client.DB()
//	_ = db.Set(ctx, "moneys", "p1", 5000)
//	money, _ := db.GetInt(ctx, "moneys", "p1", 0) // 5000
//
// # Keys
//
// Keys match exactly by default. Wrap a key with CaseInsensitive for an
// anchored, casing-blind match:
//
//	_ = db.Set(ctx, "names", "ABC", "v")
//	ok, _ := db.Exists(ctx, "names", mongos.ByKey(mongos.CaseInsensitive("abc"))) // true
//
// Descriptors built with ByField allow ad hoc lookups on fields other
// than "key".
//
// # Objects
//
// Domain types implementing the Object marker are stored as embedded
// documents and rebuilt field-by-field by GetObject:
//
//	type Player struct {
//	    Name  string `json:"name"`
//	    Score int    `json:"score"`
//	}
//	func (Player) MongoSObject() {}
//
//	_ = db.Set(ctx, "players", "p1", Player{Name: "Guney", Score: 42})
//	p, err := mongos.GetObject[Player](ctx, db, "players", "p1")
//
// # Semantics worth knowing
//
// Set is an atomic replace-or-insert: the last writer wins wholesale, and
// no merge ever happens. SetIfNotExists and RenameKey are NOT atomic; they
// are compound check-then-act operations and must be treated as
// best-effort under concurrent mutation. The typed accessors with a
// default argument never fail on absence or a type mismatch; only
// connectivity errors surface. There are no retries anywhere in this
// layer: single-attempt semantics throughout.
package mongos
