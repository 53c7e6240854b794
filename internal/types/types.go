// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles:
// handlers, storage and response helpers all import types without
// depending on each other.
package types

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDKey is the document key under which the store keeps a record's identifier.
const IDKey = "_id"

// Record is a schema-less student document. Apart from IDKey, which the
// store assigns on creation, no field is required and any key/value pair
// sent by a client is stored verbatim.
type Record map[string]Value

// ID returns the hex identifier stored under IDKey, or "" when the record
// has not been persisted yet.
func (r Record) ID() string {
	s, _ := r[IDKey].AsString()
	return s
}

// Without returns a shallow copy of r with the given keys removed.
func (r Record) Without(keys ...string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Merge applies patch on top of r with $set semantics: keys present in
// patch overwrite, keys absent from patch are left untouched. It returns
// the merged copy and whether any value actually changed.
func (r Record) Merge(patch Record) (Record, bool) {
	out := r.Without()
	changed := false
	for k, v := range patch {
		if old, ok := out[k]; !ok || !old.Equal(v) {
			changed = true
		}
		out[k] = v
	}
	return out, changed
}

// ParseID reports whether s is a well-formed identifier: a 24 character
// hex string encoding 12 bytes.
func ParseID(s string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// Page is the derived, non-persisted view returned by a list request.
type Page struct {
	Records    []Record
	TotalPages int64
	Current    int64
}

// InsertResult describes the outcome of a single-document insert.
type InsertResult struct {
	ID           primitive.ObjectID
	Acknowledged bool
}

// UpdateResult describes the outcome of a single-document partial update.
// Acknowledged only means the store accepted the write; it says nothing
// about whether a document matched.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	Acknowledged  bool
}

// DeleteResult describes the outcome of a single-document delete.
type DeleteResult struct {
	DeletedCount int64
	Acknowledged bool
}
