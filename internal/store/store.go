// Package store exposes the document collections the handlers talk to.
//
// Documents are free-form and kept verbatim; filters only express field
// equality, which is all the bistro routes ever need.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

type (
	Document = bson.M
	Filter   = bson.M
)

var (
	ErrNotFound     = errors.New("store: document not found")
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Collection is the set of primitives a route may run, one per request.
type Collection interface {
	Find(ctx context.Context, filter Filter) ([]Document, error)
	FindOne(ctx context.Context, filter Filter) (Document, error)
	InsertOne(ctx context.Context, doc Document) (*InsertResult, error)
	// UpdateOne applies set as a $set on the first document matching filter.
	UpdateOne(ctx context.Context, filter Filter, set Document) (*UpdateResult, error)
	DeleteOne(ctx context.Context, filter Filter) (*DeleteResult, error)
}

// Result shapes mirror what the MongoDB drivers report on the wire.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collections groups the four bistro collections.
type Collections struct {
	Users   Collection
	Menu    Collection
	Reviews Collection
	Carts   Collection
}

// FindAll is Find with an empty filter.
func FindAll(ctx context.Context, coll Collection) ([]Document, error) {
	return coll.Find(ctx, Filter{})
}
