package db

import (
	"context"
	"time"
)

// Store is the main database facade.
type Store interface {
	Pinger
	Collection(name string) Collection
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UpdateResult reports how many documents an update matched and modified.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// FindOptions holds optional sort and limit for Find.
type FindOptions struct {
	Sort  any
	Limit int64
}

// Cursor iterates over query or aggregation results.
// *mongo.Cursor satisfies it directly.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// Collection provides document operations on a single collection.
type Collection interface {
	InsertOne(ctx context.Context, doc any) (any, error)
	FindOne(ctx context.Context, filter, out any) error
	Find(ctx context.Context, filter any, opts FindOptions) (Cursor, error)
	ReplaceOne(ctx context.Context, filter, replacement any) (UpdateResult, error)
	UpdateOne(ctx context.Context, filter, update any) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter any) (int64, error)
	DeleteMany(ctx context.Context, filter any) (int64, error)
	CountDocuments(ctx context.Context, filter any) (int64, error)
	Aggregate(ctx context.Context, pipeline any) (Cursor, error)
	CreateIndexes(ctx context.Context, specs []IndexSpec) error
}

// DecodeAll drains a cursor into a slice and closes it.
func DecodeAll[T any](ctx context.Context, cur Cursor) ([]T, error) {
	defer func() { _ = cur.Close(ctx) }()

	var out []T
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, &Error{Op: OpDecode, Err: err}
		}
		out = append(out, v)
	}
	if err := cur.Err(); err != nil {
		return nil, &Error{Op: OpCursor, Err: err}
	}
	return out, nil
}
