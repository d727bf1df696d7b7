package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/metrics"
)

// collection adapts *mongo.Collection to db.Collection and records store metrics.
type collection struct {
	coll *mongo.Collection
	name string
}

func (c *collection) InsertOne(ctx context.Context, doc any) (id any, err error) {
	defer c.observe(db.OpInsert, time.Now(), &err)

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, wrap(db.OpInsert, err)
	}
	return res.InsertedID, nil
}

func (c *collection) FindOne(ctx context.Context, filter, out any) (err error) {
	defer c.observe(db.OpFind, time.Now(), &err)

	if err := c.coll.FindOne(ctx, filter).Decode(out); err != nil {
		return wrap(db.OpFind, err)
	}
	return nil
}

func (c *collection) Find(ctx context.Context, filter any, opts db.FindOptions) (cur db.Cursor, err error) {
	defer c.observe(db.OpFind, time.Now(), &err)

	fo := options.Find()
	if opts.Sort != nil {
		fo.SetSort(opts.Sort)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}

	mc, err := c.coll.Find(ctx, filter, fo)
	if err != nil {
		return nil, wrap(db.OpFind, err)
	}
	return mc, nil
}

func (c *collection) ReplaceOne(ctx context.Context, filter, replacement any) (res db.UpdateResult, err error) {
	defer c.observe(db.OpReplace, time.Now(), &err)

	r, err := c.coll.ReplaceOne(ctx, filter, replacement)
	if err != nil {
		return db.UpdateResult{}, wrap(db.OpReplace, err)
	}
	return db.UpdateResult{Matched: r.MatchedCount, Modified: r.ModifiedCount}, nil
}

func (c *collection) UpdateOne(ctx context.Context, filter, update any) (res db.UpdateResult, err error) {
	defer c.observe(db.OpUpdate, time.Now(), &err)

	r, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return db.UpdateResult{}, wrap(db.OpUpdate, err)
	}
	return db.UpdateResult{Matched: r.MatchedCount, Modified: r.ModifiedCount}, nil
}

func (c *collection) DeleteOne(ctx context.Context, filter any) (n int64, err error) {
	defer c.observe(db.OpDeleteOne, time.Now(), &err)

	r, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, wrap(db.OpDeleteOne, err)
	}
	return r.DeletedCount, nil
}

func (c *collection) DeleteMany(ctx context.Context, filter any) (n int64, err error) {
	defer c.observe(db.OpDeleteMany, time.Now(), &err)

	r, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, wrap(db.OpDeleteMany, err)
	}
	return r.DeletedCount, nil
}

func (c *collection) CountDocuments(ctx context.Context, filter any) (n int64, err error) {
	defer c.observe(db.OpCount, time.Now(), &err)

	n, err = c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrap(db.OpCount, err)
	}
	return n, nil
}

func (c *collection) Aggregate(ctx context.Context, pipeline any) (cur db.Cursor, err error) {
	defer c.observe(db.OpAggregate, time.Now(), &err)

	mc, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(db.OpAggregate, err)
	}
	return mc, nil
}

func (c *collection) CreateIndexes(ctx context.Context, specs []db.IndexSpec) (err error) {
	defer c.observe(db.OpCreateIndexes, time.Now(), &err)

	models := make([]mongo.IndexModel, 0, len(specs))
	for i := range specs {
		spec := &specs[i]
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("index %q: %w", spec.Name, err)
		}
		models = append(models, mongo.IndexModel{
			Keys:    indexKeys(spec.Keys),
			Options: options.Index().SetName(spec.Name),
		})
	}
	if len(models) == 0 {
		return nil
	}

	if _, err := c.coll.Indexes().CreateMany(ctx, models); err != nil {
		return wrap(db.OpCreateIndexes, err)
	}
	return nil
}

// observe records the operation. A missing document is a normal outcome, not a failure.
func (c *collection) observe(op string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, db.ErrNotFound) {
		err = nil
	}
	metrics.ObserveStoreOp(c.name, op, start, err)
}

func indexKeys(keys []db.IndexKey) bson.D {
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		var v any
		switch k.Kind {
		case db.IndexDescending:
			v = -1
		case db.IndexText:
			v = "text"
		default:
			v = 1
		}
		d = append(d, bson.E{Key: k.Field, Value: v})
	}
	return d
}

func wrap(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return &db.Error{Op: op, Err: db.ErrNotFound}
	case mongo.IsDuplicateKeyError(err):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrDuplicate, err)}
	default:
		return &db.Error{Op: op, Err: err}
	}
}
