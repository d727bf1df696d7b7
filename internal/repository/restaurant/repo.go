package restaurant

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// store is the consumer interface for collection handles (ISP).
type store interface {
	Collection(name string) db.Collection
}

// Repo implements usecase/restaurant.Repository over the restaurants and
// ratings collections.
type Repo struct {
	restaurants db.Collection
	ratings     db.Collection
}

// New creates a restaurant repository.
func New(s store) *Repo {
	return &Repo{
		restaurants: s.Collection(schema.RestaurantsCollection),
		ratings:     s.Collection(schema.RatingsCollection),
	}
}

// EnsureIndexes creates the text index used by FindByText and the lookup
// index on ratings.restaurantId. Existing identical indexes are a no-op.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	err := r.restaurants.CreateIndexes(ctx, []db.IndexSpec{{
		Name: "name_text",
		Keys: []db.IndexKey{{Field: schema.FieldName, Kind: db.IndexText}},
	}})
	if err != nil {
		return fmt.Errorf("create restaurant indexes: %w", err)
	}

	err = r.ratings.CreateIndexes(ctx, []db.IndexSpec{{
		Name: "restaurantId_1",
		Keys: []db.IndexKey{{Field: schema.FieldRestaurantID, Kind: db.IndexAscending}},
	}})
	if err != nil {
		return fmt.Errorf("create rating indexes: %w", err)
	}
	return nil
}

// Insert writes a new restaurant and returns the identifier assigned on insert.
func (r *Repo) Insert(ctx context.Context, rest *domrest.Restaurant) (string, error) {
	doc, err := schema.FromRestaurant(rest)
	if err != nil {
		return "", fmt.Errorf("map restaurant: %w", err)
	}
	doc.ID = primitive.NilObjectID

	id, err := r.restaurants.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert restaurant: %w", err)
	}
	oid, ok := id.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert restaurant: unexpected id type %T", id)
	}
	return oid.Hex(), nil
}

// All returns a lazy, single-use sequence over every restaurant in the
// store's natural order. The cursor is closed when iteration ends or the
// consumer stops early.
func (r *Repo) All(ctx context.Context) (iter.Seq2[domrest.Restaurant, error], error) {
	cur, err := r.restaurants.Find(ctx, bson.M{}, db.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}

	return func(yield func(domrest.Restaurant, error) bool) {
		defer func() { _ = cur.Close(ctx) }()

		for cur.Next(ctx) {
			var doc schema.RestaurantDoc
			if err := cur.Decode(&doc); err != nil {
				yield(domrest.Restaurant{}, fmt.Errorf("decode restaurant: %w", err))
				return
			}
			rest, err := schema.ToRestaurant(&doc)
			if !yield(rest, err) || err != nil {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(domrest.Restaurant{}, fmt.Errorf("iterate restaurants: %w", err))
		}
	}, nil
}

// GetByID returns the restaurant or domain.ErrNotFound. Identifiers that are
// not valid ObjectIDs cannot exist and also yield ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domrest.Restaurant, error) {
	oid, err := schema.ParseID(id)
	if err != nil {
		return domrest.Restaurant{}, fmt.Errorf("restaurant %q: %w", id, domain.ErrNotFound)
	}

	var doc schema.RestaurantDoc
	if err := r.restaurants.FindOne(ctx, bson.M{schema.FieldID: oid}, &doc); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return domrest.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, domain.ErrNotFound)
		}
		return domrest.Restaurant{}, fmt.Errorf("find restaurant %s: %w", id, err)
	}
	return schema.ToRestaurant(&doc)
}

// ReplaceFull overwrites every stored field of the restaurant matched by ID.
// Returns true only if exactly one document was modified.
func (r *Repo) ReplaceFull(ctx context.Context, rest *domrest.Restaurant) (bool, error) {
	oid, err := schema.ParseID(rest.ID())
	if err != nil {
		return false, nil
	}

	doc, err := schema.FromRestaurant(rest)
	if err != nil {
		return false, fmt.Errorf("map restaurant: %w", err)
	}
	doc.ID = oid

	res, err := r.restaurants.ReplaceOne(ctx, bson.M{schema.FieldID: oid}, doc)
	if err != nil {
		return false, fmt.Errorf("replace restaurant %s: %w", rest.ID(), err)
	}
	return res.Modified == 1, nil
}

// UpdateCuisine sets only the cuisine field. Returns true if the document was modified.
func (r *Repo) UpdateCuisine(ctx context.Context, id string, c domrest.Cuisine) (bool, error) {
	code, err := schema.CuisineCode(c)
	if err != nil {
		return false, err
	}
	oid, err := schema.ParseID(id)
	if err != nil {
		return false, nil
	}

	update := bson.M{"$set": bson.M{schema.FieldCuisine: code}}
	res, err := r.restaurants.UpdateOne(ctx, bson.M{schema.FieldID: oid}, update)
	if err != nil {
		return false, fmt.Errorf("update cuisine %s: %w", id, err)
	}
	return res.Modified == 1, nil
}

// FindByNameSubstring matches text anywhere in the name, case-insensitively.
// The text is matched literally, not as a pattern.
func (r *Repo) FindByNameSubstring(ctx context.Context, text string) ([]domrest.Restaurant, error) {
	filter := bson.M{schema.FieldName: primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}}
	return r.findRestaurants(ctx, filter, db.FindOptions{})
}

// FindByText runs a $text query against the text index, most relevant first.
func (r *Repo) FindByText(ctx context.Context, text string) ([]domrest.Restaurant, error) {
	filter := bson.M{"$text": bson.M{"$search": text}}
	opts := db.FindOptions{Sort: bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}}
	return r.findRestaurants(ctx, filter, opts)
}

// InsertRating records a rating against restaurantID. The restaurant's
// existence is not checked here.
func (r *Repo) InsertRating(ctx context.Context, restaurantID string, rating domrest.Rating) error {
	oid, err := schema.ParseID(restaurantID)
	if err != nil {
		return err
	}
	if _, err := r.ratings.InsertOne(ctx, schema.FromRating(oid, rating)); err != nil {
		return fmt.Errorf("insert rating for %s: %w", restaurantID, err)
	}
	return nil
}

// Ratings returns every rating recorded for restaurantID in natural order.
func (r *Repo) Ratings(ctx context.Context, restaurantID string) ([]domrest.Rating, error) {
	oid, err := schema.ParseID(restaurantID)
	if err != nil {
		return nil, err
	}

	cur, err := r.ratings.Find(ctx, bson.M{schema.FieldRestaurantID: oid}, db.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("find ratings for %s: %w", restaurantID, err)
	}
	docs, err := db.DecodeAll[schema.RatingDoc](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("read ratings for %s: %w", restaurantID, err)
	}

	out := make([]domrest.Rating, len(docs))
	for i := range docs {
		out[i] = schema.ToRating(&docs[i])
	}
	return out, nil
}

// CountRatings returns how many ratings reference restaurantID.
func (r *Repo) CountRatings(ctx context.Context, restaurantID string) (int64, error) {
	oid, err := schema.ParseID(restaurantID)
	if err != nil {
		return 0, err
	}
	n, err := r.ratings.CountDocuments(ctx, bson.M{schema.FieldRestaurantID: oid})
	if err != nil {
		return 0, fmt.Errorf("count ratings for %s: %w", restaurantID, err)
	}
	return n, nil
}

func (r *Repo) findRestaurants(ctx context.Context, filter any, opts db.FindOptions) ([]domrest.Restaurant, error) {
	cur, err := r.restaurants.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	docs, err := db.DecodeAll[schema.RestaurantDoc](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("read restaurants: %w", err)
	}

	out := make([]domrest.Restaurant, 0, len(docs))
	for i := range docs {
		rest, err := schema.ToRestaurant(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, nil
}
