package ranking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// memStore keeps both collections in memory and evaluates the aggregation
// stages the rankers issue: $group with $avg, $sort, $limit and $lookup.
type memStore struct {
	restaurants []bson.M
	ratings     []bson.M

	aggregateErr error
	lastPipeline mongo.Pipeline
}

func (s *memStore) Collection(name string) db.Collection {
	return &memCollection{store: s, name: name}
}

func (s *memStore) docs(name string) []bson.M {
	if name == schema.RestaurantsCollection {
		return s.restaurants
	}
	return s.ratings
}

// addRestaurant stores a restaurant and returns its id.
func (s *memStore) addRestaurant(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	addr, err := domrest.NewAddress("Rua Augusta", "1200", "Sao Paulo", "SP", "01304-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := domrest.New(name, domrest.Brazilian, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := schema.FromRestaurant(&r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc.ID = primitive.NewObjectID()
	s.restaurants = append(s.restaurants, toM(doc))
	return doc.ID
}

func (s *memStore) rate(id primitive.ObjectID, stars ...int) {
	for _, n := range stars {
		r := domrest.ReconstructRating("", n, fmt.Sprintf("%d stars", n))
		doc := schema.FromRating(id, r)
		doc.ID = primitive.NewObjectID()
		s.ratings = append(s.ratings, toM(doc))
	}
}

// memCollection only implements Aggregate; every other method panics.
type memCollection struct {
	db.Collection
	store *memStore
	name  string
}

func (c *memCollection) Aggregate(_ context.Context, pipeline any) (db.Cursor, error) {
	if c.store.aggregateErr != nil {
		return nil, c.store.aggregateErr
	}
	p, ok := pipeline.(mongo.Pipeline)
	if !ok {
		return nil, fmt.Errorf("unexpected pipeline type %T", pipeline)
	}
	c.store.lastPipeline = p

	rows := c.store.docs(c.name)
	for _, stage := range p {
		var err error
		rows, err = c.store.apply(rows, stage[0])
		if err != nil {
			return nil, err
		}
	}
	return &sliceCursor{docs: rows}, nil
}

func (s *memStore) apply(rows []bson.M, stage bson.E) ([]bson.M, error) {
	stageDoc, _ := stage.Value.(bson.D)
	switch stage.Key {
	case "$group":
		return group(rows, stageDoc), nil
	case "$sort":
		out := append([]bson.M(nil), rows...)
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j], stageDoc) })
		return out, nil
	case "$limit":
		n := int(stage.Value.(int64))
		if len(rows) > n {
			rows = rows[:n]
		}
		return rows, nil
	case "$lookup":
		m := stageDoc.Map()
		from := s.docs(m["from"].(string))
		local, foreign, as := m["localField"].(string), m["foreignField"].(string), m["as"].(string)
		out := make([]bson.M, len(rows))
		for i, row := range rows {
			joined := bson.A{}
			for _, d := range from {
				if d[foreign] == row[local] {
					joined = append(joined, d)
				}
			}
			cp := bson.M{as: joined}
			for k, v := range row {
				cp[k] = v
			}
			out[i] = cp
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported stage %s", stage.Key)
}

func group(rows []bson.M, stageDoc bson.D) []bson.M {
	m := stageDoc.Map()
	key := m["_id"].(string)[1:]
	var (
		outField string
		avgField string
	)
	for _, e := range stageDoc {
		if e.Key == "_id" {
			continue
		}
		outField = e.Key
		avgField = e.Value.(bson.D).Map()["$avg"].(string)[1:]
	}

	type acc struct {
		id    any
		sum   float64
		count int
	}
	var order []any
	groups := map[any]*acc{}
	for _, r := range rows {
		id := r[key]
		g, ok := groups[id]
		if !ok {
			g = &acc{id: id}
			groups[id] = g
			order = append(order, id)
		}
		g.sum += float64(r[avgField].(int32))
		g.count++
	}

	out := make([]bson.M, 0, len(order))
	for _, id := range order {
		g := groups[id]
		out = append(out, bson.M{"_id": g.id, outField: g.sum / float64(g.count)})
	}
	return out
}

func less(a, b bson.M, stageDoc bson.D) bool {
	for _, e := range stageDoc {
		dir := e.Value.(int)
		c := compare(a[e.Key], b[e.Key])
		if c != 0 {
			return c*dir < 0
		}
	}
	return false
}

func compare(a, b any) int {
	switch x := a.(type) {
	case float64:
		y := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case primitive.ObjectID:
		y := b.(primitive.ObjectID)
		return bytes.Compare(x[:], y[:])
	}
	panic(fmt.Sprintf("compare: unsupported %T", a))
}

// memHydrator resolves restaurants and ratings from the same memStore.
type memHydrator struct {
	store *memStore
	err   error
}

func (h *memHydrator) GetByID(_ context.Context, id string) (domrest.Restaurant, error) {
	if h.err != nil {
		return domrest.Restaurant{}, h.err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domrest.Restaurant{}, domain.ErrNotFound
	}
	for _, d := range h.store.restaurants {
		if d["_id"] == oid {
			var doc schema.RestaurantDoc
			if err := decodeInto(d, &doc); err != nil {
				return domrest.Restaurant{}, err
			}
			return schema.ToRestaurant(&doc)
		}
	}
	return domrest.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, domain.ErrNotFound)
}

func (h *memHydrator) Ratings(_ context.Context, id string) ([]domrest.Rating, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var out []domrest.Rating
	for _, d := range h.store.ratings {
		if d[schema.FieldRestaurantID] == oid {
			var doc schema.RatingDoc
			if err := decodeInto(d, &doc); err != nil {
				return nil, err
			}
			out = append(out, schema.ToRating(&doc))
		}
	}
	return out, nil
}

func newRankers(s *memStore) (*TwoPhase, *Lookup) {
	return NewTwoPhase(s, &memHydrator{store: s}), NewLookup(s)
}

type sliceCursor struct {
	docs []bson.M
	pos  int
}

func (c *sliceCursor) Next(_ context.Context) bool {
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Decode(v any) error            { return decodeInto(c.docs[c.pos-1], v) }
func (c *sliceCursor) Err() error                    { return nil }
func (c *sliceCursor) Close(_ context.Context) error { return nil }

func toM(v any) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

func decodeInto(m bson.M, out any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

var errAggregate = errors.New("aggregate failed")
