package restaurant

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/restodex/internal/db"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/repository/schema"
)

// mockCollection is an in-memory db.Collection. Any fn field overrides the
// default behaviour, which understands the filters this package issues.
type mockCollection struct {
	docs []bson.M

	insertFn     func(ctx context.Context, doc any) (any, error)
	findFn       func(ctx context.Context, filter any, opts db.FindOptions) (db.Cursor, error)
	replaceFn    func(ctx context.Context, filter, replacement any) (db.UpdateResult, error)
	updateFn     func(ctx context.Context, filter, update any) (db.UpdateResult, error)
	deleteOneFn  func(ctx context.Context, filter any) (int64, error)
	deleteManyFn func(ctx context.Context, filter any) (int64, error)
	indexesFn    func(ctx context.Context, specs []db.IndexSpec) error

	lastFilter any
	lastFind   db.FindOptions
}

func (m *mockCollection) InsertOne(ctx context.Context, doc any) (any, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, doc)
	}
	d := toM(doc)
	if _, ok := d["_id"]; !ok {
		d["_id"] = primitive.NewObjectID()
	}
	m.docs = append(m.docs, d)
	return d["_id"], nil
}

func (m *mockCollection) FindOne(_ context.Context, filter, out any) error {
	m.lastFilter = filter
	for _, d := range m.docs {
		if matches(d, filter) {
			return decodeInto(d, out)
		}
	}
	return &db.Error{Op: db.OpFind, Err: db.ErrNotFound}
}

func (m *mockCollection) Find(ctx context.Context, filter any, opts db.FindOptions) (db.Cursor, error) {
	m.lastFilter = filter
	m.lastFind = opts
	if m.findFn != nil {
		return m.findFn(ctx, filter, opts)
	}
	var hits []bson.M
	for _, d := range m.docs {
		if matches(d, filter) {
			hits = append(hits, d)
		}
	}
	return &sliceCursor{docs: hits}, nil
}

func (m *mockCollection) ReplaceOne(ctx context.Context, filter, replacement any) (db.UpdateResult, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, filter, replacement)
	}
	for i, d := range m.docs {
		if matches(d, filter) {
			next := toM(replacement)
			modified := int64(0)
			if !sameDoc(d, next) {
				m.docs[i] = next
				modified = 1
			}
			return db.UpdateResult{Matched: 1, Modified: modified}, nil
		}
	}
	return db.UpdateResult{}, nil
}

func (m *mockCollection) UpdateOne(ctx context.Context, filter, update any) (db.UpdateResult, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, filter, update)
	}
	set := toM(update)["$set"].(bson.M)
	for _, d := range m.docs {
		if matches(d, filter) {
			modified := int64(0)
			for k, v := range set {
				if d[k] != v {
					d[k] = v
					modified = 1
				}
			}
			return db.UpdateResult{Matched: 1, Modified: modified}, nil
		}
	}
	return db.UpdateResult{}, nil
}

func (m *mockCollection) DeleteOne(ctx context.Context, filter any) (int64, error) {
	if m.deleteOneFn != nil {
		return m.deleteOneFn(ctx, filter)
	}
	for i, d := range m.docs {
		if matches(d, filter) {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCollection) DeleteMany(ctx context.Context, filter any) (int64, error) {
	if m.deleteManyFn != nil {
		return m.deleteManyFn(ctx, filter)
	}
	kept := m.docs[:0]
	var n int64
	for _, d := range m.docs {
		if matches(d, filter) {
			n++
			continue
		}
		kept = append(kept, d)
	}
	m.docs = kept
	return n, nil
}

func (m *mockCollection) CountDocuments(_ context.Context, filter any) (int64, error) {
	var n int64
	for _, d := range m.docs {
		if matches(d, filter) {
			n++
		}
	}
	return n, nil
}

func (m *mockCollection) Aggregate(_ context.Context, _ any) (db.Cursor, error) {
	return nil, errors.New("aggregate not supported by mockCollection")
}

func (m *mockCollection) CreateIndexes(ctx context.Context, specs []db.IndexSpec) error {
	if m.indexesFn != nil {
		return m.indexesFn(ctx, specs)
	}
	return nil
}

// mockStore hands out one mockCollection per name.
type mockStore struct {
	colls map[string]*mockCollection
}

func (s *mockStore) Collection(name string) db.Collection {
	return s.colls[name]
}

func (s *mockStore) restaurants() *mockCollection { return s.colls[schema.RestaurantsCollection] }
func (s *mockStore) ratings() *mockCollection     { return s.colls[schema.RatingsCollection] }

func newTestRepo(t *testing.T) (*Repo, *Deleter, *mockStore) {
	t.Helper()
	ms := &mockStore{colls: map[string]*mockCollection{
		schema.RestaurantsCollection: {},
		schema.RatingsCollection:     {},
	}}
	return New(ms), NewDeleter(ms), ms
}

func testRestaurant(t *testing.T, name string, c domrest.Cuisine) domrest.Restaurant {
	t.Helper()
	addr, err := domrest.NewAddress("Rua Augusta", "1200", "Sao Paulo", "SP", "01304-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := domrest.New(name, c, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func mustRating(t *testing.T, stars int) domrest.Rating {
	t.Helper()
	r, err := domrest.NewRating(stars, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

// sliceCursor serves documents by round-tripping them through BSON.
type sliceCursor struct {
	docs   []bson.M
	pos    int
	err    error
	closed bool
}

func (c *sliceCursor) Next(_ context.Context) bool {
	if c.closed || c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Decode(v any) error            { return decodeInto(c.docs[c.pos-1], v) }
func (c *sliceCursor) Err() error                    { return c.err }
func (c *sliceCursor) Close(_ context.Context) error { c.closed = true; return nil }

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

func sameDoc(a, b bson.M) bool {
	return reflect.DeepEqual(a, b)
}

// matches understands equality, case-insensitive regex and a naive $text.
func matches(doc bson.M, filter any) bool {
	f := toM(filter)
	for k, want := range f {
		if k == "$text" {
			search := strings.ToLower(want.(bson.M)["$search"].(string))
			name := strings.ToLower(doc[schema.FieldName].(string))
			hit := false
			for _, w := range strings.Fields(search) {
				if strings.Contains(name, w) {
					hit = true
				}
			}
			if !hit {
				return false
			}
			continue
		}
		switch w := want.(type) {
		case primitive.Regex:
			pattern := w.Pattern
			if strings.Contains(w.Options, "i") {
				pattern = "(?i)" + pattern
			}
			s, _ := doc[k].(string)
			if !regexp.MustCompile(pattern).MatchString(s) {
				return false
			}
		default:
			if doc[k] != want {
				return false
			}
		}
	}
	return true
}
