package restodex

import (
	"context"
	"iter"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
)

// --- restaurantUseCase mock ---

type mockRestaurantUC struct {
	createFn        func(ctx context.Context, r *domrest.Restaurant) (domrest.Restaurant, error)
	listFn          func(ctx context.Context) (iter.Seq2[domrest.Restaurant, error], error)
	getFn           func(ctx context.Context, id string) (domrest.Restaurant, error)
	replaceFn       func(ctx context.Context, r *domrest.Restaurant) error
	changeCuisineFn func(ctx context.Context, id string, c domrest.Cuisine) error
	searchByNameFn  func(ctx context.Context, text string) ([]domrest.Restaurant, error)
	searchTextFn    func(ctx context.Context, text string) ([]domrest.Restaurant, error)
	rateFn          func(ctx context.Context, id string, rating domrest.Rating) error
	topFn           func(ctx context.Context, strategy string) ([]domrest.Ranked, error)
	removeFn        func(ctx context.Context, id string) (domrest.DeleteResult, error)
}

func (m *mockRestaurantUC) Create(ctx context.Context, r *domrest.Restaurant) (domrest.Restaurant, error) {
	return m.createFn(ctx, r)
}

func (m *mockRestaurantUC) List(ctx context.Context) (iter.Seq2[domrest.Restaurant, error], error) {
	return m.listFn(ctx)
}

func (m *mockRestaurantUC) Get(ctx context.Context, id string) (domrest.Restaurant, error) {
	return m.getFn(ctx, id)
}

func (m *mockRestaurantUC) Replace(ctx context.Context, r *domrest.Restaurant) error {
	return m.replaceFn(ctx, r)
}

func (m *mockRestaurantUC) ChangeCuisine(ctx context.Context, id string, c domrest.Cuisine) error {
	return m.changeCuisineFn(ctx, id, c)
}

func (m *mockRestaurantUC) SearchByName(ctx context.Context, text string) ([]domrest.Restaurant, error) {
	return m.searchByNameFn(ctx, text)
}

func (m *mockRestaurantUC) SearchText(ctx context.Context, text string) ([]domrest.Restaurant, error) {
	return m.searchTextFn(ctx, text)
}

func (m *mockRestaurantUC) Rate(ctx context.Context, id string, rating domrest.Rating) error {
	return m.rateFn(ctx, id, rating)
}

func (m *mockRestaurantUC) Top(ctx context.Context, strategy string) ([]domrest.Ranked, error) {
	return m.topFn(ctx, strategy)
}

func (m *mockRestaurantUC) Remove(ctx context.Context, id string) (domrest.DeleteResult, error) {
	return m.removeFn(ctx, id)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- helpers ---

func testClient(restaurants restaurantUseCase) *Client {
	return wireClient(restaurants, &mockHealthUC{}, nil)
}

func sampleRestaurant() Restaurant {
	return Restaurant{
		Name:    "Pizzaria Bella",
		Cuisine: "italian",
		Address: Address{
			Street:     "Rua Augusta",
			Number:     "1200",
			City:       "Sao Paulo",
			State:      "SP",
			PostalCode: "01304-001",
		},
	}
}

func domainRestaurant(id, name string, c domrest.Cuisine) domrest.Restaurant {
	addr := domrest.ReconstructAddress("Rua Augusta", "1200", "Sao Paulo", "SP", "01304-001")
	return domrest.Reconstruct(id, name, c, addr)
}
