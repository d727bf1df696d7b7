package schema

import (
	"fmt"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// cuisineCodes is the persisted integer code table. Codes are stable and must
// never be reused.
var cuisineCodes = map[int32]restaurant.Cuisine{
	1: restaurant.Brazilian,
	2: restaurant.Japanese,
	3: restaurant.Italian,
	4: restaurant.Arab,
	5: restaurant.Chinese,
	6: restaurant.Mexican,
}

var cuisineByName = invert(cuisineCodes)

// CuisineCode returns the stored code for a cuisine.
func CuisineCode(c restaurant.Cuisine) (int32, error) {
	code, ok := cuisineByName[c]
	if !ok {
		return 0, fmt.Errorf("cuisine %q: %w", c, domain.ErrUnknownCuisine)
	}
	return code, nil
}

// CuisineFromCode resolves a stored code. It never falls back to a default.
func CuisineFromCode(code int32) (restaurant.Cuisine, error) {
	c, ok := cuisineCodes[code]
	if !ok {
		return "", fmt.Errorf("cuisine code %d: %w", code, domain.ErrUnknownCuisine)
	}
	return c, nil
}

func invert(m map[int32]restaurant.Cuisine) map[restaurant.Cuisine]int32 {
	out := make(map[restaurant.Cuisine]int32, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
