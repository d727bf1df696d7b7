package restaurant

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// Cuisine is a closed enumeration of cuisine categories.
type Cuisine string

// Supported cuisines.
const (
	Brazilian Cuisine = "brazilian"
	Japanese  Cuisine = "japanese"
	Italian   Cuisine = "italian"
	Arab      Cuisine = "arab"
	Chinese   Cuisine = "chinese"
	Mexican   Cuisine = "mexican"
)

var cuisines = []Cuisine{Brazilian, Japanese, Italian, Arab, Chinese, Mexican}

// Cuisines returns every supported cuisine.
func Cuisines() []Cuisine {
	out := make([]Cuisine, len(cuisines))
	copy(out, cuisines)
	return out
}

// Valid reports whether c belongs to the enumeration.
func (c Cuisine) Valid() bool {
	for _, known := range cuisines {
		if c == known {
			return true
		}
	}
	return false
}

func (c Cuisine) String() string { return string(c) }

// ParseCuisine resolves a cuisine name (case-insensitive).
func ParseCuisine(s string) (Cuisine, error) {
	c := Cuisine(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownCuisine)
	}
	return c, nil
}
