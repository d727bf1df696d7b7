package restaurant

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// TopN is the number of entries a ranking returns at most.
const TopN = 3

// RankStrategy names a ranking implementation.
type RankStrategy string

// Ranking strategies.
const (
	// RankTwoPhase aggregates averages, then loads each restaurant separately.
	RankTwoPhase RankStrategy = "two_phase"
	// RankLookup joins restaurants and ratings inside the aggregation.
	RankLookup RankStrategy = "lookup"
)

// ParseRankStrategy resolves a strategy name (case-insensitive).
func ParseRankStrategy(s string) (RankStrategy, error) {
	switch st := RankStrategy(strings.ToLower(strings.TrimSpace(s))); st {
	case RankTwoPhase, RankLookup:
		return st, nil
	default:
		return "", fmt.Errorf("ranking strategy %q: %w", s, domain.ErrInvalidArgument)
	}
}
