package stats

import (
	"github.com/verte-zerg/lingotype/internal/model"
)

// WeakestChars returns up to top characters with at least one mistake,
// lowest accuracy first. A non-positive top returns all of them.
func WeakestChars(aggs []model.CharAggregate, top int) []model.CharAggregate {
	candidates := make([]model.CharAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sortByAccuracy(candidates)
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}

// Accuracy returns the share of correct keystrokes for a character, 1 when
// it was never typed.
func Accuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
