// Package stats records typewriter runs and renders their history.
package stats

import (
	"sort"

	"github.com/verte-zerg/typewriter/internal/model"
)

// TopWords returns the top N words by typed count.
func TopWords(aggs []model.WordAggregate, n int) []model.WordAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.WordAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Typed == items[j].Typed {
			return items[i].Word < items[j].Word
		}
		return items[i].Typed > items[j].Typed
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
