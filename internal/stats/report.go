package stats

import (
	"context"

	"github.com/verte-zerg/typewriter/internal/model"
	"github.com/verte-zerg/typewriter/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Runs     []model.RunAggregate
	TopWords []model.WordAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	aggs, err := st.ListWordAggregatesForRuns(ctx, runIDs(runs))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:     runs,
		TopWords: TopWords(aggs, cfg.Top),
	}, nil
}

func runIDs(runs []model.RunAggregate) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.RunID
	}
	return ids
}
