// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/lingotype/internal/model"
	"github.com/verte-zerg/lingotype/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
	// CharAggsAll covers every listed session, CharAggsWindow only the
	// last TrendWindow of them.
	CharAggsAll    []model.CharAggregate
	CharAggsWindow []model.CharAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.TrendWindow)
	charAggsAll, err := st.ListCharAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	charAggsWindow, err := st.ListCharAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:       sessions,
		CharAggsAll:    charAggsAll,
		CharAggsWindow: charAggsWindow,
	}, nil
}

// Render writes the summary, trend, weakest characters and the per-character
// table limited to the cfg.Top most frequent characters.
func (r Report) Render(w io.Writer, cfg model.StatsConfig) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderTrend(w, r.Sessions, cfg.TrendWindow); err != nil {
		return err
	}
	if err := RenderWeakChars(w, r.CharAggsWindow, cfg.WeakTop); err != nil {
		return err
	}
	return RenderCharTable(w, limitToTop(r.CharAggsWindow, cfg.Top))
}

func limitToTop(aggs []model.CharAggregate, n int) []model.CharAggregate {
	if n <= 0 || n >= len(aggs) {
		return aggs
	}
	return TopCharsByFrequency(aggs, n)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
