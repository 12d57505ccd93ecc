package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lingotype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "lingotype.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleSession(id, lang string, end time.Time) model.SessionStats {
	return model.SessionStats{
		AttemptID:      id,
		StartedAt:      end.Add(-10 * time.Second),
		EndedAt:        end,
		Lang:           lang,
		Source:         model.SourceDefault,
		Chars:          12,
		Keystrokes:     14,
		Correct:        12,
		Incorrect:      2,
		ElapsedSeconds: 10,
		DurationMs:     10_000,
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	chars := []model.CharStats{
		{Char: "这", Correct: 1, Incorrect: 1},
		{Char: "是", Correct: 2, Incorrect: 0},
	}
	_, err := st.InsertSession(ctx, sampleSession("a", "zh", base), chars)
	require.NoError(t, err)
	_, err = st.InsertSession(ctx, sampleSession("b", "en", base.Add(time.Hour)), nil)
	require.NoError(t, err)

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "zh", all[0].Lang)
	assert.Equal(t, "en", all[1].Lang)
	assert.Equal(t, 12, all[0].Chars)
	assert.Equal(t, 12, all[0].Correct)
	assert.Equal(t, 2, all[0].Incorrect)
	assert.Equal(t, int64(10_000), all[0].DurationMs)
	assert.True(t, all[0].EndedAt.Equal(base), "unexpected ended_at: %v", all[0].EndedAt)

	zh, err := st.ListSessions(ctx, model.StatsConfig{Lang: "zh"})
	require.NoError(t, err)
	assert.Len(t, zh, 1)

	since := base.Add(30 * time.Minute)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "en", recent[0].Lang)

	aggs, err := st.ListCharAggregatesForSessions(ctx, []int64{all[0].SessionID, all[1].SessionID})
	require.NoError(t, err)
	assert.Len(t, aggs, 2)
}

func TestInsertSessionDuplicateAttemptRollsBack(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	_, err := st.InsertSession(ctx, sampleSession("dup", "en", base), nil)
	require.NoError(t, err)
	chars := []model.CharStats{{Char: "x", Correct: 1}}
	_, err = st.InsertSession(ctx, sampleSession("dup", "en", base), chars)
	require.Error(t, err, "duplicate attempt id must fail")

	aggs, err := st.GetWeakChars(ctx, 10, "")
	require.NoError(t, err)
	assert.Empty(t, aggs, "rollback must drop char stats")
}

func TestGetWeakCharsWindow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	for i, ch := range []string{"a", "b", "c"} {
		stats := sampleSession(ch, "en", base.Add(time.Duration(i)*time.Minute))
		chars := []model.CharStats{{Char: ch, Correct: 1, Incorrect: i}}
		_, err := st.InsertSession(ctx, stats, chars)
		require.NoError(t, err)
	}

	aggs, err := st.GetWeakChars(ctx, 2, "en")
	require.NoError(t, err)
	require.Len(t, aggs, 2, "chars from the last 2 sessions")
	for _, agg := range aggs {
		assert.NotEqual(t, "a", agg.Char, "oldest session leaked into window")
	}

	none, err := st.GetWeakChars(ctx, 0, "en")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetWeakCharsFiltersLanguage(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	_, err := st.InsertSession(ctx, sampleSession("zh-1", "zh", base), []model.CharStats{{Char: "是", Correct: 1, Incorrect: 1}})
	require.NoError(t, err)
	_, err = st.InsertSession(ctx, sampleSession("en-1", "en", base.Add(time.Minute)), []model.CharStats{{Char: "e", Correct: 2, Incorrect: 1}})
	require.NoError(t, err)
	_, err = st.InsertSession(ctx, sampleSession("en-2", "en", base.Add(2*time.Minute)), []model.CharStats{{Char: "e", Correct: 3}})
	require.NoError(t, err)

	aggs, err := st.GetWeakChars(ctx, 5, "zh")
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, "是", aggs[0].Char)

	aggs, err = st.GetWeakChars(ctx, 5, "en")
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, model.CharAggregate{Char: "e", Correct: 5, Incorrect: 1}, aggs[0])

	aggs, err = st.GetWeakChars(ctx, 5, "")
	require.NoError(t, err)
	assert.Len(t, aggs, 2)
}
