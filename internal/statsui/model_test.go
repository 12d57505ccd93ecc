package statsui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lingotype/internal/model"
	"github.com/verte-zerg/lingotype/internal/stats"
)

func sampleReport() stats.Report {
	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return stats.Report{
		Sessions: []model.SessionAggregate{
			{SessionID: 1, EndedAt: end, Lang: "en", Chars: 10, Correct: 10, Incorrect: 2, DurationMs: 30000},
			{SessionID: 2, EndedAt: end.Add(time.Minute), Lang: "zh", Chars: 8, Correct: 8, Incorrect: 0, DurationMs: 20000},
		},
		CharAggsAll: []model.CharAggregate{
			{Char: "a", Correct: 15, Incorrect: 1},
			{Char: " ", Correct: 12, Incorrect: 0},
			{Char: "中", Correct: 2, Incorrect: 2},
			{Char: "z", Correct: 1, Incorrect: 3},
		},
		CharAggsWindow: []model.CharAggregate{
			{Char: "a", Correct: 5, Incorrect: 1},
			{Char: " ", Correct: 9, Incorrect: 0},
			{Char: "中", Correct: 2, Incorrect: 2},
		},
	}
}

func staticLoader(report stats.Report, err error) Loader {
	return func(context.Context, model.StatsConfig) (stats.Report, error) {
		return report, err
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelRendersOverview(t *testing.T) {
	var calls []model.StatsConfig
	load := func(_ context.Context, cfg model.StatsConfig) (stats.Report, error) {
		calls = append(calls, cfg)
		return sampleReport(), nil
	}
	m := NewModel(load, model.StatsConfig{TrendWindow: 5, WeakTop: 3})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	for _, want := range []string{"Overview", "Sessions", "Avg CPM", "Trend (window 5)", "Weakest:"} {
		assert.Contains(t, view, want)
	}
	assert.Len(t, calls, 1)
}

func TestModelCharTableTab(t *testing.T) {
	m := NewModel(staticLoader(sampleReport(), nil), model.StatsConfig{TrendWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	require.Equal(t, tabCharTable, m.activeTab)
	rows := m.charTable.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "<space>", rows[0][0], "most frequent char first")
	assert.Contains(t, m.View(), "Accuracy")
	assert.Contains(t, m.View(), "chars=window")
}

func TestModelCharTableAllTimeToggle(t *testing.T) {
	m := NewModel(staticLoader(sampleReport(), nil), model.StatsConfig{TrendWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.Update(keyRune('a'))
	rows := m.charTable.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "a", rows[0][0])
	assert.Equal(t, "16", rows[0][4])
	assert.Contains(t, m.View(), "chars=all")

	m.Update(keyRune('r'))
	assert.Len(t, m.charTable.Rows(), 4, "reload keeps the all-time view")

	m.Update(keyRune('a'))
	rows = m.charTable.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "<space>", rows[0][0])
}

func TestModelLangFilterReloads(t *testing.T) {
	var langs []string
	load := func(_ context.Context, cfg model.StatsConfig) (stats.Report, error) {
		langs = append(langs, cfg.Lang)
		return stats.Report{}, nil
	}
	m := NewModel(load, model.StatsConfig{TrendWindow: 5})
	for i := 0; i < 3; i++ {
		m.Update(keyRune('f'))
	}
	assert.Equal(t, []string{"", "zh", "en", ""}, langs)
}

func TestModelShowsLoadError(t *testing.T) {
	m := NewModel(staticLoader(stats.Report{}, errors.New("db locked")), model.StatsConfig{TrendWindow: 5})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	assert.Contains(t, m.View(), "db locked")
}

func TestModelQuit(t *testing.T) {
	m := NewModel(staticLoader(stats.Report{}, nil), model.StatsConfig{})
	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
