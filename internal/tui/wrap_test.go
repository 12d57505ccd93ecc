package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lingotype/internal/session"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	cells := session.Diff([]rune("ab"), []rune("a"))

	runes := buildStyledRunes(cells, 1)
	require.Len(t, runes, 2)
	assert.Equal(t, correctStyle.Render("a"), runes[0].s)
	assert.Equal(t, pendingStyle.Underline(true).Render("b"), runes[1].s, "cursor rune is underlined")
}

func TestBuildStyledRunesNoCursor(t *testing.T) {
	cells := session.Diff([]rune("a"), []rune("a"))

	runes := buildStyledRunes(cells, -1)
	require.Len(t, runes, 1)
	assert.Equal(t, correctStyle.Render("a"), runes[0].s)
}

func TestBuildStyledRunesShowsTypedRuneOnMistype(t *testing.T) {
	cells := session.Diff([]rune("ab"), []rune("ax"))

	runes := buildStyledRunes(cells, -1)
	require.Len(t, runes, 2)
	assert.Equal(t, incorrectStyle.Render("x"), runes[1].s)
}

func TestBuildStyledRunesWrongWhitespace(t *testing.T) {
	cells := session.Diff([]rune("abcd"), []rune("a c\n"))

	runes := buildStyledRunes(cells, -1)
	require.Len(t, runes, 4)
	assert.Equal(t, incorrectStyle.Render("•"), runes[1].s, "wrong space shows a dot")
	assert.Equal(t, incorrectStyle.Render("↵"), runes[3].s, "wrong newline shows a return marker")
	assert.False(t, runes[3].isNewline)
}

func TestWrapStyledRunes(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "breaks at space", text: "hello world", width: 5, want: "hello\nworld"},
		{name: "wide runes", text: "你好世界", width: 4, want: "你好\n世界"},
		{name: "keeps newlines", text: "ab\ncd", width: 10, want: "ab\ncd"},
		{name: "no width", text: "one two", width: 0, want: "one two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapStyledRunes(plainRunes(tt.text, referenceStyle), tt.width))
		})
	}
}
