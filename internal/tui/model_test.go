package tui

import (
	"sort"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/rooted/internal/game"
	"github.com/robalobadob/rooted/internal/puzzle"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	s, err := game.Start([]puzzle.Puzzle{{
		Root:      "GRAPH",
		Extras:    "SICOLE",
		Solutions: []string{"GRAPHS", "GRAPHIC", "HOLOGRAPH"},
	}}, 0)
	require.NoError(t, err)
	return NewModel(s, "2025-01-02")
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestTypingAndBackspace(t *testing.T) {
	m := newModel(t)
	typeText(m, "gra1ph-s")
	assert.Equal(t, "GRAPHS", string(m.input))

	press(m, tea.KeyBackspace)
	assert.Equal(t, "GRAPH", string(m.input))

	for i := 0; i < 10; i++ {
		press(m, tea.KeyBackspace)
	}
	assert.Empty(t, m.input)
}

func TestEnterSubmits(t *testing.T) {
	m := newModel(t)

	typeText(m, "cat")
	press(m, tea.KeyEnter)
	assert.Empty(t, m.input)
	assert.Equal(t, "Word must be at least 5 letters long.", m.message)
	assert.False(t, m.celebrate)

	typeText(m, "graphs")
	press(m, tea.KeyEnter)
	assert.Equal(t, "All 6-letter words found!", m.message)
	assert.True(t, m.celebrate)
	assert.Equal(t, []string{"GRAPHS"}, m.session.Found())

	typeText(m, "GRAPHS")
	press(m, tea.KeyEnter)
	assert.Equal(t, "Already found!", m.message)
	assert.False(t, m.celebrate)
	assert.Equal(t, 1, m.session.Summary().FoundCount)
}

func TestTabShuffleKeepsLetters(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 5; i++ {
		press(m, tea.KeyTab)
		assert.Equal(t, sorted("SICOLE"), sorted(string(m.extras)))
	}
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t)
	typeText(m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Every word must contain GRAPH.")

	assert.Nil(t, press(m, tea.KeyEsc))
	assert.False(t, m.showHelp)

	assert.NotNil(t, press(m, tea.KeyEsc))
	assert.NotNil(t, press(m, tea.KeyCtrlC))
}

func TestViewShowsBoard(t *testing.T) {
	m := newModel(t)
	typeText(m, "holograph")
	press(m, tea.KeyEnter)

	out := m.View()
	for _, want := range []string{"ROOTED · 2025-01-02", "6-Letter Words", "9-Letter Words", "1/1", "Found 1 of 3", "HOLOGRAPH"} {
		assert.True(t, strings.Contains(out, want), "missing %q in\n%s", want, out)
	}
}

func TestWindowSize(t *testing.T) {
	m := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
	assert.NotEmpty(t, m.View())
}

func sorted(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}
