package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

func TestViewBeforeResize(t *testing.T) {
	sized := NewTestModel(t, NewMockAnalyzer())
	m := New(t.Context(), sized.ctrl, Options{})
	assert.Equal(t, "Initializing...", m.View())
}

func TestViewShowsEmptyProfile(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())

	view := m.View()
	assert.Contains(t, view, "Agile Team Profiler")
	assert.Contains(t, view, "test-model")
	assert.Contains(t, view, "Practices (0)")
	assert.Contains(t, view, "Team Profile")
	for _, g := range catalog.Default().Groups() {
		assert.Contains(t, view, g.Title)
	}
	assert.Contains(t, view, "Add practices to unlock an action plan.")
}

func TestSubmitAddsPractice(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)

	m.input.SetValue("  We pair program on complex features.  ")
	m, cmd := press(m, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.pending(session.ActionAdd))

	m = settle(m, cmd)
	assert.False(t, m.pending(session.ActionAdd))
	require.Len(t, m.state.Practices, 1)
	assert.Equal(t, "We pair program on complex features.", m.state.Practices[0].Description)
	assert.Equal(t, 3, m.state.Totals.Get("flow_efficiency"))
	assert.Empty(t, m.input.Value())

	view := m.View()
	assert.Contains(t, view, "Practices (1)")
	assert.Contains(t, view, "Technical Practices")
	assert.Contains(t, view, "+3")
	assert.Contains(t, view, "Press tab, then p to generate an action plan.")
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)

	m.input.SetValue("   ")
	_, cmd := press(m, keyEnter)
	assert.Nil(t, cmd)
	assert.Empty(t, analyzer.analyzed)
}

func TestSubmitWhilePendingIsSuppressed(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)

	m.input.SetValue("Daily stand-up.")
	m, first := press(m, keyEnter)
	require.NotNil(t, first)

	m, second := press(m, keyEnter)
	assert.Nil(t, second)
	assert.Contains(t, m.notice, "already in progress")

	m = settle(m, first)
	assert.Len(t, m.state.Practices, 1)
	assert.Len(t, analyzer.analyzed, 1)
}

func TestAnalysisFailureIsShown(t *testing.T) {
	analyzer := NewMockAnalyzer()
	analyzer.err = errors.New("service unavailable")
	m := NewTestModel(t, analyzer)

	m.input.SetValue("Daily stand-up.")
	m, cmd := press(m, keyEnter)
	m = settle(m, cmd)

	assert.Empty(t, m.state.Practices)
	assert.Equal(t, "Daily stand-up.", m.input.Value(), "input is kept for retry")
	assert.Contains(t, m.View(), "service unavailable")
}

func TestIdeaFillsInput(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)

	m, cmd := press(m, keyIdea)
	m = settle(m, cmd)

	assert.Equal(t, analyzer.idea, m.input.Value())
	assert.Empty(t, m.state.Practices)
}

func TestExampleCyclesThroughPractices(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())
	examples := catalog.ExamplePractices()

	m, _ = press(m, keyEx)
	assert.Equal(t, examples[0], m.input.Value())
	assert.Equal(t, examples[0], m.ctrl.Snapshot().Draft)

	m, _ = press(m, keyEx)
	assert.Equal(t, examples[1], m.input.Value())
}

func TestPlanRequiresPractices(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)

	m, _ = press(m, keyTab)
	m, cmd := press(m, runes("p"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.notice, "Add at least one practice")
}

func TestPlanGenerated(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())
	m = addPractice(t, m, "We pair program on complex features.")

	m, _ = press(m, keyTab)
	m, cmd := press(m, runes("p"))
	require.NotNil(t, cmd)
	m = settle(m, cmd)

	require.True(t, m.state.HasPlan())
	assert.Equal(t, "Limit work in progress", m.state.Plan[0].Title)
	assert.NotContains(t, m.View(), "Press tab, then p")
}

func TestAddingPracticeClearsPlan(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())
	m = addPractice(t, m, "First practice.")

	m, _ = press(m, keyTab)
	m, cmd := press(m, runes("p"))
	m = settle(m, cmd)
	require.True(t, m.state.HasPlan())

	m, _ = press(m, keyTab)
	m = addPractice(t, m, "Second practice.")
	assert.False(t, m.state.HasPlan())
}

func TestOpenEditAndSavePractice(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)
	m = addPractice(t, m, "Original description.")

	m, _ = press(m, keyTab)
	m, _ = press(m, keyEnter)
	require.Equal(t, detailView, m.mode)

	view := m.View()
	assert.Contains(t, view, "Original description.")
	assert.Contains(t, view, "Positive impacts")
	assert.Contains(t, view, "Flow Efficiency")
	assert.Contains(t, view, "Negative impacts")
	assert.Contains(t, view, "Faster feedback")

	m, _ = press(m, runes("e"))
	require.True(t, m.editing)
	assert.Equal(t, "Original description.", m.editor.Value())

	m.editor.SetValue("Updated description.")
	m, cmd := press(m, keyEnter)
	require.NotNil(t, cmd)
	m = settle(m, cmd)

	assert.False(t, m.editing)
	require.Len(t, m.state.Practices, 1)
	assert.Equal(t, "Updated description.", m.state.Practices[0].Description)
	assert.Equal(t, []string{"Original description.", "Updated description."}, analyzer.analyzed)

	m, _ = press(m, keyEsc)
	assert.Equal(t, mainView, m.mode)
}

func TestSaveUnchangedDescriptionSkipsAnalysis(t *testing.T) {
	analyzer := NewMockAnalyzer()
	m := NewTestModel(t, analyzer)
	m = addPractice(t, m, "Same.")

	m, _ = press(m, keyTab)
	m, _ = press(m, keyEnter)
	m, _ = press(m, runes("e"))
	m, cmd := press(m, keyEnter)
	m = settle(m, cmd)

	assert.Len(t, analyzer.analyzed, 1)
	assert.False(t, m.editing)
}

func TestRemovePractice(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())
	m = addPractice(t, m, "First.")
	m = addPractice(t, m, "Second.")

	m, _ = press(m, keyTab)
	m, _ = press(m, runes("d"))

	require.Len(t, m.state.Practices, 1)
	assert.Equal(t, "First.", m.state.Practices[0].Description)
	assert.Equal(t, 3, m.state.Totals.Get("flow_efficiency"))
}

func TestRemoveFromDetailClosesIt(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())
	m = addPractice(t, m, "Only one.")

	m, _ = press(m, keyTab)
	m, _ = press(m, keyEnter)
	m, _ = press(m, runes("d"))

	assert.Equal(t, mainView, m.mode)
	assert.Empty(t, m.state.Practices)
}

func TestForceQuit(t *testing.T) {
	m := NewTestModel(t, NewMockAnalyzer())
	_, cmd := press(m, keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlanMarkdownSkipsUnknownAttributes(t *testing.T) {
	md := planMarkdown(catalog.Default(), []types.Recommendation{{
		Title:              "Limit WIP",
		Description:        "Cap stories in flight.",
		ImpactedAttributes: []string{"flow_efficiency", "bogus"},
	}})

	assert.Contains(t, md, "### 1. Limit WIP")
	assert.Contains(t, md, "**Impacts:** Flow Efficiency\n")
	assert.NotContains(t, md, "bogus")

	assert.Contains(t, planMarkdown(catalog.Default(), []types.Recommendation{}), "No recommendations")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"collapse   inner\nspace", 40, "collapse inner space"},
		{"abcdefghij", 5, "abcd…"},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), tt.in)
	}
	assert.True(t, strings.HasSuffix(truncate(strings.Repeat("é", 50), 10), "…"))
}

func addPractice(t *testing.T, m Model, description string) Model {
	t.Helper()
	if m.focus != focusInput {
		m, _ = press(m, keyTab)
	}
	m.input.SetValue(description)
	m, cmd := press(m, keyEnter)
	require.NotNil(t, cmd)
	return settle(m, cmd)
}
