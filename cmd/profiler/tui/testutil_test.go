package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/malcolmbastien/Agile-Team-Profiler/cmd/profiler/ui"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// =============================================================================
// MOCK ANALYZER
// =============================================================================

// MockAnalyzer answers every request synchronously from canned values.
type MockAnalyzer struct {
	mu       sync.Mutex
	analysis types.Analysis
	err      error
	plan     []types.Recommendation
	planErr  error
	idea     string
	ideaErr  error
	analyzed []string
}

// NewMockAnalyzer returns an analyzer that scores every practice +3 on
// flow efficiency.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{
		analysis: types.Analysis{
			Scores:   types.Scores{"flow_efficiency": 3, "sustainable_pace": -2},
			Category: "Technical Practices",
			Summary: types.PracticeSummary{
				Summary:         "Speeds up flow at some cost to pace.",
				PositiveImpacts: []string{"flow_efficiency"},
				NegativeImpacts: []string{"sustainable_pace"},
				KeyPros:         []string{"Faster feedback"},
				KeyCons:         []string{"More pressure"},
			},
		},
		plan: []types.Recommendation{{
			Title:              "Limit work in progress",
			Description:        "Cap the number of stories in flight.",
			ImpactedAttributes: []string{"flow_efficiency", "not_an_attribute"},
		}},
		idea: "We demo working software to customers every sprint.",
	}
}

func (a *MockAnalyzer) AnalyzePractice(_ context.Context, description string) (types.Analysis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.analyzed = append(a.analyzed, description)
	if a.err != nil {
		return types.Analysis{}, a.err
	}
	return a.analysis, nil
}

func (a *MockAnalyzer) GenerateActionPlan(_ context.Context, _ []types.Practice, _ types.Scores) ([]types.Recommendation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plan, a.planErr
}

func (a *MockAnalyzer) GeneratePracticeIdea(_ context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.idea, a.ideaErr
}

// =============================================================================
// TEST MODEL
// =============================================================================

// NewTestModel builds a sized model backed by a real controller.
func NewTestModel(t *testing.T, analyzer *MockAnalyzer) Model {
	t.Helper()
	seq := 0
	ctrl := session.New(analyzer, catalog.Default(), session.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("p%d", seq)
	}))
	m := New(context.Background(), ctrl, Options{Styles: ui.NewStyles(ui.DarkTheme()), Model: "test-model"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return next.(Model)
}

// press sends a key to the model.
func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyIdea  = tea.KeyMsg{Type: tea.KeyCtrlG}
	keyEx    = tea.KeyMsg{Type: tea.KeyCtrlE}
	keyQuit  = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// settle runs cmd and feeds every async result back into the model.
// Spinner ticks are dropped so the loop terminates.
func settle(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case practiceAddedMsg, practiceUpdatedMsg, planGeneratedMsg, ideaGeneratedMsg:
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
