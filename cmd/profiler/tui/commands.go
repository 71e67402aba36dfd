package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// =============================================================================
// ASYNC RESULT MESSAGES
// =============================================================================

type practiceAddedMsg struct {
	practice types.Practice
	err      error
}

type practiceUpdatedMsg struct {
	id  string
	err error
}

type planGeneratedMsg struct {
	plan []types.Recommendation
	err  error
}

type ideaGeneratedMsg struct {
	idea string
	err  error
}

func addPracticeCmd(ctx context.Context, ctrl *session.Controller, description string) tea.Cmd {
	return func() tea.Msg {
		p, err := ctrl.AddPractice(ctx, description)
		return practiceAddedMsg{practice: p, err: err}
	}
}

func updatePracticeCmd(ctx context.Context, ctrl *session.Controller, id, description string) tea.Cmd {
	return func() tea.Msg {
		_, err := ctrl.UpdatePractice(ctx, id, description)
		return practiceUpdatedMsg{id: id, err: err}
	}
}

func generatePlanCmd(ctx context.Context, ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		plan, err := ctrl.GenerateActionPlan(ctx)
		return planGeneratedMsg{plan: plan, err: err}
	}
}

func generateIdeaCmd(ctx context.Context, ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		idea, err := ctrl.GeneratePracticeIdea(ctx)
		return ideaGeneratedMsg{idea: idea, err: err}
	}
}

// dispatch issues cmd for action a unless one is already pending, in which
// case the trigger is dropped.
func (m *Model) dispatch(a session.Action, cmd tea.Cmd) tea.Cmd {
	if m.pending(a) {
		m.notice = fmt.Sprintf("%s is already in progress", actionLabel(a))
		logging.UIDebug("suppressed %s trigger: pending", a)
		return nil
	}
	m.inflight[a] = true
	m.syncViewport()
	return tea.Batch(cmd, m.spinner.Tick)
}

func actionLabel(a session.Action) string {
	switch a {
	case session.ActionAdd:
		return "Analysis"
	case session.ActionUpdate:
		return "Re-analysis"
	case session.ActionPlan:
		return "Action plan generation"
	case session.ActionIdea:
		return "Idea generation"
	default:
		return string(a)
	}
}
