package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/profile"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.anyPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport()
		return m, cmd

	case practiceAddedMsg:
		delete(m.inflight, session.ActionAdd)
		m.refresh()
		if msg.err != nil {
			m.noticeFor(session.ActionAdd, msg.err)
			return m, nil
		}
		m.input.Reset()
		logging.UIDebug("practice %s added", msg.practice.ID)
		return m, nil

	case practiceUpdatedMsg:
		delete(m.inflight, session.ActionUpdate)
		m.refresh()
		if msg.err != nil {
			m.noticeFor(session.ActionUpdate, msg.err)
			return m, nil
		}
		if m.mode == detailView && m.detailID == msg.id {
			m.editing = false
			m.editor.Blur()
			m.layout()
		}
		return m, nil

	case planGeneratedMsg:
		delete(m.inflight, session.ActionPlan)
		m.refresh()
		if errors.Is(msg.err, session.ErrStalePlan) {
			m.notice = "Practices changed while the plan was being generated. Press p to try again."
		} else if msg.err != nil {
			m.noticeFor(session.ActionPlan, msg.err)
		}
		m.viewport.GotoBottom()
		return m, nil

	case ideaGeneratedMsg:
		delete(m.inflight, session.ActionIdea)
		m.refresh()
		if msg.err != nil {
			m.noticeFor(session.ActionIdea, msg.err)
			return m, nil
		}
		m.input.SetValue(msg.idea)
		m.input.CursorEnd()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other component messages go to the active textarea.
	var cmd tea.Cmd
	switch {
	case m.mode == detailView && m.editing:
		m.editor, cmd = m.editor.Update(msg)
	case m.mode == mainView && m.focus == focusInput:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// noticeFor surfaces err unless the controller already recorded it in the
// action's error slot.
func (m *Model) noticeFor(a session.Action, err error) {
	if m.state.Error(a) != "" {
		return
	}
	m.notice = err.Error()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	m.notice = ""

	if m.mode == detailView {
		return m.handleDetailKey(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		description := strings.TrimSpace(m.input.Value())
		if description == "" {
			return m, nil
		}
		return m, m.dispatch(session.ActionAdd, addPracticeCmd(m.ctx, m.ctrl, description))

	case key.Matches(msg, m.keys.Idea):
		return m, m.dispatch(session.ActionIdea, generateIdeaCmd(m.ctx, m.ctrl))

	case key.Matches(msg, m.keys.Example):
		if len(m.examples) == 0 {
			return m, nil
		}
		m.input.SetValue(m.examples[m.exampleIdx%len(m.examples)])
		m.input.CursorEnd()
		m.exampleIdx++
		m.ctrl.SetDraft(m.input.Value())
		return m, nil

	case key.Matches(msg, m.keys.SwitchPane):
		m.focus = focusList
		m.input.Blur()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ordered := orderedPractices(m.state.Practices)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchPane):
		m.focus = focusInput
		m.syncViewport()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncViewport()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(ordered)-1 {
			m.cursor++
		}
		m.syncViewport()

	case key.Matches(msg, m.keys.Open):
		if len(ordered) == 0 {
			return m, nil
		}
		m.mode = detailView
		m.detailID = ordered[m.cursor].ID
		m.layout()
		m.viewport.GotoTop()

	case key.Matches(msg, m.keys.Remove):
		if len(ordered) == 0 {
			return m, nil
		}
		m.remove(ordered[m.cursor].ID)

	case key.Matches(msg, m.keys.Plan):
		if len(m.state.Practices) == 0 {
			m.notice = "Add at least one practice before generating an action plan."
			return m, nil
		}
		return m, m.dispatch(session.ActionPlan, generatePlanCmd(m.ctx, m.ctrl))

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch {
		case key.Matches(msg, m.keys.Back):
			if m.pending(session.ActionUpdate) {
				m.notice = "Re-analysis in progress."
				return m, nil
			}
			m.editing = false
			m.editor.Blur()
			m.layout()
			return m, nil

		case key.Matches(msg, m.keys.Save):
			description := strings.TrimSpace(m.editor.Value())
			if description == "" {
				m.notice = "Description cannot be empty."
				return m, nil
			}
			return m, m.dispatch(session.ActionUpdate, updatePracticeCmd(m.ctx, m.ctrl, m.detailID, description))
		}

		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.pending(session.ActionUpdate) {
			m.notice = "Re-analysis in progress."
			return m, nil
		}
		m.closeDetail()

	case key.Matches(msg, m.keys.Edit):
		p, ok := m.state.Practice(m.detailID)
		if !ok {
			return m, nil
		}
		m.editing = true
		m.editor.SetValue(p.Description)
		m.editor.CursorEnd()
		m.layout()
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.Remove):
		if m.pending(session.ActionUpdate) {
			m.notice = "Re-analysis in progress."
			return m, nil
		}
		m.remove(m.detailID)

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) remove(id string) {
	if err := m.ctrl.RemovePractice(id); err != nil {
		m.notice = err.Error()
	}
	m.refresh()
}

// orderedPractices is the display order of the practice list: grouped by
// category, categories sorted with the fallback last.
func orderedPractices(practices []types.Practice) []types.Practice {
	var out []types.Practice
	for _, g := range profile.GroupByCategory(practices) {
		out = append(out, g.Practices...)
	}
	return out
}
