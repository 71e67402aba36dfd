package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/malcolmbastien/Agile-Team-Profiler/cmd/profiler/ui"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/profile"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

const nameWidth = 30

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{m.renderHeader()}
	switch m.mode {
	case detailView:
		sections = append(sections, m.viewport.View())
		if m.editing {
			sections = append(sections, m.renderEditor())
		}
	default:
		sections = append(sections, m.renderInput(), m.viewport.View())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			// If glamour panics, return plain text
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return content
}

// syncViewport rebuilds the scrollable content and keeps the selected
// practice on screen.
func (m *Model) syncViewport() {
	if m.mode == detailView {
		m.viewport.SetContent(m.detailContent())
		return
	}

	content, selected := m.mainContent()
	m.viewport.SetContent(content)
	if selected < 0 || m.viewport.Height <= 0 {
		return
	}
	if selected < m.viewport.YOffset {
		m.viewport.SetYOffset(selected)
	} else if selected >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(selected - m.viewport.Height + 1)
	}
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) renderHeader() string {
	title := "Agile Team Profiler"
	if m.model != "" {
		title += "  ·  " + m.model
	}
	return m.styles.Header.Width(m.width).Render(title)
}

func (m Model) renderInput() string {
	box := m.styles.Panel
	if m.focus == focusInput {
		box = m.styles.Focused
	}
	panel := box.Width(max(m.width-2, 10)).Render(m.input.View())

	var status string
	switch {
	case m.pending(session.ActionAdd):
		status = m.spinner.View() + " Analyzing practice..."
	case m.pending(session.ActionIdea):
		status = m.spinner.View() + " Generating an idea..."
	case m.state.Error(session.ActionAdd) != "":
		status = m.styles.Error.Render(m.state.Error(session.ActionAdd))
	case m.state.Error(session.ActionIdea) != "":
		status = m.styles.Error.Render(m.state.Error(session.ActionIdea))
	case m.notice != "":
		status = m.styles.Warning.Render(m.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, status)
}

func (m Model) renderEditor() string {
	panel := m.styles.Focused.Width(max(m.width-2, 10)).Render(m.editor.View())

	var status string
	switch {
	case m.pending(session.ActionUpdate):
		status = m.spinner.View() + " Re-analyzing practice..."
	case m.state.Error(session.ActionUpdate) != "":
		status = m.styles.Error.Render(m.state.Error(session.ActionUpdate))
	case m.notice != "":
		status = m.styles.Warning.Render(m.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, status)
}

func (m Model) renderFooter() string {
	bindings := m.keys.listHelp()
	switch {
	case m.mode == detailView:
		bindings = m.keys.detailHelp(m.editing)
	case m.focus == focusInput:
		bindings = m.keys.inputHelp()
	}
	helpLine := m.help.ShortHelpView(bindings)

	stats := m.tracker.Stats()
	usageLine := fmt.Sprintf("requests %d (failed %d) · tokens in %d / out %d",
		stats.Requests, stats.Failures, stats.Total.Input, stats.Total.Output)

	notice := ""
	if m.mode == mainView && m.focus == focusList && m.notice != "" {
		notice = m.styles.Warning.Render(m.notice) + "  "
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Footer.Render(helpLine),
		m.styles.Footer.Render(notice+m.styles.Muted.Render(usageLine)),
	)
}

// =============================================================================
// MAIN VIEW
// =============================================================================

// mainContent renders the practice list, the team profile and the action
// plan. It returns the line index of the selected practice, or -1.
func (m Model) mainContent() (string, int) {
	var sb strings.Builder
	selectedLine := -1
	s := m.styles

	fmt.Fprintf(&sb, "%s\n", s.Title.Render(fmt.Sprintf("Practices (%d)", len(m.state.Practices))))
	if len(m.state.Practices) == 0 {
		sb.WriteString(s.Muted.Render("No practices yet. Describe one above, or press ctrl+e for an example."))
		sb.WriteString("\n")
	}

	idx := 0
	for _, group := range profile.GroupByCategory(m.state.Practices) {
		fmt.Fprintf(&sb, "%s\n", s.Subtitle.Render(group.Category))
		for _, p := range group.Practices {
			line := "    " + truncate(p.Description, max(m.width-8, 20))
			if idx == m.cursor {
				if m.focus == focusList {
					line = s.Selected.Render("  › " + truncate(p.Description, max(m.width-8, 20)))
				}
				selectedLine = strings.Count(sb.String(), "\n")
			}
			sb.WriteString(line + "\n")
			idx++
		}
	}

	sb.WriteString("\n" + s.Title.Render("Team Profile") + "\n")
	sb.WriteString(m.renderProfile())

	sb.WriteString("\n" + s.Title.Render("Action Plan") + "\n")
	sb.WriteString(m.renderPlan())

	return sb.String(), selectedLine
}

func (m Model) renderProfile() string {
	var sb strings.Builder
	s := m.styles
	barWidth := min(max(m.width-nameWidth-12, 10), 40)

	for _, group := range profile.GroupTotals(m.cat, m.state.Totals) {
		fmt.Fprintf(&sb, "%s\n", s.Subtitle.Render(group.Group.Title))
		for _, as := range group.Scores {
			fmt.Fprintf(&sb, "  %-*s %s %s\n",
				nameWidth, truncate(as.Attribute.Name, nameWidth),
				s.ScoreBar(as.Score, barWidth),
				s.ScoreStyle(as.Score)(ui.FormatScore(as.Score)))
		}
	}
	return sb.String()
}

func (m Model) renderPlan() string {
	s := m.styles
	var parts []string

	if m.pending(session.ActionPlan) {
		parts = append(parts, m.spinner.View()+" Generating action plan...")
	}
	if msg := m.state.Error(session.ActionPlan); msg != "" {
		parts = append(parts, s.Error.Render(msg))
	}
	switch {
	case m.state.HasPlan():
		parts = append(parts, m.safeRenderMarkdown(planMarkdown(m.cat, m.state.Plan)))
	case len(m.state.Practices) > 0 && !m.pending(session.ActionPlan):
		parts = append(parts, s.Muted.Render("Press tab, then p to generate an action plan."))
	case len(m.state.Practices) == 0:
		parts = append(parts, s.Muted.Render("Add practices to unlock an action plan."))
	}
	return strings.Join(parts, "\n") + "\n"
}

// planMarkdown formats recommendations for glamour. Impacted ids the
// catalog does not know are left out.
func planMarkdown(cat *catalog.Catalog, plan []types.Recommendation) string {
	if len(plan) == 0 {
		return "_No recommendations were returned._\n"
	}
	var sb strings.Builder
	for i, rec := range plan {
		fmt.Fprintf(&sb, "### %d. %s\n\n%s\n\n", i+1, rec.Title, rec.Description)
		if names := profile.ResolveNames(cat, rec.ImpactedAttributes); len(names) > 0 {
			fmt.Fprintf(&sb, "**Impacts:** %s\n\n", strings.Join(names, ", "))
		}
	}
	return sb.String()
}

// =============================================================================
// DETAIL VIEW
// =============================================================================

func (m Model) detailContent() string {
	p, ok := m.state.Practice(m.detailID)
	if !ok {
		return ""
	}
	s := m.styles
	wrap := lipgloss.NewStyle().Width(max(m.width-4, 20))

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Practice") + "  " + s.Badge.Render(p.Category) + "\n")
	sb.WriteString(wrap.Render(p.Description) + "\n\n")

	if p.Summary.Summary != "" {
		sb.WriteString(s.Subtitle.Render("Summary") + "\n")
		sb.WriteString(wrap.Render(p.Summary.Summary) + "\n\n")
	}

	positive, negative := profile.Impacts(m.cat, p)
	writeImpacts := func(title string, scores []profile.AttributeScore) {
		if len(scores) == 0 {
			return
		}
		sb.WriteString(s.Subtitle.Render(title) + "\n")
		for _, as := range scores {
			fmt.Fprintf(&sb, "  %-*s %s\n", nameWidth, truncate(as.Attribute.Name, nameWidth),
				s.ScoreStyle(as.Score)(ui.FormatScore(as.Score)))
		}
		sb.WriteString("\n")
	}
	writeImpacts("Positive impacts", positive)
	writeImpacts("Negative impacts", negative)

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(s.Subtitle.Render(title) + "\n")
		for _, item := range items {
			sb.WriteString(wrap.Render("  • "+item) + "\n")
		}
		sb.WriteString("\n")
	}
	writeList("Key pros", p.Summary.KeyPros)
	writeList("Key cons", p.Summary.KeyCons)

	if !m.editing {
		if msg := m.state.Error(session.ActionUpdate); msg != "" {
			sb.WriteString(s.Error.Render(msg) + "\n")
		}
		if m.notice != "" {
			sb.WriteString(s.Warning.Render(m.notice) + "\n")
		}
	}
	return sb.String()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
