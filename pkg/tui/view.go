package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/jordanlanch/leadmanager/pkg/dashboard"
	"github.com/jordanlanch/leadmanager/pkg/format"
	"github.com/jordanlanch/leadmanager/pkg/leadlist"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

const barWidth = 30

// View renders the active screen
func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenDetail:
		body = m.detailView()
	case ScreenDashboard:
		body = m.dashboardView()
	default:
		body = m.listView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.noticeView())
}

func (m Model) headerView() string {
	header := titleStyle.Render("Lead Management")
	if m.deps.User != nil {
		header += labelStyle.Render("  signed in as " + m.deps.User.Email)
	}
	return header + "\n"
}

func (m Model) listView() string {
	view := m.deps.Controller.View()

	var b strings.Builder

	if m.searching {
		b.WriteString(m.search.View())
	} else {
		applied := view.Query.AppliedSearch
		if applied == "" {
			applied = "-"
		}
		b.WriteString(labelStyle.Render("Search: ") + activeFilterStyle.Render(applied))
		if view.Query.DraftSearch != view.Query.AppliedSearch {
			b.WriteString(labelStyle.Render(fmt.Sprintf(" (typed %q, press / then enter to apply)", view.Query.DraftSearch)))
		}
	}
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Status: ") + activeFilterStyle.Render(view.Query.Status.Label()))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Source: ") + activeFilterStyle.Render(view.Query.Source.Label()))
	b.WriteString("\n\n")

	if len(view.Rows) == 0 && !view.Loading {
		b.WriteString(labelStyle.Render("No leads found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString(paginationView(view))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine(m.keys.ShortHelp())))
	return b.String()
}

func paginationView(view leadlist.View) string {
	page := view.Page
	pages := page.PageCount
	if pages == 0 {
		pages = 1
	}
	line := fmt.Sprintf("Rows per page: %d   %d-%d of %s   page %d of %d",
		page.PageSize, page.From, page.To, format.Number(page.Total), page.PageIndex+1, pages)
	if view.Loading {
		line += "   loading..."
	}
	return labelStyle.Render(line)
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m Model) detailView() string {
	d := m.detail

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Name))
	b.WriteString("  ")
	b.WriteString(statusStyle(d.Status).Render(string(d.Status)))
	b.WriteString("  ")
	b.WriteString(activeFilterStyle.Render(d.Value))
	b.WriteString("\n\n")

	for _, row := range d.Rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-15s", row.Label)))
		b.WriteString(row.Value)
		b.WriteString("\n")
	}

	if d.Notes != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(d.Notes)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Status Timeline"))
	b.WriteString("\n")
	for _, step := range d.Timeline {
		marker := "○"
		if step.Current {
			marker = "●"
		}
		b.WriteString(statusStyle(step.Status).Render(marker + " " + step.Status.Label()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine([]key.Binding{m.keys.Back, m.keys.Quit})))
	return b.String()
}

func (m Model) dashboardView() string {
	if m.dashLoading {
		return labelStyle.Render("Loading analytics...")
	}
	d := m.dashboard

	cards := make([]string, len(d.Cards))
	for i, card := range d.Cards {
		cards[i] = cardStyle.Render(labelStyle.Render(card.Title) + "\n" + activeFilterStyle.Render(card.Value))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")
	b.WriteString(seriesView("Leads by Stage", d.ByStage, d.PlaceholderStage, func(id string) lipgloss.Style {
		return statusStyle(models.LeadStatus(id))
	}))
	b.WriteString("\n")
	b.WriteString(seriesView("Leads by Source", d.BySource, d.PlaceholderSource, func(string) lipgloss.Style {
		return titleStyle
	}))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine([]key.Binding{m.keys.Back, m.keys.Quit})))
	return b.String()
}

func seriesView(title string, series []models.GroupCount, placeholder bool, style func(string) lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(title))
	if placeholder {
		b.WriteString(labelStyle.Render(" (sample)"))
	}
	b.WriteString("\n")

	highest := dashboard.MaxCount(series)
	for _, g := range series {
		width := 0
		if highest > 0 {
			width = g.Count * barWidth / highest
		}
		b.WriteString(fmt.Sprintf("%-14s ", g.ID))
		b.WriteString(style(g.ID).Render(strings.Repeat("█", width)))
		b.WriteString(fmt.Sprintf(" %d\n", g.Count))
	}
	return b.String()
}

func (m Model) noticeView() string {
	note, ok := m.deps.Notices.Latest()
	if !ok {
		return ""
	}
	if note.Level == leadlist.LevelError {
		return errorStyle.Render("✗ " + note.Message)
	}
	return successStyle.Render("✓ " + note.Message)
}
