// Package tui is the terminal lead viewer: a filterable, paginated lead
// table with detail and dashboard screens.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanlanch/leadmanager/pkg/dashboard"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/export"
	"github.com/jordanlanch/leadmanager/pkg/format"
	"github.com/jordanlanch/leadmanager/pkg/leaddetail"
	"github.com/jordanlanch/leadmanager/pkg/leadlist"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/query"
)

// Screen is the screen the viewer shows
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenDashboard
)

// Deps are the collaborators of the viewer
type Deps struct {
	Controller *leadlist.Controller
	Leads      domain.LeadReader
	Analytics  domain.AnalyticsReader
	Exporter   *export.Service // optional
	Notices    *Notices
	Log        logger.Logger
	User       *models.User // optional, shown in the header
}

type fetchResultMsg struct{ result leadlist.Result }

type seedResultMsg struct{ result leadlist.SeedResult }

type detailMsg struct {
	detail leaddetail.Detail
	err    error
}

type dashboardMsg struct {
	dashboard dashboard.Dashboard
	err       error
}

type exportMsg struct {
	result *export.Result
	err    error
}

// Model is the bubbletea model of the lead viewer
type Model struct {
	ctx  context.Context
	deps Deps
	keys KeyMap

	screen      Screen
	searching   bool
	table       table.Model
	search      textinput.Model
	leads       []models.Lead
	detail      leaddetail.Detail
	dashboard   dashboard.Dashboard
	dashLoading bool

	width  int
	height int
}

var columns = []table.Column{
	{Title: "Name", Width: 20},
	{Title: "Email", Width: 26},
	{Title: "Company", Width: 18},
	{Title: "Status", Width: 12},
	{Title: "Source", Width: 13},
	{Title: "Value", Width: 10},
	{Title: "Created", Width: 12},
}

// NewModel creates the viewer. ctx bounds every request it issues.
func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Notices == nil {
		deps.Notices = NewNotices()
	}
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name, email or company"
	search.CharLimit = 100
	search.Width = 30

	keys := DefaultKeyMap
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(tableStyles()),
		table.WithKeyMap(tableKeyMap(keys)),
	)

	m := Model{
		ctx:    ctx,
		deps:   deps,
		keys:   keys,
		table:  t,
		search: search,
	}
	m.syncTable()
	return m
}

// Init mounts the list screen by issuing the first fetch
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Screen returns the active screen
func (m Model) Screen() Screen {
	return m.screen
}

// fetch begins a fetch cycle and runs its network part as a command
func (m Model) fetch() tea.Cmd {
	ctrl := m.deps.Controller
	pending := ctrl.Begin()
	ctx := m.ctx
	return func() tea.Msg {
		return fetchResultMsg{result: ctrl.Run(ctx, pending)}
	}
}

func (m Model) fetchIf(needed bool, err error) tea.Cmd {
	if err != nil {
		m.deps.Notices.Notify(leadlist.Notification{Level: leadlist.LevelError, Message: domain.Message(err, err.Error())})
		return nil
	}
	if !needed {
		return nil
	}
	return m.fetch()
}

func (m Model) seed() tea.Cmd {
	ctrl := m.deps.Controller
	ctx := m.ctx
	return func() tea.Msg {
		return seedResultMsg{result: ctrl.RunSeed(ctx)}
	}
}

func (m Model) openDetail(id string) tea.Cmd {
	reader := m.deps.Leads
	ctx := m.ctx
	return func() tea.Msg {
		d, err := leaddetail.Load(ctx, reader, id)
		return detailMsg{detail: d, err: err}
	}
}

func (m Model) loadDashboard() tea.Cmd {
	reader := m.deps.Analytics
	ctx := m.ctx
	return func() tea.Msg {
		d, err := dashboard.Load(ctx, reader)
		return dashboardMsg{dashboard: d, err: err}
	}
}

func (m Model) exportPage() tea.Cmd {
	exporter := m.deps.Exporter
	leads := m.deps.Controller.Rows()
	ctx := m.ctx
	return func() tea.Msg {
		result, err := exporter.Export(ctx, export.FormatCSV, leads)
		return exportMsg{result: result, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case fetchResultMsg:
		// Failures are reported through the controller's notifier
		_ = m.deps.Controller.Apply(msg.result)
		m.syncTable()
		return m, nil

	case seedResultMsg:
		refetch, _ := m.deps.Controller.ApplySeed(msg.result)
		if refetch {
			return m, m.fetch()
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.deps.Log.Warn("lead details unavailable", "error", msg.err)
			m.notifyError(leaddetail.MsgFetchFailed)
			m.screen = ScreenList
			return m, nil
		}
		m.detail = msg.detail
		m.screen = ScreenDetail
		return m, nil

	case dashboardMsg:
		m.dashLoading = false
		m.dashboard = msg.dashboard
		if msg.err != nil {
			m.deps.Log.Warn("analytics unavailable", "error", msg.err)
			m.notifyError(dashboard.MsgFetchFailed)
		}
		return m, nil

	case exportMsg:
		if msg.err != nil {
			m.deps.Log.Error("export failed", "error", msg.err)
			m.notifyError("Export failed")
			return m, nil
		}
		m.deps.Notices.Notify(leadlist.Notification{
			Level:   leadlist.LevelSuccess,
			Message: fmt.Sprintf("Exported %d leads to %s", msg.result.Rows, exportLocation(msg.result)),
		})
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenDetail, ScreenDashboard:
			if key.Matches(msg, m.keys.Back) {
				m.screen = ScreenList
			}
			return m, nil
		}
		return m.handleListKeys(msg)
	}

	return m, nil
}

func exportLocation(r *export.Result) string {
	if r.Location != "" {
		return r.Location
	}
	return r.Path
}

func (m Model) notifyError(message string) {
	m.deps.Notices.Notify(leadlist.Notification{Level: leadlist.LevelError, Message: message})
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		m.deps.Controller.SetSearchText(m.search.Value())
		return m, m.fetchIf(m.deps.Controller.SubmitSearch(), nil)
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.deps.Controller.SetSearchText(m.search.Value())
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.deps.Controller

	switch {
	case key.Matches(msg, m.keys.FocusSearch):
		m.searching = true
		m.table.Blur()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.CycleStatus):
		return m, m.fetchIf(ctrl.SetStatusFilter(nextStatus(ctrl.View().Query.Status)))

	case key.Matches(msg, m.keys.CycleSource):
		return m, m.fetchIf(ctrl.SetSourceFilter(nextSource(ctrl.View().Query.Source)))

	case key.Matches(msg, m.keys.NextPage):
		return m, m.fetchIf(ctrl.NextPage())

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.fetchIf(ctrl.PrevPage())

	case key.Matches(msg, m.keys.GrowPage), key.Matches(msg, m.keys.ShrinkPage):
		dir := 1
		if key.Matches(msg, m.keys.ShrinkPage) {
			dir = -1
		}
		current := ctrl.View().Query.PageSize
		next := stepPageSize(current, dir)
		if next == current {
			// Already at the end of the size list; keep the page
			return m, nil
		}
		return m, m.fetchIf(ctrl.SetPageSize(next))

	case key.Matches(msg, m.keys.ApplyFilters):
		return m, m.fetchIf(ctrl.ApplyFilters(), nil)

	case key.Matches(msg, m.keys.ClearAll):
		m.search.Reset()
		return m, m.fetchIf(ctrl.ClearAll(), nil)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetch()

	case key.Matches(msg, m.keys.Seed):
		return m, m.seed()

	case key.Matches(msg, m.keys.Open):
		if lead, ok := m.selectedLead(); ok {
			return m, m.openDetail(lead.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Dashboard):
		m.screen = ScreenDashboard
		m.dashLoading = true
		return m, m.loadDashboard()

	case key.Matches(msg, m.keys.Export):
		if m.deps.Exporter == nil {
			m.notifyError("Export is not configured")
			return m, nil
		}
		return m, m.exportPage()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) selectedLead() (models.Lead, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.leads) {
		return models.Lead{}, false
	}
	return m.leads[i], true
}

// syncTable copies the controller's rows into the table
func (m *Model) syncTable() {
	m.leads = m.deps.Controller.Rows()
	rows := make([]table.Row, len(m.leads))
	for i, lead := range m.leads {
		rows[i] = table.Row{
			lead.Name,
			lead.Email,
			lead.Company,
			string(lead.Status),
			string(lead.Source),
			format.Currency(lead.Value),
			format.Date(lead.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && (m.table.Cursor() < 0 || m.table.Cursor() >= len(rows)) {
		m.table.SetCursor(0)
	}
}

func nextStatus(current models.LeadStatus) models.LeadStatus {
	options := append([]models.LeadStatus{""}, models.Statuses...)
	for i, s := range options {
		if s == current {
			return options[(i+1)%len(options)]
		}
	}
	return ""
}

func nextSource(current models.LeadSource) models.LeadSource {
	options := append([]models.LeadSource{""}, models.Sources...)
	for i, s := range options {
		if s == current {
			return options[(i+1)%len(options)]
		}
	}
	return ""
}

// stepPageSize moves dir steps through query.PageSizes, stopping at the ends
func stepPageSize(current, dir int) int {
	for i, size := range query.PageSizes {
		if size == current {
			j := i + dir
			if j < 0 || j >= len(query.PageSizes) {
				return current
			}
			return query.PageSizes[j]
		}
	}
	return query.DefaultPageSize
}
