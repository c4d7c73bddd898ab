// Package tui implements the terminal front end: editable company rows, fetch controls
// and a sortable results table.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/umputun/newsdesk/pkg/companies"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/present"
)

//go:generate moq -out mocks/monitor.go -pkg mocks -skip-ensure -fmt goimports . Monitor

// Monitor runs news fetches and keeps the latest outcome
type Monitor interface {
	FetchNews(ctx context.Context, identifiers []string, forceRefresh bool) domain.Outcome
	Outcome() domain.Outcome
	Reset()
}

// Focus is the part of the screen receiving keys
type Focus int

// focus areas
const (
	FocusInputs Focus = iota
	FocusTable
)

// sortKeys maps number keys to table columns
var sortKeys = map[string]domain.SortKey{
	"1": domain.SortByDate,
	"2": domain.SortByCompany,
	"3": domain.SortBySummary,
	"4": domain.SortBySentiment,
}

// fetchDoneMsg is sent when a fetch started by the model resolves
type fetchDoneMsg struct{}

// Model is the bubbletea model of the monitor screen
type Model struct {
	ctx        context.Context
	monitor    Monitor
	companies  *companies.List
	presenter  *present.Presenter
	dateFormat string

	inputs  []textinput.Model
	cursor  int
	focus   Focus
	table   table.Model
	spinner spinner.Model

	outcome  domain.Outcome
	inFlight int
	status   string // row edit errors

	width  int
	height int
}

// New makes a model for the company list. ctx bounds fetches started from the screen.
func New(ctx context.Context, mon Monitor, list *companies.List, dateFormat string) *Model {
	if list == nil {
		list = companies.New()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cursorStyle

	t := table.New(table.WithFocused(false), table.WithHeight(10))
	ts := table.DefaultStyles()
	ts.Header = headerStyle
	ts.Selected = selectedStyle
	t.SetStyles(ts)

	m := &Model{
		ctx:        ctx,
		monitor:    mon,
		companies:  list,
		presenter:  present.NewPresenter(),
		dateFormat: dateFormat,
		table:      t,
		spinner:    s,
		outcome:    mon.Outcome(),
		width:      100,
	}
	for _, v := range list.Snapshot() {
		m.inputs = append(m.inputs, newInput(v))
	}
	m.inputs[0].Focus()
	m.refreshTable()
	return m
}

func newInput(value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = "Company name"
	in.CharLimit = 100
	in.Width = 40
	in.SetValue(value)
	return in
}

// Init starts the cursor blink
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshTable()
		return m, nil

	case fetchDoneMsg:
		m.inFlight--
		// the monitor decides which of concurrent fetches wins
		m.outcome = m.monitor.Outcome()
		if m.inFlight > 0 && domain.StateOf(m.outcome) == domain.StateLoading {
			m.outcome = domain.Loading{}
		}
		m.refreshTable()
		return m, nil

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleFocus()
		return m, nil
	case "enter":
		if m.focus == FocusInputs {
			return m, m.fetch(false)
		}
	case "ctrl+r":
		return m, m.fetch(true)
	case "ctrl+x":
		m.monitor.Reset()
		m.outcome = m.monitor.Outcome()
		m.status = ""
		m.refreshTable()
		return m, nil
	}

	if m.focus == FocusTable {
		if key, ok := sortKeys[msg.String()]; ok {
			m.presenter.Click(key)
			m.refreshTable()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+n":
		m.addRow()
		return m, nil
	case "ctrl+d":
		m.removeRow()
		return m, nil
	case "up", "shift+tab":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	}
	return m.updateFocused(msg)
}

// updateFocused passes msg to the focused input and stores the typed value
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus != FocusInputs {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
	if err := m.companies.Update(m.cursor, m.inputs[m.cursor].Value()); err != nil {
		m.status = err.Error()
	}
	return m, cmd
}

// fetch starts a fetch of the current rows, it runs off the update loop
func (m *Model) fetch(force bool) tea.Cmd {
	rows := m.companies.Snapshot()
	m.inFlight++
	m.outcome = domain.Loading{}
	m.status = ""
	ctx, mon := m.ctx, m.monitor
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		mon.FetchNews(ctx, rows, force)
		return fetchDoneMsg{}
	})
}

func (m *Model) addRow() {
	m.companies.Add()
	m.inputs = append(m.inputs, newInput(""))
	m.setCursor(len(m.inputs) - 1)
	m.status = ""
}

func (m *Model) removeRow() {
	if err := m.companies.Remove(m.cursor); err != nil {
		m.status = err.Error()
		return
	}
	m.inputs = append(m.inputs[:m.cursor], m.inputs[m.cursor+1:]...)
	if m.cursor >= len(m.inputs) {
		m.cursor = len(m.inputs) - 1
	}
	m.setCursor(m.cursor)
	m.status = ""
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.inputs) {
		return
	}
	m.setCursor(next)
}

func (m *Model) setCursor(idx int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.cursor = idx
	if m.focus == FocusInputs {
		m.inputs[idx].Focus()
	}
}

func (m *Model) toggleFocus() {
	if m.focus == FocusInputs {
		m.focus = FocusTable
		m.inputs[m.cursor].Blur()
		m.table.Focus()
		return
	}
	m.focus = FocusInputs
	m.table.Blur()
	m.inputs[m.cursor].Focus()
}

// refreshTable rebuilds table columns and rows from the outcome and the current sort
func (m *Model) refreshTable() {
	spec := m.presenter.Spec()
	dateW, companyW, sentimentW := 14, 18, 13
	summaryW := m.width - dateW - companyW - sentimentW - 12
	if summaryW < 20 {
		summaryW = 20
	}
	widths := map[domain.SortKey]int{
		domain.SortByDate: dateW, domain.SortByCompany: companyW,
		domain.SortBySummary: summaryW, domain.SortBySentiment: sentimentW,
	}

	cols := make([]table.Column, 0, len(domain.SortKeys))
	for i, key := range domain.SortKeys {
		title := fmt.Sprintf("%d %s", i+1, columnTitle(key))
		if key == spec.Key {
			title += map[domain.Direction]string{domain.Ascending: " ▲", domain.Descending: " ▼"}[spec.Direction]
		}
		// the table truncates titles to the column width, keep the sort arrow visible
		cols = append(cols, table.Column{Title: title, Width: max(widths[key], lipgloss.Width(title))})
	}

	var rows []table.Row
	if res, ok := m.outcome.(domain.Succeeded); ok {
		for _, r := range present.Rows(m.presenter.Sorted(res.Items), m.dateFormat) {
			company := r.Company
			if r.Cached {
				company += " *"
			}
			rows = append(rows, table.Row{r.Date, company, r.Summary, r.Sentiment})
		}
	}

	// rows must match column count, clear them before changing columns
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if m.height > 0 {
		h := m.height - len(m.inputs) - 12
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
	}
}

func columnTitle(key domain.SortKey) string {
	s := string(key)
	return strings.ToUpper(s[:1]) + s[1:]
}

// View renders the screen
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Company News Monitor"))
	b.WriteString("\n\n")

	inputs := make([]string, 0, len(m.inputs))
	for i, in := range m.inputs {
		prefix := "  "
		if i == m.cursor && m.focus == FocusInputs {
			prefix = cursorStyle.Render("> ")
		}
		inputs = append(inputs, prefix+in.View())
	}
	inputsPanel := panelStyle
	if m.focus == FocusInputs {
		inputsPanel = focusedPanelStyle
	}
	b.WriteString(inputsPanel.Render(lipgloss.JoinVertical(lipgloss.Left, inputs...)))
	b.WriteString("\n")

	if !m.companies.HasCompanies() {
		b.WriteString(noticeStyle.Render("enter at least one company to fetch news"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	switch o := m.outcome.(type) {
	case domain.Loading:
		b.WriteString(fmt.Sprintf("%s Fetching news...\n", m.spinner.View()))
	case domain.Failed:
		b.WriteString(errorStyle.Render(o.Message))
		b.WriteString("\n")
	case domain.Succeeded:
		if len(o.Items) == 0 {
			b.WriteString(noticeStyle.Render(o.Notice))
			b.WriteString("\n")
			break
		}
		tablePanel := panelStyle
		if m.focus == FocusTable {
			tablePanel = focusedPanelStyle
		}
		b.WriteString(tablePanel.Render(m.table.View()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) help() string {
	if m.focus == FocusTable {
		return "1-4 sort • ↑/↓ scroll • tab inputs • ctrl+r refresh • ctrl+x reset • ctrl+c quit"
	}
	return "enter fetch • ctrl+r force refresh • ctrl+n add • ctrl+d remove • ↑/↓ move • tab results • ctrl+x reset • ctrl+c quit"
}

// Run starts the program and blocks until the user quits or ctx is canceled
func Run(ctx context.Context, mon Monitor, list *companies.List, dateFormat string) error {
	p := tea.NewProgram(New(ctx, mon, list, dateFormat), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
