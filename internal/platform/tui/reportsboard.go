package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arcade-cab/whackapirate/internal/storage"
)

// Reports screen layout constants
const (
	maxReportRows = 200 // Max journal entries to load
)

// ReportsKeyMap defines the key bindings for the delivery journal screen.
type ReportsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Reload  key.Binding
	Pending key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReportsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pending, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReportsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Pending, k.Reload, k.Quit},
	}
}

// DefaultReportsKeyMap returns default key bindings.
func DefaultReportsKeyMap() ReportsKeyMap {
	return ReportsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Pending: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle pending only"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReportsModel is the Bubble Tea model for browsing the report delivery
// journal.
type ReportsModel struct {
	store       *storage.Store
	entries     []storage.DeliveryEntry
	table       table.Model
	help        help.Model
	keys        ReportsKeyMap
	width       int
	height      int
	pendingOnly bool
	quitting    bool
}

// NewReportsModel creates a new delivery journal model.
func NewReportsModel(store *storage.Store, width, height int) ReportsModel {
	h := help.New()
	h.ShowAll = false

	m := ReportsModel{
		store:  store,
		keys:   DefaultReportsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadEntries()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReportsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Outcome", Width: 8},
		{Title: "Sent", Width: 5},
		{Title: "Tries", Width: 5},
		{Title: "When", Width: 14},
		{Title: "Error", Width: 24},
	}

	if extra := m.width - 4 - 67; extra > 0 {
		columns[6].Width += extra
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEntries loads journal entries, honoring the pending-only filter.
func (m *ReportsModel) loadEntries() {
	if m.store == nil {
		m.entries = nil
		m.updateTableRows()
		return
	}

	var (
		entries []storage.DeliveryEntry
		err     error
	)
	if m.pendingOnly {
		entries, err = m.store.Undelivered(maxReportRows)
	} else {
		entries, err = m.store.Recent(maxReportRows)
	}
	if err != nil {
		m.entries = nil
	} else {
		m.entries = entries
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (m *ReportsModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		sent := "no"
		if e.Delivered {
			sent = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID),
			fmt.Sprintf("%d", e.Score),
			e.Outcome,
			sent,
			fmt.Sprintf("%d", e.Attempts),
			e.CreatedAt.Format("Jan 02 15:04"),
			e.Error,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the reports model.
func (m ReportsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reports screen.
func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reload):
			m.loadEntries()
			return m, nil

		case key.Matches(msg, m.keys.Pending):
			m.pendingOnly = !m.pendingOnly
			m.loadEntries()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the reports screen.
func (m ReportsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "REPORT DELIVERIES"
	if m.pendingOnly {
		title = "REPORT DELIVERIES (pending only)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("Journal is empty.\nFinish a match with reporting enabled to record deliveries."))
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunReports runs the interactive delivery journal screen.
func RunReports(store *storage.Store, width, height int) error {
	model := NewReportsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
