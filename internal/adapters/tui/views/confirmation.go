package views

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"specifytools/internal/adapters/tui/styles"
	"specifytools/internal/application"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "ctrl+c", "q"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ApplyConfirmModel shows what an apply run will change and waits for y/n
type ApplyConfirmModel struct {
	ViewState
	Stats    application.RunStats
	Database string
	Keys     ConfirmKeyMap
}

// NewApplyConfirmModel creates a confirmation for an apply run against database
func NewApplyConfirmModel(stats application.RunStats, database string) *ApplyConfirmModel {
	return &ApplyConfirmModel{
		Stats:    stats,
		Database: database,
		Keys:     DefaultConfirmKeys,
	}
}

// Init initializes the view
func (m *ApplyConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ApplyConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Confirm):
			m.Submitted = true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Cancel):
			m.Canceled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Confirmed reports whether the operator pressed y
func (m *ApplyConfirmModel) Confirmed() bool {
	return m.Submitted && !m.Canceled
}

// View renders the summary and prompt
func (m *ApplyConfirmModel) View() string {
	return NewViewBuilder().
		Title("Apply synonymy to "+m.Database).
		Line(RenderLabelValue("Species list rows", styles.Count.Render(strconv.Itoa(m.Stats.SourceRecords)))).
		Line(RenderLabelValue("Taxon rows", styles.Count.Render(strconv.Itoa(m.Stats.AuthorityRecords)))).
		BlankLine().
		Line(RenderCountLine("Setting", m.Stats.AcceptedIntents, "accepted records as accepted taxa")).
		Line(RenderCountLine("Synonymizing", m.Stats.SynonymIntents, "records")).
		BlankLine().
		Line(styles.WarningMsg.Render("Each statement commits on its own. A failure stops the run without undoing earlier statements.")).
		BlankLine().
		Raw(RenderHelpLine(m.Keys.Confirm, m.Keys.Cancel)).
		String()
}
