package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"specifytools/internal/application"
	"specifytools/internal/config"
)

// Configure form field names, matching the config file keys
const (
	fieldDatabase = "database"
	fieldUser     = "user"
	fieldPassword = "password"
	fieldHost     = "host"
)

// ConfigureModel asks for the Specify connection settings
type ConfigureModel struct {
	ViewState
	form  *InputForm
	base  config.Database
	path  string
	saved *config.Database
}

// NewConfigureModel creates the form, prefilled from defaults.
// path is shown so the operator knows where the settings go.
func NewConfigureModel(defaults config.Database, path string) *ConfigureModel {
	if defaults.Host == "" {
		defaults.Host = config.DefaultHost
	}
	return &ConfigureModel{
		base: defaults,
		path: path,
		form: NewInputForm(
			NewInputField(fieldDatabase, "Database name", "specify", defaults.Database),
			NewInputField(fieldUser, "Username", "root", defaults.User),
			NewSecretField(fieldPassword, "Password", defaults.Password),
			NewInputField(fieldHost, "Host address", config.DefaultHost, defaults.Host),
		),
	}
}

// Init starts the cursor blinking
func (m *ConfigureModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the configure view
func (m *ConfigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			m.Canceled = true
			return m, tea.Quit
		case key.Matches(msg, m.form.Keys.Submit):
			return m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *ConfigureModel) submit() (tea.Model, tea.Cmd) {
	for _, name := range []string{fieldDatabase, fieldUser, fieldHost} {
		if err := application.ValidateRequired(name, m.form.Value(name)); err != nil {
			m.SetMessage(err.Error(), true)
			m.form.FocusByName(name)
			return m, nil
		}
	}

	db := m.base
	db.Database = m.form.Value(fieldDatabase)
	db.User = m.form.Value(fieldUser)
	db.Password = m.form.RawValue(fieldPassword)
	db.Host = m.form.Value(fieldHost)
	if db.Driver == "" {
		db.Driver = config.DefaultDriver
	}

	m.saved = &db
	m.Submitted = true
	return m, tea.Quit
}

// Result returns the entered settings; ok is false when the form was canceled
func (m *ConfigureModel) Result() (*config.Database, bool) {
	if !m.Submitted || m.saved == nil {
		return nil, false
	}
	return m.saved, true
}

// View renders the form
func (m *ConfigureModel) View() string {
	v := NewViewBuilder().
		Title("Specify database connection").
		Subtitle("Settings are saved to " + m.path)

	for i := range m.form.Fields {
		v.Line(m.form.RenderField(i))
	}
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Raw(m.form.RenderHelp())
	return v.String()
}
