package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specifytools/internal/application"
	"specifytools/internal/config"
)

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestConfigureModel_Submit(t *testing.T) {
	var m tea.Model = NewConfigureModel(config.Database{}, "specify_config.json")

	m = typeText(m, "specify")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "root")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, " s3cret ")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	db, ok := m.(*ConfigureModel).Result()
	require.True(t, ok)
	assert.Equal(t, "specify", db.Database)
	assert.Equal(t, "root", db.User)
	assert.Equal(t, " s3cret ", db.Password, "passwords are not trimmed")
	assert.Equal(t, config.DefaultHost, db.Host)
	assert.Equal(t, config.DriverMySQL, db.Driver)
}

func TestConfigureModel_RequiresDatabase(t *testing.T) {
	var m tea.Model = NewConfigureModel(config.Database{}, "specify_config.json")

	m, _ = press(m, tea.KeyEnter)

	cm := m.(*ConfigureModel)
	_, ok := cm.Result()
	assert.False(t, ok)
	assert.True(t, cm.MessageErr)
	assert.Equal(t, "database: database name is required", cm.Message)
	assert.Equal(t, 0, cm.form.FocusedField)
}

func TestConfigureModel_Cancel(t *testing.T) {
	var m tea.Model = NewConfigureModel(config.Database{Database: "specify", User: "root"}, "x.json")

	m, cmd := press(m, tea.KeyEsc)

	cm := m.(*ConfigureModel)
	assert.NotNil(t, cmd)
	assert.True(t, cm.Canceled)
	_, ok := cm.Result()
	assert.False(t, ok)
}

func TestConfigureModel_KeepsDriverFromDefaults(t *testing.T) {
	var m tea.Model = NewConfigureModel(config.Database{Driver: config.DriverPostgres, Database: "specify", User: "sp"}, "x.json")

	m, _ = press(m, tea.KeyEnter)

	db, ok := m.(*ConfigureModel).Result()
	require.True(t, ok)
	assert.Equal(t, config.DriverPostgres, db.Driver)
}

func TestApplyConfirmModel(t *testing.T) {
	stats := application.RunStats{AcceptedIntents: 3, SynonymIntents: 2}

	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{"yes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, true},
		{"no", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewApplyConfirmModel(stats, "specify")

			_, cmd := m.Update(tt.key)

			assert.NotNil(t, cmd)
			assert.Equal(t, tt.want, m.Confirmed())
		})
	}
}

func TestApplyConfirmModel_View(t *testing.T) {
	m := NewApplyConfirmModel(application.RunStats{AcceptedIntents: 3, SynonymIntents: 2}, "specify")

	view := m.View()

	assert.Contains(t, view, "accepted records as accepted taxa")
	assert.Contains(t, view, "Synonymizing")
	assert.Contains(t, view, "specify")
}
