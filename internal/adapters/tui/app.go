// Package tui holds the interactive screens of specify-synonymize: the
// connection form and the apply confirmation.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"specifytools/internal/adapters/tui/styles"
	"specifytools/internal/adapters/tui/views"
	"specifytools/internal/application"
	"specifytools/internal/config"
)

// RunConfigure shows the connection form and returns what was entered.
// A canceled form returns application.ErrCanceled.
func RunConfigure(defaults config.Database, path string, opts ...tea.ProgramOption) (*config.Database, error) {
	model := views.NewConfigureModel(defaults, path)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run configure form: %w", err)
	}

	db, ok := final.(*views.ConfigureModel).Result()
	if !ok {
		return nil, application.ErrCanceled
	}
	return db, nil
}

// ConfirmApply shows the pending changes and asks before anything is written
func ConfirmApply(stats application.RunStats, database string, opts ...tea.ProgramOption) (bool, error) {
	model := views.NewApplyConfirmModel(stats, database)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation: %w", err)
	}
	return final.(*views.ApplyConfirmModel).Confirmed(), nil
}

// Printer writes operator-facing lines with the shared styles
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Line prints an unstyled line
func (p *Printer) Line(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Success prints a line in the success style
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, styles.Success.Render(msg))
}

// Warn prints a line in the warning style
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, styles.WarningMsg.Render(msg))
}

// Label prints "label: value"
func (p *Printer) Label(label, value string) {
	fmt.Fprintln(p.w, views.RenderLabelValue(label, value))
}
