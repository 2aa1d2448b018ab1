package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nydauron/reefscout/stages"
)

// ProgressBar shows a spinner while the catalog loads and then the wizard's
// position through the stages.
type ProgressBar struct {
	enableSpinner bool
	progress      progress.Model
	spinner       spinner.Model
	label         string

	step stages.Step
	err  error
}

func NewProgressBar() ProgressBar {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	p := progress.New(progress.WithSolidFill(string(Lime)), progress.WithoutPercentage())
	p.Width = 30
	return ProgressBar{enableSpinner: true, progress: p, spinner: s}
}

func (m *ProgressBar) GetSpinnerInitTick() tea.Cmd {
	return m.spinner.Tick
}

func (m *ProgressBar) SetLabel(label string) {
	m.label = label
}

// SetLoading switches back to the spinner, e.g. for a catalog retry.
func (m *ProgressBar) SetLoading() {
	m.enableSpinner = true
	m.err = nil
}

func (m *ProgressBar) SetError(err error) {
	m.err = err
}

func (m *ProgressBar) SetStep(step stages.Step) {
	m.enableSpinner = false
	m.err = nil
	m.step = step
}

func (m ProgressBar) Percent() float64 {
	return float64(m.step+1) / float64(len(stages.Steps))
}

func (m ProgressBar) Update(msg tea.Msg) (ProgressBar, tea.Cmd) {
	if msg, ok := msg.(spinner.TickMsg); ok && m.enableSpinner && m.err == nil {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressBar) View() string {
	if m.err != nil {
		return fmt.Sprintf("%s ❌ %s", m.label, m.err.Error())
	}
	if m.enableSpinner {
		return fmt.Sprintf("%s %s", m.label, m.spinner.View())
	}
	return m.progress.ViewAs(m.Percent()) + fmt.Sprintf("  %d/%d %s", int(m.step)+1, len(stages.Steps), m.step)
}
