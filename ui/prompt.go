package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nydauron/reefscout/record"
)

// Control is one focusable input on a page. Controls write through to the
// store as the scout types and re-read the record after every change.
type Control interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Sync(record.MatchRecord)
	Update(tea.Msg) tea.Cmd
	View(Styles) string
}

type InputData struct {
	Question     string
	DefaultValue string
	CharLimit    int

	// Get reads the field from the record.
	Get func(record.MatchRecord) string
	// Set writes the typed value; the stage normalizes it.
	Set func(string)
}

// Prompt is a single-line text field.
type Prompt struct {
	Input textinput.Model
	Data  InputData
}

func NewPrompt(inputData InputData) *Prompt {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = inputData.DefaultValue
	if inputData.CharLimit > 0 {
		input.CharLimit = inputData.CharLimit
	}
	return &Prompt{Data: inputData, Input: input}
}

func (m *Prompt) Focus() tea.Cmd { return m.Input.Focus() }

func (m *Prompt) Blur() { m.Input.Blur() }

func (m *Prompt) Focused() bool { return m.Input.Focused() }

func (m *Prompt) GetValue() string {
	if m.Input.Value() != "" {
		return m.Input.Value()
	}
	return m.Data.DefaultValue
}

// Sync shows the stored value, which may differ from what was typed after
// filtering or a schedule lookup.
func (m *Prompt) Sync(r record.MatchRecord) {
	if m.Data.Get == nil {
		return
	}
	if v := m.Data.Get(r); v != m.Input.Value() {
		m.Input.SetValue(v)
	}
}

func (m *Prompt) Update(msg tea.Msg) tea.Cmd {
	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Data.Set != nil && m.Input.Value() != before {
		m.Data.Set(m.Input.Value())
	}
	return cmd
}

func (m *Prompt) View(s Styles) string {
	label := s.Label
	if m.Focused() {
		label = s.Focused
	}
	return label.Render(m.Data.Question) + m.Input.View()
}
