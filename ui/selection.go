package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nydauron/reefscout/record"
)

type SelectionOption struct {
	Key         string
	DisplayText string
}

// Selection is a radio group. Number keys pick an option directly and the
// arrow keys step through them.
type Selection struct {
	Question   string
	Selections []SelectionOption
	Get        func(record.MatchRecord) string
	Set        func(key string)

	selected      int
	focused       bool
	displayInline bool
}

func NewSelection(question string, options []SelectionOption, get func(record.MatchRecord) string, set func(string)) *Selection {
	return &Selection{
		Question:      question,
		Selections:    options,
		Get:           get,
		Set:           set,
		selected:      -1,
		displayInline: true,
	}
}

func (m *Selection) Focus() tea.Cmd {
	m.focused = true
	return nil
}

func (m *Selection) Blur() { m.focused = false }

func (m *Selection) Focused() bool { return m.focused }

// GetKey returns the selected key, or nil when nothing is selected.
func (m *Selection) GetKey() *string {
	if m.selected < 0 || m.selected >= len(m.Selections) {
		return nil
	}
	return &m.Selections[m.selected].Key
}

func (m *Selection) Sync(r record.MatchRecord) {
	if m.Get == nil {
		return
	}
	key := m.Get(r)
	m.selected = -1
	for i, s := range m.Selections {
		if s.Key == key {
			m.selected = i
		}
	}
}

func (m *Selection) choose(idx int) {
	if idx < 0 || idx >= len(m.Selections) || idx == m.selected {
		return
	}
	m.selected = idx
	if m.Set != nil {
		m.Set(m.Selections[idx].Key)
	}
}

func (m *Selection) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left":
		m.choose(max(0, m.selected-1))
	case "right", " ", "space":
		m.choose(min(len(m.Selections)-1, m.selected+1))
	default:
		if idx, err := strconv.Atoi(key.String()); err == nil {
			m.choose(idx - 1)
		}
	}
	return nil
}

func (m *Selection) View(s Styles) string {
	label := s.Label
	if m.focused {
		label = s.Focused
	}
	selectionStrArr := make([]string, len(m.Selections))
	for i, selection := range m.Selections {
		marker := " "
		if i == m.selected {
			marker = "x"
		}
		selectionStrArr[i] = fmt.Sprintf("%d[%s] %s", i+1, marker, selection.DisplayText)
	}
	sep := "\n"
	if m.displayInline {
		sep = " "
	}
	return label.Render(m.Question) + strings.Join(selectionStrArr, sep)
}

// OutcomePrompt asks whether the selected scoring attempt succeeded.
type OutcomePrompt struct {
	Label string
}

// Answer maps a key press to an outcome: y or 1 for scored, n or 2 for
// missed.
func (m OutcomePrompt) Answer(msg tea.KeyMsg) (record.Outcome, bool) {
	switch msg.String() {
	case "y", "Y", "1":
		return record.Scored, true
	case "n", "N", "2":
		return record.Missed, true
	}
	return 0, false
}

func (m OutcomePrompt) View(s Styles) string {
	return s.Focused.UnsetWidth().Render(m.Label+"?") + "  1[y] Success  2[n] Failure  esc Cancel"
}
