// SPDX-License-Identifier: Apache-2.0

// Package ui implements the interactive terminal prompts: the
// disambiguation menu the resolver falls back to when several entities
// match a fragment, and a single-line text input. It holds no ranking
// logic; options are presented in the order given.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tro/internal/resolve"
)

type pickerModel struct {
	title   string
	options []string
	cursor  int
	chosen  int
	aborted bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.Home):
		m.cursor = 0
	case key.Matches(keyMsg, DefaultKeyMap.End):
		m.cursor = len(m.options) - 1
	case key.Matches(keyMsg, DefaultKeyMap.Enter):
		m.chosen = m.cursor
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(option))
		} else {
			b.WriteString("  ")
			b.WriteString(option)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerKeyStyle.Render("↑/↓"))
	b.WriteString(footerStyle.Render(" move · "))
	b.WriteString(footerKeyStyle.Render("enter"))
	b.WriteString(footerStyle.Render(" select · "))
	b.WriteString(footerKeyStyle.Render("esc"))
	b.WriteString(footerStyle.Render(" cancel"))
	b.WriteString("\n")

	return b.String()
}

// Picker is the interactive Chooser used by the CLI. The zero value is
// ready to use.
type Picker struct{}

var _ resolve.Chooser = Picker{}

// Choose runs the selection menu and returns the index of the chosen
// option, or resolve.ErrAborted if the user cancelled.
func (Picker) Choose(level resolve.Level, options []string) (int, error) {
	m := pickerModel{
		title:   fmt.Sprintf("More than one %s matches. Pick one:", level),
		options: options,
		chosen:  -1,
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return -1, fmt.Errorf("selection menu failed: %w", err)
	}

	result := final.(pickerModel)
	if result.aborted || result.chosen < 0 {
		return -1, resolve.ErrAborted
	}
	return result.chosen, nil
}
