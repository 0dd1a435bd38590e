// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tro/internal/resolve"
)

type promptModel struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		// "q" stays typable here, unlike in the menu bindings.
		case keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		case key.Matches(keyMsg, DefaultKeyMap.Enter):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.label))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter to confirm · esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// PromptLine asks the user for a single line of text. Returns
// resolve.ErrAborted if the prompt is cancelled, and an error for an
// empty submission.
func PromptLine(label, placeholder string) (string, error) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()
	input.CharLimit = 256
	input.Width = 50

	m := promptModel{label: label, input: input}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("text prompt failed: %w", err)
	}

	result := final.(promptModel)
	if result.aborted || !result.done {
		return "", resolve.ErrAborted
	}

	value := strings.TrimSpace(result.input.Value())
	if value == "" {
		return "", fmt.Errorf("empty input")
	}
	return value, nil
}
