// SPDX-License-Identifier: Apache-2.0

// This file defines the keyboard bindings for the interactive prompts.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the selection menu.
type KeyMap struct {
	Up    key.Binding // Move cursor up
	Down  key.Binding // Move cursor down
	Home  key.Binding // Jump to top of list
	End   key.Binding // Jump to bottom of list
	Enter key.Binding // Confirm selection
	Quit  key.Binding // Cancel the prompt
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
