package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/desertthunder/liftlog/internal/tasks"
)

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	nextTab   key.Binding
	prevTab   key.Binding
	jumpTab   key.Binding
	nextField key.Binding
	prevField key.Binding
	cycle     key.Binding
	submit    key.Binding
	attach    key.Binding
	upload    key.Binding
	toggleAI  key.Binding
	clear     key.Binding
	refresh   key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextTab:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next tab")),
		prevTab:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev tab")),
		jumpTab:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump to tab")),
		nextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		cycle:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change lift")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log lift")),
		attach:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select file")),
		upload:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "upload")),
		toggleAI:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "toggle AI")),
		clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		refresh:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextTab, k.prevTab, k.jumpTab},
		{k.nextField, k.prevField, k.cycle, k.submit},
		{k.attach, k.upload, k.toggleAI, k.clear},
		{k.refresh, k.quit},
	}
}

// helpFor returns the bindings relevant on the given tab.
func (k keyMap) helpFor(tab tasks.Tab) []key.Binding {
	switch tab {
	case tasks.LogLiftTab:
		return []key.Binding{k.nextField, k.cycle, k.submit, k.nextTab, k.forceQuit}
	case tasks.UploadVideoTab:
		return []key.Binding{k.attach, k.upload, k.toggleAI, k.clear, k.nextTab, k.forceQuit}
	default:
		return []key.Binding{k.nextTab, k.jumpTab, k.refresh, k.quit}
	}
}
