package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Menu actions
const (
	ActionAdd    = "add"
	ActionView   = "view"
	ActionDelete = "delete"
	ActionQuit   = "quit"
)

type menuItem struct {
	title, desc, action string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewMenu builds the main menu list.
func NewMenu() list.Model {
	items := []list.Item{
		menuItem{title: "Add a rating", desc: "Record a wine and a 0–10 score", action: ActionAdd},
		menuItem{title: "View ratings", desc: "Show everything you have rated", action: ActionView},
		menuItem{title: "Delete a rating", desc: "Remove one entry by its number", action: ActionDelete},
		menuItem{title: "Quit", desc: "Exit vino", action: ActionQuit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Gold).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Burgundy).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Copy().Foreground(DimGray)

	l := list.New(items, d, 44, 14)
	l.Title = "What would you like to do?"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Cream).Bold(true).MarginLeft(2)

	return l
}
