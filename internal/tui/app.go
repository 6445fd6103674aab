package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/vino/internal/config"
	"github.com/jeanpaul/vino/internal/rating"
)

type state int

const (
	stateMenu state = iota
	stateAddName
	stateAddScore
	stateList
	stateDelete
)

// Model is the root bubbletea model: a small state machine between the
// menu, the add form, the listing and the delete prompt.
type Model struct {
	cfg *config.Config
	svc *rating.Service

	state state
	menu  list.Model
	input textinput.Model

	// Snapshot backing the current listing. Delete numbers refer to it,
	// but the service re-checks them against the live collection.
	ratings []rating.Rating

	pendingName string
	flash       string // confirmation shown above the menu
	errMsg      string // inline prompt error, cleared on next input
	fatal       error  // store corruption; quit and let main report it

	width, height int
}

// NewModel builds the interactive app over a configured service.
func NewModel(cfg *config.Config, svc *rating.Service) Model {
	ApplyTheme(cfg.Theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		cfg:   cfg,
		svc:   svc,
		menu:  NewMenu(),
		input: ti,
	}
}

// Err reports the unrecoverable store error that ended the session, if
// any. main uses it to pick the exit code.
func (m Model) Err() error { return m.fatal }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateAddName, stateAddScore:
			return m.updateAdd(msg)
		case stateList:
			// Any key returns to the menu.
			m.state = stateMenu
			return m, nil
		case stateDelete:
			return m.updateDelete(msg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		selected, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.flash = ""
		m.errMsg = ""
		switch selected.action {
		case ActionAdd:
			m.state = stateAddName
			m.pendingName = ""
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case ActionView:
			return m.loadListing(stateList)
		case ActionDelete:
			return m.loadListing(stateDelete)
		case ActionQuit:
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// loadListing fetches a fresh snapshot for the view/delete screens.
func (m Model) loadListing(next state) (tea.Model, tea.Cmd) {
	ratings, err := m.svc.ListRatings()
	if err != nil {
		var corrupt *rating.CorruptError
		if errors.As(err, &corrupt) {
			m.fatal = err
			return m, tea.Quit
		}
		m.flash = ""
		m.errMsg = err.Error()
		return m, nil
	}
	m.ratings = ratings
	if next == stateDelete && len(ratings) == 0 {
		m.flash = "No ratings yet. Nothing to delete."
		m.state = stateMenu
		return m, nil
	}
	m.state = next
	if next == stateDelete {
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.errMsg = ""
		return m, nil
	case "enter":
		if m.state == stateAddName {
			name, err := rating.ParseName(m.input.Value())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.pendingName = name
			m.errMsg = ""
			m.input.SetValue("")
			m.state = stateAddScore
			return m, nil
		}

		added, err := m.svc.AddRating(m.pendingName, m.input.Value())
		if err != nil {
			var corrupt *rating.CorruptError
			if errors.As(err, &corrupt) {
				m.fatal = err
				return m, tea.Quit
			}
			m.errMsg = err.Error()
			return m, nil
		}
		m.flash = fmt.Sprintf("Added: %s — %s/10", added.Wine, formatScore(added.Score))
		m.errMsg = ""
		m.state = stateMenu
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.errMsg = ""
		return m, nil
	case "enter":
		sel, err := rating.ParseSelection(m.input.Value())
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if sel.Cancelled {
			m.flash = "Cancelled."
			m.errMsg = ""
			m.state = stateMenu
			return m, nil
		}

		removed, err := m.svc.DeleteRating(sel.Index)
		if err != nil {
			var corrupt *rating.CorruptError
			if errors.As(err, &corrupt) {
				m.fatal = err
				return m, tea.Quit
			}
			m.errMsg = err.Error()
			m.input.SetValue("")
			return m, nil
		}
		m.flash = fmt.Sprintf("Deleted: %s — %s/10", removed.Wine, formatScore(removed.Score))
		m.errMsg = ""
		m.state = stateMenu
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(BannerStyle.Render(Banner))
	b.WriteString("\n")

	switch m.state {
	case stateMenu:
		if m.flash != "" {
			b.WriteString("  " + SuccessStyle.Render(m.flash) + "\n\n")
		}
		if m.errMsg != "" {
			b.WriteString("  " + ErrorStyle.Render(m.errMsg) + "\n\n")
		}
		b.WriteString(MenuBoxStyle.Render(m.menu.View()))
		b.WriteString("\n" + HelpStyle.Render("  ↑/↓: navigate • enter: select • q: quit"))

	case stateAddName:
		b.WriteString("  " + TitleStyle.Render("Add a rating") + "\n\n")
		b.WriteString("  " + PromptStyle.Render("Wine name:") + "\n")
		b.WriteString(InputBorderStyle.Render(m.input.View()) + "\n")
		if m.errMsg != "" {
			b.WriteString("  " + ErrorStyle.Render(m.errMsg) + "\n")
		}
		b.WriteString(HelpStyle.Render("  enter: next • esc: back"))

	case stateAddScore:
		b.WriteString("  " + TitleStyle.Render("Add a rating") + "\n\n")
		b.WriteString("  " + RowNameStyle.Render(m.pendingName) + "\n\n")
		b.WriteString("  " + PromptStyle.Render("Score (0–10, one decimal e.g. 7.5):") + "\n")
		b.WriteString(InputBorderStyle.Render(m.input.View()) + "\n")
		if m.errMsg != "" {
			b.WriteString("  " + ErrorStyle.Render(m.errMsg) + "\n")
		}
		b.WriteString(HelpStyle.Render("  enter: save • esc: back"))

	case stateList:
		b.WriteString("  " + TitleStyle.Render("Your ratings") + "\n\n")
		b.WriteString(m.renderRows())
		b.WriteString("\n" + HelpStyle.Render("  any key: back"))

	case stateDelete:
		b.WriteString("  " + TitleStyle.Render("Delete a rating") + "\n\n")
		b.WriteString(m.renderRows())
		b.WriteString("\n  " + PromptStyle.Render(fmt.Sprintf("Number to delete (1–%d), or Enter to cancel:", len(m.ratings))) + "\n")
		b.WriteString(InputBorderStyle.Render(m.input.View()) + "\n")
		if m.errMsg != "" {
			b.WriteString("  " + ErrorStyle.Render(m.errMsg) + "\n")
		}
		b.WriteString(HelpStyle.Render("  enter: delete • esc: back"))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRows() string {
	if len(m.ratings) == 0 {
		return "  " + HelpStyle.Render("No ratings yet. Add one from the menu.") + "\n"
	}
	var b strings.Builder
	for i, r := range m.ratings {
		b.WriteString(fmt.Sprintf("  %s %s — %s %s\n",
			RowNumberStyle.Render(fmt.Sprintf("%d:", i+1)),
			RowNameStyle.Render(r.Wine),
			RowScoreStyle.Render(formatScore(r.Score)+"/10"),
			RowDateStyle.Render("("+r.CreatedAt.Format(m.cfg.TimeFormat)+")"),
		))
	}
	return b.String()
}

// formatScore renders a score the way it was entered: one decimal at
// most, no trailing zeros beyond it.
func formatScore(score float64) string {
	s := fmt.Sprintf("%.1f", score)
	return strings.TrimSuffix(s, ".0")
}
