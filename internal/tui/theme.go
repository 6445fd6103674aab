package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Burgundy     = lipgloss.Color("#8C1C2C")
	DeepRed      = lipgloss.Color("#6E0E1E")
	Rose         = lipgloss.Color("#C95D6A")
	Gold         = lipgloss.Color("#C9A227")
	Cream        = lipgloss.Color("#F2E8DC")
	DimGray      = lipgloss.Color("#5a5a66")
	LightGray    = lipgloss.Color("#aaaaaa")
	White        = lipgloss.Color("#e0e0e0")
	ErrorRed     = lipgloss.Color("#FF4136")
	SuccessGreen = lipgloss.Color("#2ECC40")

	// Titles and headers
	TitleStyle = lipgloss.NewStyle().
			Foreground(Cream).
			Background(Burgundy).
			Bold(true).
			Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Burgundy).
			Bold(true)

	// List rows
	RowNumberStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	RowNameStyle = lipgloss.NewStyle().
			Foreground(White)

	RowScoreStyle = lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true)

	RowDateStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	// Prompts and input
	PromptStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	InputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DeepRed).
				Padding(0, 1)

	// Feedback
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorRed).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessGreen)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	// Menu popup
	MenuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Burgundy).
			Padding(1, 2)
)

const Banner = `
  ██╗   ██╗██╗███╗   ██╗ ██████╗
  ██║   ██║██║████╗  ██║██╔═══██╗
  ██║   ██║██║██╔██╗ ██║██║   ██║
  ╚██╗ ██╔╝██║██║╚██╗██║██║   ██║
   ╚████╔╝ ██║██║ ╚████║╚██████╔╝
    ╚═══╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝
`

// ApplyTheme swaps the primary color. Only a couple of palettes; the
// default is the burgundy one above.
func ApplyTheme(name string) {
	switch name {
	case "noir":
		primary := lipgloss.Color("#3a3a4e")
		TitleStyle = TitleStyle.Background(primary)
		BannerStyle = BannerStyle.Foreground(LightGray)
		MenuBoxStyle = MenuBoxStyle.BorderForeground(primary)
		InputBorderStyle = InputBorderStyle.BorderForeground(primary)
	case "burgundy":
		// default, nothing to do
	}
}
