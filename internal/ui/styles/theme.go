package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),
}

// Current holds the active theme
var Current = TokyoNight

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// App container
	App lipgloss.Style

	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Logo block on the startup screen
	Logo lipgloss.Style

	// Task table
	TableHeader lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowDone     lipgloss.Style

	// Filter bar
	FilterBar     lipgloss.Style
	FilterLabel   lipgloss.Style
	FilterValue   lipgloss.Style
	FilterFocused lipgloss.Style

	// Dropdowns
	DropdownItem     lipgloss.Style
	DropdownSelected lipgloss.Style
	Dropdown         lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Input fields
	InputLabel   lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Modal dialogs
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	FormError   lipgloss.Style

	// Priority badges
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		App: lipgloss.NewStyle().
			Background(t.Background).
			Foreground(t.Foreground),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Logo: lipgloss.NewStyle().
			Foreground(t.Secondary),

		TableHeader: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),

		Row: lipgloss.NewStyle().
			Foreground(t.Foreground),

		RowSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Bold(true),

		RowDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		FilterLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		FilterValue: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		FilterFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		DropdownItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		DropdownSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		InputLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		FormError: lipgloss.NewStyle().
			Foreground(t.Error),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		PriorityMedium: lipgloss.NewStyle().
			Foreground(t.Warning),

		PriorityLow: lipgloss.NewStyle().
			Foreground(t.Success),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),
	}
}

// Priority returns the badge style for a canonical priority level.
func (s *Styles) Priority(level string) lipgloss.Style {
	switch level {
	case "high":
		return s.PriorityHigh
	case "low":
		return s.PriorityLow
	default:
		return s.PriorityMedium
	}
}

// AppLogo is the banner shown by the startup screen and the text front end.
const AppLogo = `
███████████    ███████    ██████████      ███████
░█░░░███░░░█  ███░░░░░███ ░░███░░░░███   ███░░░░░███
░   ░███  ░  ███     ░░███ ░███   ░░███ ███     ░░███
    ░███    ░███      ░███ ░███    ░███░███      ░███
    ░███    ░███      ░███ ░███    ░███░███      ░███
    ░███    ░░███     ███  ░███    ███ ░░███     ███
    █████    ░░░███████░   ██████████   ░░░███████░
   ░░░░░       ░░░░░░░    ░░░░░░░░░░      ░░░░░░░
`
