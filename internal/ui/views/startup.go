package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/tdm/internal/ui/keys"
	"github.com/tgienger/tdm/internal/ui/styles"
)

// FrontEnd identifies one of the two ways to run the app.
type FrontEnd int

const (
	FrontEndWindowed FrontEnd = iota
	FrontEndText
)

// FrontEndChosen is emitted when the user picks a front end on the
// startup screen.
type FrontEndChosen struct {
	Choice FrontEnd
}

// StartupView is the first screen: the logo, a tagline, and a choice
// between the windowed and the text front end.
type StartupView struct {
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	focusIdx int // 0 = windowed, 1 = text
}

func NewStartupView() *StartupView {
	return &StartupView{
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *StartupView) Init() tea.Cmd {
	return nil
}

func (v *StartupView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Left), key.Matches(msg, v.keys.Right),
			key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.ShiftTab):
			// Two buttons, so every direction is a toggle.
			v.focusIdx = (v.focusIdx + 1) % 2

		case key.Matches(msg, v.keys.Enter):
			choice := FrontEndWindowed
			if v.focusIdx == 1 {
				choice = FrontEndText
			}
			return v, func() tea.Msg {
				return FrontEndChosen{Choice: choice}
			}
		}
	}

	return v, nil
}

func (v *StartupView) View() string {
	s := v.styles

	logo := s.Logo.Render(styles.AppLogo)
	tagline := s.TitleMuted.Render("Choose how you want to get things done.")

	windowed := s.Button.Render("Windowed")
	text := s.Button.Render("Text")
	if v.focusIdx == 0 {
		windowed = s.ButtonFocused.Render("Windowed")
	} else {
		text = s.ButtonFocused.Render("Text")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, windowed, "  ", text)

	help := s.Help.Render("tab: switch • enter: choose • q: quit")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		tagline,
		"",
		buttons,
		"",
		help,
	)

	contentWidth := styles.ContentWidth(v.width)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
