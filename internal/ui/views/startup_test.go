package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStartupFocusToggles(t *testing.T) {
	v := NewStartupView()
	if v.focusIdx != 0 {
		t.Fatalf("initial focus = %d, want 0", v.focusIdx)
	}

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyTab},
		{Type: tea.KeyRight},
		{Type: tea.KeyLeft},
		{Type: tea.KeyShiftTab},
	} {
		before := v.focusIdx
		v.Update(msg)
		if v.focusIdx == before {
			t.Errorf("%s did not toggle focus", msg.String())
		}
	}
}

func TestStartupChoice(t *testing.T) {
	tests := []struct {
		name    string
		toggles int
		want    FrontEnd
	}{
		{"windowed", 0, FrontEndWindowed},
		{"text", 1, FrontEndText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewStartupView()
			for i := 0; i < tt.toggles; i++ {
				v.Update(tea.KeyMsg{Type: tea.KeyTab})
			}

			_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("enter should emit a choice")
			}
			chosen, ok := cmd().(FrontEndChosen)
			if !ok {
				t.Fatalf("got %T, want FrontEndChosen", cmd())
			}
			if chosen.Choice != tt.want {
				t.Errorf("got choice %v, want %v", chosen.Choice, tt.want)
			}
		})
	}
}

func TestStartupQuit(t *testing.T) {
	v := NewStartupView()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestStartupViewRenders(t *testing.T) {
	v := NewStartupView()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := v.View()
	for _, want := range []string{"Windowed", "Text", "enter: choose"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
