package ui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tgienger/tdm/internal/models"
	"github.com/tgienger/tdm/internal/store"
	"github.com/tgienger/tdm/internal/ui/views"
)

func newTestApp(t *testing.T, tasks []models.Task, skipStartup bool) *App {
	t.Helper()
	st := store.Open(filepath.Join(t.TempDir(), "tasks.json"), log.New(io.Discard))
	return NewApp(st, log.New(io.Discard), tasks, skipStartup, "")
}

func seedTask(id int, title string) models.Task {
	return models.Task{
		ID:        id,
		Title:     title,
		Category:  models.DefaultCategory,
		Priority:  models.DefaultPriority,
		CreatedAt: "2026-08-20 09:00",
	}
}

func TestStartupIsFirstView(t *testing.T) {
	app := newTestApp(t, nil, false)
	app.Init()

	if app.currentView != ViewStartup {
		t.Errorf("currentView = %v, want startup", app.currentView)
	}
	if app.Outcome() != OutcomeQuit {
		t.Errorf("outcome = %v, want quit", app.Outcome())
	}
}

func TestSkipStartupOpensTasks(t *testing.T) {
	app := newTestApp(t, []models.Task{seedTask(1, "x")}, true)
	app.Init()

	if app.currentView != ViewTasks || app.taskList == nil {
		t.Error("task view should open directly")
	}
}

func TestChoosingWindowedOpensTasks(t *testing.T) {
	app := newTestApp(t, nil, false)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := app.Update(views.FrontEndChosen{Choice: views.FrontEndWindowed})
	if app.currentView != ViewTasks || app.taskList == nil {
		t.Fatal("task view not opened")
	}

	// the stored window size is replayed into the fresh view
	if cmd == nil {
		t.Fatal("expected a size replay command")
	}
	ws, ok := cmd().(tea.WindowSizeMsg)
	if !ok {
		t.Fatalf("got %T, want tea.WindowSizeMsg", cmd())
	}
	if ws.Width != 100 || ws.Height != 40 {
		t.Errorf("got %dx%d, want 100x40", ws.Width, ws.Height)
	}
}

func TestChoosingTextQuitsForHandoff(t *testing.T) {
	app := newTestApp(t, nil, false)
	app.Init()

	_, cmd := app.Update(views.FrontEndChosen{Choice: views.FrontEndText})
	if app.Outcome() != OutcomeText {
		t.Errorf("outcome = %v, want text", app.Outcome())
	}
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestSwitchToTextFromTaskView(t *testing.T) {
	app := newTestApp(t, nil, true)
	app.Init()

	_, cmd := app.Update(views.SwitchToText{})
	if app.Outcome() != OutcomeText {
		t.Errorf("outcome = %v, want text", app.Outcome())
	}
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want tea.QuitMsg", cmd())
	}
}

func TestTasksFollowsTaskView(t *testing.T) {
	app := newTestApp(t, []models.Task{seedTask(1, "Existing")}, true)
	if len(app.Tasks()) != 1 {
		t.Fatalf("got %d tasks before init", len(app.Tasks()))
	}
	app.Init()

	// add a task through the windowed view, then read it back
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("New one")})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	tasks := app.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[1].Title != "New one" {
		t.Errorf("got %+v", tasks[1])
	}
}

func TestViewBeforeTasksOpenShowsStartup(t *testing.T) {
	app := newTestApp(t, nil, false)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if app.View() == "" {
		t.Error("startup view should render")
	}
}
