package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tgienger/tdm/internal/models"
	"github.com/tgienger/tdm/internal/store"
	"github.com/tgienger/tdm/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewStartup View = iota
	ViewTasks
)

// Outcome says why the program exited.
type Outcome int

const (
	// OutcomeQuit is a plain exit.
	OutcomeQuit Outcome = iota
	// OutcomeText means the user asked for the text front end; the
	// caller should hand the collection over and keep going.
	OutcomeText
)

type App struct {
	store       *store.Store
	log         *log.Logger
	currentView View
	startup     *views.StartupView
	taskList    *views.TaskListView
	tasks       []models.Task
	notice      string
	skipStartup bool
	outcome     Outcome
	width       int
	height      int
}

// NewApp wires the two views over a loaded collection. skipStartup
// goes straight to the task view, bypassing the chooser. notice is
// shown on the task view's status line (e.g. a load warning).
func NewApp(st *store.Store, logger *log.Logger, tasks []models.Task, skipStartup bool, notice string) *App {
	return &App{
		store:       st,
		log:         logger,
		currentView: ViewStartup,
		startup:     views.NewStartupView(),
		tasks:       tasks,
		notice:      notice,
		skipStartup: skipStartup,
	}
}

// Outcome reports how the program ended.
func (a *App) Outcome() Outcome {
	return a.outcome
}

// Tasks returns the collection as the windowed front end last saw it,
// so the text front end can pick up where it left off.
func (a *App) Tasks() []models.Task {
	if a.taskList != nil {
		return a.taskList.Tasks()
	}
	return a.tasks
}

func (a *App) Init() tea.Cmd {
	if a.skipStartup {
		return a.openTasks()
	}
	return a.startup.Init()
}

func (a *App) openTasks() tea.Cmd {
	a.currentView = ViewTasks
	a.taskList = views.NewTaskListView(a.store, a.log, a.tasks, a.notice)

	// Initialize task list with window size
	return tea.Batch(
		a.taskList.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update the startup view size since it persists
		a.startup.Update(msg)

	case views.FrontEndChosen:
		if msg.Choice == views.FrontEndText {
			a.outcome = OutcomeText
			return a, tea.Quit
		}
		return a, a.openTasks()

	case views.SwitchToText:
		a.outcome = OutcomeText
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewStartup:
		_, cmd = a.startup.Update(msg)
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewTasks:
		if a.taskList != nil {
			return a.taskList.View()
		}
	}
	return a.startup.View()
}
