package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tgienger/tdm/internal/cli"
	"github.com/tgienger/tdm/internal/config"
	"github.com/tgienger/tdm/internal/logging"
	"github.com/tgienger/tdm/internal/models"
	"github.com/tgienger/tdm/internal/store"
	"github.com/tgienger/tdm/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("tdm %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	// A broken config file falls back to the defaults
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	logger, closeLog := logging.New(cfg.LogFile, cfg.LogLevel)
	defer closeLog()
	logger.Info("starting", "version", version, "front_end", cfg.FrontEnd, "data_file", cfg.DataFile)

	st := store.Open(cfg.DataFile, logger)
	tasks, loadErr := st.Load()
	notice := ""
	if loadErr != nil {
		notice = "Warning: Could not read tasks file. Starting with an empty list."
		fmt.Fprintln(os.Stderr, notice)
		tasks = nil
	}

	switch cfg.FrontEnd {
	case config.FrontEndText:
		runText(st, logger, tasks)
	case config.FrontEndWindowed:
		runWindowed(st, logger, tasks, true, notice)
	default:
		// Asking needs a terminal to ask on
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			runText(st, logger, tasks)
			return
		}
		runWindowed(st, logger, tasks, false, notice)
	}
}

func runWindowed(st *store.Store, logger *log.Logger, tasks []models.Task, skipStartup bool, notice string) {
	app := ui.NewApp(st, logger, tasks, skipStartup, notice)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}

	// The windowed side hands the collection over when the user
	// switches to the text front end
	if app.Outcome() == ui.OutcomeText {
		runText(st, logger, app.Tasks())
	}
}

func runText(st *store.Store, logger *log.Logger, tasks []models.Task) {
	cli.New(st, logger, tasks, os.Stdin, os.Stdout).Run()
}
