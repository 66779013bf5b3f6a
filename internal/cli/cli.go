// Package cli is the text front end: a numbered menu loop over the
// shared task collection, reading line-based input and saving through
// the store after every mutation.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tgienger/tdm/internal/models"
	"github.com/tgienger/tdm/internal/store"
	"github.com/tgienger/tdm/internal/ui/styles"
)

type CLI struct {
	store *store.Store
	log   *log.Logger
	in    *bufio.Reader
	out   io.Writer
	tasks []models.Task
	eof   bool

	styles    *styles.Styles
	section   lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	errText   lipgloss.Style
	bold      lipgloss.Style
	secondary lipgloss.Style
}

// New wires the text front end over an already loaded collection.
// Input and output are injected so sessions can be scripted.
func New(st *store.Store, logger *log.Logger, tasks []models.Task, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		store:     st,
		log:       logger,
		in:        bufio.NewReader(in),
		out:       out,
		tasks:     tasks,
		styles:    styles.NewStyles(),
		section:   lipgloss.NewStyle().Foreground(styles.Current.Accent),
		success:   lipgloss.NewStyle().Foreground(styles.Current.Success),
		warning:   lipgloss.NewStyle().Foreground(styles.Current.Warning),
		errText:   lipgloss.NewStyle().Foreground(styles.Current.Error),
		bold:      lipgloss.NewStyle().Bold(true),
		secondary: lipgloss.NewStyle().Foreground(styles.Current.Secondary),
	}
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Run executes the menu loop until exit. End of input behaves like
// the exit option: save and return, never crash.
func (c *CLI) Run() {
	c.log.Debug("text front end started", "tasks", len(c.tasks))

	c.printBanner()
	c.printSuite()
	c.println(c.section.Render("Welcome to the Command-Line To-Do List Manager!"))
	c.printReminders()

	for {
		c.printMenu()
		choice, ok := c.readLine("Select an option: ")
		if !ok {
			c.exit()
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.addTask()
		case "2":
			c.viewTasks()
		case "3":
			c.markCompleted()
		case "4":
			c.editTask()
		case "5":
			c.deleteTask()
		case "6":
			c.exit()
			return
		default:
			c.println(c.errText.Render("Invalid option. Please choose 1-6."))
		}

		c.printSuite()
	}
}

// persist writes the collection through the store. Failure is
// reported and logged; the in-memory collection stays as it is.
func (c *CLI) persist() {
	if err := c.store.Save(c.tasks); err != nil {
		c.log.Error("save failed", "file", c.store.Path(), "err", err)
		c.println(c.errText.Render(fmt.Sprintf("Error saving tasks: %v", err)))
	}
}

func (c *CLI) exit() {
	c.persist()
	c.println(c.success.Render("Changes saved. Goodbye!"))
}

func (c *CLI) addTask() {
	line, ok := c.readLine("Title: ")
	if !ok {
		return
	}
	title := strings.TrimSpace(line)
	if err := models.ValidateTitle(title); err != nil {
		c.println(c.errText.Render("Title cannot be empty."))
		return
	}

	desc, _ := c.readLine("Description: ")
	due := c.promptAddDueDate()
	category := c.promptOption("category", models.CategoryOptions, models.DefaultCategory, "")
	priority := c.promptOption("priority", models.PriorityLevels, models.DefaultPriority, "")

	task := models.NewTask(c.store.NextID(c.tasks), title, strings.TrimSpace(desc), category, priority)
	task.DueDate = due
	c.tasks = append(c.tasks, task)
	c.persist()
	c.println(c.success.Render(fmt.Sprintf("Task '%s' added.", task.Title)))
}

func (c *CLI) viewTasks() {
	c.println()
	c.println(c.section.Render("View Tasks:"))
	c.println("1. All tasks")
	c.println("2. Completed tasks")
	c.println("3. Pending tasks")
	c.println("4. Tasks due soon")
	choice, _ := c.readLine("Choose an option: ")

	// Anything unrecognized falls back to showing everything
	mode := models.FilterAll
	switch strings.TrimSpace(choice) {
	case "2":
		mode = models.FilterCompleted
	case "3":
		mode = models.FilterPending
	case "4":
		mode = models.FilterDueSoon
	}

	c.printTasks(models.FilterByMode(c.tasks, mode))
}

func (c *CLI) markCompleted() {
	idx := c.selectTask()
	if idx < 0 {
		return
	}
	c.tasks[idx].Completed = true
	c.persist()
	c.println(c.success.Render("Task marked as completed."))
}

func (c *CLI) deleteTask() {
	idx := c.selectTask()
	if idx < 0 {
		return
	}
	task := c.tasks[idx]

	confirm, _ := c.readLine(fmt.Sprintf("Delete task '%s'? (y/N): ", task.Title))
	if strings.ToLower(strings.TrimSpace(confirm)) == "y" {
		c.tasks = append(c.tasks[:idx], c.tasks[idx+1:]...)
		c.persist()
		c.println(c.success.Render("Task deleted."))
	} else {
		c.println(c.warning.Render("Deletion cancelled."))
	}
}

// editTask revises fields on a pending copy; nothing touches the
// collection until the user picks S.
func (c *CLI) editTask() {
	idx := c.selectTask()
	if idx < 0 {
		return
	}
	pending := c.tasks[idx]

	for {
		c.println()
		c.println(c.section.Render(fmt.Sprintf("Editing Task [%d]", pending.ID)))
		c.printf("1. Title: %s\n", pending.Title)
		c.printf("2. Description: %s\n", orLabel(pending.Description, "(empty)"))
		c.printf("3. Category: %s\n", pending.Category)
		c.printf("4. Priority: %s\n", pending.Priority)
		c.printf("5. Due date: %s\n", orLabel(pending.DueDate, "(none)"))
		c.println("S. Save changes")
		c.println("C. Cancel")

		choice, ok := c.readLine("Select an option: ")
		if !ok {
			c.println(c.warning.Render("Edit cancelled. No changes saved."))
			return
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1":
			line, _ := c.readLine("New title: ")
			if title := strings.TrimSpace(line); title != "" {
				pending.Title = title
			} else {
				c.println("Title unchanged.")
			}
		case "2":
			line, _ := c.readLine("New description: ")
			if desc := strings.TrimSpace(line); desc != "" {
				pending.Description = desc
			} else {
				c.println("Description unchanged.")
			}
		case "3":
			pending.Category = c.promptOption("category", models.CategoryOptions, models.DefaultCategory, pending.Category)
		case "4":
			pending.Priority = c.promptOption("priority", models.PriorityLevels, models.DefaultPriority, pending.Priority)
		case "5":
			pending.DueDate = c.promptEditDueDate(pending.DueDate)
		case "s", "save":
			c.tasks[idx] = pending
			c.persist()
			c.println(c.success.Render("Task updated and saved."))
			return
		case "c", "cancel":
			c.println(c.warning.Render("Edit cancelled. No changes saved."))
			return
		default:
			c.println(c.errText.Render("Invalid option. Please choose again."))
		}
	}
}

func orLabel(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
