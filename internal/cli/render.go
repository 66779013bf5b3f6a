package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tgienger/tdm/internal/models"
	"github.com/tgienger/tdm/internal/ui/styles"
)

// printBanner centers the logo and subtitle to the terminal width.
func (c *CLI) printBanner() {
	width := terminalWidth()
	for _, line := range strings.Split(styles.AppLogo, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.println(lipgloss.PlaceHorizontal(width, lipgloss.Center, c.secondary.Render(line)))
	}
	c.println(lipgloss.PlaceHorizontal(width, lipgloss.Center, c.bold.Render("Command-Line To-Do Suite")))
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func (c *CLI) printMenu() {
	c.println()
	c.println(c.section.Render("Main Menu:"))
	c.println("1. Add task")
	c.println("2. View tasks")
	c.println("3. Mark task as completed")
	c.println("4. Edit task")
	c.println("5. Delete task")
	c.println("6. Exit")
}

// printSuite is the one-line dashboard shown after every action.
func (c *CLI) printSuite() {
	sum := models.Summarize(c.tasks)
	line := fmt.Sprintf("Suite → Total %s | Completed %s | Pending %s | Due soon %s",
		c.bold.Render(strconv.Itoa(sum.Total)),
		c.success.Render(strconv.Itoa(sum.Completed)),
		c.warning.Render(strconv.Itoa(sum.Pending)),
		c.secondary.Render(strconv.Itoa(sum.DueSoon)),
	)
	c.println(c.section.Render(line))
}

func (c *CLI) printReminders() {
	dueSoon := models.FilterByMode(c.tasks, models.FilterDueSoon)
	if len(dueSoon) == 0 {
		return
	}
	c.println()
	c.println(c.section.Render(fmt.Sprintf("Reminder: Tasks due within %d days:", models.DueSoonDays)))
	c.printTasks(dueSoon)
	c.println()
}

func (c *CLI) printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		c.println(c.warning.Render("No tasks to show."))
		return
	}
	for _, task := range tasks {
		status := "⏳"
		if task.Completed {
			status = "✅"
		}
		c.printf("[%s] %s %s - %s | due: %s | priority: %s\n",
			c.secondary.Render(strconv.Itoa(task.ID)),
			status,
			task.Title,
			task.Category,
			c.section.Render(orLabel(task.DueDate, "none")),
			c.styles.Priority(task.Priority).Render(task.Priority),
		)
	}
}
