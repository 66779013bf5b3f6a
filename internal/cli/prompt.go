package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tgienger/tdm/internal/models"
)

// readLine prints the prompt and reads one line. The second return is
// false once input is exhausted, so every caller has a quiet way out.
func (c *CLI) readLine(prompt string) (string, bool) {
	if c.eof {
		return "", false
	}
	c.printf("%s", prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		c.log.Error("input read failed", "err", err)
		c.eof = true
		return "", false
	}
	if errors.Is(err, io.EOF) {
		c.eof = true
		if strings.TrimSpace(line) == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// selectTask lists the collection and resolves one task by id,
// returning its index. A negative index means nothing was selected.
func (c *CLI) selectTask() int {
	if len(c.tasks) == 0 {
		c.println(c.warning.Render("No tasks available."))
		return -1
	}
	c.printTasks(c.tasks)

	raw, ok := c.readLine("Enter task ID: ")
	if !ok {
		return -1
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.println(c.errText.Render("Invalid ID."))
		return -1
	}
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	c.println(c.errText.Render("Task not found."))
	return -1
}

// promptOption shows the enumerated values and accepts a full name or
// a first-letter abbreviation, case-insensitively. Blank keeps the
// current value, or takes the default when there is no current one.
func (c *CLI) promptOption(label string, options []string, defaultValue, currentValue string) string {
	display := strings.Join(options, ", ")
	for {
		c.printf("Available %s options: %s (enter name or first letter)\n", label, display)

		var response string
		if currentValue != "" {
			response, _ = c.readLine(fmt.Sprintf("%s (leave blank to keep '%s'): ", titleCase(label), currentValue))
			if strings.TrimSpace(response) == "" {
				c.printf("%s unchanged (%s).\n", titleCase(label), currentValue)
				return currentValue
			}
		} else {
			response, _ = c.readLine(fmt.Sprintf("%s (default: %s): ", titleCase(label), defaultValue))
			if strings.TrimSpace(response) == "" {
				c.printf("%s set to default '%s'.\n", titleCase(label), defaultValue)
				return defaultValue
			}
		}

		if match := matchOption(response, options); match != "" {
			return match
		}
		c.println(c.errText.Render(fmt.Sprintf("Unknown %s. Please choose from: %s.", label, display)))
	}
}

// matchOption resolves user input against the option list: an exact
// case-insensitive match first, then a single-letter abbreviation.
func matchOption(value string, options []string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ""
	}
	for _, option := range options {
		if strings.ToLower(option) == normalized {
			return option
		}
	}
	if len(normalized) == 1 {
		for _, option := range options {
			if strings.ToLower(option[:1]) == normalized {
				return option
			}
		}
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// promptAddDueDate loops until the date parses or the user leaves it
// blank to skip.
func (c *CLI) promptAddDueDate() string {
	for {
		raw, ok := c.readLine("Due date (YYYY-MM-DD) [optional]: ")
		if !ok || strings.TrimSpace(raw) == "" {
			return ""
		}
		due, err := models.ParseDueDate(raw)
		if err == nil {
			return due
		}
		c.println(c.errText.Render("Invalid date. Use YYYY-MM-DD."))
	}
}

func (c *CLI) promptEditDueDate(current string) string {
	for {
		raw, ok := c.readLine(fmt.Sprintf("New due date (YYYY-MM-DD) (leave blank to keep %s): ", orLabel(current, "none")))
		if !ok || strings.TrimSpace(raw) == "" {
			return current
		}
		due, err := models.ParseDueDate(raw)
		if err == nil {
			return due
		}
		c.println(c.errText.Render("Invalid date. Use YYYY-MM-DD."))
	}
}
