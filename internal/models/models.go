package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the layout for due dates.
const DateFormat = "2006-01-02"

// CreatedAtFormat is the layout for creation timestamps.
const CreatedAtFormat = "2006-01-02 15:04"

// Priority levels, lowest to highest. DefaultPriority applies whenever the
// input is blank or unrecognized.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	DefaultPriority = PriorityMedium
)

// PriorityLevels is the canonical ordering used by menus and prompts.
var PriorityLevels = []string{PriorityLow, PriorityMedium, PriorityHigh}

// DefaultCategory applies whenever a task has no category.
const DefaultCategory = "General"

// CategoryOptions are the suggested categories. Arbitrary values are still
// accepted and preserved.
var CategoryOptions = []string{"General", "Work", "Personal", "Urgent"}

var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrBadDueDate = errors.New("due date must use YYYY-MM-DD")
)

// Task represents a single task record
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// clock seam for due-date math and creation stamps
var timeNow = time.Now

// NewTask builds a task with a normalized priority, a defaulted category,
// and a creation stamp in local time.
func NewTask(id int, title, description, category, priority string) Task {
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	return Task{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    NormalizePriority(priority),
		CreatedAt:   timeNow().Format(CreatedAtFormat),
	}
}

// StatusLabel returns the human-readable completion state.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Done"
	}
	return "Pending"
}

// NormalizePriority maps any input onto the canonical priority set. Blank
// or unrecognized input becomes DefaultPriority; matching is
// case-insensitive. The function is total and idempotent.
func NormalizePriority(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, level := range PriorityLevels {
		if raw == level {
			return level
		}
	}
	return DefaultPriority
}

// ValidateTitle rejects blank titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ParseDueDate canonicalizes a due date string. Blank input means "no due
// date" and returns empty; anything else must parse under DateFormat.
func ParseDueDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := time.ParseInLocation(DateFormat, raw, time.Local)
	if err != nil {
		return "", ErrBadDueDate
	}
	return parsed.Format(DateFormat), nil
}

// NormalizeAll coerces loaded records into canonical form: blank titles fall
// back to the description and then to "Untitled", categories default,
// priorities normalize, unparsable due dates are cleared, and missing or
// duplicate ids are reassigned. Well-formed records pass through unchanged.
// The returned notes describe every applied fix.
func NormalizeAll(tasks []Task) ([]Task, []string) {
	var notes []string
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	seen := make(map[int]bool, len(tasks))
	out := make([]Task, 0, len(tasks))
	for i, t := range tasks {
		if t.ID <= 0 || seen[t.ID] {
			maxID++
			notes = append(notes, fmt.Sprintf("record %d: id %d reassigned to %d", i, t.ID, maxID))
			t.ID = maxID
		}
		seen[t.ID] = true
		if strings.TrimSpace(t.Title) == "" {
			switch {
			case strings.TrimSpace(t.Description) != "":
				t.Title = t.Description
				notes = append(notes, fmt.Sprintf("task %d: title taken from description", t.ID))
			default:
				t.Title = "Untitled"
				notes = append(notes, fmt.Sprintf("task %d: blank title set to %q", t.ID, t.Title))
			}
		}
		if strings.TrimSpace(t.Category) == "" {
			t.Category = DefaultCategory
			notes = append(notes, fmt.Sprintf("task %d: blank category set to %q", t.ID, DefaultCategory))
		}
		if p := NormalizePriority(t.Priority); p != t.Priority {
			notes = append(notes, fmt.Sprintf("task %d: priority %q normalized to %q", t.ID, t.Priority, p))
			t.Priority = p
		}
		if t.DueDate != "" {
			if canonical, err := ParseDueDate(t.DueDate); err != nil {
				notes = append(notes, fmt.Sprintf("task %d: unparsable due date %q cleared", t.ID, t.DueDate))
				t.DueDate = ""
			} else {
				t.DueDate = canonical
			}
		}
		out = append(out, t)
	}
	return out, notes
}
