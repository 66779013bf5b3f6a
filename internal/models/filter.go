package models

import (
	"strings"
	"time"
)

// FilterMode selects the primary subset of tasks a view displays.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterCompleted FilterMode = "completed"
	FilterPending   FilterMode = "pending"
	FilterDueSoon   FilterMode = "due-soon"
)

// FilterModes is the menu ordering.
var FilterModes = []FilterMode{FilterAll, FilterCompleted, FilterPending, FilterDueSoon}

// DueSoonDays is the width of the due-soon window: today through
// DueSoonDays calendar days ahead, inclusive.
const DueSoonDays = 3

// FilterByMode returns the subset of tasks matching the mode. Unknown modes
// behave like FilterAll. Tasks with missing or unparsable due dates never
// match FilterDueSoon.
func FilterByMode(tasks []Task, mode FilterMode) []Task {
	switch mode {
	case FilterCompleted:
		return filterTasks(tasks, func(t Task) bool { return t.Completed })
	case FilterPending:
		return filterTasks(tasks, func(t Task) bool { return !t.Completed })
	case FilterDueSoon:
		today := dateOf(timeNow())
		soon := today.AddDate(0, 0, DueSoonDays)
		return filterTasks(tasks, func(t Task) bool {
			return dueWithin(t, today, soon)
		})
	default:
		return tasks
	}
}

// Filter composes the primary mode with the front-end secondary filters.
// Priority and Category are disabled when blank or "all"; priority matches
// after normalization, category matches case-insensitively.
type Filter struct {
	Mode     FilterMode
	Priority string
	Category string
}

// Apply runs the mode filter and intersects the secondary filters.
func (f Filter) Apply(tasks []Task) []Task {
	result := FilterByMode(tasks, f.Mode)
	if p := strings.ToLower(strings.TrimSpace(f.Priority)); p != "" && p != "all" {
		result = filterTasks(result, func(t Task) bool {
			return NormalizePriority(t.Priority) == p
		})
	}
	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" && c != "all" {
		result = filterTasks(result, func(t Task) bool {
			return strings.ToLower(t.Category) == c
		})
	}
	return result
}

// Summary holds the counts shown in the suite status line.
type Summary struct {
	Total     int
	Completed int
	Pending   int
	DueSoon   int
}

// Summarize counts tasks by state.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	s.DueSoon = len(FilterByMode(tasks, FilterDueSoon))
	return s
}

func filterTasks(tasks []Task, keep func(Task) bool) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

func dueWithin(t Task, from, to time.Time) bool {
	if t.DueDate == "" {
		return false
	}
	due, err := time.ParseInLocation(DateFormat, t.DueDate, time.Local)
	if err != nil {
		return false
	}
	return !due.Before(from) && !due.After(to)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
