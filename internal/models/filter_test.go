package models

import (
	"testing"
	"time"
)

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Title: "write report", Category: "Work", Priority: "high", DueDate: "2026-08-25"},
		{ID: 2, Title: "buy milk", Category: "General", Priority: "medium", Completed: true},
		{ID: 3, Title: "call plumber", Category: "Personal", Priority: "low", DueDate: "2026-09-15"},
		{ID: 4, Title: "pay rent", Category: "general", Priority: "high", DueDate: "2026-08-27", Completed: true},
		{ID: 5, Title: "no date", Category: "Work", Priority: "medium"},
		{ID: 6, Title: "bad date", Category: "Work", Priority: "low", DueDate: "soonish"},
	}
}

func ids(tasks []Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a []int, b ...int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByMode(t *testing.T) {
	fixNow(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local))
	tasks := sampleTasks()

	tests := []struct {
		name string
		mode FilterMode
		want []int
	}{
		{"all is identity", FilterAll, []int{1, 2, 3, 4, 5, 6}},
		{"completed", FilterCompleted, []int{2, 4}},
		{"pending", FilterPending, []int{1, 3, 5, 6}},
		{"due soon", FilterDueSoon, []int{1, 4}},
		{"unknown behaves like all", FilterMode("bogus"), []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterByMode(tasks, tt.mode))
			if !equalIDs(got, tt.want...) {
				t.Errorf("mode %q: got %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestCompletedPendingPartition(t *testing.T) {
	tasks := sampleTasks()
	completed := FilterByMode(tasks, FilterCompleted)
	pending := FilterByMode(tasks, FilterPending)

	if len(completed)+len(pending) != len(tasks) {
		t.Fatalf("partition sizes: %d + %d != %d", len(completed), len(pending), len(tasks))
	}
	seen := map[int]bool{}
	for _, task := range append(completed, pending...) {
		if seen[task.ID] {
			t.Errorf("task %d in both halves", task.ID)
		}
		seen[task.ID] = true
	}
	for _, task := range tasks {
		if !seen[task.ID] {
			t.Errorf("task %d in neither half", task.ID)
		}
	}
}

func TestDueSoonWindowBoundaries(t *testing.T) {
	fixNow(t, time.Date(2026, 8, 24, 23, 59, 0, 0, time.Local))

	tests := []struct {
		name string
		due  string
		want bool
	}{
		{"yesterday", "2026-08-23", false},
		{"today", "2026-08-24", true},
		{"tomorrow", "2026-08-25", true},
		{"window edge", "2026-08-27", true},
		{"past the window", "2026-08-28", false},
		{"no due date", "", false},
		{"unparsable", "next week", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := []Task{{ID: 1, Title: "x", DueDate: tt.due}}
			got := len(FilterByMode(tasks, FilterDueSoon)) == 1
			if got != tt.want {
				t.Errorf("due %q: included=%v, want %v", tt.due, got, tt.want)
			}
		})
	}
}

func TestFilterCompose(t *testing.T) {
	fixNow(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local))
	tasks := sampleTasks()

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"mode only", Filter{Mode: FilterPending}, []int{1, 3, 5, 6}},
		{"priority only", Filter{Mode: FilterAll, Priority: "high"}, []int{1, 4}},
		{"category case-insensitive", Filter{Mode: FilterAll, Category: "General"}, []int{2, 4}},
		{"all three", Filter{Mode: FilterCompleted, Priority: "high", Category: "general"}, []int{4}},
		{"all disables secondary", Filter{Mode: FilterAll, Priority: "all", Category: "all"}, []int{1, 2, 3, 4, 5, 6}},
		{"empty intersection", Filter{Mode: FilterDueSoon, Priority: "low"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(tasks))
			if !equalIDs(got, tt.want...) {
				t.Errorf("filter %+v: got %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	fixNow(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local))

	s := Summarize(sampleTasks())
	want := Summary{Total: 6, Completed: 2, Pending: 4, DueSoon: 2}
	if s != want {
		t.Errorf("Summarize: got %+v, want %+v", s, want)
	}

	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty summary: got %+v", s)
	}
}
