package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tgienger/tdm/internal/models"
)

func testStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(&buf)
	path := filepath.Join(t.TempDir(), "tasks.json")
	return Open(path, logger), &buf
}

func TestLoadMissingFile(t *testing.T) {
	st, logBuf := testStore(t)

	tasks, err := st.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
	if logBuf.Len() != 0 {
		t.Errorf("unexpected log output: %s", logBuf.String())
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json{{{"},
		{"truncated", `[{"id": 1, "title": "partial"`},
		{"wrong shape", `{"tasks": "should be an array"}`},
		{"wrong item types", `[{"id": "one"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := testStore(t)
			if err := os.WriteFile(st.Path(), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			tasks, err := st.Load()
			if err == nil {
				t.Error("expected an error for a corrupted file")
			}
			if len(tasks) != 0 {
				t.Errorf("got %d tasks, want 0", len(tasks))
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, logBuf := testStore(t)
	original := []models.Task{
		{ID: 1, Title: "Buy milk", Description: "2%", Category: "General", Priority: "medium", CreatedAt: "2026-08-24 14:05"},
		{ID: 2, Title: "Report", Category: "Work", Priority: "high", Completed: true, DueDate: "2026-08-30", CreatedAt: "2026-08-24 14:06"},
		{ID: 3, Title: "Odd category", Category: "Chores", Priority: "low", CreatedAt: "2026-08-24 14:07"},
	}

	if err := st.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(original) {
		t.Fatalf("got %d tasks, want %d", len(loaded), len(original))
	}
	for i := range original {
		if loaded[i] != original[i] {
			t.Errorf("task %d: got %+v, want %+v", i, loaded[i], original[i])
		}
	}
	if strings.Contains(logBuf.String(), "coerced") {
		t.Errorf("well-formed records should not be coerced: %s", logBuf.String())
	}
}

func TestSaveFormatting(t *testing.T) {
	st, _ := testStore(t)
	if err := st.Save([]models.Task{{ID: 1, Title: "x", Category: "General", Priority: "low", CreatedAt: "2026-08-24 09:00"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(st.Path())
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		t.Error("file should end with a newline")
	}
	if !strings.Contains(text, "  \"id\": 1") {
		t.Errorf("file should be two-space indented:\n%s", text)
	}
	// no due date -> field omitted entirely
	if strings.Contains(text, "due_date") {
		t.Errorf("empty due_date should be omitted:\n%s", text)
	}
}

func TestSaveNilCollection(t *testing.T) {
	st, _ := testStore(t)
	if err := st.Save(nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	data, err := os.ReadFile(st.Path())
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("got %q, want []", got)
	}
}

func TestSaveFailureKeepsFile(t *testing.T) {
	dir := t.TempDir()
	// a directory at the target path makes the rename fail
	path := filepath.Join(dir, "tasks.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	st := Open(path, log.New(&bytes.Buffer{}))

	err := st.Save([]models.Task{{ID: 1, Title: "x"}})
	if err == nil {
		t.Fatal("expected an error")
	}
	// no temp files left behind
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestNextID(t *testing.T) {
	st, _ := testStore(t)
	tests := []struct {
		name  string
		tasks []models.Task
		want  int
	}{
		{"empty", nil, 1},
		{"single", []models.Task{{ID: 1}}, 2},
		{"gap from deletion", []models.Task{{ID: 1}, {ID: 3}}, 4},
		{"unordered", []models.Task{{ID: 7}, {ID: 2}, {ID: 5}}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := st.NextID(tt.tasks); got != tt.want {
				t.Errorf("NextID = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextIDNeverReuses(t *testing.T) {
	st, _ := testStore(t)
	tasks := []models.Task{{ID: 1}, {ID: 2}, {ID: 3}}

	// delete id 2
	remaining := []models.Task{tasks[0], tasks[2]}
	if got := st.NextID(remaining); got != 4 {
		t.Errorf("after deleting id 2: NextID = %d, want 4", got)
	}
}

func TestLoadCoercesRecords(t *testing.T) {
	st, logBuf := testStore(t)
	raw := `[
  {"id": 1, "title": "", "description": "from desc", "category": "", "priority": "URGENT", "completed": false},
  {"id": 1, "title": "dup", "category": "Work", "priority": "low", "due_date": "soon"},
  {"id": 2, "title": "fine", "category": "Work", "priority": "high", "due_date": null, "created_at": "2026-01-01 09:00"}
]`
	if err := os.WriteFile(st.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	tasks, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}

	if tasks[0].Title != "from desc" || tasks[0].Category != models.DefaultCategory || tasks[0].Priority != models.DefaultPriority {
		t.Errorf("coercion: got %+v", tasks[0])
	}
	if tasks[1].ID == 1 {
		t.Error("duplicate id kept")
	}
	if tasks[1].DueDate != "" {
		t.Errorf("bad due date kept: %q", tasks[1].DueDate)
	}
	if tasks[2].DueDate != "" {
		t.Errorf("null due date: got %q", tasks[2].DueDate)
	}

	logged := logBuf.String()
	if !strings.Contains(logged, "coerced task record") {
		t.Errorf("coercions not logged: %s", logged)
	}
	if !strings.Contains(logged, "schema violation") {
		t.Errorf("schema violations not logged: %s", logged)
	}
}

func TestOpenNilLogger(t *testing.T) {
	st := Open(filepath.Join(t.TempDir(), "tasks.json"), nil)
	if _, err := st.Load(); err != nil {
		t.Fatalf("Load with nil logger: %v", err)
	}
}
