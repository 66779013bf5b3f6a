package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tgienger/tdm/internal/models"
)

//go:embed tasks.schema.json
var schema string

var taskSchema = jsonschema.MustCompileString("tasks.schema.json", schema)

// Store reads and writes the task collection as a single JSON file. Every
// save rewrites the file in full; the file is never locked.
type Store struct {
	path string
	log  *log.Logger
}

// Open returns a store backed by the file at path. The file does not need
// to exist yet.
func Open(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, log: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole collection. A missing file yields an empty
// collection with no error. An unreadable or malformed file yields an empty
// collection and an error the caller should surface as a warning. Loaded
// records are checked against the task schema (violations are logged) and
// coerced into canonical form.
func (s *Store) Load() ([]models.Task, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if err := taskSchema.Validate(doc); err != nil {
		s.logSchemaErrors(err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	tasks, notes := models.NormalizeAll(tasks)
	for _, note := range notes {
		s.log.Warn("coerced task record", "file", s.path, "fix", note)
	}
	return tasks, nil
}

// Save serializes the entire collection and overwrites the backing file.
// The data is written to a temporary sibling first and renamed into place.
// A nil collection is written as an empty list.
func (s *Store) Save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	data = append(data, '\n')

	tmp := fmt.Sprintf("%s.tmp-%d", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// NextID returns one greater than the highest id in the collection, or 1
// when the collection is empty. Deleted ids are never reused. Single
// process only; the counter is not race-free.
func (s *Store) NextID(tasks []models.Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

func (s *Store) logSchemaErrors(err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		s.log.Warn("task file failed schema check", "file", s.path, "err", err)
		return
	}
	for _, leaf := range leafCauses(ve) {
		s.log.Warn("task file schema violation",
			"file", s.path,
			"at", leaf.InstanceLocation,
			"err", leaf.Message,
		)
	}
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
