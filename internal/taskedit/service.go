package taskedit

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskedit/internal/core/config"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/validate"
	"github.com/colonyops/taskedit/internal/data/stores"
	"github.com/colonyops/taskedit/internal/data/taskfile"
)

// ErrNoName is returned when a task name cannot be determined.
var ErrNoName = validate.ErrEmptyName

// TaskStore persists named task sequences.
type TaskStore interface {
	Get(ctx context.Context, name string) (*task.Sequence, error)
	Put(ctx context.Context, name string, seq *task.Sequence) error
	List(ctx context.Context) ([]stores.TaskEntry, error)
	Delete(ctx context.Context, name string) error
}

// TaskService orchestrates the task library: loading tasks for the editor,
// saving them back and moving them in and out of task files.
type TaskService struct {
	store  TaskStore
	config *config.Config
	log    zerolog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(store TaskStore, cfg *config.Config, logger zerolog.Logger) *TaskService {
	return &TaskService{store: store, config: cfg, log: logger}
}

// DefaultType is the type new tasks start with.
func (s *TaskService) DefaultType() task.Type {
	if s.config == nil || s.config.DefaultType == "" {
		return task.DefaultType
	}
	return s.config.DefaultType
}

// Load returns the named task. A name that is not in the library yields a
// nil sequence so the editor opens a new task under that name.
func (s *TaskService) Load(ctx context.Context, name string) (*task.Sequence, error) {
	if name == "" {
		return nil, nil
	}

	seq, err := s.store.Get(ctx, name)
	if stores.IsNotFoundError(err) {
		s.log.Debug().Str("task", name).Msg("task not in library, starting new")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load task %q: %w", name, err)
	}
	return seq, nil
}

// Save stores seq under name, replacing any existing task.
func (s *TaskService) Save(ctx context.Context, name string, seq *task.Sequence) error {
	if err := validate.TaskName(name); err != nil {
		return fmt.Errorf("save task %q: %w", name, err)
	}
	if err := s.store.Put(ctx, name, seq); err != nil {
		return fmt.Errorf("save task %q: %w", name, err)
	}

	s.log.Info().
		Str("task", name).
		Str("type", string(seq.Type())).
		Int("points", seq.Size()).
		Msg("task saved")
	return nil
}

// List returns the library entries, most recently updated first.
func (s *TaskService) List(ctx context.Context) ([]stores.TaskEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return entries, nil
}

// Get returns the named task, failing when it does not exist.
func (s *TaskService) Get(ctx context.Context, name string) (*task.Sequence, error) {
	seq, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get task %q: %w", name, err)
	}
	return seq, nil
}

// Remove deletes the named task.
func (s *TaskService) Remove(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("remove task %q: %w", name, err)
	}
	s.log.Info().Str("task", name).Msg("task removed")
	return nil
}

// Import reads the task file at path ("-" for stdin) into the library. The
// task is stored under name, the name recorded in the file, or the file's
// base name, whichever is set first. It returns the name used.
func (s *TaskService) Import(ctx context.Context, path, name string) (string, error) {
	f, err := taskfile.ReadFile(path)
	if err != nil {
		return "", err
	}

	seq, err := f.Sequence()
	if err != nil {
		return "", fmt.Errorf("import %s: %w", path, err)
	}

	name = ImportName(name, f.Name, path)
	if name == "" {
		return "", ErrNoName
	}

	if err := s.Save(ctx, name, seq); err != nil {
		return "", err
	}
	return name, nil
}

// Export returns the named task as a task file.
func (s *TaskService) Export(ctx context.Context, name string) (taskfile.File, error) {
	seq, err := s.Get(ctx, name)
	if err != nil {
		return taskfile.File{}, err
	}
	return taskfile.FromSequence(name, seq), nil
}

// ImportName picks the library name for an imported file.
func ImportName(explicit, recorded, path string) string {
	for _, n := range []string{explicit, recorded} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	if path == "" || path == "-" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
