// Package stores persists tasks in the sqlite library.
package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskedit/internal/core/logging"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/data/db"
	"github.com/colonyops/taskedit/internal/data/taskfile"
)

// TaskEntry is a library listing row.
type TaskEntry struct {
	Name      string    `json:"name"`
	Type      task.Type `json:"type"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskStore stores named tasks as YAML bodies.
type TaskStore struct {
	db     *db.DB
	now    func() time.Time
	logger zerolog.Logger
}

// NewTaskStore returns a store backed by database.
func NewTaskStore(database *db.DB) *TaskStore {
	return &TaskStore{
		db:     database,
		now:    time.Now,
		logger: logging.Component("taskstore"),
	}
}

// Get loads the task called name. It returns ErrNotFound when absent.
func (s *TaskStore) Get(ctx context.Context, name string) (*task.Sequence, error) {
	var body string
	err := s.db.Conn().QueryRowContext(ctx, "SELECT body FROM tasks WHERE name = ?", name).Scan(&body)
	if IsNotFoundError(err) {
		return nil, fmt.Errorf("get %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, err)
	}

	f, err := taskfile.Unmarshal([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, err)
	}

	seq, err := f.Sequence()
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, err)
	}
	return seq, nil
}

// Put creates or replaces the task called name.
func (s *TaskStore) Put(ctx context.Context, name string, seq *task.Sequence) error {
	if name == "" {
		return errors.New("put: task name is required")
	}

	body, err := taskfile.Marshal(taskfile.FromSequence(name, seq))
	if err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}

	now := s.now().UnixNano()
	_, err = s.db.Conn().ExecContext(ctx, `
		INSERT INTO tasks (name, type, points, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			type = excluded.type,
			points = excluded.points,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		name, string(seq.Type()), seq.Size(), string(body), now, now)
	if err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}

	s.logger.Debug().Str("name", name).Str("type", string(seq.Type())).Int("points", seq.Size()).Msg("task saved")
	return nil
}

// List returns every task, most recently updated first.
func (s *TaskStore) List(ctx context.Context) ([]TaskEntry, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		"SELECT name, type, points, created_at, updated_at FROM tasks ORDER BY updated_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []TaskEntry
	for rows.Next() {
		var (
			e                TaskEntry
			typ              string
			created, updated int64
		)
		if err := rows.Scan(&e.Name, &typ, &e.Points, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		e.Type = task.Type(typ)
		e.CreatedAt = time.Unix(0, created)
		e.UpdatedAt = time.Unix(0, updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the task called name. It returns ErrNotFound when absent.
func (s *TaskStore) Delete(ctx context.Context, name string) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE name = ?", name)
		if err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}
		if n == 0 {
			return fmt.Errorf("delete %q: %w", name, ErrNotFound)
		}

		s.logger.Debug().Str("name", name).Msg("task deleted")
		return nil
	})
}
