package logging

import "context"

type contextKey string

const (
	taskNameKey   contextKey = "task_name"
	taskSourceKey contextKey = "task_source"
)

// WithTaskName adds the name of the task being edited to the context.
func WithTaskName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, taskNameKey, name)
}

// WithTaskSource adds where the task was loaded from (library or a file path).
func WithTaskSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, taskSourceKey, source)
}

// GetTaskName retrieves the task name from the context.
// Returns empty string if not present.
func GetTaskName(ctx context.Context) string {
	if v, ok := ctx.Value(taskNameKey).(string); ok {
		return v
	}
	return ""
}

// GetTaskSource retrieves the task source from the context.
// Returns empty string if not present.
func GetTaskSource(ctx context.Context) string {
	if v, ok := ctx.Value(taskSourceKey).(string); ok {
		return v
	}
	return ""
}
