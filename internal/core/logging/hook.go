package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies task_name and task_source from the event context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if name := GetTaskName(ctx); name != "" {
		e.Str("task_name", name)
	}

	if source := GetTaskSource(ctx); source != "" {
		e.Str("task_source", source)
	}
}
