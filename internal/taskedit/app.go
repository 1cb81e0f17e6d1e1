// Package taskedit wires the task library, waypoints and configuration
// together for the commands.
package taskedit

import (
	"github.com/colonyops/taskedit/internal/core/config"
	"github.com/colonyops/taskedit/internal/core/waypoint"
	"github.com/colonyops/taskedit/internal/data/db"
)

// App is the central entry point for all taskedit operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks     *TaskService
	Waypoints *waypoint.Database

	Config *config.Config
	DB     *db.DB
}

// NewApp constructs an App from explicit dependencies.
func NewApp(tasks *TaskService, waypoints *waypoint.Database, cfg *config.Config, database *db.DB) *App {
	return &App{
		Tasks:     tasks,
		Waypoints: waypoints,
		Config:    cfg,
		DB:        database,
	}
}
