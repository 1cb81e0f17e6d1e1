package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/commands"
	"github.com/colonyops/taskedit/internal/core/config"
	"github.com/colonyops/taskedit/internal/core/logging"
	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/waypoint"
	"github.com/colonyops/taskedit/internal/data/db"
	"github.com/colonyops/taskedit/internal/data/stores"
	"github.com/colonyops/taskedit/internal/printer"
	"github.com/colonyops/taskedit/internal/taskedit"
	"github.com/colonyops/taskedit/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser   func()
		taskeditApp = &taskedit.App{}
		database    *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "taskedit",
		Usage:     "Plan and edit flight tasks in the terminal",
		UsageText: "taskedit [global options] [name] | command [command options]",
		Description: `taskedit keeps a library of soaring tasks (start, turnpoints, finish) and
edits them in a list-based terminal editor with a live map preview.

Run 'taskedit' to start a new task, or 'taskedit <name>' to edit a saved one.
Waypoints are read from the YAML and SeeYou .cup files named in the config.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKEDIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskedit.log)",
				Sources:     cli.EnvVars("TASKEDIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKEDIT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKEDIT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/taskedit.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "taskedit.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			p := printer.New(os.Stderr)
			ctx = printer.NewContext(ctx, p)

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			database, err = openDatabase(cfg, p)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// A broken waypoint file should not lock the user out of their tasks
			waypoints, err := waypoint.Load(cfg.WaypointFiles)
			if err != nil {
				log.Warn().Err(err).Msg("failed to load waypoints")
				p.Warnf("Waypoints not loaded: %v", err)
				waypoints = waypoint.NewDatabase(nil)
			}

			tasks := taskedit.NewTaskService(
				stores.NewTaskStore(database),
				cfg,
				log.With().Str("component", "taskedit").Logger(),
			)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*taskeditApp = *taskedit.NewApp(tasks, waypoints, cfg, database)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	editCmd := commands.NewEditCmd(flags, taskeditApp)

	app = editCmd.Register(app)
	app = commands.NewLsCmd(flags, taskeditApp).Register(app)
	app = commands.NewShowCmd(flags, taskeditApp).Register(app)
	app = commands.NewImportCmd(flags, taskeditApp).Register(app)
	app = commands.NewExportCmd(flags, taskeditApp).Register(app)
	app = commands.NewRmCmd(flags, taskeditApp).Register(app)
	app = commands.NewTypesCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register editor flags on root command
	app.Flags = append(app.Flags, editCmd.Flags()...)

	// Open the editor when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 1 {
			return fmt.Errorf("too many arguments. Run 'taskedit --help' for usage")
		}
		return editCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// openDatabase opens the task library, moving a corrupt database aside
// and starting fresh.
func openDatabase(cfg *config.Config, p *printer.Printer) (*db.DB, error) {
	opts := db.DefaultOpenOptions()
	if cfg.Database.MaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.Database.MaxOpenConns
	}
	if cfg.Database.BusyTimeout > 0 {
		opts.BusyTimeout = cfg.Database.BusyTimeout
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil || !stores.IsCorruptionError(err) {
		return database, err
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("%w (recovery failed: %w)", err, rerr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database corrupt, starting fresh")
	p.Warnf("Task library was corrupt and has been moved to %s", backup)

	return db.Open(cfg.DataDir, opts)
}
