package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/core/editor"
	"github.com/colonyops/taskedit/internal/core/logging"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/data/taskfile"
	"github.com/colonyops/taskedit/internal/printer"
	"github.com/colonyops/taskedit/internal/taskedit"
	"github.com/colonyops/taskedit/internal/tui"
	"github.com/colonyops/taskedit/pkg/profiler"
)

// SavePrompt is asked on close when the task was modified.
const SavePrompt = "Save changes?"

type EditCmd struct {
	flags *Flags
	app   *taskedit.App

	// flags
	file         string
	yes          bool
	profilerPort int
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *taskedit.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Flags returns the editor flags. A fresh set is built on every call so
// the root command and the edit subcommand do not share flag state.
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "edit a task file instead of a library task",
			Destination: &cmd.file,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "save modified tasks without asking",
			Destination: &cmd.yes,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TASKEDIT_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit a task in the interactive editor",
		UsageText: "taskedit edit [name] [--file path] [--yes]",
		Description: `Opens the task editor on a library task, a task file, or a new task.

A name that is not in the library starts a new task saved under that name.
With --file the task file is edited and written back on save; a name
additionally stores it in the library.`,
		Flags:         cmd.Flags(),
		ShellComplete: TaskNameCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

// Run executes the editor. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	name := c.Args().First()

	if cmd.profilerPort > 0 {
		prof := profiler.New(cmd.profilerPort)
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	seq, err := cmd.load(ctx, name)
	if err != nil {
		return err
	}

	source := "library"
	if cmd.file != "" {
		source = cmd.file
	}
	ctx = logging.WithTaskSource(logging.WithTaskName(ctx, name), source)

	prompts := NewPrompts(cmd.app.Waypoints, cmd.app.Config.DistanceUnit)
	session, err := editor.Open(seq, prompts.Collaborators(), editor.Options{DefaultType: cmd.app.Tasks.DefaultType()})
	if err != nil {
		return err
	}

	title := name
	if title == "" && cmd.file != "" {
		title = cmd.file
	}

	loop := &editLoop{
		session: session,
		run:     tui.Run,
		opts:    tui.Options{Title: title, Unit: cmd.app.Config.DistanceUnit},
	}

	final, err := loop.Run(ctx)
	if err != nil {
		return err
	}

	res := session.Close()
	if final.Kind == tui.ActionAbort {
		if res.Modified {
			p.Warnf("Changes discarded")
		}
		return nil
	}
	if !res.Modified {
		return nil
	}

	if !cmd.yes {
		save, err := prompts.Confirm(SavePrompt)
		if err != nil {
			return fmt.Errorf("confirm save: %w", err)
		}
		if !save {
			p.Warnf("Changes discarded")
			return nil
		}
	}

	return cmd.save(ctx, name, res.Sequence)
}

// load returns the task to open, or nil for a new task.
func (cmd *EditCmd) load(ctx context.Context, name string) (*task.Sequence, error) {
	if cmd.file == "" {
		return cmd.app.Tasks.Load(ctx, name)
	}

	f, err := taskfile.ReadFile(cmd.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f.Sequence()
}

func (cmd *EditCmd) save(ctx context.Context, name string, seq *task.Sequence) error {
	p := printer.Ctx(ctx)

	if cmd.file != "" {
		recorded := taskedit.ImportName(name, "", cmd.file)
		if err := taskfile.WriteFile(cmd.file, taskfile.FromSequence(recorded, seq)); err != nil {
			return err
		}
		p.Successf("Saved %s", cmd.file)
		if name == "" {
			return nil
		}
	}

	if name == "" {
		return fmt.Errorf("%w: run 'taskedit edit <name>' to save new tasks", taskedit.ErrNoName)
	}
	if err := cmd.app.Tasks.Save(ctx, name, seq); err != nil {
		return err
	}
	p.Successf("Saved %s (%s, %d points)", name, seq.Type().Title(), seq.Size())
	return nil
}

// editLoop runs the editor program until the user closes or aborts it.
// Actions that need a modal sub-interaction end the program; the loop
// performs the session request and restarts the program on the same
// session.
type editLoop struct {
	session *editor.Session
	run     func(context.Context, *editor.Session, tui.Options) (tui.Action, error)
	opts    tui.Options
}

// Run returns the action that ended the session: close or abort.
func (l *editLoop) Run(ctx context.Context) (tui.Action, error) {
	opts := l.opts
	for {
		action, err := l.run(ctx, l.session, opts)
		if err != nil {
			return action, err
		}

		switch action.Kind {
		case tui.ActionClose, tui.ActionAbort:
			return action, nil
		case tui.ActionNone:
			// program ended without a key, e.g. the context was cancelled
			return tui.Action{Kind: tui.ActionAbort}, nil
		}

		opts.Status = l.dispatch(ctx, action)
	}
}

// dispatch performs the session request behind action and returns the
// status line to show when the editor restarts.
func (l *editLoop) dispatch(ctx context.Context, action tui.Action) string {
	var (
		changed bool
		err     error
	)

	adding := action.Kind == tui.ActionEdit && action.Row == l.session.Sequence().Size()

	switch action.Kind {
	case tui.ActionEdit:
		changed, err = l.session.RequestEditOrAddAt(action.Row)
	case tui.ActionNewType:
		changed, err = l.session.RequestNewType()
	case tui.ActionClear:
		changed, err = l.session.RequestClear()
	case tui.ActionProperties:
		changed, err = l.session.RequestProperties()
	}

	if err != nil {
		log.Error().Ctx(ctx).Err(err).Stringer("action", action.Kind).Msg("editor request failed")
		return "error: " + err.Error()
	}
	return actionStatus(action.Kind, adding, changed)
}

// actionStatus describes a completed request. Cancelled requests say nothing.
func actionStatus(kind tui.ActionKind, adding, changed bool) string {
	if !changed {
		return ""
	}

	switch kind {
	case tui.ActionEdit:
		if adding {
			return "point added"
		}
		return "point updated"
	case tui.ActionNewType:
		return "new task"
	case tui.ActionClear:
		return "task cleared"
	case tui.ActionProperties:
		return "properties updated"
	default:
		return ""
	}
}
