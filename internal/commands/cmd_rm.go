package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/printer"
	"github.com/colonyops/taskedit/internal/taskedit"
)

type RmCmd struct {
	flags *Flags
	app   *taskedit.App

	// flags
	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskedit.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "rm",
		Usage:         "Remove a task from the library",
		UsageText:     "taskedit rm <name> [--yes]",
		ShellComplete: TaskNameCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "remove without asking",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("task name required. Usage: taskedit rm <name>")
	}

	if !cmd.yes {
		ok, err := NewPrompts(nil, "").Confirm(fmt.Sprintf("Remove task %q?", name))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if err := cmd.app.Tasks.Remove(ctx, name); err != nil {
		return err
	}
	p.Successf("Removed %s", name)
	return nil
}
