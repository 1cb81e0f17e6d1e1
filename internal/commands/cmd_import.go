package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/printer"
	"github.com/colonyops/taskedit/internal/taskedit"
)

type ImportCmd struct {
	flags *Flags
	app   *taskedit.App

	// flags
	name string
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *taskedit.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import a task file into the library",
		UsageText: "taskedit import <file|-> [--name name]",
		Description: `Reads a YAML task file and stores it in the library, replacing any task
with the same name. Use - to read from stdin.

The task is named by --name, the name recorded in the file, or the file's
base name.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "library name for the task",
				Destination: &cmd.name,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("task file required. Usage: taskedit import <file|->")
	}

	name, err := cmd.app.Tasks.Import(ctx, path, cmd.name)
	if err != nil {
		return err
	}
	p.Successf("Imported %s", name)
	return nil
}
