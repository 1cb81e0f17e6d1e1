package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/data/taskfile"
	"github.com/colonyops/taskedit/internal/printer"
	"github.com/colonyops/taskedit/internal/taskedit"
)

type ExportCmd struct {
	flags *Flags
	app   *taskedit.App

	// flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *taskedit.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "export",
		Usage:         "Write a library task as a YAML task file",
		UsageText:     "taskedit export <name> [--output file]",
		ShellComplete: TaskNameCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "file to write (defaults to stdout)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("task name required. Usage: taskedit export <name>")
	}

	f, err := cmd.app.Tasks.Export(ctx, name)
	if err != nil {
		return err
	}

	if cmd.output == "" || cmd.output == "-" {
		return taskfile.Encode(c.Root().Writer, f)
	}

	if err := taskfile.WriteFile(cmd.output, f); err != nil {
		return err
	}
	printer.Ctx(ctx).Successf("Exported %s to %s", name, cmd.output)
	return nil
}
