package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/data/stores"
	"github.com/colonyops/taskedit/internal/taskedit"
	"github.com/colonyops/taskedit/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *taskedit.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskedit.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List tasks in the library",
		UsageText:   "taskedit ls [--json]",
		Description: "Displays a table of saved tasks, most recently updated first.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.app.Tasks.List(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No tasks found\n")
		}
		return nil
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	return writeTaskTable(out, entries)
}

func writeTaskTable(out io.Writer, entries []stores.TaskEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTYPE\tPOINTS\tUPDATED")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Name, e.Type, e.Points, e.UpdatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}
