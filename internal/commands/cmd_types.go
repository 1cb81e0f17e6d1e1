package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskedit/internal/core/task"
)

type TypesCmd struct {
	flags *Flags
}

// NewTypesCmd creates a new types command
func NewTypesCmd(flags *Flags) *TypesCmd {
	return &TypesCmd{flags: flags}
}

// Register adds the types command to the application
func (cmd *TypesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "types",
		Usage:       "List task types and their rules",
		UsageText:   "taskedit types",
		Description: "Shows each task type with its point capacity, minimum points and allowed observation zones.",
		Action: func(_ context.Context, c *cli.Command) error {
			return writeTypeTable(c.Root().Writer)
		},
	})

	return app
}

func writeTypeTable(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tTITLE\tPOINTS\tSTART ZONES\tTURNPOINT ZONES")
	for _, t := range task.Types() {
		rules, err := t.Rules()
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%d-%d\t%s\t%s\n",
			t, rules.Title, rules.MinPoints, rules.Capacity, joinShapes(rules.Zones[task.RoleStart]), joinShapes(rules.Zones[task.RoleTurn]))
	}
	return w.Flush()
}

func joinShapes(shapes []task.ZoneShape) string {
	if len(shapes) == 0 {
		return "-"
	}
	parts := make([]string, len(shapes))
	for i, s := range shapes {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
