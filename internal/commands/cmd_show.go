package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
	"github.com/colonyops/taskedit/internal/taskedit"
	"github.com/colonyops/taskedit/internal/tui"
)

// defaultWrapWidth is used when stdout is not a terminal.
const defaultWrapWidth = 100

type ShowCmd struct {
	flags *Flags
	app   *taskedit.App

	// flags
	markdown bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *taskedit.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "show",
		Usage:         "Show a task's points, legs and problems",
		UsageText:     "taskedit show <name> [--markdown]",
		ShellComplete: TaskNameCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"m"},
				Usage:       "render a styled markdown summary",
				Destination: &cmd.markdown,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("task name required. Usage: taskedit show <name>")
	}

	seq, err := cmd.app.Tasks.Get(ctx, name)
	if err != nil {
		return err
	}

	unit := cmd.app.Config.DistanceUnit
	out := c.Root().Writer

	if !cmd.markdown {
		return writeTaskDetail(out, name, seq, unit)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(wrapWidth()),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	rendered, err := r.Render(taskMarkdown(name, seq, unit))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func wrapWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWrapWidth
}

func writeTaskDetail(out io.Writer, name string, seq *task.Sequence, unit units.Distance) error {
	summary := seq.Summarize()
	_, _ = fmt.Fprintf(out, "%s: %s\n\n", name, tui.SummaryLine(summary, unit))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tWAYPOINT\tZONE\tLEG")
	for i, p := range seq.Points() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			seq.LabelPrefix(i), p.Waypoint.Name, tui.ZoneLabel(p.Zone, unit), tui.LegLabel(seq.LegDistance(i), unit))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, problem := range summary.Problems {
		_, _ = fmt.Fprintf(out, "! %s\n", problem)
	}
	return nil
}

// taskMarkdown renders seq as a markdown document.
func taskMarkdown(name string, seq *task.Sequence, unit units.Distance) string {
	summary := seq.Summarize()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "**%s** · %d/%d points · %s\n\n", summary.Title, summary.Points, summary.Capacity, unit.Format(summary.Distance))

	if seq.Size() > 0 {
		b.WriteString("| # | Waypoint | Zone | Leg |\n")
		b.WriteString("|---|---|---|---|\n")
		for i, p := range seq.Points() {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				seq.LabelPrefix(i), escapeCell(p.Waypoint.Name), tui.ZoneLabel(p.Zone, unit), tui.LegLabel(seq.LegDistance(i), unit))
		}
		b.WriteString("\n")
	}

	if props := propertyLines(seq.Properties()); len(props) > 0 {
		b.WriteString("## Properties\n\n")
		for _, line := range props {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(summary.Problems) > 0 {
		b.WriteString("## Problems\n\n")
		for _, problem := range summary.Problems {
			fmt.Fprintf(&b, "- %s\n", problem)
		}
	}

	return b.String()
}

func propertyLines(p task.Properties) []string {
	var lines []string
	if p.AATMinTime > 0 {
		lines = append(lines, "AAT minimum time: "+p.AATMinTime.String())
	}
	if p.StartMaxHeight > 0 {
		lines = append(lines, "Start max height: "+units.FormatHeight(p.StartMaxHeight))
	}
	if p.FinishMinHeight > 0 {
		lines = append(lines, "Finish min height: "+units.FormatHeight(p.FinishMinHeight))
	}
	return lines
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
