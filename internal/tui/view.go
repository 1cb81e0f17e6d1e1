package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskedit/internal/core/editor"
	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
)

// minLegDistance hides leg distances below 10 m.
const minLegDistance = 10.0

// AppendRowLabel is shown on the virtual row after the last point.
const AppendRowLabel = "(add waypoint)"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	vm := m.session.ViewModel()
	footer := m.renderFooter(vm)
	footerHeight := lipgloss.Height(footer)

	if vm.Fullscreen {
		preview := m.renderPreview(vm, m.width-4, m.height-footerHeight-2)
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.PanelFocusedStyle.Render(preview),
			footer,
		)
	}

	list := lipgloss.NewStyle().Width(listWidth).Render(m.renderList(vm))
	previewHeight := max(lipgloss.Height(list)-2, 5)
	preview := styles.PanelStyle.Render(m.renderPreview(vm, m.width-listWidth-4, previewHeight))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, list, preview),
		footer,
	)
}

// renderList renders the header line, a blank line and one line per row.
func (m Model) renderList(vm editor.ViewModel) string {
	var b strings.Builder

	title := m.opts.Title
	if title == "" {
		title = "new task"
	}
	header := styles.CommandHeaderStyle.Render(title) + " " +
		styles.ZoneStyle.Render("["+vm.Summary.Title+"]")
	if vm.Dirty {
		header += " " + styles.ModifiedStyle.Render("*")
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, row := range vm.Rows {
		line := m.renderRow(row)
		if i == vm.Selected {
			b.WriteString(styles.RowSelectedStyle.Render(line))
		} else if row.Kind == editor.AppendRow {
			b.WriteString(styles.AppendRowStyle.Render(line))
		} else {
			b.WriteString(styles.RowStyle.Render(line))
		}
		if i < len(vm.Rows)-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func (m Model) renderRow(row editor.Row) string {
	if row.Kind == editor.AppendRow {
		return AppendRowLabel
	}

	return fmt.Sprintf("%-20s %-16s %7s",
		truncate(row.Label, 20),
		ZoneLabel(row.Zone, m.opts.Unit),
		LegLabel(row.LegDistance, m.opts.Unit),
	)
}

func (m Model) renderPreview(vm editor.ViewModel, width, height int) string {
	selected := -1
	if row, ok := vm.SelectedRow(); ok && row.Kind == editor.DataRow {
		selected = row.Index
	}

	return Preview{
		Width:    max(width, 3),
		Height:   max(height, 3),
		Points:   m.session.Sequence().Points(),
		Selected: selected,
	}.Render()
}

func (m Model) renderFooter(vm editor.ViewModel) string {
	lines := []string{styles.SummaryStyle.Render(SummaryLine(vm.Summary, m.opts.Unit))}

	for _, problem := range vm.Summary.Problems {
		lines = append(lines, styles.ProblemStyle.Render("! "+problem))
	}
	if m.status != "" {
		lines = append(lines, styles.StatusStyle.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n")
}

// SummaryLine is the one-line task summary, e.g.
// "FAI triangle · 3/4 points · 212.4km".
func SummaryLine(s task.Summary, unit units.Distance) string {
	return fmt.Sprintf("%s · %d/%d points · %s", s.Title, s.Points, s.Capacity, unit.Format(s.Distance))
}

// ZoneLabel annotates a point's observation zone, e.g. "cylinder 0.5km".
func ZoneLabel(z task.Zone, unit units.Distance) string {
	return fmt.Sprintf("%s %s", z.Shape, unit.Format(z.Radius))
}

// LegLabel renders a leg distance, or nothing for legs of 10 m or less.
func LegLabel(meters float64, unit units.Distance) string {
	if meters <= minLegDistance {
		return ""
	}
	return unit.Format(meters)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
