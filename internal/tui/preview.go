package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskedit/internal/core/styles"
	"github.com/colonyops/taskedit/internal/core/task"
)

const (
	legRune   = '·'
	blankRune = ' '
)

// cell is a canvas position.
type cell struct{ col, row int }

// Preview is a coarse plot of a task on a character grid.
type Preview struct {
	Width    int
	Height   int
	Points   []task.Point
	Selected int // point index to highlight, -1 for none
}

// Render draws the legs and point markers. Markers are S for the start,
// F for the finish and the turnpoint number otherwise.
func (p Preview) Render() string {
	if p.Width < 3 || p.Height < 3 {
		return ""
	}
	if len(p.Points) == 0 {
		return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center,
			styles.PreviewLegStyle.Render("no points"))
	}

	grid := make([][]rune, p.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(blankRune), p.Width))
	}

	cells := project(p.Points, p.Width, p.Height)
	for i := 1; i < len(cells); i++ {
		drawLine(grid, cells[i-1], cells[i])
	}

	markers := make(map[cell]int, len(cells))
	for i, c := range cells {
		grid[c.row][c.col] = markerRune(i, len(cells))
		markers[c] = i
	}

	var b strings.Builder
	for row, line := range grid {
		for col, r := range line {
			idx, isMarker := markers[cell{col, row}]
			switch {
			case isMarker && idx == p.Selected:
				b.WriteString(styles.PreviewPointStyle.Reverse(true).Render(string(r)))
			case isMarker:
				b.WriteString(styles.PreviewPointStyle.Render(string(r)))
			case r == legRune:
				b.WriteString(styles.PreviewLegStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		if row < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func markerRune(index, size int) rune {
	switch task.RoleAt(index, size) {
	case task.RoleStart:
		return 'S'
	case task.RoleFinish:
		return 'F'
	}
	if index < 10 {
		return rune('0' + index)
	}
	return rune('a' + index - 10)
}

// project maps points onto the grid using an equirectangular projection
// around the mean latitude. Cells are treated as twice as tall as wide.
func project(points []task.Point, width, height int) []cell {
	var meanLat float64
	for _, p := range points {
		meanLat += p.Waypoint.Location.Lat
	}
	meanLat /= float64(len(points))
	cosLat := math.Cos(meanLat * math.Pi / 180)

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		xs[i] = p.Waypoint.Location.Lon * cosLat
		ys[i] = p.Waypoint.Location.Lat
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	w := float64(width - 1)
	h := float64(height - 1)

	scale := math.Inf(1)
	if dx := maxX - minX; dx > 0 {
		scale = w / dx
	}
	if dy := maxY - minY; dy > 0 {
		scale = math.Min(scale, 2*h/dy)
	}
	if math.IsInf(scale, 1) {
		scale = 0
	}

	offX := (w - (maxX-minX)*scale) / 2
	offY := (h - (maxY-minY)*scale/2) / 2

	cells := make([]cell, len(points))
	for i := range points {
		cells[i] = cell{
			col: clamp(int(math.Round((xs[i]-minX)*scale+offX)), 0, width-1),
			row: clamp(int(math.Round((maxY-ys[i])*scale/2+offY)), 0, height-1),
		}
	}
	return cells
}

// drawLine plots a leg with Bresenham's algorithm, leaving the end cells
// for the markers.
func drawLine(grid [][]rune, from, to cell) {
	dx := abs(to.col - from.col)
	dy := -abs(to.row - from.row)
	sx, sy := 1, 1
	if from.col > to.col {
		sx = -1
	}
	if from.row > to.row {
		sy = -1
	}

	err := dx + dy
	c := from
	for c != to {
		if c != from && grid[c.row][c.col] == blankRune {
			grid[c.row][c.col] = legRune
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c.col += sx
		}
		if e2 <= dx {
			err += dx
			c.row += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
