package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LaxBloxBoy2/crego/internal/tui/tuistyles"
)

// DataSeries is one line in a chart, e.g. cumulative LP distributions.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series as a terminal line chart.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates a chart with default dimensions.
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Series:     []*DataSeries{},
		Labels:     []string{},
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries appends a data series.
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels.
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions.
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart.
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		b.WriteString(titleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.valueRange()
	b.WriteString(c.renderGrid(lo, hi))

	if c.ShowLegend && len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}

	return b.String()
}

// valueRange finds the padded min and max across all series.
func (c *ASCIIChart) valueRange() (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, series := range c.Series {
		for _, point := range series.Points {
			lo = math.Min(lo, point)
			hi = math.Max(hi, point)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Abs(hi) * 0.1
		if pad == 0 {
			pad = 1
		}
	}
	return lo - pad, hi + pad
}

// renderGrid plots all series onto a rune grid and frames it with axes.
func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	const yAxisWidth = 10
	plotWidth := c.Width - yAxisWidth
	if plotWidth < 10 {
		plotWidth = 10
	}

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = make([]rune, plotWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for idx, series := range c.Series {
		c.plotSeries(grid, series.Points, seriesMarker(idx), lo, hi)
	}

	var out strings.Builder
	span := hi - lo
	yAxisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	for i, row := range grid {
		yValue := hi - (float64(i)/float64(c.Height-1))*span
		out.WriteString(yAxisStyle.Render(chartAxisValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth))
	out.WriteString("\n")

	if len(c.Labels) > 1 {
		out.WriteString(c.renderXAxisLabels(yAxisWidth, plotWidth))
	}

	return out.String()
}

// plotSeries maps points into the grid and connects neighbors. A single
// point lands on the left edge without a connecting line.
func (c *ASCIIChart) plotSeries(grid [][]rune, points []float64, marker rune, lo, hi float64) {
	if len(points) == 0 || hi == lo {
		return
	}
	plotWidth := len(grid[0])

	pos := func(i int) (int, int) {
		x := 0
		if len(points) > 1 {
			x = int(float64(i) / float64(len(points)-1) * float64(plotWidth-1))
		}
		y := c.Height - 1 - int((points[i]-lo)/(hi-lo)*float64(c.Height-1))
		return x, y
	}

	for i := range points {
		x, y := pos(i)
		if x >= 0 && x < plotWidth && y >= 0 && y < c.Height {
			grid[y][x] = marker
		}
		if i > 0 {
			px, py := pos(i - 1)
			drawLine(grid, px, py, x, y, marker)
		}
	}
}

// drawLine connects two grid cells with Bresenham's algorithm, never
// overwriting an existing marker.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, marker rune) {
	dx := intAbs(x1 - x0)
	dy := intAbs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[0]) && grid[y][x] == ' ' {
			grid[y][x] = marker
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels spaces up to five labels under the axis.
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, plotWidth int) string {
	step := len(c.Labels) / 5
	if step == 0 {
		step = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	spacing := plotWidth / 5

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", yAxisWidth+3))
	for i := 0; i < len(c.Labels); i += step {
		if i > 0 {
			gap := spacing - len(c.Labels[i-step])
			if gap < 1 {
				gap = 1
			}
			out.WriteString(strings.Repeat(" ", gap))
		}
		out.WriteString(labelStyle.Render(c.Labels[i]))
	}
	return out.String()
}

// renderLegend lists each series with its marker.
func (c *ASCIIChart) renderLegend() string {
	var items []string
	for i, series := range c.Series {
		marker := lipgloss.NewStyle().
			Foreground(series.Color).
			Render(string(seriesMarker(i)))
		name := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Render(series.Name)
		items = append(items, fmt.Sprintf("%s %s", marker, name))
	}

	return lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Render("Legend: " + strings.Join(items, " • "))
}

// seriesMarker cycles plot characters across series.
func seriesMarker(index int) rune {
	markers := []rune{'●', '■', '▲', '♦'}
	return markers[index%len(markers)]
}

// chartAxisValue formats a Y-axis dollar value compactly.
func chartAxisValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

// intAbs returns the absolute value of an integer.
func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
