package render

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar colours: blue bars, red highlights, green once sorted.
const (
	colorBar       = lipgloss.Color("12")
	colorHighlight = lipgloss.Color("9")
	colorDone      = lipgloss.Color("10")
	colorMuted     = lipgloss.Color("241")
)

const (
	barGlyph    = "█"
	markerGlyph = "^"
)

// DefaultHeight is the chart height in rows when none is given.
const DefaultHeight = 12

// BarChart renders arrays as vertical bars, one column per element.
type BarChart struct {
	height    int
	bar       lipgloss.Style
	highlight lipgloss.Style
	done      lipgloss.Style
	muted     lipgloss.Style
}

// NewBarChart creates a chart of the given height using r for colour
// detection. A nil r uses lipgloss.DefaultRenderer(); height < 1 uses
// DefaultHeight.
func NewBarChart(r *lipgloss.Renderer, height int) *BarChart {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if height < 1 {
		height = DefaultHeight
	}
	return &BarChart{
		height:    height,
		bar:       r.NewStyle().Foreground(colorBar),
		highlight: r.NewStyle().Foreground(colorHighlight).Bold(true),
		done:      r.NewStyle().Foreground(colorDone),
		muted:     r.NewStyle().Foreground(colorMuted),
	}
}

// Height returns the number of bar rows.
func (c *BarChart) Height() int { return c.height }

// View draws values with the highlighted indices emphasised. A marker row
// under the bars points at every highlighted column so the emphasis
// survives on terminals without colour.
func (c *BarChart) View(values []int, highlighted []int) string {
	hl := make(map[int]bool, len(highlighted))
	for _, i := range highlighted {
		hl[i] = true
	}
	return c.draw(values, func(i int) lipgloss.Style {
		if hl[i] {
			return c.highlight
		}
		return c.bar
	}, hl)
}

// Done draws values entirely in the "sorted" colour, without markers.
func (c *BarChart) Done(values []int) string {
	return c.draw(values, func(int) lipgloss.Style { return c.done }, nil)
}

func (c *BarChart) draw(values []int, style func(int) lipgloss.Style, marks map[int]bool) string {
	if len(values) == 0 {
		return c.muted.Render("(empty)")
	}

	heights := scale(values, c.height)
	rows := make([]string, 0, c.height+1)

	var b strings.Builder
	for row := c.height; row >= 1; row-- {
		b.Reset()
		for i, h := range heights {
			if h >= row {
				b.WriteString(style(i).Render(barGlyph))
			} else {
				b.WriteString(" ")
			}
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}

	if len(marks) > 0 {
		b.Reset()
		for i := range values {
			if marks[i] {
				b.WriteString(c.highlight.Render(markerGlyph))
			} else {
				b.WriteString(" ")
			}
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(rows, "\n")
}

// scale maps values onto [0, rows]. The largest value fills every row;
// any positive value gets at least one row so small bars stay visible.
func scale(values []int, rows int) []int {
	top := slices.Max(values)
	out := make([]int, len(values))
	if top <= 0 {
		return out
	}
	for i, v := range values {
		if v <= 0 {
			continue
		}
		h := (v*rows + top - 1) / top // ceil(v*rows/top)
		out[i] = max(h, 1)
	}
	return out
}
