package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/internal/grapheme"
	"github.com/iw2rmb/marginalia/theme"
)

type styleID int

const (
	styleNone styleID = iota
	styleText
	styleCurrentLine
	styleSelection
	styleCursor
	styleGutter
	styleGutterFocus
	styleMinimap
	styleMinimapBox
	styleDivider
	stylePopup
	styleStatus
	numFixedStyles
)

// palette resolves style ids, including one badge style per colour.
type palette struct {
	styles []lipgloss.Style
	badges map[lipgloss.Color]styleID
	merged map[[2]styleID]lipgloss.Style
}

func newPalette(st theme.Styles) *palette {
	p := &palette{
		styles: make([]lipgloss.Style, numFixedStyles),
		badges: make(map[lipgloss.Color]styleID),
		merged: make(map[[2]styleID]lipgloss.Style),
	}
	p.styles[styleNone] = lipgloss.NewStyle()
	p.styles[styleText] = st.Text
	p.styles[styleCurrentLine] = st.CurrentLine
	p.styles[styleSelection] = st.Selection
	p.styles[styleCursor] = st.Cursor
	p.styles[styleGutter] = st.Gutter
	p.styles[styleGutterFocus] = st.GutterFocus
	p.styles[styleMinimap] = st.Minimap
	p.styles[styleMinimapBox] = st.MinimapBox
	p.styles[styleDivider] = st.Divider
	p.styles[stylePopup] = st.Popup
	p.styles[styleStatus] = st.Status
	return p
}

func (p *palette) badge(c lipgloss.Color, st theme.Styles) styleID {
	if id, ok := p.badges[c]; ok {
		return id
	}
	id := styleID(len(p.styles))
	p.styles = append(p.styles, st.Badge(c))
	p.badges[c] = id
	return id
}

// style returns fg layered over bg.
func (p *palette) style(fg, bg styleID) lipgloss.Style {
	k := [2]styleID{fg, bg}
	if s, ok := p.merged[k]; ok {
		return s
	}
	s := p.styles[fg]
	if bg != styleNone {
		s = s.Inherit(p.styles[bg])
	}
	p.merged[k] = s
	return s
}

type cell struct {
	text string // "" marks the trailing half of a wide cluster
	fg   styleID
	bg   styleID
}

// canvas is a grid of terminal cells that grows downwards on demand.
type canvas struct {
	width int
	rows  [][]cell
	pal   *palette
}

func newCanvas(width, height int, pal *palette) *canvas {
	if width < 0 {
		width = 0
	}
	c := &canvas{width: width, pal: pal}
	c.ensure(height - 1)
	return c
}

func (c *canvas) height() int { return len(c.rows) }

func (c *canvas) ensure(y int) {
	for len(c.rows) <= y {
		row := make([]cell, c.width)
		for i := range row {
			row[i] = cell{text: " "}
		}
		c.rows = append(c.rows, row)
	}
}

// fill sets the background of cells [x0, x1) on row y.
func (c *canvas) fill(y, x0, x1 int, bg styleID) {
	if y < 0 {
		return
	}
	c.ensure(y)
	x0 = max(x0, 0)
	x1 = min(x1, c.width)
	for x := x0; x < x1; x++ {
		c.rows[y][x].bg = bg
	}
}

// put writes text at (x, y) and returns the cells written. Clusters that do
// not fit before the right edge are dropped.
func (c *canvas) put(x, y int, text string, fg styleID) int {
	if y < 0 {
		return 0
	}
	c.ensure(y)
	start := x
	for _, g := range grapheme.Split(text) {
		w := grapheme.ClusterWidth(g)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			break
		}
		if x >= 0 {
			c.rows[y][x].text = g
			c.rows[y][x].fg = fg
			if w == 2 {
				c.rows[y][x+1].text = ""
				c.rows[y][x+1].fg = fg
			}
		}
		x += w
	}
	return x - start
}

// restyle replaces the foreground of cell (x, y).
func (c *canvas) restyle(x, y int, fg styleID) {
	if y < 0 || y >= len(c.rows) || x < 0 || x >= c.width {
		return
	}
	c.rows[y][x].fg = fg
}

func (c *canvas) render(from, to int) string {
	from = max(from, 0)
	to = min(to, len(c.rows))
	out := make([]string, 0, max(to-from, 0))
	for y := from; y < to; y++ {
		out = append(out, c.renderRow(c.rows[y]))
	}
	return strings.Join(out, "\n")
}

func (c *canvas) renderRow(row []cell) string {
	var sb strings.Builder
	var run strings.Builder
	cur := [2]styleID{-1, -1}
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(c.pal.style(cur[0], cur[1]).Render(run.String()))
		run.Reset()
	}
	for _, cl := range row {
		if cl.text == "" {
			continue
		}
		k := [2]styleID{cl.fg, cl.bg}
		if k != cur {
			flush()
			cur = k
		}
		run.WriteString(cl.text)
	}
	flush()
	return sb.String()
}
