package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jask/rushcargo/internal/session"
)

const helpMarkdown = `# RushCargo

Ship packages between **lockers**, **branches** and home addresses.

* Clients pick packages in a locker and send them on.
* Package admins register counter packages and track guides.

Use the arrow keys to move and **enter** to choose.`

// renderHelp renders the title screen help panel. It falls back to the
// raw markdown if the renderer fails.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.Trim(out, "\n")
}

// renderCube rasterises the cube onto a w×h grid, nearest point wins.
func renderCube(c session.Cube, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	depth := make([][]float64, h)
	glyph := make([][]rune, h)
	for y := range glyph {
		glyph[y] = []rune(strings.Repeat(" ", w))
		depth[y] = make([]float64, w)
		for x := range depth[y] {
			depth[y][x] = -10
		}
	}
	for _, p := range c.Points(w, h) {
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h || p.Depth < depth[p.Y][p.X] {
			continue
		}
		depth[p.Y][p.X] = p.Depth
		switch {
		case p.Depth > 0.3:
			glyph[p.Y][p.X] = '#'
		case p.Depth > -0.3:
			glyph[p.Y][p.X] = '+'
		default:
			glyph[p.Y][p.X] = '.'
		}
	}

	lines := make([]string, h)
	for y, row := range glyph {
		var b strings.Builder
		for _, r := range row {
			switch r {
			case '#':
				b.WriteString(cubeNearStyle.Render("#"))
			case '+':
				b.WriteString(cubeMidStyle.Render("+"))
			case '.':
				b.WriteString(cubeFarStyle.Render("."))
			default:
				b.WriteRune(r)
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
