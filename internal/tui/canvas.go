package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/slate/internal/ipc"
)

// renderCanvas draws the board as ASCII art: one character cell per
// scaled surface unit, components back-to-front so overlaps show the
// front component.
func renderCanvas(components []ipc.ComponentInfo, surfaceW, surfaceH float64, width, height int, selected string) []string {
	if width < 5 || height < 3 || surfaceW <= 0 || surfaceH <= 0 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Components arrive ascending by z, so later draws win.
	for _, c := range components {
		if !c.Visible {
			continue
		}
		drawComponent(canvas, c, surfaceW, surfaceH, width, height, c.ID == selected)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawComponent(canvas [][]rune, c ipc.ComponentInfo, surfaceW, surfaceH float64, canvasW, canvasH int, selected bool) {
	x1 := int(c.X / surfaceW * float64(canvasW))
	y1 := int(c.Y / surfaceH * float64(canvasH))
	x2 := int((c.X + c.Width) / surfaceW * float64(canvasW))
	y2 := int((c.Y + c.Height) / surfaceH * float64(canvasH))

	// Clamp to canvas bounds
	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}

	// Need at least 2x2 for a box
	if x2 <= x1 || y2 <= y1 {
		return
	}

	horiz, vert := '─', '│'
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if selected {
		horiz, vert = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}

	// Clear the interior so boxes underneath don't bleed through.
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			canvas[y][x] = ' '
		}
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = horiz
		canvas[y2][x] = horiz
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = vert
		canvas[y][x2] = vert
	}
	canvas[y1][x1] = tl
	canvas[y1][x2] = tr
	canvas[y2][x1] = bl
	canvas[y2][x2] = br

	label := c.ID
	if c.Locked {
		label = label + " *"
	}
	centerY := (y1 + y2) / 2
	startX := (x1+x2)/2 - len(label)/2
	for i, r := range label {
		x := startX + i
		if x > x1 && x < x2 && centerY > y1 && centerY < y2 {
			canvas[centerY][x] = r
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}

func describeComponent(c ipc.ComponentInfo) string {
	flags := ""
	if c.Locked {
		flags += " locked"
	}
	if !c.Visible {
		flags += " hidden"
	}
	return fmt.Sprintf("%s  (%.0f,%.0f) %.0fx%.0f z=%d%s", c.ID, c.X, c.Y, c.Width, c.Height, c.Z, flags)
}
