package woods

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-woods/internal/core"
)

const (
	sidebarW = 22
	hudH     = 1
)

// layout maps the board onto the screen. Each cell is cw x ch characters;
// in compact mode grid lines are dropped and cells show as dots.
type layout struct {
	ox, oy     int
	cw, ch     int
	boxW, boxH int
	offY       int
	compact    bool
	sideX      int
	tooSmall   bool

	resetBtn core.Rect
	menuBtn  core.Rect
	okBtn    core.Rect
}

func (g *Game) layout() layout {
	var l layout
	if g.ctrl == nil || g.ctrl.Phase() == PhaseNotStarted {
		l.tooSmall = true
		return l
	}
	s := g.ctrl.Setup()
	w, h := g.runtime.ScreenW, g.runtime.ScreenH

	l.cw, l.ch = 4, 2
	l.boxW, l.boxH = s.GridW*4+1, s.GridH*2+1
	if l.boxW+sidebarW+1 > w || l.boxH+hudH > h {
		l.compact = true
		l.cw, l.ch, l.offY = 2, 1, 1
		l.boxW, l.boxH = s.GridW*2+1, s.GridH+2
	}
	if l.boxW+sidebarW+1 > w || l.boxH+hudH > h || h < 18 {
		l.tooSmall = true
		return l
	}

	l.ox = (w - l.boxW - sidebarW - 1) / 2
	l.oy = hudH + (h-hudH-l.boxH)/2
	l.sideX = l.ox + l.boxW + 2

	btnY := min(h-1, hudH+16)
	l.resetBtn = core.NewRect(l.sideX, btnY, len("[ Reset ]"), 1)
	l.menuBtn = core.NewRect(l.sideX+len("[ Reset ]")+1, btnY, len("[ Menu ]"), 1)
	if g.ctrl.ShowingInstructions() {
		l.okBtn = core.NewRect(l.ox+(l.boxW-len("[ OK ]"))/2, l.oy+l.boxH/2+2, len("[ OK ]"), 1)
	}
	return l
}

// cellAt converts a board position to a screen cell.
func (l layout) cellAt(p core.Vec, cell float64) (int, int) {
	x := l.ox + int(math.Floor(p.X/cell*float64(l.cw)))
	y := l.oy + l.offY + int(math.Floor(p.Y/cell*float64(l.ch)))
	return x, y
}

// Render draws the board, actors, sidebar and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	l := g.layout()
	if l.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue")
		return
	}

	dst.DrawTextCentered(0, "Wandering in the Woods - "+g.Title())
	g.renderBoard(dst, l)
	g.renderActors(dst, l)
	g.renderOverlay(dst, l)
	g.renderSidebar(dst, l)
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	s := g.ctrl.Setup()
	outer := core.NewRect(l.ox, l.oy, l.boxW, l.boxH)

	if l.compact {
		dst.DrawBox(outer, core.ColorGray)
		for cy := 0; cy < s.GridH; cy++ {
			for cx := 0; cx < s.GridW; cx++ {
				dst.SetColored(l.ox+cx*l.cw+1, l.oy+1+cy, '·', core.ColorGray)
			}
		}
		return
	}

	for k := 0; k <= s.GridH; k++ {
		dst.DrawHLine(l.ox, l.oy+k*l.ch, l.boxW, '─', core.ColorGray)
	}
	for k := 0; k <= s.GridW; k++ {
		x := l.ox + k*l.cw
		dst.DrawVLine(x, l.oy, l.boxH, '│', core.ColorGray)
		for j := 1; j < s.GridH; j++ {
			dst.SetColored(x, l.oy+j*l.ch, '┼', core.ColorGray)
		}
	}
	dst.DrawBox(outer, core.ColorGray)
}

func (g *Game) renderActors(dst *core.Screen, l layout) {
	actors := g.ctrl.Actors()
	// Lower orders are drawn last so leaders stay visible when stacked.
	for i := len(actors) - 1; i >= 0; i-- {
		a := actors[i]
		x, y := l.cellAt(a.Pos, g.ctrl.CellSize())
		glyph := rune('0' + a.Order)
		if a.Selected {
			dst.SetColored(x-1, y, '[', core.ColorBrightWhite)
			dst.SetColored(x+1, y, ']', core.ColorBrightWhite)
		}
		dst.SetColored(x, y, glyph, core.ActorColor(a.Order))
	}
}

func (g *Game) renderSidebar(dst *core.Screen, l layout) {
	x, y := l.sideX, l.oy
	stats := g.ctrl.Stats()
	s := g.ctrl.Setup()

	dst.DrawText(x, y, "Time:   "+FormatClock(g.ctrl.GameTime()))
	y += 2

	for _, a := range g.ctrl.Actors() {
		status := ""
		switch {
		case a.Leader:
			status = " lead"
		case a.Found:
			status = " found"
		case !a.Placed:
			status = " ..."
		}
		dst.DrawTextColored(x, y, fmt.Sprintf("P%d", a.Order), core.ActorColor(a.Order))
		dst.DrawText(x+3, y, fmt.Sprintf("moves %-3d%s", a.Moves, status))
		y++
	}
	y++

	dst.DrawText(x, y, fmt.Sprintf("Board:  %d x %d", s.GridW, s.GridH))
	dst.DrawText(x, y+1, "Wander: "+g.ctrl.Protocol().Label())
	y += 3

	dst.DrawText(x, y, fmt.Sprintf("Runs:   %d", stats.Runs))
	dst.DrawText(x, y+1, "Avg:    "+FormatClock(stats.AverageTime()))
	if stats.HasBest() {
		dst.DrawText(x, y+2, "Best:   "+FormatClock(stats.Best.Time))
		dst.DrawText(x+8, y+3, fmt.Sprintf("%dx%d %s", stats.Best.Width, stats.Best.Height, stats.Best.Protocol.Label()))
	}

	dst.DrawTextColored(l.resetBtn.X, l.resetBtn.Y, "[ Reset ]", core.ColorCyan)
	dst.DrawTextColored(l.menuBtn.X, l.menuBtn.Y, "[ Menu ]", core.ColorCyan)
}

func (g *Game) renderOverlay(dst *core.Screen, l layout) {
	var lines []string
	switch {
	case g.ctrl.ShowingInstructions():
		lines = []string{
			"Place every player.",
			"Arrows move, Enter places.",
		}
	case g.ctrl.Phase() == PhaseAwaitingPlacement:
		dst.DrawText(l.ox, l.oy+l.boxH, fmt.Sprintf("Placing player %d: arrows, Enter", g.ctrl.Selected()+1))
		return
	case g.ctrl.AllFound():
		lines = []string{
			"Everyone is found!",
			"Time " + FormatClock(g.ctrl.GameTime()),
			"R to play again",
		}
	case g.paused:
		lines = []string{"Paused", "Press P to continue"}
	default:
		return
	}

	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	box := core.NewRect(l.ox+(l.boxW-width-4)/2, l.oy+l.boxH/2-2, width+4, len(lines)+4)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, line := range lines {
		dst.DrawText(box.X+2, box.Y+1+i, line)
	}
	if l.okBtn.W > 0 {
		dst.DrawTextColored(l.okBtn.X, l.okBtn.Y, "[ OK ]", core.ColorCyan)
	}
}

// FormatClock renders seconds as H:MM:SS, rounded to the nearest second.
func FormatClock(seconds float64) string {
	d := time.Duration(math.Round(seconds)) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
}
