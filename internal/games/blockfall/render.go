package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
)

const (
	cellWidth  = 2 // terminal columns per board cell
	panelWidth = 22
	panelGap   = 2
)

// layout returns the board origin (top-left border corner) and the side
// panel column.
func (g *Game) layout() (boardX, boardY, panelX int) {
	w, _ := g.boardSize()
	boardW := w*cellWidth + 2
	totalW := boardW + panelGap + panelWidth
	boardX = max(0, (g.screenW-totalW)/2)
	boardY = 1
	panelX = boardX + boardW + panelGap
	return boardX, boardY, panelX
}

// fits reports whether the board, its border, the title row and the side
// panel fit on screen.
func (g *Game) fits() bool {
	w, h := g.boardSize()
	boardW := w*cellWidth + 2
	boardH := h + 2
	return g.screenW >= boardW+panelGap+panelWidth && g.screenH >= boardH+1
}

// boardSize returns the dimensions of the board in play. A loaded level
// file may differ from the configured board.
func (g *Game) boardSize() (width, height int) {
	if g.eng != nil {
		b := g.eng.Board()
		return b.Width(), b.Height()
	}
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// Resize updates the screen size without restarting the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = !g.fits()
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.eng == nil {
		g.renderTooSmall(dst)
		return
	}

	boardX, boardY, panelX := g.layout()
	b := g.eng.Board()
	boardW := b.Width()*cellWidth + 2
	boardH := b.Height() + 2

	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightCyan)

	dst.DrawBoxColored(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)
	g.renderBoard(dst, b, boardX+1, boardY+1)
	g.renderPanel(dst, panelX, boardY)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := g.screenH / 2
	dst.DrawTextCentered(y, msg)

	w, h := g.boardSize()
	hint := fmt.Sprintf("Need %dx%d", w*cellWidth+2+panelGap+panelWidth, h+3)
	dst.DrawTextCentered(y+1, hint)
}

// renderBoard draws locked cells, the ghost and the falling piece.
func (g *Game) renderBoard(dst *core.Screen, b *engine.Board, x0, y0 int) {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.At(x, y)
			if c.Filled {
				drawCell(dst, x0, y0, x, y, "██", c.Color)
			} else {
				drawCell(dst, x0, y0, x, y, " .", core.ColorDim)
			}
		}
	}

	if g.eng.GameOver() {
		return
	}
	cur := g.eng.Current()
	ghostY := g.eng.GhostY()
	if ghostY != cur.Y {
		for _, p := range cur.Cells() {
			if gp := p.Add(0, ghostY-cur.Y); gp.Y >= 0 {
				drawCell(dst, x0, y0, gp.X, gp.Y, "░░", core.ColorDim)
			}
		}
	}
	for _, p := range cur.Cells() {
		if p.Y >= 0 {
			drawCell(dst, x0, y0, p.X, p.Y, "██", cur.Color)
		}
	}
}

func drawCell(dst *core.Screen, x0, y0, x, y int, glyph string, c core.Color) {
	dst.DrawTextColored(x0+x*cellWidth, y0+y, glyph, c)
}

// renderPanel draws score, previews, AI state and level goals.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	st := g.State()
	label := func(row int, name string, value any) {
		dst.DrawTextColored(x, y+row, name, core.ColorGray)
		dst.DrawText(x+8, y+row, fmt.Sprint(value))
	}

	label(0, "Score", st.Score)
	label(1, "Lines", st.Lines)
	if g.mode == ModeLevels {
		label(2, "Level", st.Level)
	} else {
		label(2, "Speed", st.Level)
	}

	dst.DrawTextColored(x, y+4, "Next", core.ColorGray)
	drawPreview(dst, x, y+5, g.eng.Next())
	dst.DrawTextColored(x+11, y+4, "Hold", core.ColorGray)
	if held := g.eng.Held(); held != nil {
		drawPreview(dst, x+11, y+5, held)
	}

	row := 8
	aiState := "off"
	if g.eng.AIMode() {
		aiState = fmt.Sprintf("on (%d)", g.eng.AISpeed())
	}
	label(row, "AI", aiState)
	row += 2
	dst.DrawTextColored(x, y+row, "Powerups", core.ColorGray)
	dst.DrawText(x, y+row+1, fmt.Sprintf("[1] assist x%d", g.inventory.AIAssist))
	dst.DrawText(x, y+row+2, fmt.Sprintf("[2] clear  x%d", g.inventory.ClearRow))
	row += 4

	if g.mode == ModeLevels {
		if d := g.tracker.Descriptor(); d != nil {
			goal := fmt.Sprintf("%d pts", d.ScoreTarget)
			if d.TargetType == levelgen.TargetLines {
				goal = fmt.Sprintf("%d lines", d.LinesTarget)
			}
			label(row, "Goal", goal)
			label(row+1, "Moves", g.tracker.MovesLeft())
			row += 3
		}
	}

	if g.message != "" {
		dst.DrawTextColored(x, y+row, g.message, core.ColorBrightYellow)
	}
}

// drawPreview draws a piece with its top-left cell at (x, y).
func drawPreview(dst *core.Screen, x, y int, p *engine.Piece) {
	for r := 0; r < p.Height(); r++ {
		for c := 0; c < p.Width(); c++ {
			if p.FilledAt(c, r) {
				dst.DrawTextColored(x+c*cellWidth, y+r, "██", p.Color)
			}
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.mode == ModeLevels && g.outcome == OutcomeCleared:
		g.drawOverlay(dst, centerX, centerY,
			fmt.Sprintf("LEVEL %d CLEARED", g.tracker.Level()),
			"Enter for next level")
	case g.mode == ModeLevels && g.outcome == OutcomeFailed:
		reason := "Out of moves"
		if g.tracker.MovesLeft() > 0 {
			reason = "Topped out"
		}
		g.drawOverlay(dst, centerX, centerY, "LEVEL FAILED", reason, "Press R to retry")
	case g.eng.GameOver():
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Score: %d", g.eng.Score()), "Press R to restart")
	case g.eng.Paused():
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
