package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.Fill(' ')
	s.DrawText(0, 0, "Score 120")
	s.DrawTextColored(2, 1, "████", core.ColorCyan)
	s.DrawTextColored(6, 1, "░░", core.ColorDim)
	s.DrawTextColored(0, 2, "??", core.Color(200)) // not in the palette

	out := RenderScreen(s)
	if got := ansi.Strip(out); got != s.String() {
		t.Errorf("stripped output differs:\n got %q\nwant %q", got, s.String())
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("got %d line breaks, want 2", n)
	}
}

func TestEveryPaletteColorHasStyle(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorDim; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
	if _, ok := colorStyles[core.ColorDefault]; ok {
		t.Error("default color should render unstyled")
	}
}
