package tui

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// maxSelectableLevel bounds the level picker. Generation itself is unbounded.
const maxSelectableLevel = 999

// LevelSelection holds the user's choice from the level menu.
type LevelSelection struct {
	Level int
}

// LevelMenuModel lets users continue, restart or pick a level for level mode.
type LevelMenuModel struct {
	cursor        int
	level         int // picker value
	next          int // best cleared + 1
	inLevelSelect bool
	width         int
	height        int
	gen           *levelgen.Generator
	boardW        int
	boardH        int
	keyMapper     *KeyMapper
	selection     LevelSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewLevelMenuModel creates a level menu. Progress is read from store when
// available.
func NewLevelMenuModel(store *storage.Store, bf config.BlockfallConfig, width, height int) LevelMenuModel {
	next := 1
	if store != nil {
		if best, err := store.BestClearedLevel(blockfall.IDLevels); err == nil {
			next = best + 1
		} else {
			logger.Warn("level progress", "error", err)
		}
	}

	return LevelMenuModel{
		next:      next,
		level:     next,
		width:     width,
		height:    height,
		gen:       levelgen.New(bf.Levels),
		boardW:    bf.Board.Width,
		boardH:    bf.Board.Height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleStartKey(action)
}

func (m LevelMenuModel) handleStartKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 2 { // Continue, Level 1, Select Level
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose(m.next)
		case 1:
			return m.choose(1)
		case 2:
			m.inLevelSelect = true
			m.level = m.next
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m LevelMenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.level++
	case MenuActionDown:
		m.level--
	case MenuActionRight:
		m.level += 10
	case MenuActionLeft:
		m.level -= 10
	case MenuActionSelect:
		return m.choose(m.level)
	case MenuActionBack:
		m.inLevelSelect = false
	}
	m.level = core.Clamp(m.level, 1, maxSelectableLevel)

	return m, nil
}

func (m LevelMenuModel) choose(level int) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = LevelSelection{Level: level}
	return m, tea.Quit
}

// View renders the menu.
func (m LevelMenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewStart()
}

func (m LevelMenuModel) viewStart() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L E V E L S"), m.width))
	b.WriteString("\n\n")

	options := []string{
		fmt.Sprintf("Continue (level %d)", m.next),
		"Start at level 1",
		"Select level...",
	}
	for i, opt := range options {
		line := "  " + opt
		if i == m.cursor {
			line = menuCursor.Render("> " + opt)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m LevelMenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuCursor.Render(fmt.Sprintf("< %d >", m.level)), m.width))
	b.WriteString("\n\n")

	for _, line := range m.preview(m.level) {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: ±1  |  Left/Right: ±10  |  Enter: Play  |  Esc: Back"), m.width))

	return b.String()
}

// preview describes a level. Obstacles are random, so block-dependent
// numbers are approximate.
func (m LevelMenuModel) preview(level int) []string {
	d := m.gen.Generate(rand.New(rand.NewSource(int64(level))), level, m.boardW, m.boardH)

	goal := fmt.Sprintf("~%d points", d.ScoreTarget)
	if d.TargetType == levelgen.TargetLines {
		goal = fmt.Sprintf("%d lines", d.LinesTarget)
	}
	pattern := string(d.Pattern)
	if pattern == "" {
		pattern = "none"
	}
	return []string{
		"Goal:     " + goal,
		fmt.Sprintf("Moves:    ~%d", d.AllowedMoves),
		fmt.Sprintf("Filled:   %d rows", d.FillRows),
		"Pattern:  " + pattern,
	}
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level menu. A nil selection means back or quit.
func RunLevelSelector(store *storage.Store, bf config.BlockfallConfig, cfg core.RuntimeConfig) (*LevelSelection, error) {
	model := NewLevelMenuModel(store, bf, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
