// Package blockfall registers the falling-block game modes with the
// platform. It adapts the rules engine to the registry.Game contract:
// actions become engine inputs, frames become clock time, and engine
// events drive the level tracker and the on-screen messages.
package blockfall

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/ai"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelfile"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/levelgen"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon" // endless, manual
	ModeLevels   Mode = "levels"   // generated levels with targets and a move budget
	ModeAutoplay Mode = "autoplay" // AI plays from the first piece
)

// Game IDs, also used as score table keys.
const (
	IDMarathon = "blockfall"
	IDLevels   = "blockfall_levels"
	IDAutoplay = "blockfall_ai"
)

const messageTicks = 90

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	startLevel       int
	levelFile        string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a config file that overrides the default search.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the first level for level mode. 0 means level 1.
func SetStartLevel(level int) {
	startLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return startLevel
}

// SetLevelFile makes level mode open with a descriptor loaded from path.
func SetLevelFile(path string) {
	levelFile = path
}

// SetLogger sets the logger used by games and their engines.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements registry.Game for one mode.
type Game struct {
	mode    Mode
	cfg     config.BlockfallConfig
	rng     *rand.Rand
	eng     *engine.Engine
	planner *ai.Planner
	tickDur time.Duration

	inventory Inventory

	// Level mode
	tracker  *LevelTracker
	outcome  Outcome
	banked   int // score carried over from cleared levels
	results  []core.LevelResult
	fileDesc *levelgen.Descriptor
	startAt  int // per-instance start level, overrides the package setting

	tick     uint64
	screenW  int
	screenH  int
	tooSmall bool

	message      string
	messageTimer int
}

// New creates a marathon game.
func New() *Game { return NewMode(ModeMarathon) }

// NewLevels creates a level-mode game.
func NewLevels() *Game { return NewMode(ModeLevels) }

// NewAutoplay creates a game played by the AI.
func NewAutoplay() *Game { return NewMode(ModeAutoplay) }

// NewMode creates a game in mode m.
func NewMode(m Mode) *Game {
	return &Game{mode: m, cfg: config.DefaultBlockfallConfig()}
}

func init() {
	registry.Register(IDMarathon, func() registry.Game { return New() })
	registry.Register(IDLevels, func() registry.Game { return NewLevels() })
	registry.Register(IDAutoplay, func() registry.Game { return NewAutoplay() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeLevels:
		return IDLevels
	case ModeAutoplay:
		return IDAutoplay
	default:
		return IDMarathon
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeLevels:
		return "Blockfall (Levels)"
	case ModeAutoplay:
		return "Blockfall (Autoplay)"
	default:
		return "Blockfall"
	}
}

// StartAt sets the first level of this instance, for hosts running
// several sessions at once.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// Reset initializes or restarts the game. In level mode a restart retries
// the level that was being played.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickDur = time.Second / time.Duration(tickRate)
	g.message = ""
	g.messageTimer = 0

	g.cfg = loadConfig()
	g.planner = ai.New(g.cfg.AI.Weights)
	g.inventory = Inventory{AIAssist: g.cfg.Powerups.AIAssist, ClearRow: g.cfg.Powerups.ClearRow}

	switch g.mode {
	case ModeLevels:
		retry := 0
		if g.tracker != nil {
			retry = g.tracker.Level()
		}
		g.tracker = NewLevelTracker(g.cfg.Levels)
		g.banked = 0
		g.loadLevelFile()
		g.beginLevel(retry)
	case ModeAutoplay:
		g.newEngine(nil)
		g.eng.HandleInput(engine.InputToggleAI)
		g.eng.Start()
	default:
		g.newEngine(nil)
		g.eng.Start()
	}
	g.tooSmall = !g.fits()
}

// loadConfig reads the config file and applies the difficulty preset.
// Errors fall back to defaults so a bad file never blocks play.
func loadConfig() config.BlockfallConfig {
	cfg, err := config.LoadBlockfall(configPath)
	if err != nil {
		logger.Warn("config", "error", err)
	}
	if difficultyPreset != "" {
		preset, err := config.ParsePreset(difficultyPreset)
		if err != nil {
			logger.Warn("difficulty", "error", err)
		} else {
			config.ApplyBlockfallPreset(&cfg, preset)
		}
	}
	return cfg
}

func (g *Game) loadLevelFile() {
	if levelFile == "" || g.fileDesc != nil {
		return
	}
	d, err := levelfile.Load(levelFile)
	if err != nil {
		logger.Error("level file", "path", levelFile, "error", err)
		return
	}
	g.fileDesc = d
}

func (g *Game) newEngine(board *engine.Board) {
	g.eng = engine.New(g.cfg.EngineSettings(), g.rng,
		engine.WithPlanner(g.planner),
		engine.WithLogger(logger),
		engine.WithBoard(board),
	)
}

// beginLevel starts level, or the configured start level when level is 0.
func (g *Game) beginLevel(level int) {
	if level <= 0 {
		level = max(1, startLevel)
		if g.startAt > 0 {
			level = g.startAt
		}
		if g.fileDesc != nil {
			level = g.fileDesc.Level
		}
	}

	var d *levelgen.Descriptor
	if g.fileDesc != nil && g.fileDesc.Level == level {
		g.tracker.Begin(g.fileDesc)
		d = g.fileDesc
	} else {
		d = g.tracker.Generate(g.rng, level, g.cfg.Board.Width, g.cfg.Board.Height)
	}

	g.outcome = OutcomePlaying
	g.newEngine(d.Board)
	g.eng.Start()
	g.flash(fmt.Sprintf("Level %d", d.Level))
	logger.Info("level start", "level", d.Level, "target", d.TargetType, "goal", d.Target(), "moves", d.AllowedMoves, "pattern", d.Pattern)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++
	if g.messageTimer > 0 {
		g.messageTimer--
		if g.messageTimer == 0 {
			g.message = ""
		}
	}

	if g.mode == ModeLevels && g.outcome == OutcomeCleared {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionDrop) {
			g.beginLevel(g.tracker.Level() + 1)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.eng.Paused() {
			g.eng.Resume()
		} else {
			g.eng.Pause()
		}
	}

	for _, a := range in.Ordered() {
		g.apply(a)
	}
	g.eng.Advance(g.tickDur)
	g.drainEvents()

	return core.StepResult{State: g.State()}
}

// apply maps one platform action onto the engine.
func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.eng.HandleInput(engine.InputLeft)
	case core.ActionRight:
		g.eng.HandleInput(engine.InputRight)
	case core.ActionUp:
		g.eng.HandleInput(engine.InputRotate)
	case core.ActionDown:
		g.eng.HandleInput(engine.InputSoftDrop)
	case core.ActionDrop:
		g.eng.HandleInput(engine.InputHardDrop)
	case core.ActionHold:
		g.eng.HandleInput(engine.InputHold)
	case core.ActionToggleAI:
		g.eng.HandleInput(engine.InputToggleAI)
	case core.ActionAssist:
		if !g.inventory.use(g.eng, engine.PowerupAIAssist) {
			g.flash("No assist left")
		}
	case core.ActionClearRow:
		if !g.inventory.use(g.eng, engine.PowerupClearRow) {
			g.flash("No row clears left")
		}
	}
}

func (g *Game) drainEvents() {
	for _, ev := range g.eng.DrainEvents() {
		switch ev := ev.(type) {
		case engine.ShapePlacedEvent:
			if g.tracker != nil {
				g.tracker.Place()
			}
		case engine.LinesClearedEvent:
			if n := len(ev.Rows); n > 1 {
				g.flash(fmt.Sprintf("%d lines!", n))
			}
		case engine.LevelChangedEvent:
			g.flash(fmt.Sprintf("Speed %d", ev.Level))
		case engine.PowerupUsedEvent:
			g.flash(ev.Powerup.String())
		case engine.AIModeChangedEvent:
			if ev.Enabled {
				g.flash("AI on")
			} else {
				g.flash("AI off")
			}
		}
	}
	if g.mode == ModeLevels && g.outcome == OutcomePlaying {
		g.checkLevel()
	}
}

func (g *Game) checkLevel() {
	score, lines := g.eng.Score(), g.eng.Lines()
	o := g.tracker.Outcome(score, lines, g.eng.GameOver())
	if o == OutcomePlaying {
		return
	}
	g.outcome = o
	cleared := o == OutcomeCleared
	g.results = append(g.results, g.tracker.Result(score, lines, cleared))
	if cleared {
		g.banked += score
	}
	g.eng.Stop()
	g.eng.DrainEvents()
	logger.Info("level end", "level", g.tracker.Level(), "outcome", o, "score", score, "lines", lines, "moves", g.tracker.Moves())
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTimer = messageTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		Level:    g.eng.Level(),
		GameOver: g.eng.GameOver(),
		Paused:   g.eng.Paused(),
	}
	if g.mode == ModeLevels {
		st.Level = g.tracker.Level()
		st.GameOver = g.outcome == OutcomeFailed
		if g.outcome == OutcomeCleared {
			st.Score = g.banked
		} else {
			st.Score += g.banked
		}
	}
	return st
}

// DrainLevelResults implements registry.LevelReporter.
func (g *Game) DrainLevelResults() []core.LevelResult {
	r := g.results
	g.results = nil
	return r
}

// Engine exposes the running engine to hosts that drive it directly.
func (g *Game) Engine() *engine.Engine { return g.eng }

// Inventory returns the powerups left.
func (g *Game) Inventory() Inventory { return g.inventory }

// Outcome returns the level-mode outcome of the current level.
func (g *Game) Outcome() Outcome { return g.outcome }

var (
	_ registry.LevelReporter = (*Game)(nil)
	_ registry.Resizer       = (*Game)(nil)
)
