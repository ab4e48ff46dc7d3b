package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the lifecycle state of an Engine.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Input is a logical key understood by HandleInput.
type Input int

const (
	InputLeft Input = iota
	InputRight
	InputRotate   // up
	InputSoftDrop // down
	InputHardDrop // space
	InputHold
	InputToggleAI
)

// Planner chooses a placement for the current piece. It receives copies of
// the board and piece and returns the number of clockwise rotations to
// apply and the target column.
type Planner interface {
	BestMove(board *Board, piece *Piece) (rotation, column int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithPlanner sets the move planner used by AI mode and the assist powerup.
func WithPlanner(p Planner) Option {
	return func(e *Engine) { e.planner = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBoard starts the engine on a copy of b instead of an empty board,
// as Initialize(b) would.
func WithBoard(b *Board) Option {
	return func(e *Engine) { e.initial = b }
}

// WithListener registers a callback invoked for every event.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// Engine owns the board, the active, next and held pieces, and the two
// clocks. All methods must be called from a single goroutine.
type Engine struct {
	settings  Settings
	rng       *rand.Rand
	logger    *log.Logger
	planner   Planner
	listeners []Listener
	initial   *Board // consumed by New

	board   *Board
	current *Piece
	next    *Piece
	held    *Piece
	hasHeld bool // a hold happened since the last lock

	phase  Phase
	score  int
	lines  int
	level  int
	aiMode bool

	gravity *Timer
	aiTimer *Timer
	events  []Event
}

// New creates an engine and initializes it with an empty board, or the
// WithBoard board. A nil rng is replaced by a time-seeded source.
func New(settings Settings, rng *rand.Rand, opts ...Option) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		settings: settings.normalized(),
		rng:      rng,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Initialize(e.initial)
	e.initial = nil
	return e
}

// Initialize resets the engine to Ready. A non-nil prefilled board is
// copied and becomes the playfield; its size overrides the settings.
func (e *Engine) Initialize(prefilled *Board) {
	if prefilled != nil {
		e.board = prefilled.Clone()
		e.settings.Width = prefilled.Width()
		e.settings.Height = prefilled.Height()
	} else {
		e.board = NewBoard(e.settings.Width, e.settings.Height)
	}

	e.phase = PhaseReady
	e.score = 0
	e.lines = 0
	e.level = e.settings.StartLevel
	e.aiMode = false
	e.held = nil
	e.hasHeld = false
	e.events = nil

	e.gravity = NewTimer(e.gravityInterval())
	e.aiTimer = NewTimer(AIInterval(e.settings.AISpeed))

	e.current = RandomShape(e.rng)
	e.spawn(e.current)
	e.next = RandomShape(e.rng)
}

// Start moves a Ready engine to Running. Any other phase is a no-op.
func (e *Engine) Start() {
	if e.phase != PhaseReady {
		return
	}
	e.phase = PhaseRunning
	e.startClocks()
	e.logger.Debug("game started", "width", e.board.Width(), "height", e.board.Height())
	e.emit(GameStartedEvent{})
	e.emitShapeChanged()
}

// Pause stops both clocks. Only a Running engine can be paused.
func (e *Engine) Pause() {
	if e.phase != PhaseRunning {
		return
	}
	e.phase = PhasePaused
	e.stopClocks()
	e.logger.Debug("game paused")
	e.emit(GamePausedEvent{})
}

// Resume restarts the clocks of a Paused engine, keeping their intervals.
func (e *Engine) Resume() {
	if e.phase != PhasePaused {
		return
	}
	e.phase = PhaseRunning
	e.startClocks()
	e.logger.Debug("game resumed")
	e.emit(GameResumedEvent{})
}

// Stop ends the game permanently. Calling it again is a no-op.
func (e *Engine) Stop() {
	if e.phase == PhaseOver {
		return
	}
	e.finish(true)
}

// Advance feeds elapsed host time to the gravity and AI clocks and runs
// the ticks that fall due.
func (e *Engine) Advance(dt time.Duration) {
	if e.phase != PhaseRunning {
		return
	}
	for n := e.gravity.Advance(dt); n > 0 && e.phase == PhaseRunning; n-- {
		e.Tick()
	}
	if e.phase != PhaseRunning || !e.aiMode {
		return
	}
	for n := e.aiTimer.Advance(dt); n > 0 && e.phase == PhaseRunning && e.aiMode; n-- {
		e.AITick()
	}
}

// Tick runs one gravity step: the piece falls one row, or locks in when it
// cannot. It reports whether the piece moved.
func (e *Engine) Tick() bool {
	if e.phase != PhaseRunning {
		return false
	}
	p := e.current
	if e.board.IsValidPosition(p, p.X, p.Y+1) {
		p.Y++
		return true
	}
	e.lockIn()
	return false
}

// AITick asks the planner for a move and plays it. It does nothing unless
// the engine is running in AI mode.
func (e *Engine) AITick() bool {
	if e.phase != PhaseRunning || !e.aiMode {
		return false
	}
	return e.playPlannedMove()
}

// HandleInput applies a logical key. Moves are accepted only while running
// with AI mode off; InputToggleAI works in any non-terminal phase. It
// reports whether the input changed anything.
func (e *Engine) HandleInput(in Input) bool {
	if in == InputToggleAI {
		return e.toggleAI()
	}
	if e.phase != PhaseRunning || e.aiMode {
		return false
	}

	p := e.current
	switch in {
	case InputLeft:
		return e.shift(-1)
	case InputRight:
		return e.shift(1)
	case InputSoftDrop:
		if !e.board.IsValidPosition(p, p.X, p.Y+1) {
			return false
		}
		p.Y++
		e.addScore(e.settings.SoftDropBonus)
		return true
	case InputRotate:
		return e.rotate()
	case InputHardDrop:
		e.hardDrop()
		return true
	case InputHold:
		return e.hold()
	}
	return false
}

// SetAISpeed sets the AI speed, clamped to 1..10.
func (e *Engine) SetAISpeed(speed int) {
	e.settings.AISpeed = max(1, min(10, speed))
	e.aiTimer.SetInterval(AIInterval(e.settings.AISpeed))
}

// UseAIAssist places the current piece where the planner suggests.
// It reports false when not running or when no planner is configured.
func (e *Engine) UseAIAssist() bool {
	if e.phase != PhaseRunning || e.planner == nil {
		return false
	}
	e.logger.Debug("powerup", "kind", PowerupAIAssist)
	e.emit(PowerupUsedEvent{Powerup: PowerupAIAssist})
	e.playPlannedMove()
	return true
}

// UseClearRowPowerup removes the bottom row without scoring it.
func (e *Engine) UseClearRowPowerup() bool {
	if e.phase != PhaseRunning {
		return false
	}
	e.board.ClearRow(e.board.Height() - 1)
	// Rows above shifted down and may now overlap the falling piece.
	p := e.current
	for !e.board.IsValidPosition(p, p.X, p.Y) {
		p.Y--
	}
	e.logger.Debug("powerup", "kind", PowerupClearRow)
	e.emit(PowerupUsedEvent{Powerup: PowerupClearRow})
	return true
}

// GhostY returns the row the current piece would land on.
func (e *Engine) GhostY() int {
	p := e.current
	y := p.Y
	for e.board.IsValidPosition(p, p.X, y+1) {
		y++
	}
	return y
}

// DrainEvents returns and clears the queued events.
func (e *Engine) DrainEvents() []Event {
	ev := e.events
	e.events = nil
	return ev
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the total lines cleared.
func (e *Engine) Lines() int { return e.lines }

// Level returns the derived level: lines/10 plus the start level.
func (e *Engine) Level() int { return e.level }

// Phase returns the lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Paused reports whether the engine is paused.
func (e *Engine) Paused() bool { return e.phase == PhasePaused }

// GameOver reports whether the engine reached its terminal phase.
func (e *Engine) GameOver() bool { return e.phase == PhaseOver }

// AIMode reports whether auto-play is on.
func (e *Engine) AIMode() bool { return e.aiMode }

// AISpeed returns the configured AI speed.
func (e *Engine) AISpeed() int { return e.settings.AISpeed }

// HasHeld reports whether hold was used since the last lock.
func (e *Engine) HasHeld() bool { return e.hasHeld }

// FallInterval returns the current gravity interval.
func (e *Engine) FallInterval() time.Duration { return e.gravity.Interval() }

// AIMoveInterval returns the current AI interval.
func (e *Engine) AIMoveInterval() time.Duration { return e.aiTimer.Interval() }

// Board returns a copy of the playfield.
func (e *Engine) Board() *Board { return e.board.Clone() }

// Current returns a copy of the falling piece.
func (e *Engine) Current() *Piece { return e.current.Clone() }

// Next returns a copy of the upcoming piece.
func (e *Engine) Next() *Piece { return e.next.Clone() }

// Held returns a copy of the held piece, or nil.
func (e *Engine) Held() *Piece {
	if e.held == nil {
		return nil
	}
	return e.held.Clone()
}

// Settings returns the active rules.
func (e *Engine) Settings() Settings { return e.settings }

func (e *Engine) spawn(p *Piece) {
	p.X = (e.board.Width() - p.Width()) / 2
	p.Y = -p.Height()
}

func (e *Engine) shift(dx int) bool {
	p := e.current
	if !e.board.IsValidPosition(p, p.X+dx, p.Y) {
		return false
	}
	p.X += dx
	return true
}

func (e *Engine) rotate() bool {
	p := e.current
	p.Rotate()
	if e.board.IsValidPosition(p, p.X, p.Y) {
		return true
	}
	_ = p.RollbackRotation()
	return false
}

func (e *Engine) hardDrop() {
	p := e.current
	landing := e.GhostY()
	if dist := landing - p.Y; dist > 0 {
		p.Y = landing
		e.addScore(dist * e.settings.HardDropMultiplier)
	}
	e.gravity.Reset()
	e.lockIn()
}

func (e *Engine) hold() bool {
	if e.hasHeld {
		return false
	}
	if e.held == nil {
		e.held = e.current
		e.current = e.next
		e.next = RandomShape(e.rng)
	} else {
		e.current, e.held = e.held, e.current
	}
	e.spawn(e.current)
	e.hasHeld = true
	e.logger.Debug("hold", "held", e.held.Kind, "current", e.current.Kind)
	e.emitShapeChanged()
	return true
}

func (e *Engine) toggleAI() bool {
	if e.phase == PhaseOver {
		return false
	}
	e.aiMode = !e.aiMode
	if e.aiMode && e.phase == PhaseRunning {
		e.aiTimer.Reset()
		e.aiTimer.Start()
	} else {
		e.aiTimer.Stop()
	}
	e.logger.Debug("ai mode", "enabled", e.aiMode)
	e.emit(AIModeChangedEvent{Enabled: e.aiMode})
	return true
}

// playPlannedMove applies the planner's choice: rotations are checked at
// the current row only and the last one is rolled back if it collides,
// then the piece slides one column at a time and hard-drops.
func (e *Engine) playPlannedMove() bool {
	if e.planner == nil {
		return false
	}
	rotation, column := e.planner.BestMove(e.board.Clone(), e.current.Clone())
	p := e.current
	for i := 0; i < rotation; i++ {
		p.Rotate()
		if !e.board.IsValidPosition(p, p.X, p.Y) {
			_ = p.RollbackRotation()
			break
		}
	}
	for p.X < column && e.shift(1) {
	}
	for p.X > column && e.shift(-1) {
	}
	e.logger.Debug("ai move", "piece", p.Kind, "rotation", rotation, "column", column, "x", p.X)
	e.hardDrop()
	return true
}

// lockIn commits the current piece and runs the lock sequence.
func (e *Engine) lockIn() {
	p := e.current
	if err := e.board.Commit(p, p.X, p.Y); err != nil {
		e.logger.Error("lock failed", "error", err, "piece", p.Kind, "x", p.X, "y", p.Y)
		e.finish(false)
		return
	}
	if p.TopFilledRow() < 0 {
		e.finish(false)
		return
	}

	e.current = e.next
	e.spawn(e.current)
	e.next = RandomShape(e.rng)

	rows := e.board.ClearCompleteRows()
	if len(rows) > 0 {
		e.lines += len(rows)
		e.addScore(e.settings.LineScore(len(rows)))
		e.emit(LinesClearedEvent{Rows: rows, Total: e.lines})
		e.updateLevel()
	}

	e.hasHeld = false
	e.logger.Debug("piece locked", "piece", p.Kind, "x", p.X, "y", p.Y, "rows", len(rows), "score", e.score)
	e.emit(ShapePlacedEvent{Kind: p.Kind, X: p.X, Y: p.Y, RowsCleared: len(rows)})
	e.emitShapeChanged()
}

func (e *Engine) finish(stopped bool) {
	e.phase = PhaseOver
	e.stopClocks()
	e.logger.Info("game over", "score", e.score, "lines", e.lines, "level", e.level, "stopped", stopped)
	e.emit(GameOverEvent{Score: e.score, Lines: e.lines, Level: e.level, Stopped: stopped})
}

func (e *Engine) updateLevel() {
	level := e.lines/10 + e.settings.StartLevel
	if level == e.level {
		return
	}
	e.level = level
	e.gravity.SetInterval(e.gravityInterval())
	e.emit(LevelChangedEvent{Level: level, Interval: e.gravity.Interval()})
}

func (e *Engine) gravityInterval() time.Duration {
	if e.settings.FixedGravity {
		return e.settings.GravityInterval(e.settings.StartLevel)
	}
	return e.settings.GravityInterval(e.level)
}

func (e *Engine) addScore(delta int) {
	if delta == 0 {
		return
	}
	e.score += delta
	e.emit(ScoreChangedEvent{Score: e.score, Delta: delta})
}

func (e *Engine) startClocks() {
	e.gravity.Start()
	if e.aiMode {
		e.aiTimer.Start()
	}
}

func (e *Engine) stopClocks() {
	e.gravity.Stop()
	e.aiTimer.Stop()
}

func (e *Engine) emitShapeChanged() {
	ev := ShapeChangedEvent{Current: e.current.Kind, Next: e.next.Kind}
	if e.held != nil {
		ev.Held = e.held.Kind
		ev.HasHeld = true
	}
	e.emit(ev)
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
	for _, l := range e.listeners {
		l(ev)
	}
}
