package engine

import (
	"log/slog"

	"github.com/mcoot/metrogame/internal/dependencies/random"
	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/scoring"
)

// Engine runs a single game of Metro. It is not safe for concurrent use.
type Engine struct {
	random  random.Random
	scoring *scoring.Service
	logger  *slog.Logger

	game *state // nil until NewGame or Restore succeeds
}

// state is everything that changes during a game. NewGame and Restore
// build a fresh state and swap it in only once it is complete.
type state struct {
	settings model.GameSettings
	board    *model.Board
	stack    []model.TileKind
	hands    []*model.Tile // Players+1 slots, the last is the draw pile; nil when empty

	currentPlayer  int
	drawPileActive bool
	drawPilePlayer int

	nextID   int
	scores   []int
	stations []*model.Station
}

// New creates an Engine with no game in progress
func New(random random.Random, scoringService *scoring.Service, logger *slog.Logger) *Engine {
	return &Engine{
		random:  random,
		scoring: scoringService,
		logger:  logger,
	}
}

// NewGame discards any current game and starts a new one
func (e *Engine) NewGame(players, rows, cols int, scoreType model.ScoreType) error {
	settings := model.GameSettings{
		Players:   players,
		Rows:      rows,
		Cols:      cols,
		ScoreType: scoreType,
	}
	g, err := e.newState(settings)
	if err != nil {
		return err
	}
	e.game = g

	e.logger.Info("game started",
		slog.Int("players", players),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
		slog.String("score_type", scoreType.String()),
		slog.Int("stack_size", len(g.stack)),
	)
	return nil
}

func (e *Engine) newState(settings model.GameSettings) (*state, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	g := &state{
		settings: settings,
		board:    model.NewBoard(settings.Rows, settings.Cols),
		stack:    buildStack(settings.Rows, settings.Cols),
		hands:    make([]*model.Tile, settings.Players+1),
		nextID:   1,
		scores:   make([]int, settings.Players),
	}
	for slot := range g.hands {
		e.draw(g, slot)
	}
	g.stations = buildStations(settings.Rows, settings.Cols)
	assignOwners(g.stations, settings)
	return g, nil
}

// InProgress returns true once a game has been started or restored
func (e *Engine) InProgress() bool {
	return e.game != nil
}

// NumPlayers returns the number of players, or 0 with no game in progress
func (e *Engine) NumPlayers() int {
	if e.game == nil {
		return 0
	}
	return e.game.settings.Players
}

// Rows returns the board height
func (e *Engine) Rows() int {
	if e.game == nil {
		return 0
	}
	return e.game.settings.Rows
}

// Cols returns the board width
func (e *Engine) Cols() int {
	if e.game == nil {
		return 0
	}
	return e.game.settings.Cols
}

// ScoreType returns the scoring method of the current game
func (e *Engine) ScoreType() model.ScoreType {
	if e.game == nil {
		return model.ScoreSimple
	}
	return e.game.settings.ScoreType
}

// Settings returns the settings of the current game
func (e *Engine) Settings() model.GameSettings {
	if e.game == nil {
		return model.GameSettings{}
	}
	return e.game.settings
}

// NextID returns the id the next placed tile will receive
func (e *Engine) NextID() int {
	if e.game == nil {
		return 0
	}
	return e.game.nextID
}

// StackSize returns the number of tiles left to draw
func (e *Engine) StackSize() int {
	if e.game == nil {
		return 0
	}
	return len(e.game.stack)
}

// CurrentPlayer returns the active hand slot; equal to NumPlayers while
// the draw pile is active
func (e *Engine) CurrentPlayer() int {
	if e.game == nil {
		return 0
	}
	return e.game.currentPlayer
}

// CurrentTile returns the tile held in the given hand slot, NoTile if the
// slot is empty or out of range
func (e *Engine) CurrentTile(player int) model.TileKind {
	if e.game == nil || player < 0 || player >= len(e.game.hands) {
		return model.NoTile
	}
	return e.game.handKind(player)
}

// CurrentActiveTile returns the tile the active hand holds
func (e *Engine) CurrentActiveTile() model.TileKind {
	if e.game == nil {
		return model.NoTile
	}
	return e.game.handKind(e.game.currentPlayer)
}

// ActivateDrawPile makes the draw pile the active hand for the current
// player's turn. Activating an active draw pile does nothing.
func (e *Engine) ActivateDrawPile() error {
	if e.game == nil {
		return model.ErrNoGameInProgress
	}
	g := e.game
	if g.drawPileActive {
		return nil
	}
	g.drawPilePlayer = g.currentPlayer
	g.currentPlayer = g.settings.Players
	g.drawPileActive = true
	return nil
}

// DeactivateDrawPile hands the turn back to the player who activated the
// draw pile without advancing it
func (e *Engine) DeactivateDrawPile() error {
	if e.game == nil {
		return model.ErrNoGameInProgress
	}
	e.game.deactivateDrawPile()
	return nil
}

// DrawPileActive returns true while the draw pile is the active hand
func (e *Engine) DrawPileActive() bool {
	return e.game != nil && e.game.drawPileActive
}

// DrawPilePlayer returns the player who last activated the draw pile
func (e *Engine) DrawPilePlayer() int {
	if e.game == nil {
		return 0
	}
	return e.game.drawPilePlayer
}

// TurnPlayer returns the player whose turn it is, whichever hand is active
func (e *Engine) TurnPlayer() int {
	if e.game == nil {
		return 0
	}
	return e.game.turnPlayer()
}

// IsComplete returns true once every cell holds a tile
func (e *Engine) IsComplete() bool {
	return e.game != nil && e.game.board.IsFull()
}

// Gameboard returns the kind ordinal of every cell, -1 where empty
func (e *Engine) Gameboard() [][]int {
	if e.game == nil {
		return nil
	}
	return e.game.board.Kinds()
}

// Board returns a copy of the board
func (e *Engine) Board() *model.Board {
	if e.game == nil {
		return nil
	}
	return e.game.board.Clone()
}

func (g *state) handKind(slot int) model.TileKind {
	if tile := g.hands[slot]; tile != nil {
		return tile.Kind
	}
	return model.NoTile
}

func (g *state) turnPlayer() int {
	if g.drawPileActive {
		return g.drawPilePlayer
	}
	return g.currentPlayer
}

func (g *state) deactivateDrawPile() {
	if !g.drawPileActive {
		return
	}
	g.currentPlayer = g.drawPilePlayer
	g.drawPileActive = false
}

func (g *state) advance() {
	g.deactivateDrawPile()
	g.currentPlayer++
	if g.currentPlayer == g.settings.Players {
		g.currentPlayer = 0
	}
}

// Interface for dependency injection
type EngineInterface interface {
	NewGame(players, rows, cols int, scoreType model.ScoreType) error
	PlaceTile(x, y int) (model.Tile, error)
	ActivateDrawPile() error
	DeactivateDrawPile() error
	Scores() ([]int, error)
	IsComplete() bool
	Snapshot() (*model.Snapshot, error)
	Restore(snapshot *model.Snapshot) error
	SaveGame(path string) error
	LoadGame(path string) error
}

var _ EngineInterface = (*Engine)(nil)
