package engine

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/savefile"
)

// Snapshot captures the persisted part of the current game
func (e *Engine) Snapshot() (*model.Snapshot, error) {
	if e.game == nil {
		return nil, model.ErrNoGameInProgress
	}
	g := e.game

	snapshot := &model.Snapshot{
		Rows:      g.settings.Rows,
		Cols:      g.settings.Cols,
		Players:   g.settings.Players,
		Turn:      g.turnPlayer(),
		ScoreType: g.settings.ScoreType,
		NextID:    g.nextID,
		Board:     make([][]*model.TileRecord, g.settings.Rows),
		Hands:     make([]model.TileKind, len(g.hands)),
	}
	for x := range snapshot.Board {
		snapshot.Board[x] = make([]*model.TileRecord, g.settings.Cols)
		for y := range snapshot.Board[x] {
			if tile := g.board.Cells[x][y]; tile != nil {
				snapshot.Board[x][y] = &model.TileRecord{
					Kind:  tile.Kind,
					ID:    tile.ID,
					Owner: tile.Owner,
				}
			}
		}
	}
	for slot := range g.hands {
		snapshot.Hands[slot] = g.handKind(slot)
	}
	return snapshot, nil
}

// Restore replaces the current game with one rebuilt from a snapshot.
// The tile stack is rebuilt without the tiles in play, the draw pile starts
// inactive and scores are recomputed from the board. If the snapshot is invalid the
// current game is kept.
func (e *Engine) Restore(snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: nil snapshot", model.ErrInvalidSaveFile)
	}
	g, err := e.newState(snapshot.Settings())
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidSaveFile, err)
	}
	if err := applySnapshot(g, snapshot); err != nil {
		return err
	}
	restock(g)
	e.updateStations(g)
	e.game = g

	e.logger.Info("game restored",
		slog.Int("players", snapshot.Players),
		slog.Int("rows", snapshot.Rows),
		slog.Int("cols", snapshot.Cols),
		slog.Int("placed", g.board.PlacedCount()),
		slog.Int("turn", snapshot.Turn),
		slog.Int("stack_size", len(g.stack)),
	)
	return nil
}

func applySnapshot(g *state, snapshot *model.Snapshot) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", model.ErrInvalidSaveFile, fmt.Sprintf(format, args...))
	}

	if snapshot.Turn < 0 || snapshot.Turn >= snapshot.Players {
		return invalid("turn %d out of range", snapshot.Turn)
	}
	if snapshot.NextID < 1 {
		return invalid("next id %d must be positive", snapshot.NextID)
	}
	if len(snapshot.Board) != snapshot.Rows {
		return invalid("board has %d rows, expected %d", len(snapshot.Board), snapshot.Rows)
	}
	if len(snapshot.Hands) != snapshot.Players+1 {
		return invalid("%d hands, expected %d", len(snapshot.Hands), snapshot.Players+1)
	}

	for x, row := range snapshot.Board {
		if len(row) != snapshot.Cols {
			return invalid("row %d has %d cells, expected %d", x, len(row), snapshot.Cols)
		}
		for y, rec := range row {
			if rec == nil {
				continue
			}
			if !rec.Kind.IsValid() {
				return invalid("cell (%d, %d) has unknown tile kind %d", x, y, int(rec.Kind))
			}
			if rec.Owner < 0 || rec.Owner >= snapshot.Players {
				return invalid("cell (%d, %d) owner %d out of range", x, y, rec.Owner)
			}
			pos := model.NewPosition(x, y)
			tile := model.NewTile(rec.Kind)
			if err := tile.Place(pos, rec.ID, rec.Owner); err != nil {
				return err
			}
			g.board.Set(pos, tile)
		}
	}

	for slot, kind := range snapshot.Hands {
		switch {
		case kind == model.NoTile:
			g.hands[slot] = nil
		case kind.IsValid():
			g.hands[slot] = model.NewTile(kind)
		default:
			return invalid("hand %d has unknown tile kind %d", slot, int(kind))
		}
	}

	g.nextID = snapshot.NextID
	g.currentPlayer = snapshot.Turn
	return nil
}

// SaveGame writes the current game to a save file
func (e *Engine) SaveGame(path string) error {
	snapshot, err := e.Snapshot()
	if err != nil {
		return err
	}
	if err := savefile.WriteFile(path, snapshot); err != nil {
		return err
	}
	e.logger.Info("game saved", slog.String("path", path))
	return nil
}

// LoadGame replaces the current game with one read from a save file. On
// error the current game is kept.
func (e *Engine) LoadGame(path string) error {
	snapshot, err := savefile.ReadFile(path)
	if err != nil {
		return err
	}
	return e.Restore(snapshot)
}
