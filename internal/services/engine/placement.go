package engine

import (
	"log/slog"

	"github.com/mcoot/metrogame/internal/model"
)

// PlaceTile places the active hand's tile at (x, y) and passes the turn.
// On error the game is left unchanged.
func (e *Engine) PlaceTile(x, y int) (model.Tile, error) {
	if e.game == nil {
		return model.Tile{}, model.ErrNoGameInProgress
	}
	g := e.game
	pos := model.NewPosition(x, y)

	if !g.board.IsValidPosition(pos) {
		return model.Tile{}, model.ErrInvalidPosition
	}
	if !g.board.IsEmpty(pos) {
		return model.Tile{}, model.ErrCellOccupied
	}
	tile := g.hands[g.currentPlayer]
	if tile == nil {
		return model.Tile{}, model.ErrEmptyHand
	}

	if !g.overrideActive(tile.Kind) {
		if err := g.checkPlacement(pos, tile.Kind); err != nil {
			e.logger.Debug("placement rejected",
				slog.String("position", pos.String()),
				slog.String("tile", tile.Kind.String()),
				slog.String("error", err.Error()),
			)
			return model.Tile{}, err
		}
	}

	owner := g.turnPlayer()
	if err := tile.Place(pos, g.nextID, owner); err != nil {
		return model.Tile{}, err
	}
	g.board.Set(pos, tile)
	g.nextID++
	e.draw(g, g.currentPlayer)
	g.advance()
	e.updateStations(g)

	e.logger.Debug("tile placed",
		slog.String("position", pos.String()),
		slog.String("tile", tile.Kind.String()),
		slog.Int("id", tile.ID),
		slog.Int("owner", owner),
	)
	return *tile, nil
}

// checkPlacement applies the cutoff rule to border cells and the adjacency
// rule to interior cells
func (g *state) checkPlacement(pos model.Position, kind model.TileKind) error {
	if g.board.IsBorder(pos) {
		return g.checkCutoff(pos, kind)
	}
	if !g.board.HasOccupiedNeighbor(pos) {
		return model.ErrMiddleOfNowhere
	}
	return nil
}

// checkCutoff fails if the tile would send the track arriving from any
// neighbouring terminal straight back off the board
func (g *state) checkCutoff(pos model.Position, kind model.TileKind) error {
	for _, station := range g.neighborStations(pos) {
		exit, ok := kind.Exit(station.Tail().Exit.Entry())
		if !ok {
			continue
		}
		if next, ok := exit.Step(pos); ok && g.board.IsTerminal(next) {
			return model.ErrCutoff
		}
	}
	return nil
}

// overrideActive reports whether the placement rules are suspended for
// this tile: every unstarted terminal would be cut off by it, and either
// no interior cell is free or no track has been started yet.
func (g *state) overrideActive(kind model.TileKind) bool {
	open, errors := 0, 0
	for _, station := range g.stations {
		if station.Started() {
			continue
		}
		open++
		if g.checkCutoff(g.stationCell(station), kind) != nil {
			errors++
		}
	}
	if g.board.InteriorEmptyCount() != 0 && g.anyStationStarted() {
		return false
	}
	return errors == open
}
