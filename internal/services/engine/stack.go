package engine

import (
	"slices"

	"github.com/mcoot/metrogame/internal/model"
)

// copiesPerKind returns how many of each tile kind go into the stack for a
// board of the given size
func copiesPerKind(rows, cols int) int {
	half := rows * cols / 2
	switch {
	case half <= 4:
		return 1
	case half <= 6:
		return 2
	case half <= 8:
		return 3
	case half == 9:
		return 4
	case half == 10:
		return 5
	default:
		return 6
	}
}

func buildStack(rows, cols int) []model.TileKind {
	n := copiesPerKind(rows, cols)
	stack := make([]model.TileKind, 0, n*model.KindCount)
	for _, kind := range model.AllTileKinds() {
		for i := 0; i < n; i++ {
			stack = append(stack, kind)
		}
	}
	return stack
}

// draw fills the given hand slot with a uniformly random tile from the
// stack. The slot is emptied once the stack runs out.
func (e *Engine) draw(g *state, slot int) {
	if len(g.stack) == 0 {
		g.hands[slot] = nil
		return
	}
	i := e.random.Intn(len(g.stack))
	kind := g.stack[i]
	g.stack = append(g.stack[:i], g.stack[i+1:]...)
	g.hands[slot] = model.NewTile(kind)
}

// restock refills the stack for a restored game, leaving out one copy of
// every tile already on the board or in a hand
func restock(g *state) {
	g.stack = buildStack(g.settings.Rows, g.settings.Cols)
	take := func(kind model.TileKind) {
		if i := slices.Index(g.stack, kind); i >= 0 {
			g.stack = slices.Delete(g.stack, i, i+1)
		}
	}
	for _, row := range g.board.Cells {
		for _, tile := range row {
			if tile != nil {
				take(tile.Kind)
			}
		}
	}
	for _, hand := range g.hands {
		if hand != nil {
			take(hand.Kind)
		}
	}
}
