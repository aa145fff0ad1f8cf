package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/services/game"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameView:
		o.printGame(v)
	case PlaceView:
		o.printPlace(v)
	case ScoresView:
		o.printScores(v.Scores)
		if v.Complete {
			fmt.Fprintln(o.w, "Game complete")
		}
	case []SummaryView:
		o.printSummaries(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GameView is the printed form of a stored game
type GameView struct {
	Name      string        `json:"name"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Players   int           `json:"players"`
	ScoreType string        `json:"score_type"`
	Turn      int           `json:"turn"`
	NextID    int           `json:"next_id"`
	Board     [][]string    `json:"board"`
	Tiles     []TileView    `json:"tiles"`
	Hands     []string      `json:"hands"`
	DrawPile  string        `json:"draw_pile"`
	Scores    []int         `json:"scores"`
	Stations  []StationView `json:"stations"`
	Complete  bool          `json:"complete"`
	SavedAt   time.Time     `json:"saved_at"`
}

// TileView is a placed tile
type TileView struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Tile  string `json:"tile"`
	ID    int    `json:"id"`
	Owner int    `json:"owner"`
}

// StationView is a station and the length of its route so far
type StationView struct {
	Index    int    `json:"index"`
	Terminal string `json:"terminal"`
	Owner    int    `json:"owner"`
	Length   int    `json:"length"`
	Complete bool   `json:"complete"`
}

// PlaceView reports a placement and the game after it
type PlaceView struct {
	Placed     TileView `json:"placed"`
	NextPlayer int      `json:"next_player"`
	Game       GameView `json:"game"`
}

// ScoresView lists every player's score
type ScoresView struct {
	Name     string `json:"name"`
	Scores   []int  `json:"scores"`
	Complete bool   `json:"complete"`
}

// SummaryView is one row of the game listing
type SummaryView struct {
	Name     string    `json:"name"`
	Players  int       `json:"players"`
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	Placed   int       `json:"placed"`
	Complete bool      `json:"complete"`
	SavedAt  time.Time `json:"saved_at"`
}

func newGameView(state *game.State) GameView {
	snap := state.Snapshot
	view := GameView{
		Name:      state.Name,
		Rows:      snap.Rows,
		Cols:      snap.Cols,
		Players:   snap.Players,
		ScoreType: snap.ScoreType.String(),
		Turn:      snap.Turn,
		NextID:    snap.NextID,
		Board:     make([][]string, snap.Rows),
		Tiles:     []TileView{},
		Hands:     make([]string, snap.Players),
		Scores:    state.Scores,
		Stations:  make([]StationView, len(state.Stations)),
		Complete:  state.Complete,
		SavedAt:   state.SavedAt,
	}

	for x, row := range snap.Board {
		view.Board[x] = make([]string, len(row))
		for y, rec := range row {
			if rec == nil {
				continue
			}
			view.Board[x][y] = rec.Kind.String()
			view.Tiles = append(view.Tiles, TileView{X: x, Y: y, Tile: rec.Kind.String(), ID: rec.ID, Owner: rec.Owner})
		}
	}

	for i := range view.Hands {
		view.Hands[i] = handString(snap.Hands[i])
	}
	view.DrawPile = handString(snap.Hands[snap.Players])

	for i, st := range state.Stations {
		view.Stations[i] = StationView{
			Index:    st.Index,
			Terminal: st.Terminal.String(),
			Owner:    st.Owner,
			Length:   st.Len(),
			Complete: st.Complete,
		}
	}
	return view
}

func newPlaceView(result *game.PlaceResult) PlaceView {
	return PlaceView{
		Placed: TileView{
			X:     result.Tile.Position.X,
			Y:     result.Tile.Position.Y,
			Tile:  result.Tile.Kind.String(),
			ID:    result.Tile.ID,
			Owner: result.Tile.Owner,
		},
		NextPlayer: result.NextPlayer,
		Game:       newGameView(result.State),
	}
}

func newSummaryView(g model.GameSummary) SummaryView {
	return SummaryView{
		Name:     g.Name,
		Players:  g.Players,
		Rows:     g.Rows,
		Cols:     g.Cols,
		Placed:   g.Placed,
		Complete: g.Complete,
		SavedAt:  g.SavedAt,
	}
}

func handString(kind model.TileKind) string {
	if !kind.IsValid() {
		return ""
	}
	return kind.String()
}

func (o *Output) printGame(g GameView) {
	fmt.Fprintf(o.w, "Game: %s\n", g.Name)
	fmt.Fprintf(o.w, "Board: %dx%d, %d players, %s scoring\n", g.Rows, g.Cols, g.Players, g.ScoreType)
	if g.Complete {
		fmt.Fprintln(o.w, "State: complete")
	} else {
		fmt.Fprintf(o.w, "Turn: player %d\n", g.Turn)
	}

	fmt.Fprintln(o.w)
	o.printBoard(g.Board, g.Cols)

	if !g.Complete {
		fmt.Fprintln(o.w, "\nHands:")
		for i, hand := range g.Hands {
			fmt.Fprintf(o.w, "  Player %d: %s\n", i, orDash(hand))
		}
		fmt.Fprintf(o.w, "  Draw pile: %s\n", orDash(g.DrawPile))
	}

	fmt.Fprintln(o.w, "\nScores:")
	o.printScores(g.Scores)
}

func (o *Output) printBoard(board [][]string, cols int) {
	// Print column headers
	fmt.Fprint(o.w, "    ")
	for y := 0; y < cols; y++ {
		fmt.Fprintf(o.w, "%2d", y)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("--", cols) + "-+"
	fmt.Fprintln(o.w, border)

	for x, row := range board {
		fmt.Fprintf(o.w, "%2d |", x)
		for _, cell := range row {
			fmt.Fprintf(o.w, " %s", orDot(cell))
		}
		fmt.Fprintln(o.w, " |")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printPlace(p PlaceView) {
	fmt.Fprintf(o.w, "Placed %s at (%d,%d) for player %d\n", p.Placed.Tile, p.Placed.X, p.Placed.Y, p.Placed.Owner)
	if p.Game.Complete {
		fmt.Fprintln(o.w, "Game complete!")
		fmt.Fprintln(o.w, "\nFinal Scores:")
		o.printScores(p.Game.Scores)
		return
	}
	fmt.Fprintf(o.w, "Next player: %d\n", p.NextPlayer)
}

func (o *Output) printScores(scores []int) {
	for i, score := range scores {
		fmt.Fprintf(o.w, "  Player %d: %d points\n", i, score)
	}
}

func (o *Output) printSummaries(games []SummaryView) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range games {
		status := fmt.Sprintf("%d/%d placed", g.Placed, g.Rows*g.Cols)
		if g.Complete {
			status = "complete"
		}
		fmt.Fprintf(o.w, "%s  %dx%d  %d players  %s  saved %s\n",
			g.Name, g.Rows, g.Cols, g.Players, status, g.SavedAt.Format(time.RFC3339))
	}
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
