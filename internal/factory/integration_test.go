package factory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/metrogame/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Create, play, export, import and delete a game
func (s *IntegrationSuite) TestGameLifecycle() {
	controller := s.app.GameController

	// Every draw takes the first tile in the stack, so all hands hold tile a
	_, err := controller.CreateGame(s.ctx, "family", model.DefaultSettings())
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Minute)
	result, err := controller.PlaceTile(s.ctx, "family", model.NewPosition(0, 3), false)
	s.Require().NoError(err)
	s.Equal(0, result.Tile.Owner)
	s.Equal(1, result.NextPlayer)

	// Player 1 plays from the draw pile below the first tile
	result, err = controller.PlaceTile(s.ctx, "family", model.NewPosition(1, 3), true)
	s.Require().NoError(err)
	s.Equal(1, result.Tile.Owner)
	s.Equal(2, result.Tile.ID)
	s.Equal(2, result.NextPlayer)
	s.Equal([]int{0, 0, 0, 0}, result.State.Scores)
	s.Equal(2, result.State.Stations[3].Len())

	// A tile with no neighbours away from the edge is rejected
	_, err = controller.PlaceTile(s.ctx, "family", model.NewPosition(5, 5), false)
	s.ErrorIs(err, model.ErrMiddleOfNowhere)

	path := filepath.Join(s.T().TempDir(), "family.sav")
	s.Require().NoError(controller.ExportGame(s.ctx, "family", path))

	imported, err := controller.ImportGame(s.ctx, "copy", path)
	s.Require().NoError(err)
	original, err := controller.GetGame(s.ctx, "family")
	s.Require().NoError(err)
	s.Equal(original.Snapshot.Board, imported.Snapshot.Board)
	s.Equal(original.Snapshot.NextID, imported.Snapshot.NextID)
	s.Equal(original.Snapshot.Turn, imported.Snapshot.Turn)
	s.Equal(original.Scores, imported.Scores)

	games, err := controller.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("copy", games[0].Name)
	s.Equal("family", games[1].Name)
	s.Equal(2, games[1].Placed)

	s.Require().NoError(controller.DeleteGame(s.ctx, "family"))
	_, err = controller.GetGame(s.ctx, "family")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Test: A generated name is used when none is given
func (s *IntegrationSuite) TestGeneratedName() {
	s.app.MockRandom.QueueString("GAME0001")

	state, err := s.app.GameController.CreateGame(s.ctx, "", model.GameSettings{
		Players: 2, Rows: 4, Cols: 4, ScoreType: model.ScoreCrossover,
	})
	s.Require().NoError(err)
	s.Equal("GAME0001", state.Name)
	s.Len(state.Stations, 16)
	s.Equal([]int{0, 0}, state.Scores)
}
