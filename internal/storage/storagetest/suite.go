// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/storage"
)

// Suite runs the storage contract against Storage. Backend test files
// embed it and set Storage and Ctx in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// SavedAt is the save stamp used by NewGame
var SavedAt = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// NewGame builds a small saved game with one placed tile
func NewGame(name string) *model.SavedGame {
	return &model.SavedGame{
		Name:    name,
		SavedAt: SavedAt,
		Snapshot: &model.Snapshot{
			Rows:      3,
			Cols:      3,
			Players:   2,
			Turn:      1,
			ScoreType: model.ScoreSimple,
			NextID:    2,
			Board: [][]*model.TileRecord{
				{nil, nil, nil},
				{nil, {Kind: 10, ID: 1, Owner: 0}, nil},
				{nil, nil, nil},
			},
			Hands: []model.TileKind{0, 4, 23},
		},
	}
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		s.Require().NoError(s.Storage.Close())
	}
}

func (s *Suite) TestSaveAndGetGame() {
	game := NewGame("alpha")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	got, err := s.Storage.GetGame(s.Ctx, "alpha")
	s.Require().NoError(err)
	s.Equal("alpha", got.Name)
	s.Equal(game.Snapshot, got.Snapshot)
	s.True(SavedAt.Equal(got.SavedAt), "saved at %v", got.SavedAt)
}

func (s *Suite) TestSaveGameOverwrites() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("alpha")))

	game := NewGame("alpha")
	game.Snapshot.Board[0][0] = &model.TileRecord{Kind: 2, ID: 2, Owner: 1}
	game.Snapshot.NextID = 3
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	got, err := s.Storage.GetGame(s.Ctx, "alpha")
	s.Require().NoError(err)
	s.Equal(3, got.Snapshot.NextID)
	s.Equal(&model.TileRecord{Kind: 2, ID: 2, Owner: 1}, got.Snapshot.Board[0][0])
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame("alpha")))
	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, "alpha"))

	_, err := s.Storage.GetGame(s.Ctx, "alpha")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.ErrorIs(s.Storage.DeleteGame(s.Ctx, "alpha"), model.ErrGameNotFound)
}

func (s *Suite) TestListGames() {
	games, err := s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Empty(games)

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		s.Require().NoError(s.Storage.SaveGame(s.Ctx, NewGame(name)))
	}

	games, err = s.Storage.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal("alpha", games[0].Name)
	s.Equal("bravo", games[1].Name)
	s.Equal("charlie", games[2].Name)
	s.Equal(2, games[0].Players)
	s.Equal(1, games[0].Placed)
	s.False(games[0].Complete)
}

func (s *Suite) TestInvalidName() {
	game := NewGame("../escape")
	s.ErrorIs(s.Storage.SaveGame(s.Ctx, game), model.ErrInvalidGameName)

	_, err := s.Storage.GetGame(s.Ctx, "bad name")
	s.ErrorIs(err, model.ErrInvalidGameName)
	s.ErrorIs(s.Storage.DeleteGame(s.Ctx, ""), model.ErrInvalidGameName)
}
