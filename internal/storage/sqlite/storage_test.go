package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/metrogame/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	path   string
	sqlite *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "data", "metro.db")
	store, err := Open(s.path)
	s.Require().NoError(err)
	s.sqlite = store
	s.Storage = store
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestOpenCreatesDatabase() {
	_, err := os.Stat(s.path)
	s.NoError(err)
}

func (s *StorageSuite) TestGamesSurviveReopen() {
	s.Require().NoError(s.sqlite.SaveGame(s.Ctx, storagetest.NewGame("alpha")))
	s.Require().NoError(s.sqlite.Close())

	reopened, err := Open(s.path)
	s.Require().NoError(err)
	s.sqlite = reopened
	s.Storage = reopened

	game, err := reopened.GetGame(s.Ctx, "alpha")
	s.Require().NoError(err)
	s.Equal(storagetest.NewGame("alpha").Snapshot, game.Snapshot)
}
