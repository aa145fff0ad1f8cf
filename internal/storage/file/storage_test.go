package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/metrogame/internal/model"
	"github.com/mcoot/metrogame/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	dir  string
	file *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "saves")
	store, err := New(s.dir)
	s.Require().NoError(err)
	s.file = store
	s.Storage = store
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestGameWrittenAsSaveFile() {
	s.Require().NoError(s.file.SaveGame(s.Ctx, storagetest.NewGame("alpha")))

	data, err := os.ReadFile(filepath.Join(s.dir, "alpha.metro"))
	s.Require().NoError(err)
	s.Equal("3 3 2 1 0 2\n0 0 0\n0 k10 0\n0 0 0\na e x\n", string(data))

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *StorageSuite) TestListIgnoresOtherFiles() {
	s.Require().NoError(s.file.SaveGame(s.Ctx, storagetest.NewGame("alpha")))
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "notes.txt"), []byte("hello"), 0o644))
	s.Require().NoError(os.Mkdir(filepath.Join(s.dir, "dir.metro"), 0o755))

	games, err := s.file.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("alpha", games[0].Name)
}

func (s *StorageSuite) TestCorruptFile() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "broken.metro"), []byte("8 8\n"), 0o644))

	_, err := s.file.GetGame(s.Ctx, "broken")
	s.ErrorIs(err, model.ErrInvalidSaveFile)
}
