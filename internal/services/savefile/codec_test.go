package savefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/metrogame/internal/model"
)

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Rows:      2,
		Cols:      3,
		Players:   2,
		Turn:      1,
		ScoreType: model.ScoreCrossover,
		NextID:    14,
		Board: [][]*model.TileRecord{
			{{Kind: 10, ID: 1, Owner: 0}, nil, {Kind: 0, ID: 12, Owner: 1}},
			{nil, {Kind: 23, ID: 9, Owner: 1}, nil},
		},
		Hands: []model.TileKind{1, model.NoTile, 2},
	}
}

const sampleText = "2 3 2 1 1 14\n" +
	"k10 0 a121\n" +
	"0 x91 0\n" +
	"b 0 c\n"

func TestMarshal(t *testing.T) {
	data, err := Marshal(sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, sampleText, string(data))
}

func TestUnmarshal(t *testing.T) {
	snapshot, err := Unmarshal([]byte(sampleText))
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), snapshot)
}

func TestUnmarshal_TrailingSpaces(t *testing.T) {
	// Trailing spaces after every token and no final newline
	text := "2 2 2 0 0 3 \n" +
		"a10 b21 \n" +
		"0 0 \n" +
		"c d e "

	snapshot, err := Unmarshal([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.NextID)
	assert.Equal(t, &model.TileRecord{Kind: 1, ID: 2, Owner: 1}, snapshot.Board[0][1])
	assert.Nil(t, snapshot.Board[1][0])
	assert.Equal(t, []model.TileKind{2, 3, 4}, snapshot.Hands)
}

func TestUnmarshal_TrailingBlankLines(t *testing.T) {
	_, err := Unmarshal([]byte(sampleText + "\n\n"))
	require.NoError(t, err)
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		line string
	}{
		{"empty", "", "line 1"},
		{"seven header values", "2 3 2 1 1 14 7\nk10 0 a121\n0 x91 0\nb 0 c\n", "line 1"},
		{"five header values", "2 3 2 1 1\nk10 0 a121\n0 x91 0\nb 0 c\n", "line 1"},
		{"non integer header", "2 3 two 1 1 14\n", "line 1"},
		{"too many players", "2 3 7 1 1 14\n", "line 1"},
		{"bad score type", "2 3 2 1 5 14\n", "line 1"},
		{"huge rows", "4611686018427387904 2 2 0 0 1\n", "line 1"},
		{"huge cols", "2 4611686018427387904 2 0 0 1\n", "line 1"},
		{"rows over max", "65 2 2 0 0 1\n", "line 1"},
		{"turn out of range", "2 3 2 2 1 14\n", "line 1"},
		{"zero next id", "2 3 2 1 1 0\n", "line 1"},
		{"extra cell", "2 3 2 1 1 14\nk10 0 a121 0\n0 x91 0\nb 0 c\n", "line 2"},
		{"missing cell", "2 3 2 1 1 14\nk10 0 a121\n0 x91\nb 0 c\n", "line 3"},
		{"bad tile letter", "2 3 2 1 1 14\nk10 0 z121\n0 x91 0\nb 0 c\n", "line 2"},
		{"short tile token", "2 3 2 1 1 14\nk1 0 a121\n0 x91 0\nb 0 c\n", "line 2"},
		{"non digit id", "2 3 2 1 1 14\nk10 0 a1x1\n0 x91 0\nb 0 c\n", "line 2"},
		{"missing board row", "2 3 2 1 1 14\nk10 0 a121\n", "line 3"},
		{"missing hands", "2 3 2 1 1 14\nk10 0 a121\n0 x91 0\n", "line 4"},
		{"extra hand", "2 3 2 1 1 14\nk10 0 a121\n0 x91 0\nb 0 c d\n", "line 4"},
		{"bad hand", "2 3 2 1 1 14\nk10 0 a121\n0 x91 0\nb 0 cc\n", "line 4"},
		{"trailing data", sampleText + "x\n", "line 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.text))
			require.ErrorIs(t, err, model.ErrInvalidSaveFile)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestMarshal_WideIDs(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.Board[1][0] = &model.TileRecord{Kind: 4, ID: 137, Owner: 1}

	data, err := Marshal(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "e1371 x91 0\n")

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)
}

func TestMarshal_Unencodable(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.Board[0][0].Owner = 12

	_, err := Marshal(snapshot)
	assert.ErrorIs(t, err, model.ErrUnencodableTile)

	snapshot = sampleSnapshot()
	snapshot.Board[0][0].Kind = model.NoTile
	_, err = Marshal(snapshot)
	assert.ErrorIs(t, err, model.ErrUnencodableTile)
}

func TestMarshal_ShapeMismatch(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.Hands = snapshot.Hands[:2]

	_, err := Marshal(snapshot)
	assert.ErrorIs(t, err, model.ErrInvalidSaveFile)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.metro")
	require.NoError(t, WriteFile(path, sampleSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "2 3 2 1 1 14\n"))

	snapshot, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), snapshot)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.metro"))
	assert.ErrorIs(t, err, model.ErrSaveNotFound)
}
