package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath  string
	storageArgs []string
}

func newCLIRunner(t *testing.T, storageArgs ...string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "metro-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/metro")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:  binaryPath,
		storageArgs: storageArgs,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append(append([]string{"--output", "json"}, r.storageArgs...), args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	// Keep a stray config file or environment from changing the backend
	cmd.Dir = os.TempDir()
	cmd.Env = filteredEnv()
	output, err := cmd.Output()
	return string(output), err
}

func (r *cliRunner) runJSON(t *testing.T, target any, args ...string) {
	t.Helper()
	out, err := r.run(args...)
	require.NoError(t, err, "metro %v: %s", args, out)
	require.NoError(t, json.Unmarshal([]byte(out), target), out)
}

func filteredEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if len(kv) >= 6 && kv[:6] == "METRO_" {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// writeSave writes a 2x2 two player game one tile from the end, with tile
// k in every hand
func writeSave(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "almost.sav")
	content := "2 2 2 1 0 4\nk10 k21\nk30 0\nk k k\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Response types for JSON parsing
type gameResponse struct {
	Name      string     `json:"name"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Players   int        `json:"players"`
	ScoreType string     `json:"score_type"`
	Turn      int        `json:"turn"`
	NextID    int        `json:"next_id"`
	Board     [][]string `json:"board"`
	Hands     []string   `json:"hands"`
	DrawPile  string     `json:"draw_pile"`
	Scores    []int      `json:"scores"`
	Complete  bool       `json:"complete"`
}

type placeResponse struct {
	Placed struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Tile  string `json:"tile"`
		ID    int    `json:"id"`
		Owner int    `json:"owner"`
	} `json:"placed"`
	NextPlayer int          `json:"next_player"`
	Game       gameResponse `json:"game"`
}

type summaryResponse struct {
	Name     string `json:"name"`
	Placed   int    `json:"placed"`
	Complete bool   `json:"complete"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Tests

func testGameFlow(t *testing.T, cli *cliRunner) {
	var created gameResponse
	cli.runJSON(t, &created, "new", "family", "--players", "2", "--rows", "3", "--cols", "3")
	assert.Equal(t, "family", created.Name)
	assert.Equal(t, 2, created.Players)
	assert.Len(t, created.Board, 3)
	assert.Len(t, created.Hands, 2)

	var imported gameResponse
	cli.runJSON(t, &imported, "import", "finale", writeSave(t))
	assert.Equal(t, "k", imported.Board[0][0])
	assert.Equal(t, "", imported.Board[1][1])
	assert.False(t, imported.Complete)

	var placed placeResponse
	cli.runJSON(t, &placed, "place", "finale", "1", "1")
	assert.Equal(t, "k", placed.Placed.Tile)
	assert.Equal(t, 4, placed.Placed.ID)
	assert.Equal(t, 1, placed.Placed.Owner)
	assert.True(t, placed.Game.Complete)
	assert.Equal(t, []int{22, 22}, placed.Game.Scores)

	// A finished game takes no more tiles
	out, err := cli.run("place", "finale", "0", "0")
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal(exitErr.Stderr, &errResp), out)
	assert.Contains(t, errResp.Error.Message, "already complete")

	var list []summaryResponse
	cli.runJSON(t, &list, "list")
	require.Len(t, list, 2)
	assert.Equal(t, "family", list[0].Name)
	assert.Equal(t, "finale", list[1].Name)
	assert.True(t, list[1].Complete)
	assert.Equal(t, 4, list[1].Placed)

	exported := filepath.Join(t.TempDir(), "finale.sav")
	var msg messageResponse
	cli.runJSON(t, &msg, "export", "finale", exported)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, "2 2 2 0 0 5\nk10 k21\nk30 k41\n", string(data)[:len("2 2 2 0 0 5\nk10 k21\nk30 k41\n")])

	cli.runJSON(t, &msg, "delete", "family")
	assert.Equal(t, "Game family deleted", msg.Message)

	_, err = cli.run("show", "family")
	assert.Error(t, err)
}

func TestCLI_FileStorage(t *testing.T) {
	cli := newCLIRunner(t, "--storage", "file", "--data-dir", filepath.Join(t.TempDir(), "saves"))
	testGameFlow(t, cli)
}

func TestCLI_SQLiteStorage(t *testing.T) {
	cli := newCLIRunner(t, "--storage", "sqlite", "--sqlite-path", filepath.Join(t.TempDir(), "metro.db"))
	testGameFlow(t, cli)
}

func TestCLI_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "metro.yaml")
	config := "storage:\n  type: file\n  data_dir: " + filepath.Join(dir, "saves") + "\ngame:\n  players: 5\n  rows: 4\n  cols: 6\n  score_type: time\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	cli := newCLIRunner(t, "--config", configPath)

	var created gameResponse
	cli.runJSON(t, &created, "new", "configured")
	assert.Equal(t, 5, created.Players)
	assert.Equal(t, 4, created.Rows)
	assert.Equal(t, 6, created.Cols)
	assert.Equal(t, "time", created.ScoreType)

	_, err := os.Stat(filepath.Join(dir, "saves", "configured.metro"))
	assert.NoError(t, err)
}

func TestCLI_InvalidArguments(t *testing.T) {
	cli := newCLIRunner(t, "--storage", "memory")

	_, err := cli.run("place", "family", "1")
	assert.Error(t, err)

	_, err = cli.run("new", "family", "--players", "9")
	assert.Error(t, err)
}
