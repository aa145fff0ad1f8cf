// Package savefile reads and writes the Metro save game text format.
//
// A save file holds one header line of six integers
//
//	rows cols players turn scoreType nextID
//
// then one line per board row with a token per cell, either "0" for an
// empty cell or the tile letter followed by its placement id and a single
// owner digit (for example "k120" is tile k, id 12, owner 0), and a final
// line with the tile letter held in every hand, the draw pile last, "0"
// for an empty hand.
package savefile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/metrogame/internal/model"
)

const headerFields = 6

// Marshal encodes a snapshot as save file text
func Marshal(snapshot *model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, snapshot); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes save file text
func Unmarshal(data []byte) (*model.Snapshot, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes a snapshot in save file format
func Encode(w io.Writer, snapshot *model.Snapshot) error {
	if err := checkShape(snapshot); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d %d %d %d\n",
		snapshot.Rows, snapshot.Cols, snapshot.Players,
		snapshot.Turn, int(snapshot.ScoreType), snapshot.NextID)

	tokens := make([]string, 0, snapshot.Cols)
	for x, row := range snapshot.Board {
		tokens = tokens[:0]
		for y, rec := range row {
			token, err := tileToken(rec)
			if err != nil {
				return fmt.Errorf("cell (%d, %d): %w", x, y, err)
			}
			tokens = append(tokens, token)
		}
		bw.WriteString(strings.Join(tokens, " "))
		bw.WriteByte('\n')
	}

	tokens = tokens[:0]
	for _, kind := range snapshot.Hands {
		tokens = append(tokens, string(kind.Letter()))
	}
	bw.WriteString(strings.Join(tokens, " "))
	bw.WriteByte('\n')

	return bw.Flush()
}

func checkShape(snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: nil snapshot", model.ErrInvalidSaveFile)
	}
	if len(snapshot.Board) != snapshot.Rows {
		return fmt.Errorf("%w: board has %d rows, expected %d", model.ErrInvalidSaveFile, len(snapshot.Board), snapshot.Rows)
	}
	for x, row := range snapshot.Board {
		if len(row) != snapshot.Cols {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", model.ErrInvalidSaveFile, x, len(row), snapshot.Cols)
		}
	}
	if len(snapshot.Hands) != snapshot.Players+1 {
		return fmt.Errorf("%w: %d hands, expected %d", model.ErrInvalidSaveFile, len(snapshot.Hands), snapshot.Players+1)
	}
	return nil
}

func tileToken(rec *model.TileRecord) (string, error) {
	if rec == nil {
		return "0", nil
	}
	if !rec.Kind.IsValid() {
		return "", fmt.Errorf("%w: kind %d", model.ErrUnencodableTile, int(rec.Kind))
	}
	if rec.ID < 0 {
		return "", fmt.Errorf("%w: id %d", model.ErrUnencodableTile, rec.ID)
	}
	if rec.Owner < 0 || rec.Owner > 9 {
		return "", fmt.Errorf("%w: owner %d", model.ErrUnencodableTile, rec.Owner)
	}
	return string(rec.Kind.Letter()) + strconv.Itoa(rec.ID) + strconv.Itoa(rec.Owner), nil
}

// Decode reads a snapshot in save file format. Any deviation from the
// format is reported as ErrInvalidSaveFile with the offending line.
func Decode(r io.Reader) (*model.Snapshot, error) {
	d := &decoder{scanner: bufio.NewScanner(r)}

	header, err := d.fields(headerFields)
	if err != nil {
		return nil, err
	}
	values := make([]int, headerFields)
	for i, field := range header {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, d.errorf("header value %q is not an integer", field)
		}
		values[i] = v
	}

	snapshot := &model.Snapshot{
		Rows:      values[0],
		Cols:      values[1],
		Players:   values[2],
		Turn:      values[3],
		ScoreType: model.ScoreType(values[4]),
		NextID:    values[5],
	}
	if err := snapshot.Settings().Validate(); err != nil {
		return nil, d.errorf("%v", err)
	}
	if snapshot.Turn < 0 || snapshot.Turn >= snapshot.Players {
		return nil, d.errorf("turn %d out of range", snapshot.Turn)
	}
	if snapshot.NextID < 1 {
		return nil, d.errorf("next id %d must be positive", snapshot.NextID)
	}

	snapshot.Board = make([][]*model.TileRecord, snapshot.Rows)
	for x := range snapshot.Board {
		tokens, err := d.fields(snapshot.Cols)
		if err != nil {
			return nil, err
		}
		snapshot.Board[x] = make([]*model.TileRecord, snapshot.Cols)
		for y, token := range tokens {
			rec, err := parseTileToken(token)
			if err != nil {
				return nil, d.errorf("cell (%d, %d): %v", x, y, err)
			}
			snapshot.Board[x][y] = rec
		}
	}

	tokens, err := d.fields(snapshot.Players + 1)
	if err != nil {
		return nil, err
	}
	snapshot.Hands = make([]model.TileKind, len(tokens))
	for i, token := range tokens {
		kind, err := parseHandToken(token)
		if err != nil {
			return nil, d.errorf("hand %d: %v", i, err)
		}
		snapshot.Hands[i] = kind
	}

	if err := d.expectEnd(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

type decoder struct {
	scanner *bufio.Scanner
	line    int
}

func (d *decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", model.ErrInvalidSaveFile, d.line, fmt.Sprintf(format, args...))
}

// fields reads the next line and requires exactly n whitespace separated tokens
func (d *decoder) fields(n int) ([]string, error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidSaveFile, err)
		}
		d.line++
		return nil, d.errorf("unexpected end of file")
	}
	d.line++
	fields := strings.Fields(d.scanner.Text())
	if len(fields) != n {
		return nil, d.errorf("expected %d values, found %d", n, len(fields))
	}
	return fields, nil
}

// expectEnd allows only blank lines after the hands line
func (d *decoder) expectEnd() error {
	for d.scanner.Scan() {
		d.line++
		if strings.TrimSpace(d.scanner.Text()) != "" {
			return d.errorf("unexpected trailing data")
		}
	}
	if err := d.scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidSaveFile, err)
	}
	return nil
}

func parseTileToken(token string) (*model.TileRecord, error) {
	if token == "0" {
		return nil, nil
	}
	if len(token) < 3 {
		return nil, fmt.Errorf("tile token %q too short", token)
	}
	kind, err := model.ParseTileKind(token[0])
	if err != nil {
		return nil, err
	}
	digits := token[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, fmt.Errorf("tile token %q has a non-digit id or owner", token)
		}
	}
	id, err := strconv.Atoi(digits[:len(digits)-1])
	if err != nil {
		return nil, fmt.Errorf("tile token %q: %v", token, err)
	}
	return &model.TileRecord{
		Kind:  kind,
		ID:    id,
		Owner: int(digits[len(digits)-1] - '0'),
	}, nil
}

func parseHandToken(token string) (model.TileKind, error) {
	if token == "0" {
		return model.NoTile, nil
	}
	if len(token) != 1 {
		return model.NoTile, fmt.Errorf("hand token %q is not a single letter", token)
	}
	return model.ParseTileKind(token[0])
}
