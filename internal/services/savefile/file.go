package savefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mcoot/metrogame/internal/model"
)

// WriteFile writes a snapshot to path, replacing any existing file
func WriteFile(path string, snapshot *model.Snapshot) error {
	data, err := Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot from path. A missing file is reported as ErrSaveNotFound.
func ReadFile(path string) (*model.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrSaveNotFound, path)
		}
		return nil, fmt.Errorf("open save file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
