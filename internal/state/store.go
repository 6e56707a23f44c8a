package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"kstartup-pbanc-watcher/internal/observability"
)

// Store persists the seen-state between runs.
type Store interface {
	// Load returns the persisted state. A missing, unreadable or corrupt
	// file yields an empty state, never an error: losing the state may
	// cause duplicate notifications once, failing the run would cause none.
	Load(ctx context.Context) (*SeenState, error)

	// Save persists the state, truncated to the configured bound.
	Save(ctx context.Context, s *SeenState) error
}

// stateFile is the on-disk shape. "titles" is the legacy key an earlier
// version of the watcher wrote; it also held identifiers.
type stateFile struct {
	Identifiers []string `json:"identifiers"`
	Titles      []string `json:"titles,omitempty"`
}

type FileStore struct {
	path       string
	maxEntries int
	logger     *observability.Logger
}

func NewFileStore(path string, maxEntries int, logger *observability.Logger) *FileStore {
	return &FileStore{path: path, maxEntries: maxEntries, logger: logger}
}

func (fs *FileStore) Load(_ context.Context) (*SeenState, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			fs.logger.Info("No state file found, starting fresh", "path", fs.path)
		} else {
			fs.logger.Warn("State file unreadable, starting fresh", "path", fs.path, "error", err.Error())
		}
		return NewSeenState(), nil
	}

	var f stateFile
	if err := json.Unmarshal(data, &f); err != nil {
		fs.logger.Warn("State file corrupt, starting fresh", "path", fs.path, "error", err.Error())
		return NewSeenState(), nil
	}

	ids := f.Identifiers
	if len(ids) == 0 && len(f.Titles) > 0 {
		fs.logger.Info("Migrating legacy state file key", "path", fs.path, "entries", len(f.Titles))
		ids = f.Titles
	}

	return NewSeenState(ids...), nil
}

// Save writes the state atomically: marshal, write a sibling temp file,
// rename over the target.
func (fs *FileStore) Save(_ context.Context, s *SeenState) error {
	s.Truncate(fs.maxEntries)

	data, err := json.Marshal(stateFile{Identifiers: s.Identifiers()})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	fs.logger.Debug("State persisted", "path", fs.path, "entries", s.Len())
	return nil
}
