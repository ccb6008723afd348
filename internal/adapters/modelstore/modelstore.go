// Package modelstore persists trained snapshots to local disk.
//
// Snapshots are written as versioned JSON so future aggregate-shape changes
// can be migrated on load instead of failing silently. Saves go through a
// temp file in the same directory followed by a rename, so an interrupted
// write can never corrupt the previously valid snapshot.
package modelstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitchside/oracle/internal/domain/stats"
	"github.com/pitchside/oracle/pkg/logger"
)

// ErrUnsupportedSchema reports a persisted snapshot with a schema version
// this build does not understand.
var ErrUnsupportedSchema = errors.New("unsupported model schema version")

// FileStore saves and loads snapshots at a fixed path.
type FileStore struct {
	path   string
	logger logger.Logger
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, logger: logger.Get().Named("modelstore")}
}

// Save durably writes the snapshot, replacing any previous one atomically.
func (f *FileStore) Save(ctx context.Context, snap *stats.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	f.logger.Info(ctx, "model snapshot saved",
		logger.String("path", f.path),
		logger.Int("teams", len(snap.TeamStats)),
		logger.Int("venues", len(snap.VenueStats)),
	)
	return nil
}

// Load reads the persisted snapshot. A missing file is not an error: it
// yields empty aggregates so a cold process can serve degenerate predictions
// immediately.
func (f *FileStore) Load(ctx context.Context) (*stats.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.logger.Info(ctx, "no model snapshot on disk; starting empty",
			logger.String("path", f.path))
		return stats.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap := stats.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.SchemaVersion != stats.SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrUnsupportedSchema, snap.SchemaVersion, stats.SchemaVersion)
	}
	if snap.TeamStats == nil {
		snap.TeamStats = make(map[string]*stats.TeamStats)
	}
	if snap.VenueStats == nil {
		snap.VenueStats = make(map[string]*stats.VenueStats)
	}

	f.logger.Info(ctx, "model snapshot loaded",
		logger.String("path", f.path),
		logger.Int("teams", len(snap.TeamStats)),
	)
	return snap, nil
}
