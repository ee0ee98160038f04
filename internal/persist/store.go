// Package persist stores workspace snapshots on disk as JSON. The host feeds
// the loaded snapshot to the model's restore and sinks serialize output here;
// the core itself never touches the filesystem.
package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"pkt.systems/panemux/schema"
	"pkt.systems/pslog"
)

const snapshotFile = "workspace.json"

// Store persists workspace snapshots under a state directory.
type Store struct {
	dir string
	log pslog.Logger
}

// NewStore constructs a store rooted at the given directory.
func NewStore(dir string) (*Store, error) {
	return NewStoreWithLogger(dir, nil)
}

// NewStoreWithLogger constructs a store with logging.
func NewStoreWithLogger(dir string, logger pslog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &Store{dir: dir, log: logger}, nil
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, snapshotFile)
}

// Load reads the persisted snapshot. A missing file is not an error; the
// second return value reports whether a snapshot existed.
func (s *Store) Load() (schema.WorkspaceSnapshot, bool, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("workspace load miss")
			}
			return schema.WorkspaceSnapshot{}, false, nil
		}
		if s.log != nil {
			s.log.Warn("workspace load failed", "err", err)
		}
		return schema.WorkspaceSnapshot{}, false, err
	}
	var snap schema.WorkspaceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		if s.log != nil {
			s.log.Warn("workspace load failed", "err", err)
		}
		return schema.WorkspaceSnapshot{}, false, err
	}
	if s.log != nil {
		s.log.Debug("workspace load ok", "tabs", len(snap.Tabs))
	}
	return snap, true, nil
}

// Save writes the snapshot atomically: temp file, sync, then rename over the
// previous snapshot.
func (s *Store) Save(snap schema.WorkspaceSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "workspace-*.json")
	if err != nil {
		return s.saveFailed(err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return s.saveFailed(err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return s.saveFailed(err)
	}
	if s.log != nil {
		s.log.Trace("workspace save ok", "tabs", len(snap.Tabs))
	}
	return nil
}

func (s *Store) saveFailed(err error) error {
	if s.log != nil {
		s.log.Warn("workspace save failed", "err", err)
	}
	return err
}
