// internal/content/snapshot.go
//
// Local persistence adapter.
//
// Context
// -------
// The whole store state round-trips through one JSON document with top-level
// fields `pages`, `media`, `siteSettings`, and `formSubmissions`.  The file
// lives at `<data_dir>/content.json` and is rewritten after every mutation.
// Writes are atomic (temp file + rename) so a crash mid-write never leaves a
// truncated snapshot behind.
//
// A `version` field tags the document shape.  migrate() is the single place
// future shape changes hook into; today it is a no-op beyond defaulting
// legacy version-less files to version 1.
package content

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// SnapshotVersion is the current on-disk document shape.
const SnapshotVersion = 1

const snapshotName = "content.json"

// Snapshot is the serialisable representation of the full store state.
type Snapshot struct {
	Version         int              `json:"version"`
	Pages           []Page           `json:"pages"`
	Media           []MediaItem      `json:"media"`
	SiteSettings    SiteSettings     `json:"siteSettings"`
	FormSubmissions []FormSubmission `json:"formSubmissions"`
}

// migrate upgrades older document shapes in place.  Unknown future versions
// are left alone; the caller decides whether to trust them.
func (s *Snapshot) migrate() {
	if s.Version == 0 {
		s.Version = 1
	}
}

// Persister abstracts snapshot storage so tests can swap in an in-memory
// implementation.
type Persister interface {
	// Load returns the stored snapshot, or (nil, nil) when none exists yet.
	Load() (*Snapshot, error)
	// Save replaces the stored snapshot.
	Save(*Snapshot) error
}

//
// File-backed implementation
//

// FileStore persists the snapshot under a data directory.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore rooted at dataDir, creating the directory
// when needed.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, snapshotName)}, nil
}

// Load reads and parses the snapshot file.  A missing file is a normal first
// run and returns (nil, nil); a parse failure returns the error so the caller
// can fall back to defaults.
func (f *FileStore) Load() (*Snapshot, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	snap.migrate()
	return &snap, nil
}

// Save writes the snapshot atomically: marshal, write a sibling temp file,
// fsync, then rename over the live path.  The caller's snapshot is left
// untouched; the current version tag is stamped on a shallow copy.
func (f *FileStore) Save(snap *Snapshot) error {
	out := *snap
	out.Version = SnapshotVersion

	raw, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), snapshotName+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path)
}
