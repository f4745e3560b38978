package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

// FileStore persists the session as a single JSON file. Keeping token and
// user in one file makes the set-and-cleared-together invariant structural:
// there is no state where one half of the session survives the other.
type FileStore struct {
	path string

	mu      sync.Mutex
	current Session
	subs    []func(Session)
}

var _ Store = (*FileStore)(nil)

// DefaultPath returns the conventional session file location under the
// user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(dir, "storectl", "session.json"), nil
}

// NewFileStore creates a store backed by the file at path and eagerly loads
// the persisted session. A missing, unreadable, or malformed file is not an
// error: the store starts in the logged-out state and the next Save
// overwrites whatever was there.
func NewFileStore(path string) *FileStore {
	fs := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return fs
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fs
	}
	// A file with a user but no token (or vice versa) is treated as absent
	// rather than half-restored.
	if !s.Present() {
		return fs
	}
	fs.current = s
	return fs
}

// Save writes the session to disk and notifies subscribers. The in-memory
// session is only replaced once the write succeeds.
func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}

	f.current = s
	f.notifyLocked()
	return nil
}

// Clear removes the session file and resets the in-memory session. Clearing
// an already absent session succeeds.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}

	f.current = Session{}
	f.notifyLocked()
	return nil
}

// Current returns the last saved session, or the zero Session.
func (f *FileStore) Current() Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Subscribe registers fn for synchronous change notification.
func (f *FileStore) Subscribe(fn func(Session)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

func (f *FileStore) notifyLocked() {
	for _, fn := range f.subs {
		fn(f.current)
	}
}
