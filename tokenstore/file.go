package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/ledgerline/ledgerline-go/internal/errors"
)

// FileStore persists the token pair as a JSON document on disk, created with
// 0600 permissions. Writes replace the whole document so the pair is always
// stored or cleared together.
type FileStore struct {
	path string
	lock sync.Mutex
}

type fileDocument struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store at path. The parent directory is
// created if missing; the file itself is created on first SetPair.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.Wrapf(errors.ErrInternal, "token file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrapf(err, "tokenstore.NewFileStore mkdir")
	}
	return &FileStore{path: path}, nil
}

// DefaultPath returns the conventional token file location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrapf(err, "tokenstore.DefaultPath")
	}
	return filepath.Join(dir, "ledgerline", "tokens.json"), nil
}

func (f *FileStore) AccessToken() (string, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	doc := f.read()
	return doc.AccessToken, doc.AccessToken != ""
}

func (f *FileStore) RefreshToken() (string, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	doc := f.read()
	return doc.RefreshToken, doc.RefreshToken != ""
}

func (f *FileStore) SetPair(accessToken, refreshToken string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.write(fileDocument{AccessToken: accessToken, RefreshToken: refreshToken})
}

func (f *FileStore) Clear() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "tokenstore.Clear")
	}
	return nil
}

// read returns the stored document, or an empty one when the file is missing
// or unreadable. A corrupt token file behaves like a logged-out state.
func (f *FileStore) read() fileDocument {
	var doc fileDocument
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fileDocument{}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDocument{}
	}
	return doc
}

func (f *FileStore) write(doc fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "tokenstore.write marshal")
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "tokenstore.write")
	}
	return nil
}
