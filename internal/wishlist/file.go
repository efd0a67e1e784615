package wishlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sjsage522/slickdealer/pkg/errors"
)

// FileStore keeps the wishlist in a JSON document on disk, under a fixed key
type FileStore struct {
	path string
	key  string
}

// NewFileStore creates a file-backed store
func NewFileStore(path, key string) *FileStore {
	return &FileStore{path: path, key: key}
}

// Name returns the store name for logging
func (s *FileStore) Name() string {
	return "file"
}

// Load reads the wishlist from the file
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errors.NewStoreAbsent(s.path, s.key)
	}
	if err != nil {
		return nil, errors.NewStoreLoad(s.path, "failed to read wishlist file", err)
	}

	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStoreLoad(s.path, "wishlist file is corrupt", err)
	}

	items, ok := doc[s.key]
	if !ok {
		return nil, errors.NewStoreAbsent(s.path, s.key)
	}
	return items, nil
}

// Save replaces the file with the given items. The document is written to a
// temporary file in the same directory and renamed over the old one.
func (s *FileStore) Save(items []string) (err error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.MarshalIndent(map[string][]string{s.key: items}, "", "  ")
	if err != nil {
		return errors.NewStoreSave(s.path, "failed to encode wishlist", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.NewStoreSave(s.path, "failed to create temporary file", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.NewStoreSave(s.path, "failed to write wishlist", err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.NewStoreSave(s.path, "failed to sync wishlist", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.NewStoreSave(s.path, "failed to close wishlist", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewStoreSave(s.path, fmt.Sprintf("failed to replace %s", s.path), err)
	}
	return nil
}

// Close is a no-op; every Load and Save opens and closes the file itself
func (s *FileStore) Close() error {
	return nil
}
