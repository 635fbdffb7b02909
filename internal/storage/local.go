package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"
)

// LocalStore keeps files in a directory on disk, served back by the HTTP
// layer under publicPath.
type LocalStore struct {
	dir        string
	publicPath string
}

func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, publicPath: publicPath}, nil
}

// Dir is the on-disk directory, for static-file registration.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filepath.Base(name)), data, 0o644); err != nil {
		return "", err
	}
	return path.Join(s.publicPath, name), nil
}

func (s *LocalStore) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Entry describes one stored file, for the orphan sweeper.
type Entry struct {
	Name    string
	ModTime time.Time
}

// Entries lists the stored files. Subdirectories are skipped.
func (s *LocalStore) Entries(_ context.Context) ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: d.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}
