package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/ao3doc"
)

// Ensure FileStore implements ao3doc.WorkWriter at compile time.
var _ ao3doc.WorkWriter = (*FileStore)(nil)

// FileStore implements ao3doc.WorkWriter with atomic update semantics.
// Works are saved to a temporary directory, then renamed into place on Commit.
type FileStore struct {
	baseDir string
	name    string
	encoder ao3doc.WorkEncoder

	mu sync.Mutex
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved into baseDir/name on Commit.
func NewFileStore(baseDir, name string, encoder ao3doc.WorkEncoder) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		encoder: encoder,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteWork encodes the work and writes it to the temporary directory.
// Safe for concurrent use.
func (s *FileStore) WriteWork(ctx context.Context, work *ao3doc.Work) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := WorkPath(work.ID, s.encoder.Ext())
	if err != nil {
		return err
	}

	content, err := s.encoder.Encode(work)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), relPath), content, 0644)
}

// Commit moves the written works into the output directory.
// Existing files for other works are kept.
func (s *FileStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.tempDir())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.finalDir(), 0755); err != nil {
		return err
	}
	for _, e := range entries {
		src := filepath.Join(s.tempDir(), e.Name())
		if err := os.Rename(src, filepath.Join(s.finalDir(), e.Name())); err != nil {
			return err
		}
	}

	return os.RemoveAll(s.tempDir())
}

// Abort removes the temporary directory.
func (s *FileStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.RemoveAll(s.tempDir())
}
