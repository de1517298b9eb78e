package project

import (
	"context"
	"sync"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"
)

// File mirrors one entry of the host's project.files table: the parameters
// of each written row, keyed by row id.
type File struct {
	Parameters map[int][]row.Parameter
}

// MemoryStore is an in-process project table.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]*File
}

// NewMemoryStore creates an empty in-memory project table.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]*File)}
}

// WriteParameters stores a copy of params under rowID.
func (s *MemoryStore) WriteParameters(_ context.Context, file string, rowID int, params []row.Parameter) error {
	if err := checkRowID(rowID); err != nil {
		return err
	}
	stored := row.Clone(params)
	if stored == nil {
		stored = []row.Parameter{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[file]
	if !ok {
		f = &File{Parameters: make(map[int][]row.Parameter)}
		s.files[file] = f
	}
	f.Parameters[rowID] = stored
	return nil
}

func (s *MemoryStore) ReadParameters(_ context.Context, file string, rowID int) ([]row.Parameter, bool, error) {
	if err := checkRowID(rowID); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[file]
	if !ok {
		return nil, false, nil
	}
	params, ok := f.Parameters[rowID]
	if !ok {
		return nil, false, nil
	}
	return row.Clone(params), true, nil
}

func (s *MemoryStore) Close() error { return nil }
