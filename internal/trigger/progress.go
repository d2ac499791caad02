package trigger

import (
	"fmt"
	"sync/atomic"
)

// Progress is the shot counter published after every completed shot.
type Progress struct {
	Taken     int `json:"taken"`
	Remaining int `json:"remaining"`
}

// ProgressStore publishes progress from the engine to a reader.
// There is one writer and any number of readers.
type ProgressStore interface {
	Store(p Progress) error
	Load() (Progress, error)
}

// FileStore keeps the record in a JSON file replaced atomically on every
// update, so the reader never needs a lock.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Store(p Progress) error {
	if err := writeJSON(s.path, p); err != nil {
		return fmt.Errorf("store progress: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (Progress, error) {
	var p Progress
	if err := readJSON(s.path, &p, ErrNoProgress); err != nil {
		return Progress{}, err
	}
	return p, nil
}

// MemStore publishes progress in memory. Every Store bumps a sequence
// number so a poller can tell a fresh value from one it already drew.
type MemStore struct {
	seq atomic.Uint32
	cur atomic.Pointer[Progress]
}

func (s *MemStore) Store(p Progress) error {
	s.cur.Store(&p)
	s.seq.Add(1)
	return nil
}

func (s *MemStore) Load() (Progress, error) {
	p := s.cur.Load()
	if p == nil {
		return Progress{}, ErrNoProgress
	}
	return *p, nil
}

// Seq returns the number of values stored so far.
func (s *MemStore) Seq() uint32 { return s.seq.Load() }
