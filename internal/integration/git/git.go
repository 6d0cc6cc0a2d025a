package git

import (
	"sync"
	"sync/atomic"
)

// Manager discovers repositories and caches them by root path.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	repos  map[string]*Repository
	closed atomic.Bool
}

// NewManager creates a new git manager.
func NewManager() *Manager {
	return &Manager{
		repos: make(map[string]*Repository),
	}
}

// Open opens a repository at the given path.
// The path must be the repository root (containing .git).
func (m *Manager) Open(path string) (*Repository, error) {
	if m.closed.Load() {
		return nil, ErrManagerClosed
	}

	m.mu.RLock()
	repo, ok := m.repos[path]
	m.mu.RUnlock()
	if ok {
		return repo, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if repo, ok := m.repos[path]; ok {
		return repo, nil
	}

	repo, err := openRepository(path)
	if err != nil {
		return nil, err
	}

	m.repos[path] = repo
	return repo, nil
}

// Discover finds and opens the repository containing the given path.
// It walks up the directory tree looking for a .git directory.
func (m *Manager) Discover(path string) (*Repository, error) {
	if m.closed.Load() {
		return nil, ErrManagerClosed
	}

	root, err := discoverRepository(path)
	if err != nil {
		return nil, err
	}

	return m.Open(root)
}

// IsRepository checks if the path is inside a git repository.
func (m *Manager) IsRepository(path string) bool {
	_, err := discoverRepository(path)
	return err == nil
}

// Close drops all cached repositories. Further calls fail with
// ErrManagerClosed.
func (m *Manager) Close() error {
	if m.closed.Swap(true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.repos = make(map[string]*Repository)
	return nil
}
