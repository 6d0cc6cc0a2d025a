package git

import "errors"

// Error types for git operations.
var (
	// ErrNotRepository indicates the path is not a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrRepositoryNotFound indicates no repository was found.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrNoHead indicates the repository has no HEAD (empty repository).
	ErrNoHead = errors.New("repository has no HEAD")

	// ErrPathNotFound indicates the path does not exist in the revision.
	ErrPathNotFound = errors.New("path not found")

	// ErrManagerClosed indicates the manager has been closed.
	ErrManagerClosed = errors.New("manager closed")
)
