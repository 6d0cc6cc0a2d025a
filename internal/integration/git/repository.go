package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repository represents a git repository.
type Repository struct {
	path string
}

// openRepository opens an existing git repository.
func openRepository(path string) (*Repository, error) {
	gitDir := filepath.Join(path, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("stat .git: %w", err)
	}

	// .git can be a directory or a file (for worktrees)
	if !info.IsDir() {
		content, err := os.ReadFile(gitDir)
		if err != nil {
			return nil, fmt.Errorf("read .git file: %w", err)
		}
		if !bytes.HasPrefix(content, []byte("gitdir:")) {
			return nil, ErrNotRepository
		}
	}

	return &Repository{path: path}, nil
}

// discoverRepository finds the repository root from any path within it.
func discoverRepository(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}

	current := absPath
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrRepositoryNotFound
		}
		current = parent
	}
}

// Path returns the repository root path.
func (r *Repository) Path() string {
	return r.path
}

// RelPath returns path relative to the repository root in git's slash
// separated form.
func (r *Repository) RelPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	rel, err := filepath.Rel(r.path, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrPathNotFound)
	}
	return filepath.ToSlash(rel), nil
}

// Show returns the content of path at revision rev.
func (r *Repository) Show(ctx context.Context, rev, path string) ([]byte, error) {
	rel, err := r.RelPath(path)
	if err != nil {
		return nil, err
	}
	return r.git(ctx, "show", rev+":"+rel)
}

// git executes a git command in the repository.
func (r *Repository) git(ctx context.Context, args ...string) ([]byte, error) {
	return newGitCommand(r.path, args...).run(ctx)
}

// gitCommand represents a git command to execute.
type gitCommand struct {
	dir  string
	args []string
}

// newGitCommand creates a new git command.
func newGitCommand(dir string, args ...string) *gitCommand {
	return &gitCommand{dir: dir, args: args}
}

// run executes the git command and returns its standard output.
func (c *gitCommand) run(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", c.args...)
	if c.dir != "" {
		cmd.Dir = c.dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		return nil, fmt.Errorf("git %s: %s: %w", strings.Join(c.args, " "), msg, classify(msg, err))
	}

	return stdout.Bytes(), nil
}

// classify maps git's error output to the package errors.
func classify(stderr string, err error) error {
	switch {
	case strings.Contains(stderr, "does not exist in"),
		strings.Contains(stderr, "exists on disk, but not in"):
		return ErrPathNotFound
	case strings.Contains(stderr, "invalid object name"),
		strings.Contains(stderr, "unknown revision"),
		strings.Contains(stderr, "bad revision"):
		return ErrNoHead
	case strings.Contains(stderr, "not a git repository"):
		return ErrNotRepository
	}
	return err
}
