package git

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/linewatch/internal/integration/versioning"
)

// testRepo creates a temporary git repository for testing.
func testRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	gitCmd(t, dir, "init")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "config", "user.name", "Test User")
	gitCmd(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

// createFile creates a file in the repo.
func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

// gitCmd runs a git command in the repo.
func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func readBase(t *testing.T, p versioning.Provider, file string) (string, error) {
	t.Helper()
	rc, err := p.OpenBaseVersion(context.Background(), file)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data), nil
}

func TestManagerDiscover(t *testing.T) {
	dir := testRepo(t)
	createFile(t, dir, "pkg/sub/file.go", "package sub\n")

	mgr := NewManager()
	repo, err := mgr.Discover(filepath.Join(dir, "pkg", "sub"))
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	abs, _ := filepath.Abs(dir)
	if repo.Path() != abs {
		t.Errorf("expected root %q, got %q", abs, repo.Path())
	}

	again, err := mgr.Discover(filepath.Join(dir, "pkg"))
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if again != repo {
		t.Error("expected cached repository")
	}

	rel, err := repo.RelPath(filepath.Join(dir, "pkg", "sub", "file.go"))
	if err != nil || rel != "pkg/sub/file.go" {
		t.Errorf("RelPath = %q, %v", rel, err)
	}
	if _, err := repo.RelPath(filepath.Dir(dir)); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("expected ErrPathNotFound for a path outside the repository, got %v", err)
	}

	if err := mgr.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Discover(dir); !errors.Is(err, ErrManagerClosed) {
		t.Errorf("expected ErrManagerClosed, got %v", err)
	}
}

func TestOpenRepositoryNotRepository(t *testing.T) {
	if _, err := openRepository(t.TempDir()); !errors.Is(err, ErrNotRepository) {
		t.Errorf("expected ErrNotRepository, got %v", err)
	}
}

func TestProviderCommittedContent(t *testing.T) {
	dir := testRepo(t)
	file := createFile(t, dir, "src/main.go", "package main\n\nfunc main() {}\n")
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "-m", "initial")

	// Working copy changes do not affect the base version.
	createFile(t, dir, "src/main.go", "package main\n")

	p := NewProvider(nil)
	got, err := readBase(t, p, file)
	if err != nil {
		t.Fatalf("open base: %v", err)
	}
	if got != "package main\n\nfunc main() {}\n" {
		t.Errorf("unexpected base %q", got)
	}
}

func TestProviderRevision(t *testing.T) {
	dir := testRepo(t)
	file := createFile(t, dir, "a.txt", "one\n")
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "-m", "one")
	createFile(t, dir, "a.txt", "two\n")
	gitCmd(t, dir, "commit", "-am", "two")

	got, err := readBase(t, NewProvider(nil, WithRevision("HEAD~1")), file)
	if err != nil {
		t.Fatalf("open base: %v", err)
	}
	if got != "one\n" {
		t.Errorf("expected previous revision, got %q", got)
	}
}

func TestProviderNoBaseVersion(t *testing.T) {
	empty := testRepo(t)
	emptyFile := createFile(t, empty, "new.txt", "x")

	dir := testRepo(t)
	createFile(t, dir, "tracked.txt", "x")
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "-m", "initial")
	untracked := createFile(t, dir, "untracked.txt", "y")

	outside := filepath.Join(t.TempDir(), "loose.txt")

	tests := []struct {
		name string
		file string
	}{
		{"repository without commits", emptyFile},
		{"untracked file", untracked},
		{"outside any repository", outside},
	}

	p := NewProvider(NewManager())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readBase(t, p, tt.file)
			if !errors.Is(err, versioning.ErrNoBaseVersion) {
				t.Errorf("expected ErrNoBaseVersion, got %v", err)
			}
		})
	}
}

func TestProviderCanceled(t *testing.T) {
	dir := testRepo(t)
	file := createFile(t, dir, "a.txt", "x")
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "-m", "initial")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider(nil).OpenBaseVersion(ctx, file); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
