package versioning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoBaseVersion indicates that a provider has no base version for a file.
var ErrNoBaseVersion = errors.New("no base version")

// Provider opens the base version of a file.
//
// Implementations return an error wrapping ErrNoBaseVersion when the file
// has no base version (untracked, never saved). The caller closes the
// returned reader.
type Provider interface {
	OpenBaseVersion(ctx context.Context, fileName string) (io.ReadCloser, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, fileName string) (io.ReadCloser, error)

// OpenBaseVersion calls f.
func (f ProviderFunc) OpenBaseVersion(ctx context.Context, fileName string) (io.ReadCloser, error) {
	return f(ctx, fileName)
}

// Chain asks providers in order; the first base version found wins.
type Chain []Provider

// OpenBaseVersion returns the first base version any provider has.
// Provider failures other than ErrNoBaseVersion do not stop the search; if
// no provider succeeds they are joined into the returned error, which always
// wraps ErrNoBaseVersion.
func (c Chain) OpenBaseVersion(ctx context.Context, fileName string) (io.ReadCloser, error) {
	var errs []error
	for _, p := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rc, err := p.OpenBaseVersion(ctx, fileName)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, ErrNoBaseVersion) {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoBaseVersion)
	}
	return nil, fmt.Errorf("%s: %w: %w", fileName, ErrNoBaseVersion, errors.Join(errs...))
}

// FileProvider reads base versions from sibling files.
//
// The base of "dir/name.go" is "dir/name.go" + Suffix, or, when Dir is set,
// Dir/"name.go" + Suffix.
type FileProvider struct {
	Dir    string
	Suffix string
}

// BasePath returns the path of the base file for fileName.
func (p FileProvider) BasePath(fileName string) string {
	if p.Dir != "" {
		return filepath.Join(p.Dir, filepath.Base(fileName)) + p.Suffix
	}
	return fileName + p.Suffix
}

// OpenBaseVersion opens the base file.
func (p FileProvider) OpenBaseVersion(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := p.BasePath(fileName)
	if filepath.Clean(path) == filepath.Clean(fileName) {
		// A file is not its own base version.
		return nil, ErrNoBaseVersion
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoBaseVersion)
		}
		return nil, fmt.Errorf("open base file: %w", err)
	}
	return f, nil
}

// MemoryProvider serves base versions from memory.
// It is safe for concurrent use.
type MemoryProvider struct {
	mu    sync.RWMutex
	bases map[string]string
}

// NewMemoryProvider creates an empty memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{bases: make(map[string]string)}
}

// Set stores text as the base version of fileName.
func (p *MemoryProvider) Set(fileName, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bases[fileName] = text
}

// Delete forgets the base version of fileName.
func (p *MemoryProvider) Delete(fileName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.bases, fileName)
}

// OpenBaseVersion returns the stored text.
func (p *MemoryProvider) OpenBaseVersion(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	text, ok := p.bases[fileName]
	p.mu.RUnlock()

	if !ok {
		return nil, ErrNoBaseVersion
	}
	return io.NopCloser(strings.NewReader(text)), nil
}
