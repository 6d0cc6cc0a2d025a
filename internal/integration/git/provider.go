package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dshills/linewatch/internal/integration/versioning"
)

// DefaultRevision is the revision base versions are read from.
const DefaultRevision = "HEAD"

// Provider serves base versions from the last commit of the repository
// containing a file. It implements versioning.Provider.
type Provider struct {
	manager  *Manager
	revision string
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRevision reads base versions from rev instead of HEAD.
func WithRevision(rev string) ProviderOption {
	return func(p *Provider) {
		if rev != "" {
			p.revision = rev
		}
	}
}

// NewProvider creates a provider using manager for repository discovery.
// A nil manager gets a private one.
func NewProvider(manager *Manager, opts ...ProviderOption) *Provider {
	if manager == nil {
		manager = NewManager()
	}
	p := &Provider{manager: manager, revision: DefaultRevision}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OpenBaseVersion returns the committed content of fileName.
func (p *Provider) OpenBaseVersion(ctx context.Context, fileName string) (io.ReadCloser, error) {
	repo, err := p.manager.Discover(filepath.Dir(fileName))
	if err != nil {
		if errors.Is(err, ErrRepositoryNotFound) || errors.Is(err, ErrNotRepository) {
			return nil, fmt.Errorf("%s: %w: %w", fileName, versioning.ErrNoBaseVersion, err)
		}
		return nil, err
	}

	data, err := repo.Show(ctx, p.revision, fileName)
	if err != nil {
		if errors.Is(err, ErrPathNotFound) || errors.Is(err, ErrNoHead) {
			return nil, fmt.Errorf("%w: %w", versioning.ErrNoBaseVersion, err)
		}
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var _ versioning.Provider = (*Provider)(nil)
