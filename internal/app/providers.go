package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/linewatch/internal/config"
	"github.com/dshills/linewatch/internal/integration/git"
	"github.com/dshills/linewatch/internal/integration/versioning"
)

// NewProviders builds the provider chain from cfg. A non-empty baseFile is
// tried first and serves as the base of any document. mgr is used by the
// git provider and may be nil when git is not configured.
func NewProviders(cfg config.VersioningConfig, mgr *git.Manager, baseFile string) (versioning.Chain, error) {
	var chain versioning.Chain
	if baseFile != "" {
		chain = append(chain, explicitBase(baseFile))
	}

	for _, name := range cfg.Providers {
		switch name {
		case config.ProviderGit:
			chain = append(chain, git.NewProvider(mgr, git.WithRevision(cfg.Revision)))
		case config.ProviderFile:
			chain = append(chain, versioning.FileProvider{Dir: cfg.BaseDir, Suffix: cfg.BaseSuffix})
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
	}
	return chain, nil
}

// explicitBase serves path as the base version of every file. A missing
// path is an error rather than an absent base.
func explicitBase(path string) versioning.Provider {
	return versioning.ProviderFunc(func(ctx context.Context, _ string) (io.ReadCloser, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open base file: %w", err)
		}
		return f, nil
	})
}
