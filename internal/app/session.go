// Package app wires configuration, base version providers, the document and
// its change tracker into a session, and implements the linewatch commands
// on top of it.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/linewatch/internal/config"
	"github.com/dshills/linewatch/internal/engine/buffer"
	"github.com/dshills/linewatch/internal/engine/tracking"
	"github.com/dshills/linewatch/internal/integration/git"
	"github.com/dshills/linewatch/internal/integration/versioning"
	"github.com/dshills/linewatch/internal/plugin/lua"
	"github.com/dshills/linewatch/internal/renderer/gutter"
)

// Options configures a session.
type Options struct {
	// Config holds the settings; use config.Default() for the defaults.
	Config config.Config

	// Logger receives diagnostics. Nil discards them.
	Logger *zap.Logger

	// BaseFile, when set, is the base version of the document regardless
	// of the configured providers.
	BaseFile string
}

// Session tracks one file on disk against its base version.
//
// A session is not safe for concurrent use; the watch and view commands
// call it from a single goroutine.
type Session struct {
	path   string
	cfg    config.Config
	logger *zap.Logger

	git        *git.Manager
	normalizer *lua.Normalizer

	doc     *buffer.Document
	tracker *tracking.Tracker
	gutter  *gutter.Gutter
	closed  bool
}

// Open reads the file at path and starts tracking it.
func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		path:   abs,
		cfg:    opts.Config,
		logger: logger.With(zap.String("file", abs)),
	}

	if err := s.open(ctx, opts); err != nil {
		s.Close()
		return nil, NewOperationError("open", abs, err)
	}
	return s, nil
}

func (s *Session) open(ctx context.Context, opts Options) error {
	signs, err := gutter.ParseSigns(s.cfg.View.Signs)
	if err != nil {
		return err
	}

	if opts.BaseFile != "" {
		if _, err := os.Stat(opts.BaseFile); err != nil {
			return err
		}
	}
	if slices.Contains(s.cfg.Versioning.Providers, config.ProviderGit) {
		s.git = git.NewManager()
	}
	providers, err := NewProviders(s.cfg.Versioning, s.git, opts.BaseFile)
	if err != nil {
		return err
	}

	normalize, err := s.buildNormalizer()
	if err != nil {
		return err
	}

	text, err := readFile(s.path)
	if err != nil {
		return err
	}
	s.doc = buffer.New(s.path, text)

	trackerOpts := []tracking.Option{
		tracking.WithLogger(s.logger),
		tracking.WithContext(ctx),
	}
	if normalize != nil {
		trackerOpts = append(trackerOpts, tracking.WithNormalizer(normalize))
	}
	s.tracker = tracking.NewTracker(providers, trackerOpts...)
	s.tracker.Initialize(s.doc)

	s.gutter = gutter.New(s.tracker, gutter.Config{
		ShowLineNumbers:    s.cfg.View.LineNumbers,
		MinLineNumberWidth: 3,
		Signs:              signs,
	})

	s.logger.Debug("session opened",
		zap.Int("lines", s.doc.LineCount()),
		zap.Int("providers", len(providers)),
		zap.Bool("base", s.tracker.HasBaseVersion()),
	)
	return nil
}

// buildNormalizer combines trailing space trimming and the Lua normalizer.
// It returns nil when lines are compared as they are.
func (s *Session) buildNormalizer() (func(string) string, error) {
	var steps []func(string) string
	if s.cfg.Diff.IgnoreTrailingSpace {
		steps = append(steps, trimTrailingSpace)
	}
	if path := s.cfg.Diff.Normalizer; path != "" {
		n, err := lua.LoadNormalizer(path, lua.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.normalizer = n
		steps = append(steps, n.Normalize)
	}

	switch len(steps) {
	case 0:
		return nil, nil
	case 1:
		return steps[0], nil
	}
	return func(line string) string {
		for _, step := range steps {
			line = step(line)
		}
		return line
	}, nil
}

func trimTrailingSpace(line string) string {
	return strings.TrimRight(line, " \t")
}

// Path returns the absolute path of the tracked file.
func (s *Session) Path() string {
	return s.path
}

// Document returns the document.
func (s *Session) Document() *buffer.Document {
	return s.doc
}

// Tracker returns the change tracker.
func (s *Session) Tracker() *tracking.Tracker {
	return s.tracker
}

// Gutter returns the gutter renderer.
func (s *Session) Gutter() *gutter.Gutter {
	return s.gutter
}

// Reload brings the document up to date with the file and rebaselines, as
// after a save. Changed lines are edited in place; without a base version
// they become added lines.
func (s *Session) Reload() error {
	if s.closed {
		return ErrSessionClosed
	}
	text, err := readFile(s.path)
	if err != nil {
		return NewOperationError("reload", s.path, err)
	}

	incremental := syncText(s.doc, text)
	s.doc.MarkOriginal()

	s.logger.Debug("reloaded",
		zap.Int("lines", s.doc.LineCount()),
		zap.Bool("incremental", incremental),
	)
	return nil
}

// Close releases the tracker, the normalizer and git state. It is safe to
// call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.tracker != nil {
		s.tracker.Dispose()
	}
	if s.normalizer != nil {
		s.normalizer.Close()
	}
	if s.git != nil {
		return s.git.Close()
	}
	return nil
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, err := versioning.ReadText(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}
