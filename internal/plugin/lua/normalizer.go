package lua

import (
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// NormalizeFunc is the global function a normalizer script must define.
const NormalizeFunc = "normalize"

// Normalizer maps lines through a script's normalize function before they
// are compared.
type Normalizer struct {
	state    *State
	source   string
	logger   *zap.Logger
	failures atomic.Int64
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*normalizerConfig)

type normalizerConfig struct {
	logger *zap.Logger
	state  []StateOption
}

// WithLogger sets the logger used to report script failures.
func WithLogger(l *zap.Logger) NormalizerOption {
	return func(c *normalizerConfig) {
		c.logger = l
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) NormalizerOption {
	return func(c *normalizerConfig) {
		c.state = append(c.state, opts...)
	}
}

// LoadNormalizer runs the script at path and checks that it defines
// normalize.
func LoadNormalizer(path string, opts ...NormalizerOption) (*Normalizer, error) {
	return newNormalizer(path, func(s *State) error { return s.DoFile(path) }, opts)
}

// NewNormalizer is like LoadNormalizer for a script held in memory.
func NewNormalizer(code string, opts ...NormalizerOption) (*Normalizer, error) {
	return newNormalizer("<string>", func(s *State) error { return s.DoString(code) }, opts)
}

func newNormalizer(source string, load func(*State) error, opts []NormalizerOption) (*Normalizer, error) {
	cfg := normalizerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := NewState(cfg.state...)
	if err := load(s); err != nil {
		s.Close()
		return nil, fmt.Errorf("load normalizer %s: %w", source, err)
	}
	if !s.HasFunction(NormalizeFunc) {
		s.Close()
		return nil, fmt.Errorf("load normalizer %s: %w: %s", source, ErrNotFunction, NormalizeFunc)
	}

	return &Normalizer{
		state:  s,
		source: source,
		logger: cfg.logger.With(zap.String("normalizer", source)),
	}, nil
}

// Call returns normalize(line) or an error when the script fails or returns
// something other than a string or number.
func (n *Normalizer) Call(line string) (string, error) {
	ret, err := n.state.Call(NormalizeFunc, lua.LString(line))
	if err != nil {
		return "", err
	}
	if len(ret) == 0 {
		return "", fmt.Errorf("%w: no value", ErrBadResult)
	}
	switch v := ret[0].(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrBadResult, v.Type())
	}
}

// Normalize returns normalize(line), or line itself when the call fails.
// The first failure is logged as a warning, later ones at debug level.
func (n *Normalizer) Normalize(line string) string {
	out, err := n.Call(line)
	if err != nil {
		if n.failures.Add(1) == 1 {
			n.logger.Warn("normalize failed, comparing lines unchanged", zap.Error(err))
		} else {
			n.logger.Debug("normalize failed", zap.Error(err))
		}
		return line
	}
	return out
}

// Failures returns how many calls to Normalize fell back to the input.
func (n *Normalizer) Failures() int64 {
	return n.failures.Load()
}

// Close releases the script state.
func (n *Normalizer) Close() error {
	return n.state.Close()
}
