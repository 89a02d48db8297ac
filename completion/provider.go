// Package completion generates shell completion scripts for a command.Tree.
//
// A Provider renders one shell dialect. Generated scripts are made of one function per
// visible command path followed by a shell-specific runtime template which interprets
// the directives those functions issue. Candidates which cannot be known while the script
// is generated are fetched at completion time by re-invoking the host executable, see
// package host.
package completion

import (
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Provider renders completion scripts and on-the-fly candidates for one or more shells
type Provider interface {
	// Targets returns the shell identifiers served by the provider
	Targets() []string
	// Generate writes the full completion script for tree to w
	Generate(w io.Writer, tree *command.Tree) error
	// GenerateOnTheFlyCandidates writes values in the format the runtime template reads
	GenerateOnTheFlyCandidates(w io.Writer, values []candidate.Value) error
}

// AppInfo identifies the application a script is generated for
type AppInfo struct {
	// Name is the display name; it is sanitized into shell function names
	Name string
	// Executable is the command the shell registers completion for and re-invokes for
	// on-the-fly candidates. It defaults to Name.
	Executable string
}

func (a AppInfo) executable() string {
	if a.Executable == "" {
		return a.Name
	}
	return a.Executable
}

// validate rejects an executable which cannot be substituted into a script verbatim
func (a AppInfo) validate() error {
	if exe := a.executable(); !command.IsValidName(exe) {
		return errs.ErrInvalidName.WithArgs(exe, "executable")
	}
	return nil
}

// Option configures a provider
type Option func(*providerConfig)

type providerConfig struct {
	logger    *zap.Logger
	templates fs.FS
	verify    bool
}

func newProviderConfig(opts []Option) providerConfig {
	cfg := providerConfig{
		logger:    zap.NewNop(),
		templates: templates,
		verify:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger warnings about degraded candidates are written to
func WithLogger(logger *zap.Logger) Option {
	return func(c *providerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTemplates replaces the embedded runtime templates
func WithTemplates(fsys fs.FS) Option {
	return func(c *providerConfig) {
		c.templates = fsys
	}
}

// WithVerify toggles the syntax check of generated bash scripts
func WithVerify(verify bool) Option {
	return func(c *providerConfig) {
		c.verify = verify
	}
}
