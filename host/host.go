// Package host lets an application answer the requests issued by its own generated
// completion scripts: printing the script itself and printing on-the-fly candidates
// when the shell re-invokes the executable.
package host

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/completion"
	"github.com/napalu/shellcomp/errs"
)

// Re-entry flags, recognized as the first argument only
const (
	CompletionFlag = "--completion"
	CandidatesFlag = "--completion-candidates"
)

// HelpExitCode is the exit status after -h/--help rendered the help text
const HelpExitCode = 129

// DefaultTimeout bounds a single on-the-fly source call
const DefaultTimeout = 5 * time.Second

// Host routes completion requests to a generator
type Host struct {
	generator *completion.Generator
	tree      *command.Tree
	resolver  candidate.Resolver
	sources   *candidate.Sources
	logger    *zap.Logger
	timeout   time.Duration
}

// Option configures a Host
type Option func(*Host)

// WithResolver sets the resolver used for parameters without a registered source
func WithResolver(r candidate.Resolver) Option {
	return func(h *Host) {
		h.resolver = r
	}
}

// WithSources sets the on-the-fly source registry
func WithSources(s *candidate.Sources) Option {
	return func(h *Host) {
		h.sources = s
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTimeout bounds every source call; zero or less disables the bound
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		h.timeout = d
	}
}

// New returns a host serving tree through gen
func New(gen *completion.Generator, tree *command.Tree, opts ...Option) *Host {
	h := &Host{
		generator: gen,
		tree:      tree,
		resolver:  candidate.NewHintResolver(),
		sources:   candidate.NewSources(),
		logger:    zap.NewNop(),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Intercept handles args (without the program name) when they start with
//
//	--completion <shell>
//	--completion-candidates <shell>:<name> [-- words...]
//
// and reports whether they did. Output goes to stdout with no extra text.
func (h *Host) Intercept(ctx context.Context, args []string, stdout io.Writer) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	flag, value, hasValue := strings.Cut(args[0], "=")
	rest := args[1:]
	if flag != CompletionFlag && flag != CandidatesFlag {
		return false, nil
	}
	if !hasValue {
		if len(rest) == 0 || rest[0] == "--" {
			return true, errs.ErrMissingArgument.WithArgs(flag)
		}
		value, rest = rest[0], rest[1:]
	}

	if flag == CompletionFlag {
		return true, h.generator.Generate(value, stdout, h.tree)
	}

	target, name, err := ParseCandidateSpec(value)
	if err != nil {
		return true, err
	}
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}

	return true, h.Candidates(ctx, target, name, rest, stdout)
}

// ParseCandidateSpec splits "<shell>:<name>"
func ParseCandidateSpec(spec string) (target, name string, err error) {
	target, name, ok := strings.Cut(spec, ":")
	if !ok || target == "" || name == "" {
		return "", "", errs.ErrInvalidCandidateSpec.WithArgs(spec)
	}
	return target, name, nil
}

// Candidates resolves the candidates named name for the typed words and writes them in
// the format of target. A name without a registered source is looked up as an option or
// argument of the addressed command and answered from its static keywords.
func (h *Host) Candidates(ctx context.Context, target, name string, words []string, stdout io.Writer) error {
	if _, err := h.generator.Provider(target); err != nil {
		return err
	}

	values, err := h.resolve(ctx, target, name, words)
	if err != nil {
		h.logger.Warn("on-the-fly candidates failed", zap.String("target", target), zap.String("name", name), zap.Error(err))
		return err
	}

	return h.generator.GenerateOnTheFlyCandidates(target, stdout, values)
}

func (h *Host) resolve(ctx context.Context, target, name string, words []string) ([]candidate.Value, error) {
	if h.tree == nil {
		return nil, errs.ErrNilTree
	}

	if _, ok := h.sources.Get(name); ok {
		node, path := h.tree.Lookup(words)
		if h.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.timeout)
			defer cancel()
		}
		return h.sources.Resolve(ctx, candidate.Request{
			Target:  target,
			Name:    name,
			Words:   words,
			Command: node,
			Path:    path,
		})
	}

	_, param, err := candidate.Lookup(h.tree, target, words, name)
	if err != nil {
		return nil, errs.ErrUnknownSource.WithArgs(name).Wrap(err)
	}

	var res candidate.Result
	if param.Option != nil {
		res, err = h.resolver.ResolveOption(param.Option)
	} else {
		res, err = h.resolver.ResolveArgument(param.Argument)
	}
	if err != nil {
		return nil, err
	}
	if res.IsOnTheFly() || res.Kind() != candidate.KindKeywords {
		return nil, errs.ErrUnknownSource.WithArgs(name)
	}

	return res.Values(), nil
}
