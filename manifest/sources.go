package manifest

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/errs"
	"github.com/napalu/shellcomp/internal/cmdline"
)

// Environment passed to exec sources
const (
	EnvTarget  = "SHELLCOMP_TARGET"
	EnvSource  = "SHELLCOMP_SOURCE"
	EnvCommand = "SHELLCOMP_COMMAND"
	EnvWords   = "SHELLCOMP_WORDS"
)

// SourceOption configures the sources built by Manifest.Sources
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	logger *zap.Logger
	dir    string
}

// WithLogger sets the logger exec failures are reported to
func WithLogger(logger *zap.Logger) SourceOption {
	return func(c *sourceConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDir sets the working directory of exec sources
func WithDir(dir string) SourceOption {
	return func(c *sourceConfig) {
		c.dir = dir
	}
}

// Sources returns a registry holding one source per manifest source entry.
//
// An exec source runs its command line, split with the quoting rules of the platform
// shell, without a shell.
// Every non-empty line of its standard output is a candidate; a tab separates the value
// from an optional description. The typed words are passed shell-quoted in
// SHELLCOMP_WORDS.
func (m *Manifest) Sources(opts ...SourceOption) (*candidate.Sources, error) {
	cfg := sourceConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	sources := candidate.NewSources()
	for name, s := range m.Sources {
		if s.Exec == "" {
			values := candidate.Values(s.Values...)
			sources.Register(name, func(context.Context, candidate.Request) ([]candidate.Value, error) {
				return values, nil
			})
			continue
		}

		argv, err := splitCommand(s.Exec)
		if err != nil {
			return nil, err
		}
		sources.Register(name, execSource(argv, cfg))
	}

	return sources, nil
}

func splitCommand(line string) ([]string, error) {
	argv, err := cmdline.Split(line)
	if err != nil {
		return nil, errs.ErrInvalidExec.WithArgs(line).Wrap(err)
	}
	if len(argv) == 0 {
		return nil, errs.ErrInvalidExec.WithArgs(line)
	}
	return argv, nil
}

func execSource(argv []string, cfg sourceConfig) candidate.SourceFunc {
	return func(ctx context.Context, req candidate.Request) ([]candidate.Value, error) {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = cfg.dir
		cmd.Env = append(os.Environ(),
			EnvTarget+"="+req.Target,
			EnvSource+"="+req.Name,
			EnvCommand+"="+strings.Join(req.Path, " "),
			EnvWords+"="+shellquote.Join(req.Words...),
		)

		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			cfg.logger.Debug("exec source failed",
				zap.String("source", req.Name),
				zap.Strings("argv", argv),
				zap.String("stderr", strings.TrimSpace(stderr.String())),
				zap.Error(err))
			return nil, err
		}

		return parseCandidates(out)
	}
}

// maxCandidateLine bounds a single line of exec source output
const maxCandidateLine = 1 << 20

func parseCandidates(out []byte) ([]candidate.Value, error) {
	var values []candidate.Value
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxCandidateLine)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		value, description, _ := strings.Cut(line, "\t")
		values = append(values, candidate.Value{Value: value, Description: description})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
