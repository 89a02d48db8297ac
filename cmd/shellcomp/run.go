package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/napalu/goopt/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/completion"
	"github.com/napalu/shellcomp/errs"
	"github.com/napalu/shellcomp/host"
	"github.com/napalu/shellcomp/i18n"
	"github.com/napalu/shellcomp/manifest"
)

// app is what every command needs once the manifest is loaded
type app struct {
	info      completion.AppInfo
	tree      *command.Tree
	sources   *candidate.Sources
	generator *completion.Generator
}

// run executes the command line args (without the program name) and returns the exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cliArgs, words := splitWords(args)

	cfg := &Config{}
	parser, err := goopt.NewParserFromStruct(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	parser.SetStdout(stdout)
	parser.SetStderr(stderr)
	parser.SetEndHelpFunc(func() error { return nil })

	ok := parser.Parse(cliArgs)
	if parser.WasHelpShown() {
		return host.HelpExitCode
	}
	if !ok {
		for _, err := range parser.GetErrors() {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	if lang := parser.GetLanguage(); i18n.Default().HasLanguage(lang) {
		i18n.SetDefaultMessageProvider(i18n.NewBundleMessageProvider(i18n.Default(), lang))
	}

	logger := newLogger(cfg.LogLevel, stderr)
	defer func() { _ = logger.Sync() }()

	switch {
	case parser.HasCommand("targets"):
		err = runTargets(stdout)
	case parser.HasCommand("generate"):
		err = withApp(cfg, logger, func(a *app) error {
			return runGenerate(cfg, a, stdout, logger)
		})
	case parser.HasCommand("install"):
		err = withApp(cfg, logger, func(a *app) error {
			return runInstall(ctx, cfg, a, stdout, logger)
		})
	case parser.HasCommand("complete"):
		err = withApp(cfg, logger, func(a *app) error {
			return runComplete(ctx, cfg, a, words, stdout, logger)
		})
	default:
		parser.PrintUsageWithGroups(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// splitWords separates the shellcomp arguments from the words after the first "--"
func splitWords(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func withApp(cfg *Config, logger *zap.Logger, fn func(a *app) error) error {
	if cfg.Manifest == "" {
		return errs.ErrMissingArgument.WithArgs("--manifest")
	}

	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return err
	}

	sources, err := m.Sources(
		manifest.WithLogger(logger),
		manifest.WithDir(filepath.Dir(cfg.Manifest)),
	)
	if err != nil {
		return err
	}

	info := completion.AppInfo{Name: m.Name, Executable: m.Command()}
	if cfg.Executable != "" {
		info.Executable = cfg.Executable
	}

	gen, err := completion.DefaultGenerator(info, candidate.NewHintResolver(), completion.WithLogger(logger))
	if err != nil {
		return err
	}

	return fn(&app{
		info:      info,
		tree:      m.Tree(),
		sources:   sources,
		generator: gen,
	})
}

func runTargets(stdout io.Writer) error {
	gen, err := completion.DefaultGenerator(completion.AppInfo{Name: "shellcomp"}, nil)
	if err != nil {
		return err
	}
	for _, target := range gen.SupportedTargets() {
		fmt.Fprintln(stdout, target)
	}
	return nil
}

func runGenerate(cfg *Config, a *app, stdout io.Writer, logger *zap.Logger) error {
	if len(cfg.Shells) != 1 {
		return errs.ErrSingleShell.WithArgs("generate", len(cfg.Shells))
	}
	shell := cfg.Shells[0]

	var buf bytes.Buffer
	if err := a.generator.Generate(shell, &buf, a.tree); err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, buf.Bytes(), 0644); err != nil {
			return errs.ErrWriteCompletion.WithArgs(cfg.Output).Wrap(err)
		}
		logger.Info("completion script written", zap.String("shell", shell), zap.String("path", cfg.Output))
		return nil
	}

	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.Warn("writing a completion script to a terminal; redirect it or install it with",
			zap.String("command", shellquote.Join("shellcomp", "install", "--manifest", cfg.Manifest, "--shell", shell)))
	}

	_, err := stdout.Write(buf.Bytes())
	return err
}

func runInstall(ctx context.Context, cfg *Config, a *app, stdout io.Writer, logger *zap.Logger) error {
	paths := make([]string, len(cfg.Shells))

	g, _ := errgroup.WithContext(ctx)
	for i, shell := range cfg.Shells {
		i, shell := i, shell
		g.Go(func() error {
			m, err := completion.NewManager(shell, a.info.Executable)
			if err != nil {
				return err
			}
			if err := m.Accept(a.generator, a.tree); err != nil {
				return err
			}
			path, err := m.Save()
			if err != nil {
				return err
			}
			logger.Debug("completion installed", zap.String("shell", shell), zap.String("path", path))
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, shell := range cfg.Shells {
		fmt.Fprintf(stdout, "%s: %s\n", shell, paths[i])
	}
	return nil
}

func runComplete(ctx context.Context, cfg *Config, a *app, words []string, stdout io.Writer, logger *zap.Logger) error {
	if cfg.Candidates == "" {
		return errs.ErrMissingArgument.WithArgs("--candidates")
	}
	target, name, err := host.ParseCandidateSpec(cfg.Candidates)
	if err != nil {
		return err
	}

	h := host.New(a.generator, a.tree,
		host.WithSources(a.sources),
		host.WithLogger(logger),
		host.WithTimeout(cfg.Timeout),
	)
	return h.Candidates(ctx, target, name, words, stdout)
}
