package completion

import (
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// TargetBash is the target identifier of BashProvider
const TargetBash = "bash"

// BashProvider generates bash completion scripts
type BashProvider struct {
	appName string
	runtime string
	encoder tokenEncoder
	verify  bool
}

// NewBashProvider returns a bash provider for app. The application name is sanitized
// once here. A nil resolver falls back to candidate.NewHintResolver.
func NewBashProvider(app AppInfo, resolver candidate.Resolver, opts ...Option) (*BashProvider, error) {
	cfg := newProviderConfig(opts)
	if resolver == nil {
		resolver = candidate.NewHintResolver()
	}
	if err := app.validate(); err != nil {
		return nil, err
	}

	name := SanitizeName(app.Name)
	runtime, err := loadTemplate(cfg.templates, BashTemplate, name, app.executable())
	if err != nil {
		return nil, err
	}

	return &BashProvider{
		appName: name,
		runtime: runtime,
		encoder: tokenEncoder{resolver: resolver, logger: cfg.logger},
		verify:  cfg.verify,
	}, nil
}

// Targets returns ["bash"]
func (p *BashProvider) Targets() []string {
	return []string{TargetBash}
}

// Generate writes the bash completion script of tree to w. The script is rendered and
// checked in memory first; nothing is written when generation fails.
func (p *BashProvider) Generate(w io.Writer, tree *command.Tree) error {
	if tree == nil {
		return errs.ErrNilTree
	}
	if err := tree.Validate(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("#!/bin/bash\n")
	sb.WriteString("# Generated by shellcomp BashProvider\n")

	if err := newScriptWriter(&sb, p.appName, p.encoder).writeTree(tree); err != nil {
		return err
	}
	sb.WriteString(p.runtime)

	script := sb.String()
	if p.verify {
		parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
		if _, err := parser.Parse(strings.NewReader(script), "completion.bash"); err != nil {
			return errs.ErrInvalidScript.WithArgs(TargetBash).Wrap(err)
		}
	}

	if _, err := io.WriteString(w, script); err != nil {
		return errs.ErrWritingScript.Wrap(err)
	}
	return nil
}

// GenerateOnTheFlyCandidates writes the values separated by single spaces, without a
// trailing newline. Descriptions are not used by bash.
func (p *BashProvider) GenerateOnTheFlyCandidates(w io.Writer, values []candidate.Value) error {
	words := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v.Value, " \t\r\n") {
			return errs.ErrMalformedCandidateValue.WithArgs(v.Value)
		}
		words[i] = v.Value
	}

	if _, err := io.WriteString(w, strings.Join(words, " ")); err != nil {
		return errs.ErrWritingScript.Wrap(err)
	}
	return nil
}
