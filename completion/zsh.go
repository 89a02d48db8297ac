package completion

import (
	"fmt"
	"io"
	"strings"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// TargetZsh is the target identifier of ZshProvider
const TargetZsh = "zsh"

// ZshProvider generates zsh completion scripts. The command functions are the same as
// the bash ones; only the runtime template differs.
type ZshProvider struct {
	appName    string
	executable string
	runtime    string
	encoder    tokenEncoder
}

// NewZshProvider returns a zsh provider for app
func NewZshProvider(app AppInfo, resolver candidate.Resolver, opts ...Option) (*ZshProvider, error) {
	cfg := newProviderConfig(opts)
	if resolver == nil {
		resolver = candidate.NewHintResolver()
	}
	if err := app.validate(); err != nil {
		return nil, err
	}

	name := SanitizeName(app.Name)
	runtime, err := loadTemplate(cfg.templates, ZshTemplate, name, app.executable())
	if err != nil {
		return nil, err
	}

	return &ZshProvider{
		appName:    name,
		executable: app.executable(),
		runtime:    runtime,
		encoder:    tokenEncoder{resolver: resolver, logger: cfg.logger},
	}, nil
}

// Targets returns ["zsh"]
func (p *ZshProvider) Targets() []string {
	return []string{TargetZsh}
}

// Generate writes the zsh completion script of tree to w
func (p *ZshProvider) Generate(w io.Writer, tree *command.Tree) error {
	if tree == nil {
		return errs.ErrNilTree
	}
	if err := tree.Validate(); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "#compdef %s\n", p.executable)
	sb.WriteString("# Generated by shellcomp ZshProvider\n")

	if err := newScriptWriter(&sb, p.appName, p.encoder).writeTree(tree); err != nil {
		return err
	}
	sb.WriteString(p.runtime)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errs.ErrWritingScript.Wrap(err)
	}
	return nil
}

// GenerateOnTheFlyCandidates writes one "value:description" line per candidate, the
// format read by _describe
func (p *ZshProvider) GenerateOnTheFlyCandidates(w io.Writer, values []candidate.Value) error {
	lines := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v.Value, "\r\n") || strings.ContainsAny(v.Description, "\r\n") {
			return errs.ErrMalformedCandidateValue.WithArgs(v.Value)
		}
		lines[i] = escapeZshDescribe(v.Value)
		if v.Description != "" {
			lines[i] += ":" + v.Description
		}
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return errs.ErrWritingScript.Wrap(err)
	}
	return nil
}
