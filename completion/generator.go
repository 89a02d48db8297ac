package completion

import (
	"io"

	orderedmap "github.com/wk8/go-ordered-map"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Generator dispatches completion requests to the first registered provider declaring
// the requested target. It is immutable after construction and safe for concurrent use.
type Generator struct {
	byTarget *orderedmap.OrderedMap
	targets  []string
}

// NewGenerator indexes providers by target in registration order. When two providers
// declare the same target the first one wins.
func NewGenerator(providers ...Provider) *Generator {
	byTarget := orderedmap.New()
	for _, p := range providers {
		if p == nil {
			continue
		}
		for _, target := range p.Targets() {
			if _, found := byTarget.Get(target); !found {
				byTarget.Set(target, p)
			}
		}
	}

	targets := make([]string, 0, byTarget.Len())
	for pair := byTarget.Oldest(); pair != nil; pair = pair.Next() {
		targets = append(targets, pair.Key.(string))
	}

	return &Generator{byTarget: byTarget, targets: targets}
}

// DefaultGenerator returns a generator serving bash and zsh
func DefaultGenerator(app AppInfo, resolver candidate.Resolver, opts ...Option) (*Generator, error) {
	bash, err := NewBashProvider(app, resolver, opts...)
	if err != nil {
		return nil, err
	}
	zsh, err := NewZshProvider(app, resolver, opts...)
	if err != nil {
		return nil, err
	}

	return NewGenerator(bash, zsh), nil
}

// CanHandle reports whether a provider declares target. Matching is exact and
// case-sensitive.
func (g *Generator) CanHandle(target string) bool {
	_, found := g.byTarget.Get(target)
	return found
}

// SupportedTargets returns every target served, in registration order
func (g *Generator) SupportedTargets() []string {
	out := make([]string, len(g.targets))
	copy(out, g.targets)
	return out
}

// Provider returns the provider selected for target
func (g *Generator) Provider(target string) (Provider, error) {
	v, found := g.byTarget.Get(target)
	if !found {
		return nil, errs.ErrUnsupportedTarget.WithArgs(target, g.targets)
	}
	return v.(Provider), nil
}

// Generate writes the completion script of tree for target to w
func (g *Generator) Generate(target string, w io.Writer, tree *command.Tree) error {
	p, err := g.Provider(target)
	if err != nil {
		return err
	}
	return p.Generate(w, tree)
}

// GenerateOnTheFlyCandidates writes values for target to w
func (g *Generator) GenerateOnTheFlyCandidates(target string, w io.Writer, values []candidate.Value) error {
	p, err := g.Provider(target)
	if err != nil {
		return err
	}
	return p.GenerateOnTheFlyCandidates(w, values)
}
