package candidate

import (
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// HintResolver resolves candidates from the command.Hint attached to options and
// arguments
type HintResolver struct{}

// NewHintResolver returns the default resolver
func NewHintResolver() *HintResolver {
	return &HintResolver{}
}

func (r *HintResolver) ResolveOption(option *command.Option) (Result, error) {
	return fromHint(option.Name, option.Hint)
}

func (r *HintResolver) ResolveArgument(argument *command.Argument) (Result, error) {
	return fromHint(argument.Name, argument.Hint)
}

func fromHint(name string, hint command.Hint) (Result, error) {
	if hint.Source != "" {
		return OnTheFly(hint.Source), nil
	}
	if hint.OnTheFly {
		return OnTheFly(name), nil
	}

	kind, ok := ParseKind(hint.Kind)
	if !ok {
		return Result{}, errs.ErrInvalidHintKind.WithArgs(hint.Kind)
	}
	if kind == KindKeywords {
		return Static(kind, Values(hint.Values...)...), nil
	}

	return Static(kind), nil
}

// ResolverFunc adapts a single function to Resolver. Arguments are passed with a nil
// option and vice versa.
type ResolverFunc func(option *command.Option, argument *command.Argument) (Result, error)

func (f ResolverFunc) ResolveOption(option *command.Option) (Result, error) {
	return f(option, nil)
}

func (f ResolverFunc) ResolveArgument(argument *command.Argument) (Result, error) {
	return f(nil, argument)
}
