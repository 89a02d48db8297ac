package candidate

import (
	"strings"

	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Parameter is an option or argument found by Lookup; exactly one field is set
type Parameter struct {
	Option   *command.Option
	Argument *command.Argument
}

// Lookup finds the visible option or argument called name on the command addressed by
// words. The parameters of a primary child are folded into their parent, mirroring the
// generated completion functions. It returns a Request ready for Sources.Resolve.
func Lookup(tree *command.Tree, target string, words []string, name string) (Request, Parameter, error) {
	if tree == nil {
		return Request{}, Parameter{}, errs.ErrNilTree
	}

	node, path := tree.Lookup(words)
	req := Request{
		Target:  target,
		Name:    name,
		Words:   words,
		Command: node,
		Path:    path,
	}

	scopes := []*command.Node{node}
	if node != nil {
		if primary := node.PrimaryChild(); primary != nil {
			scopes = append(scopes, primary)
		}
	}

	for _, scope := range scopes {
		if scope == nil {
			continue
		}
		for _, o := range scope.VisibleOptions() {
			if o.Name == name {
				return req, Parameter{Option: o}, nil
			}
		}
		for _, a := range scope.VisibleArguments() {
			if a.Name == name {
				return req, Parameter{Argument: a}, nil
			}
		}
	}

	return req, Parameter{}, errs.ErrUnknownParameter.WithArgs(name, strings.Join(path, " "))
}
