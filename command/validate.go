package command

import (
	"regexp"
	"strings"

	"github.com/ef-ds/deque"

	"github.com/napalu/shellcomp/errs"
)

// names end up in shell identifiers and double-quoted literals of generated scripts
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// IsValidName reports whether name can be embedded into generated scripts as-is
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Validate checks every command, option and argument of the tree, hidden ones included:
// names must satisfy IsValidName, sibling command names must be unique and a sibling set
// may hold at most one primary command.
func (t *Tree) Validate() error {
	type level struct {
		nodes []*Node
		path  []string
	}

	stack := deque.New()
	stack.PushBack(level{nodes: t.Commands})

	for stack.Len() > 0 {
		v, _ := stack.PopBack()
		l := v.(level)
		where := pathString(l.path)
		if len(l.path) > MaxDepth {
			return errs.ErrTreeTooDeep.WithArgs(MaxDepth, where)
		}

		seen := make(map[string]struct{}, len(l.nodes))
		primaries := 0
		for _, n := range l.nodes {
			if n == nil {
				continue
			}
			if !IsValidName(n.Name) {
				return errs.ErrInvalidName.WithArgs(n.Name, where)
			}
			if _, dup := seen[n.Name]; dup {
				return errs.ErrDuplicateName.WithArgs(n.Name, where)
			}
			seen[n.Name] = struct{}{}
			if n.Primary {
				primaries++
			}

			path := append(append([]string{}, l.path...), n.Name)
			if err := validateParameters(n, pathString(path)); err != nil {
				return err
			}
			stack.PushBack(level{nodes: n.Children, path: path})
		}
		if primaries > 1 {
			return errs.ErrMultiplePrimary.WithArgs(where)
		}
	}

	return nil
}

func validateParameters(n *Node, where string) error {
	for _, o := range n.Options {
		if o != nil && !IsValidName(o.Name) {
			return errs.ErrInvalidName.WithArgs(o.Name, where)
		}
	}
	for _, a := range n.Arguments {
		if a != nil && !IsValidName(a.Name) {
			return errs.ErrInvalidName.WithArgs(a.Name, where)
		}
	}

	return nil
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return "root " + strings.Join(path, " ")
}
