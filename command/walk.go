package command

import (
	"strings"

	"github.com/ef-ds/deque"

	"github.com/napalu/shellcomp/errs"
)

// MaxDepth bounds the nesting of commands accepted by Walk and Validate
const MaxDepth = 64

// Frame is a visited node together with its command path from the root
type Frame struct {
	Node *Node
	Path []string
}

// Depth returns the number of commands on the path
func (f Frame) Depth() int {
	return len(f.Path)
}

// Walk visits every visible non-primary command of the tree in pre-order: a parent is
// visited before its children and siblings keep their input order. The traversal uses an
// explicit stack. Returning false from fn skips the children of the visited node.
func (t *Tree) Walk(fn func(f Frame) bool) error {
	stack := deque.New()
	pushReversed(stack, t.Subcommands(), nil)

	for stack.Len() > 0 {
		v, _ := stack.PopBack()
		f := v.(Frame)
		if f.Depth() > MaxDepth {
			return errs.ErrTreeTooDeep.WithArgs(MaxDepth, strings.Join(f.Path, " "))
		}
		if !fn(f) {
			continue
		}
		pushReversed(stack, f.Node.Subcommands(), f.Path)
	}

	return nil
}

// pushReversed pushes children so that the first child is popped first
func pushReversed(stack *deque.Deque, children []*Node, parent []string) {
	for i := len(children) - 1; i >= 0; i-- {
		path := make([]string, len(parent)+1)
		copy(path, parent)
		path[len(parent)] = children[i].Name
		stack.PushBack(Frame{Node: children[i], Path: path})
	}
}
