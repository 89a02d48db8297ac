// Package command describes the command tree of a CLI application: commands, nested
// sub-commands, options and positional arguments.
//
// A Tree is built by the host application and is read-only for everything in shellcomp.
// Hidden items are kept in the tree and filtered by the accessors, so generators never
// need to care about visibility themselves.
package command

import (
	"github.com/samber/lo"
)

// ValueKind tells whether an option is a boolean switch or takes a value
type ValueKind int

const (
	// ValueTaking denotes an option which expects a value
	ValueTaking ValueKind = iota
	// ValueBool denotes a boolean flag (does not accept a value)
	ValueBool
)

// Hint describes how completion candidates of an option or argument are sourced.
// Kind is one of "default", "file", "directory" or "keywords". OnTheFly takes precedence
// over Kind and means candidates are computed when the user presses TAB by the source
// named Source, or by a source named after the option or argument when Source is empty.
// A non-empty Source implies OnTheFly.
type Hint struct {
	Kind     string
	Values   []string
	OnTheFly bool
	Source   string
}

// Option describes a named option of a command
type Option struct {
	Name        string
	Description string
	ValueKind   ValueKind
	Hidden      bool
	Hint        Hint
}

// IsBool returns true when the option is a boolean flag
func (o *Option) IsBool() bool {
	return o.ValueKind == ValueBool
}

// Argument describes a positional argument of a command
type Argument struct {
	Name        string
	Description string
	Hidden      bool
	Hint        Hint
}

// Node is a command. Children are its sub-commands; a leaf command has none.
type Node struct {
	Name        string
	Description string
	Hidden      bool
	// Primary marks the command run when no sub-command name is given. Its options and
	// arguments belong to the parent level.
	Primary   bool
	Options   []*Option
	Arguments []*Argument
	Children  []*Node
}

// Tree is the root sibling set of an application's commands
type Tree struct {
	// Name is the display name of the application
	Name     string
	Commands []*Node
}

// NewTree returns a tree for the application name with the given top-level commands
func NewTree(name string, commands ...*Node) *Tree {
	return &Tree{Name: name, Commands: commands}
}

// VisibleSubcommands returns the non-hidden, non-primary nodes in input order
func VisibleSubcommands(nodes []*Node) []*Node {
	return lo.Filter(nodes, func(n *Node, _ int) bool {
		return n != nil && !n.Hidden && !n.Primary
	})
}

// PrimaryOf returns the first non-hidden primary node of a sibling set, or nil
func PrimaryOf(nodes []*Node) *Node {
	primary, ok := lo.Find(nodes, func(n *Node) bool {
		return n != nil && n.Primary && !n.Hidden
	})
	if !ok {
		return nil
	}
	return primary
}

// VisibleOptions returns the non-hidden options of the node
func (n *Node) VisibleOptions() []*Option {
	return lo.Filter(n.Options, func(o *Option, _ int) bool {
		return o != nil && !o.Hidden
	})
}

// VisibleArguments returns the non-hidden arguments of the node
func (n *Node) VisibleArguments() []*Argument {
	return lo.Filter(n.Arguments, func(a *Argument, _ int) bool {
		return a != nil && !a.Hidden
	})
}

// Subcommands returns the visible non-primary children of the node
func (n *Node) Subcommands() []*Node {
	return VisibleSubcommands(n.Children)
}

// PrimaryChild returns the visible primary child of the node, or nil
func (n *Node) PrimaryChild() *Node {
	return PrimaryOf(n.Children)
}

// Subcommands returns the visible non-primary top-level commands
func (t *Tree) Subcommands() []*Node {
	return VisibleSubcommands(t.Commands)
}

// Primary returns the visible top-level primary command, or nil
func (t *Tree) Primary() *Node {
	return PrimaryOf(t.Commands)
}

// Lookup returns the command addressed by a sequence of typed words, together with the
// matched command path. Like the generated runtime, every word which does not name a
// visible sub-command of the current command is skipped, so option values never stop
// the descent. When no command name matched, the root primary command is returned if
// there is one, otherwise nil (the root level).
func (t *Tree) Lookup(words []string) (*Node, []string) {
	var (
		current  *Node
		path     []string
		siblings = t.Commands
	)

	for _, w := range words {
		if w == "" || w[0] == '-' {
			continue
		}
		next, ok := lo.Find(VisibleSubcommands(siblings), func(n *Node) bool {
			return n.Name == w
		})
		if !ok {
			continue
		}
		current = next
		path = append(path, next.Name)
		siblings = next.Children
	}

	if primary := PrimaryOf(siblings); primary != nil && current == nil {
		return primary, path
	}

	return current, path
}
