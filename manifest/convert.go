package manifest

import (
	"github.com/napalu/shellcomp/command"
)

// Tree converts the manifest commands into a command tree. A reference to a source with
// a fixed values list is inlined as keywords, so the generated script needs no re-entry
// for it. Only exec sources stay on-the-fly.
func (m *Manifest) Tree() *command.Tree {
	return command.NewTree(m.Name, m.convertCommands(m.Commands)...)
}

// Command returns the executable completion is registered for: Executable, or Name
func (m *Manifest) Command() string {
	if m.Executable != "" {
		return m.Executable
	}
	return m.Name
}

func (m *Manifest) convertCommands(cmds []Command) []*command.Node {
	nodes := make([]*command.Node, 0, len(cmds))
	for _, c := range cmds {
		n := &command.Node{
			Name:        c.Name,
			Description: c.Description,
			Hidden:      c.Hidden,
			Primary:     c.Primary,
			Children:    m.convertCommands(c.Commands),
		}
		for _, o := range c.Options {
			kind := command.ValueTaking
			if o.Bool {
				kind = command.ValueBool
			}
			n.Options = append(n.Options, &command.Option{
				Name:        o.Name,
				Description: o.Description,
				ValueKind:   kind,
				Hidden:      o.Hidden,
				Hint:        m.hintOf(o.Complete),
			})
		}
		for _, a := range c.Arguments {
			n.Arguments = append(n.Arguments, &command.Argument{
				Name:        a.Name,
				Description: a.Description,
				Hidden:      a.Hidden,
				Hint:        m.hintOf(a.Complete),
			})
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (m *Manifest) hintOf(c *Complete) command.Hint {
	if c == nil {
		return command.Hint{}
	}
	if s, ok := m.Sources[c.Source]; ok && s.Exec == "" {
		return command.Hint{Kind: "keywords", Values: s.Values}
	}
	return command.Hint{
		Kind:     c.Kind,
		Values:   c.Values,
		OnTheFly: c.Source != "",
		Source:   c.Source,
	}
}
