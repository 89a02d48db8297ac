package completion

import (
	"fmt"
	"strings"

	"github.com/napalu/shellcomp/command"
)

const rootFunction = "root"

// scriptWriter emits the per-command functions shared by the bash and zsh dialects
type scriptWriter struct {
	sb      *strings.Builder
	prefix  string
	encoder tokenEncoder
}

func newScriptWriter(sb *strings.Builder, appName string, encoder tokenEncoder) *scriptWriter {
	return &scriptWriter{
		sb:      sb,
		prefix:  "__cocona_" + appName,
		encoder: encoder,
	}
}

// functionName returns the function of a command path, e.g. __cocona_app_commands_root_db_backup
func (s *scriptWriter) functionName(path []string) string {
	return s.prefix + "_commands_" + strings.Join(append([]string{rootFunction}, path...), "_")
}

// writeTree emits the root function followed by one function per visible non-primary
// command in pre-order
func (s *scriptWriter) writeTree(tree *command.Tree) error {
	s.writeFunction(nil, tree.Subcommands(), tree.Primary())

	return tree.Walk(func(f command.Frame) bool {
		s.writeFunction(f.Path, f.Node.Subcommands(), f.Node, f.Node.PrimaryChild())
		return true
	})
}

// writeFunction emits a function defining the sub-commands, then the options and arguments
// of every scope. Nil scopes are ignored.
func (s *scriptWriter) writeFunction(path []string, subcommands []*command.Node, scopes ...*command.Node) {
	fmt.Fprintf(s.sb, "%s() {\n", s.functionName(path))

	for _, sub := range subcommands {
		fmt.Fprintf(s.sb, "    %s_completion_define_command \"%s\"\n", s.prefix, sub.Name)
	}
	for _, scope := range scopes {
		if scope == nil {
			continue
		}
		for _, o := range scope.VisibleOptions() {
			fmt.Fprintf(s.sb, "    %s_completion_define_option \"--%s\" \"%s\"\n", s.prefix, o.Name, s.encoder.option(o))
		}
		for _, a := range scope.VisibleArguments() {
			fmt.Fprintf(s.sb, "    %s_completion_define_argument \"--%s\" \"%s\"\n", s.prefix, a.Name, s.encoder.argument(a))
		}
	}

	fmt.Fprintf(s.sb, "    %s_completion_handle\n}\n\n", s.prefix)
}
