// Package candidate defines how completion candidates of options and arguments are
// resolved: statically while a completion script is generated, or on the fly when the
// user presses TAB and the shell re-invokes the host application.
package candidate

import (
	"strings"

	"github.com/napalu/shellcomp/command"
)

// Kind classifies statically known candidates
type Kind int

const (
	// KindDefault lets the shell fall back to its default completion
	KindDefault Kind = iota
	// KindFile completes file paths
	KindFile
	// KindDirectory completes directory paths
	KindDirectory
	// KindKeywords completes a fixed set of values
	KindKeywords
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindKeywords:
		return "keywords"
	default:
		return "unknown"
	}
}

// ParseKind maps a hint kind name to a Kind. The empty string is KindDefault.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "", "default":
		return KindDefault, true
	case "file":
		return KindFile, true
	case "directory", "dir":
		return KindDirectory, true
	case "keywords":
		return KindKeywords, true
	default:
		return KindDefault, false
	}
}

// Value is a single completion candidate
type Value struct {
	Value       string
	Description string
}

// Values wraps plain strings into candidate values
func Values(values ...string) []Value {
	out := make([]Value, len(values))
	for i, v := range values {
		out[i] = Value{Value: v}
	}
	return out
}

// Result is either an on-the-fly marker or a static candidate set
type Result struct {
	onTheFly bool
	source   string
	kind     Kind
	values   []Value
}

// OnTheFly returns a result which is resolved at completion time by the named source
func OnTheFly(source string) Result {
	return Result{onTheFly: true, source: source}
}

// Static returns a result known at generation time. Values are only meaningful for
// KindKeywords.
func Static(kind Kind, values ...Value) Result {
	return Result{kind: kind, values: values}
}

// IsOnTheFly reports whether candidates are computed at completion time
func (r Result) IsOnTheFly() bool {
	return r.onTheFly
}

// Source is the on-the-fly source name; empty for static results
func (r Result) Source() string {
	return r.source
}

// Kind is the static candidate kind
func (r Result) Kind() Kind {
	return r.kind
}

// Values are the static candidates in resolver order
func (r Result) Values() []Value {
	return r.values
}

// Resolver resolves the candidates of an option or positional argument
type Resolver interface {
	ResolveOption(option *command.Option) (Result, error)
	ResolveArgument(argument *command.Argument) (Result, error)
}
