package completion

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"mvdan.cc/sh/v3/syntax"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

func getTestTree() *command.Tree {
	return command.NewTree("app",
		&command.Node{
			Name:      "run",
			Primary:   true,
			Options:   []*command.Option{{Name: "verbose", ValueKind: command.ValueBool}},
			Arguments: []*command.Argument{{Name: "target"}},
		},
		&command.Node{
			Name:    "db",
			Options: []*command.Option{{Name: "format", Hint: command.Hint{OnTheFly: true}}},
			Children: []*command.Node{
				{Name: "backup", Arguments: []*command.Argument{{Name: "dir", Hint: command.Hint{Kind: "directory"}}}},
			},
		},
		&command.Node{
			Name:    "secret",
			Hidden:  true,
			Options: []*command.Option{{Name: "secret-token"}},
		},
	)
}

func newTestBash(t *testing.T, resolver candidate.Resolver, opts ...Option) *BashProvider {
	t.Helper()
	p, err := NewBashProvider(AppInfo{Name: "app"}, resolver, opts...)
	require.NoError(t, err)
	return p
}

func generate(t *testing.T, p Provider, tree *command.Tree) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Generate(&buf, tree))
	return buf.String()
}

var commandFunctionPattern = regexp.MustCompile(`(?m)^(__cocona_\w+_commands_\w+)\(\) \{$`)

func commandFunctions(script string) []string {
	var names []string
	for _, m := range commandFunctionPattern.FindAllStringSubmatch(script, -1) {
		names = append(names, m[1])
	}
	return names
}

func TestBashProvider_Generate(t *testing.T) {
	out := generate(t, newTestBash(t, nil), getTestTree())

	expected := `#!/bin/bash
# Generated by shellcomp BashProvider
__cocona_app_commands_root() {
    __cocona_app_completion_define_command "db"
    __cocona_app_completion_define_option "--verbose" "bool"
    __cocona_app_completion_define_argument "--target" "default"
    __cocona_app_completion_handle
}

__cocona_app_commands_root_db() {
    __cocona_app_completion_define_command "backup"
    __cocona_app_completion_define_option "--format" "onthefly:format"
    __cocona_app_completion_handle
}

__cocona_app_commands_root_db_backup() {
    __cocona_app_completion_define_argument "--dir" "directory"
    __cocona_app_completion_handle
}

`
	assert.True(t, strings.HasPrefix(out, expected), "got:\n%s", out)
	assert.Contains(t, out, "complete -F __cocona_app_completion app\n")
	assert.NotContains(t, out, AppNamePlaceholder)
	assert.NotContains(t, out, AppCommandNamePlaceholder)
}

func TestBashProvider_Deterministic(t *testing.T) {
	p := newTestBash(t, nil)
	first := generate(t, p, getTestTree())
	second := generate(t, p, getTestTree())
	assert.Equal(t, first, second)
}

func TestBashProvider_Visibility(t *testing.T) {
	tree := getTestTree()
	tree.Commands[1].Options = append(tree.Commands[1].Options, &command.Option{Name: "hidden-opt", Hidden: true})
	tree.Commands[1].Children[0].Arguments = append(tree.Commands[1].Children[0].Arguments,
		&command.Argument{Name: "hidden-arg", Hidden: true})

	out := generate(t, newTestBash(t, nil), tree)
	for _, hidden := range []string{"secret", "secret-token", "hidden-opt", "hidden-arg"} {
		assert.NotContains(t, out, hidden)
	}
}

func TestBashProvider_PrimaryFolding(t *testing.T) {
	tree := command.NewTree("app",
		&command.Node{
			Name:    "remote",
			Options: []*command.Option{{Name: "url"}},
			Children: []*command.Node{
				{Name: "list", Primary: true, Options: []*command.Option{{Name: "long", ValueKind: command.ValueBool}}},
				{Name: "add", Arguments: []*command.Argument{{Name: "name"}}},
			},
		},
	)

	out := generate(t, newTestBash(t, nil), tree)
	assert.Equal(t, []string{
		"__cocona_app_commands_root",
		"__cocona_app_commands_root_remote",
		"__cocona_app_commands_root_remote_add",
	}, commandFunctions(out))

	assert.Contains(t, out, `__cocona_app_commands_root_remote() {
    __cocona_app_completion_define_command "add"
    __cocona_app_completion_define_option "--url" "default"
    __cocona_app_completion_define_option "--long" "bool"
    __cocona_app_completion_handle
}`)
	assert.NotContains(t, out, `define_command "list"`)
}

func TestBashProvider_Depth(t *testing.T) {
	tree := command.NewTree("app",
		&command.Node{Name: "group", Children: []*command.Node{{Name: "leaf"}}},
	)

	out := generate(t, newTestBash(t, nil), tree)
	assert.Equal(t, []string{
		"__cocona_app_commands_root",
		"__cocona_app_commands_root_group",
		"__cocona_app_commands_root_group_leaf",
	}, commandFunctions(out))
	assert.Contains(t, out, "__cocona_app_commands_root() {\n    __cocona_app_completion_define_command \"group\"\n")
	assert.Contains(t, out, "__cocona_app_commands_root_group() {\n    __cocona_app_completion_define_command \"leaf\"\n")
	assert.Contains(t, out, "__cocona_app_commands_root_group_leaf() {\n    __cocona_app_completion_handle\n}")
}

func TestBashProvider_Tokens(t *testing.T) {
	resolver := candidate.ResolverFunc(func(o *command.Option, a *command.Argument) (candidate.Result, error) {
		var name string
		if o != nil {
			name = o.Name
		} else {
			name = a.Name
		}
		switch name {
		case "color", "force":
			return candidate.Static(candidate.KindKeywords, candidate.Values("red", "green", "blue")...), nil
		case "format":
			return candidate.OnTheFly("format"), nil
		case "input":
			return candidate.Static(candidate.KindFile), nil
		case "unknown":
			return candidate.Static(candidate.Kind(42)), nil
		default:
			return candidate.Static(candidate.KindDefault), nil
		}
	})

	tree := command.NewTree("app", &command.Node{
		Name: "paint",
		Options: []*command.Option{
			{Name: "color"},
			{Name: "force", ValueKind: command.ValueBool},
			{Name: "format"},
			{Name: "unknown"},
		},
		Arguments: []*command.Argument{{Name: "input"}},
	})

	out := generate(t, newTestBash(t, resolver), tree)
	assert.Contains(t, out, `define_option "--color" "keywords:red:green:blue"`)
	assert.Contains(t, out, `define_option "--force" "bool"`)
	assert.Contains(t, out, `define_option "--format" "onthefly:format"`)
	assert.Contains(t, out, `define_option "--unknown" "default"`)
	assert.Contains(t, out, `define_argument "--input" "file"`)
}

func TestBashProvider_DegradedItems(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	resolver := candidate.ResolverFunc(func(o *command.Option, a *command.Argument) (candidate.Result, error) {
		if o != nil && o.Name == "broken" {
			return candidate.Result{}, errors.New("lookup failed")
		}
		if o != nil && o.Name == "spaced" {
			return candidate.Static(candidate.KindKeywords, candidate.Values("dark blue", "red")...), nil
		}
		return candidate.Static(candidate.KindFile), nil
	})

	tree := command.NewTree("app", &command.Node{
		Name:    "paint",
		Options: []*command.Option{{Name: "broken"}, {Name: "spaced"}, {Name: "out"}},
	})

	out := generate(t, newTestBash(t, resolver, WithLogger(zap.New(core))), tree)
	assert.Contains(t, out, `define_option "--broken" "default"`)
	assert.Contains(t, out, `define_option "--spaced" "default"`)
	assert.Contains(t, out, `define_option "--out" "file"`)
	assert.Equal(t, 1, logs.FilterMessage("candidate resolution failed, using default").Len())
	assert.Equal(t, 1, logs.FilterMessage("candidate value cannot be encoded, using default").Len())
}

func TestBashProvider_ParsesAsBash(t *testing.T) {
	p, err := NewBashProvider(AppInfo{Name: "My App-1", Executable: "my-app"}, nil, WithVerify(false))
	require.NoError(t, err)
	out := generate(t, p, getTestTree())

	_, err = syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(out), "out.bash")
	require.NoError(t, err)
	assert.Contains(t, out, "__cocona_My__App__1_commands_root() {")
	assert.Contains(t, out, "complete -F __cocona_My__App__1_completion my-app")
	assert.Contains(t, out, `my-app --completion-candidates "bash:${kind#onthefly:}"`)
}

func TestBashProvider_Errors(t *testing.T) {
	p := newTestBash(t, nil)

	tests := []struct {
		name    string
		tree    *command.Tree
		wantErr error
	}{
		{"nil tree", nil, errs.ErrNilTree},
		{"invalid name", command.NewTree("app", &command.Node{Name: "bad;name"}), errs.ErrInvalidName},
		{"duplicate name", command.NewTree("app", &command.Node{Name: "a"}, &command.Node{Name: "a"}), errs.ErrDuplicateName},
		{"two primaries", command.NewTree("app",
			&command.Node{Name: "a", Primary: true}, &command.Node{Name: "b", Primary: true}), errs.ErrMultiplePrimary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := p.Generate(&buf, tt.tree)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestBashProvider_InvalidScript(t *testing.T) {
	fsys := fstest.MapFS{BashTemplate: &fstest.MapFile{Data: []byte("if true; then\n")}}
	p := newTestBash(t, nil, WithTemplates(fsys))

	var buf bytes.Buffer
	err := p.Generate(&buf, getTestTree())
	assert.True(t, errors.Is(err, errs.ErrInvalidScript))
	assert.Zero(t, buf.Len())
}

func TestMissingRuntimeTemplate(t *testing.T) {
	_, err := NewBashProvider(AppInfo{Name: "app"}, nil, WithTemplates(fstest.MapFS{}))
	assert.True(t, errors.Is(err, errs.ErrMissingRuntimeTemplate))

	_, err = NewZshProvider(AppInfo{Name: "app"}, nil, WithTemplates(fstest.MapFS{}))
	assert.True(t, errors.Is(err, errs.ErrMissingRuntimeTemplate))

	_, err = DefaultGenerator(AppInfo{Name: "app"}, nil, WithTemplates(fstest.MapFS{}))
	assert.True(t, errors.Is(err, errs.ErrMissingRuntimeTemplate))
}

func TestProvider_InvalidExecutable(t *testing.T) {
	tests := []struct {
		name string
		app  AppInfo
	}{
		{"command separator", AppInfo{Name: "app", Executable: "gl; rm -rf ~"}},
		{"whitespace", AppInfo{Name: "app", Executable: "my app"}},
		{"substitution", AppInfo{Name: "app", Executable: "$(id)"}},
		{"name used as executable", AppInfo{Name: "My App"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBashProvider(tt.app, nil)
			assert.True(t, errors.Is(err, errs.ErrInvalidName), "got %v", err)

			_, err = NewZshProvider(tt.app, nil)
			assert.True(t, errors.Is(err, errs.ErrInvalidName), "got %v", err)
		})
	}
}

func TestBashProvider_GenerateOnTheFlyCandidates(t *testing.T) {
	p := newTestBash(t, nil)

	var buf bytes.Buffer
	require.NoError(t, p.GenerateOnTheFlyCandidates(&buf, candidate.Values("A", "B", "C")))
	assert.Equal(t, "A B C", buf.String())

	buf.Reset()
	require.NoError(t, p.GenerateOnTheFlyCandidates(&buf, nil))
	assert.Empty(t, buf.String())

	buf.Reset()
	err := p.GenerateOnTheFlyCandidates(&buf, candidate.Values("A", "B C"))
	assert.True(t, errors.Is(err, errs.ErrMalformedCandidateValue))
	assert.Zero(t, buf.Len())
}

func TestZshProvider(t *testing.T) {
	p, err := NewZshProvider(AppInfo{Name: "app", Executable: "app-cli"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh"}, p.Targets())

	out := generate(t, p, getTestTree())
	assert.True(t, strings.HasPrefix(out, "#compdef app-cli\n# Generated by shellcomp ZshProvider\n__cocona_app_commands_root() {\n"))
	assert.Equal(t, []string{
		"__cocona_app_commands_root",
		"__cocona_app_commands_root_db",
		"__cocona_app_commands_root_db_backup",
	}, commandFunctions(out))
	assert.Contains(t, out, "compdef __cocona_app_completion app-cli\n")
	// autoloaded from _app-cli: the first call completes instead of only registering
	assert.Contains(t, out, `if [[ "$funcstack[1]" == "_app-cli" ]]; then
    __cocona_app_completion "$@"
else`)

	var buf bytes.Buffer
	require.NoError(t, p.GenerateOnTheFlyCandidates(&buf, []candidate.Value{
		{Value: "json", Description: "JSON output"},
		{Value: "host:port"},
	}))
	assert.Equal(t, "json:JSON output\nhost\\:port", buf.String())

	buf.Reset()
	err = p.GenerateOnTheFlyCandidates(&buf, candidate.Values("a\nb"))
	assert.True(t, errors.Is(err, errs.ErrMalformedCandidateValue))
}

func TestEncodeResult(t *testing.T) {
	tests := []struct {
		name    string
		res     candidate.Result
		want    string
		wantErr bool
	}{
		{"on the fly", candidate.OnTheFly("format"), "onthefly:format", false},
		{"default", candidate.Static(candidate.KindDefault), "default", false},
		{"file", candidate.Static(candidate.KindFile), "file", false},
		{"directory", candidate.Static(candidate.KindDirectory), "directory", false},
		{"keywords", candidate.Static(candidate.KindKeywords, candidate.Values("red", "green", "blue")...), "keywords:red:green:blue", false},
		{"unknown kind", candidate.Static(candidate.Kind(99)), "default", false},
		{"colon in keyword", candidate.Static(candidate.KindKeywords, candidate.Values("a:b")...), "", true},
		{"quote in keyword", candidate.Static(candidate.KindKeywords, candidate.Values(`a"b`)...), "", true},
		{"empty keyword", candidate.Static(candidate.KindKeywords, candidate.Values("")...), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeResult(tt.res)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrMalformedCandidateValue))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My App-1", "My__App__1"},
		{"plain_name", "plain_name"},
		{"a.b", "a__b"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), tt.in)
	}
}

func TestLoadTemplate(t *testing.T) {
	fsys := fstest.MapFS{"t.sh": &fstest.MapFile{Data: []byte("APPNAMEPLACEHOLDER APPCOMMANDNAMEPLACEHOLDER APPNAMEPLACEHOLDER")}}

	got, err := loadTemplate(fsys, "t.sh", "my_app", "my-app")
	require.NoError(t, err)
	assert.Equal(t, "my_app my-app my_app", got)
}
