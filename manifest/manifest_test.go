package manifest

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napalu/shellcomp/candidate"
	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

const yamlManifest = `name: git-lite
executable: gl
commands:
  - name: status
    primary: true
    options:
      - name: short
        bool: true
  - name: checkout
    options:
      - name: color
        complete:
          kind: keywords
          values: [always, never, auto]
    arguments:
      - name: branch
        complete:
          source: branches
  - name: debug
    hidden: true
sources:
  branches:
    values: [main, dev]
`

const tomlManifest = `name = "git-lite"

[[commands]]
name = "status"
primary = true

  [[commands.options]]
  name = "short"
  bool = true

[[commands]]
name = "checkout"

  [[commands.options]]
  name = "color"
  complete = { kind = "keywords", values = ["always", "never", "auto"] }

  [[commands.arguments]]
  name = "branch"
  complete = { source = "branches" }

[[commands]]
name = "debug"
hidden = true

[sources.branches]
values = ["main", "dev"]
`

const jsonManifest = `{
  "name": "git-lite",
  "commands": [
    {"name": "status", "primary": true, "options": [{"name": "short", "bool": true}]},
    {
      "name": "checkout",
      "options": [{"name": "color", "complete": {"kind": "keywords", "values": ["always", "never", "auto"]}}],
      "arguments": [{"name": "branch", "complete": {"source": "branches"}}]
    },
    {"name": "debug", "hidden": true}
  ],
  "sources": {"branches": {"values": ["main", "dev"]}}
}`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"app.yaml", yamlManifest},
		{"app.yml", yamlManifest},
		{"app.toml", tomlManifest},
		{"app.json", jsonManifest},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			m, err := Load(writeManifest(t, tt.file, tt.content))
			require.NoError(t, err)

			tree := m.Tree()
			assert.Equal(t, "git-lite", tree.Name)
			require.Len(t, tree.Commands, 3)

			status := tree.Primary()
			require.NotNil(t, status)
			assert.Equal(t, "status", status.Name)
			assert.True(t, status.Options[0].IsBool())

			checkout := tree.Commands[1]
			assert.Equal(t, command.Hint{Kind: "keywords", Values: []string{"always", "never", "auto"}}, checkout.Options[0].Hint)
			assert.Equal(t, command.Hint{Kind: "keywords", Values: []string{"main", "dev"}}, checkout.Arguments[0].Hint)
			assert.True(t, tree.Commands[2].Hidden)

			sources, err := m.Sources()
			require.NoError(t, err)
			values, err := sources.Resolve(context.Background(), candidate.Request{Name: "branches"})
			require.NoError(t, err)
			assert.Equal(t, candidate.Values("main", "dev"), values)
		})
	}
}

func TestManifest_TreeSourceHints(t *testing.T) {
	m := &Manifest{
		Name: "git-lite",
		Commands: []Command{{
			Name: "log",
			Options: []Option{
				{Name: "branch", Complete: &Complete{Source: "branches"}},
				{Name: "tag", Complete: &Complete{Source: "tags"}},
			},
		}},
		Sources: map[string]Source{
			"branches": {Values: []string{"main", "dev"}},
			"tags":     {Exec: "git tag"},
		},
	}
	require.NoError(t, m.Validate())

	log := m.Tree().Commands[0]
	assert.Equal(t, command.Hint{Kind: "keywords", Values: []string{"main", "dev"}}, log.Options[0].Hint)
	assert.Equal(t, command.Hint{OnTheFly: true, Source: "tags"}, log.Options[1].Hint)
}

func TestManifest_Command(t *testing.T) {
	assert.Equal(t, "gl", (&Manifest{Name: "git-lite", Executable: "gl"}).Command())
	assert.Equal(t, "git-lite", (&Manifest{Name: "git-lite"}).Command())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown extension", "app.ini", "", errs.ErrManifestFormat},
		{"broken yaml", "app.yaml", "name: [", errs.ErrManifestDecode},
		{"missing name", "app.yaml", "commands: []", errs.ErrManifestInvalid},
		{"unsafe executable", "app.yaml", "name: x\nexecutable: 'gl; rm -rf ~'", errs.ErrManifestInvalid},
		{"bad command name", "app.yaml", "name: x\ncommands:\n  - name: 'a b'", errs.ErrManifestInvalid},
		{"keywords without values", "app.yaml", "name: x\ncommands:\n  - name: a\n    options:\n      - name: o\n        complete: {kind: keywords}", errs.ErrManifestInvalid},
		{"unknown kind", "app.yaml", "name: x\ncommands:\n  - name: a\n    options:\n      - name: o\n        complete: {kind: glob}", errs.ErrManifestInvalid},
		{"undefined source", "app.yaml", "name: x\ncommands:\n  - name: a\n    arguments:\n      - name: o\n        complete: {source: nope}", errs.ErrUnknownSource},
		{"empty source", "app.yaml", "name: x\nsources:\n  s: {}", errs.ErrManifestInvalid},
		{"unbalanced exec quote", "app.yaml", "name: x\nsources:\n  s: {exec: \"ls 'a\"}", errs.ErrInvalidExec},
		{"duplicate commands", "app.yaml", "name: x\ncommands:\n  - name: a\n  - name: a", errs.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, errs.ErrManifestRead))
}

func TestExecSource(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	m := &Manifest{
		Name: "app",
		Sources: map[string]Source{
			"envs":   {Exec: `sh -c 'echo prod; echo; echo "$SHELLCOMP_TARGET"; echo "$SHELLCOMP_WORDS"'`},
			"failed": {Exec: `sh -c 'exit 3'`},
		},
	}
	require.NoError(t, m.Validate())

	sources, err := m.Sources()
	require.NoError(t, err)

	values, err := sources.Resolve(context.Background(), candidate.Request{
		Target: "bash",
		Name:   "envs",
		Words:  []string{"deploy", "my service"},
	})
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, "prod", values[0].Value)
	assert.Equal(t, "bash", values[1].Value)
	words, err := shellquote.Split(values[2].Value)
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy", "my service"}, words)

	_, err = sources.Resolve(context.Background(), candidate.Request{Name: "failed"})
	assert.True(t, errors.Is(err, errs.ErrSourceFailed))
}

func TestParseCandidates(t *testing.T) {
	got, err := parseCandidates([]byte("main\tdefault branch\r\n\n  \ndev\n"))
	require.NoError(t, err)
	assert.Equal(t, []candidate.Value{
		{Value: "main", Description: "default branch"},
		{Value: "dev"},
	}, got)

	long := strings.Repeat("x", 100*1024)
	got, err = parseCandidates([]byte("a\n" + long + "\nb\n"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, long, got[1].Value)
	assert.Equal(t, "b", got[2].Value)

	_, err = parseCandidates([]byte("a\n" + strings.Repeat("x", maxCandidateLine+1) + "\nb\n"))
	assert.True(t, errors.Is(err, bufio.ErrTooLong), "got %v", err)
}
