package completion

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Manager renders a completion script and installs it into the user's completion
// directory of a shell
type Manager struct {
	Shell       string
	ProgramName string
	Paths       Paths
	script      []byte
}

// NewManager creates a manager installing completion for programName into the
// completion directories of shell
func NewManager(shell, programName string) (*Manager, error) {
	paths, err := getCompletionPaths(shell)
	if err != nil {
		return nil, err
	}

	return &Manager{
		Shell:       shell,
		ProgramName: filepath.Base(programName),
		Paths:       paths,
	}, nil
}

// Accept renders and keeps the completion script of tree. Nothing is kept on failure.
func (m *Manager) Accept(gen *Generator, tree *command.Tree) error {
	var buf bytes.Buffer
	if err := gen.Generate(m.Shell, &buf, tree); err != nil {
		return err
	}
	m.script = buf.Bytes()
	return nil
}

// Script returns the script kept by Accept
func (m *Manager) Script() string {
	return string(m.script)
}

// Save writes the script accepted earlier and returns the file it was written to
func (m *Manager) Save() (string, error) {
	if len(m.script) == 0 {
		return "", errs.ErrNoScript
	}

	dir, err := m.ensureCompletionPath()
	if err != nil {
		return "", err
	}

	conventions := getShellFileConventions(m.Shell)
	path := filepath.Join(dir, conventions.Prefix+m.ProgramName+conventions.Extension)
	if err := os.WriteFile(path, m.script, 0644); err != nil {
		return "", errs.ErrWriteCompletion.WithArgs(path).Wrap(err)
	}

	return path, ensurePermission(path, 0644)
}

func (m *Manager) ensureCompletionPath() (string, error) {
	perm := os.FileMode(0755)
	err := os.MkdirAll(m.Paths.Primary, perm)
	if err == nil {
		if err = ensurePermission(m.Paths.Primary, perm); err == nil {
			return m.Paths.Primary, nil
		}
	}

	if m.Paths.Fallback == "" {
		return "", errs.ErrCreateDirectory.WithArgs(m.Paths.Primary).Wrap(err)
	}

	if err := os.MkdirAll(m.Paths.Fallback, perm); err != nil {
		return "", errs.ErrCreateDirectory.WithArgs(m.Paths.Fallback).Wrap(err)
	}
	return m.Paths.Fallback, ensurePermission(m.Paths.Fallback, perm)
}
