//go:build !windows

// Package cmdline splits command lines of exec candidate sources into argv the way the
// platform shell would, without running a shell.
package cmdline

import "github.com/google/shlex"

// Split splits s using POSIX shell quoting rules
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
