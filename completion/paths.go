package completion

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/napalu/shellcomp/errs"
)

// Paths holds information about completion script locations
type Paths struct {
	Primary  string // Main completion directory
	Fallback string // Alternative directory if primary isn't available
	Comment  string // Documentation about the path choice
}

// FileInfo holds shell-specific naming conventions
type FileInfo struct {
	Prefix    string
	Extension string
}

func ensurePermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return errs.ErrSetPermissions.WithArgs(path).Wrap(err)
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	if info.Mode().Perm() != perm {
		if err := os.Chmod(path, perm); err != nil {
			return errs.ErrSetPermissions.WithArgs(path).Wrap(err)
		}
	}

	return nil
}

func getWindowsCompletionPaths(home, shell string) (Paths, error) {
	switch shell {
	case TargetBash:
		return Paths{
			Primary:  filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			Fallback: filepath.Join(home, ".bash_completion.d"),
			Comment:  "Git Bash user completions directory",
		}, nil
	case TargetZsh:
		return Paths{
			Primary:  filepath.Join(home, ".zsh", "completion"),
			Fallback: filepath.Join(home, ".zfunc"),
			Comment:  "Zsh user completions directory (WSL/Cygwin)",
		}, nil
	default:
		return Paths{}, errs.ErrUnsupportedInstall.WithArgs(shell)
	}
}

func getUnixCompletionPaths(home, shell string) (Paths, error) {
	switch shell {
	case TargetBash:
		return Paths{
			Primary:  filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			Fallback: filepath.Join(home, ".bash_completion.d"),
			Comment:  "XDG-compatible user-local bash completions directory",
		}, nil
	case TargetZsh:
		return Paths{
			Primary:  filepath.Join(home, ".zsh", "completion"),
			Fallback: filepath.Join(home, ".zfunc"),
			Comment:  "User-local zsh completions directory",
		}, nil
	default:
		return Paths{}, errs.ErrUnsupportedInstall.WithArgs(shell)
	}
}

func getCompletionPaths(shell string) (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, errs.ErrCompletionPaths.Wrap(err)
	}

	if runtime.GOOS == "windows" {
		return getWindowsCompletionPaths(home, shell)
	}
	return getUnixCompletionPaths(home, shell)
}

func getShellFileConventions(shell string) FileInfo {
	switch shell {
	case TargetZsh:
		// zsh autoloads completion functions from files named _<command>
		return FileInfo{Prefix: "_"}
	default:
		return FileInfo{}
	}
}
