package completion

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/napalu/shellcomp/errs"
)

// Placeholders substituted in runtime templates
const (
	AppNamePlaceholder        = "APPNAMEPLACEHOLDER"
	AppCommandNamePlaceholder = "APPCOMMANDNAMEPLACEHOLDER"
)

// Runtime template asset names
const (
	BashTemplate = "bash_common.sh"
	ZshTemplate  = "zsh_common.zsh"
)

//go:embed resources
var resources embed.FS

// templates is the file system runtime templates are read from
var templates fs.FS = mustSub(resources, "resources")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// loadTemplate reads the named runtime template and substitutes both placeholders in a
// single literal pass.
func loadTemplate(fsys fs.FS, name, appName, appCommandName string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", errs.ErrMissingRuntimeTemplate.WithArgs(name).Wrap(err)
	}

	r := strings.NewReplacer(
		AppCommandNamePlaceholder, appCommandName,
		AppNamePlaceholder, appName,
	)
	return r.Replace(string(data)), nil
}
