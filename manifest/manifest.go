// Package manifest loads a command tree, candidate hints and on-the-fly candidate sources
// from a YAML, TOML or JSON file, so completion can be generated for applications which
// do not link shellcomp.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/napalu/shellcomp/command"
	"github.com/napalu/shellcomp/errs"
)

// Format is a manifest encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Manifest describes an application for completion purposes
type Manifest struct {
	Name       string            `yaml:"name" toml:"name" json:"name" validate:"required"`
	Executable string            `yaml:"executable,omitempty" toml:"executable,omitempty" json:"executable,omitempty" validate:"omitempty,cmdname"`
	Commands   []Command         `yaml:"commands,omitempty" toml:"commands,omitempty" json:"commands,omitempty" validate:"dive"`
	Sources    map[string]Source `yaml:"sources,omitempty" toml:"sources,omitempty" json:"sources,omitempty" validate:"dive,keys,cmdname,endkeys"`
}

// Command is a command and its nested sub-commands
type Command struct {
	Name        string     `yaml:"name" toml:"name" json:"name" validate:"required,cmdname"`
	Description string     `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Hidden      bool       `yaml:"hidden,omitempty" toml:"hidden,omitempty" json:"hidden,omitempty"`
	Primary     bool       `yaml:"primary,omitempty" toml:"primary,omitempty" json:"primary,omitempty"`
	Options     []Option   `yaml:"options,omitempty" toml:"options,omitempty" json:"options,omitempty" validate:"dive"`
	Arguments   []Argument `yaml:"arguments,omitempty" toml:"arguments,omitempty" json:"arguments,omitempty" validate:"dive"`
	Commands    []Command  `yaml:"commands,omitempty" toml:"commands,omitempty" json:"commands,omitempty" validate:"dive"`
}

// Option is a named option; Bool marks a flag which takes no value
type Option struct {
	Name        string    `yaml:"name" toml:"name" json:"name" validate:"required,cmdname"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Bool        bool      `yaml:"bool,omitempty" toml:"bool,omitempty" json:"bool,omitempty"`
	Hidden      bool      `yaml:"hidden,omitempty" toml:"hidden,omitempty" json:"hidden,omitempty"`
	Complete    *Complete `yaml:"complete,omitempty" toml:"complete,omitempty" json:"complete,omitempty"`
}

// Argument is a positional argument
type Argument struct {
	Name        string    `yaml:"name" toml:"name" json:"name" validate:"required,cmdname"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Hidden      bool      `yaml:"hidden,omitempty" toml:"hidden,omitempty" json:"hidden,omitempty"`
	Complete    *Complete `yaml:"complete,omitempty" toml:"complete,omitempty" json:"complete,omitempty"`
}

// Complete tells how candidates of an option or argument are found. Source refers to an
// entry of Manifest.Sources and wins over Kind.
type Complete struct {
	Kind   string   `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty" validate:"omitempty,oneof=default file directory dir keywords"`
	Values []string `yaml:"values,omitempty" toml:"values,omitempty" json:"values,omitempty" validate:"required_if=Kind keywords"`
	Source string   `yaml:"source,omitempty" toml:"source,omitempty" json:"source,omitempty" validate:"omitempty,cmdname"`
}

// Source produces on-the-fly candidates, either by running Exec or from a fixed list
type Source struct {
	Exec   string   `yaml:"exec,omitempty" toml:"exec,omitempty" json:"exec,omitempty" validate:"required_without=Values"`
	Values []string `yaml:"values,omitempty" toml:"values,omitempty" json:"values,omitempty" validate:"required_without=Exec"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("cmdname", func(fl validator.FieldLevel) bool {
		return command.IsValidName(fl.Field().String())
	})
}

// FormatOf returns the format implied by the file extension of path
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errs.ErrManifestFormat.WithArgs(ext)
	}
}

// Load reads, decodes and validates the manifest at path
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.ErrManifestRead.WithArgs(path).Wrap(err)
	}

	return Parse(data, format, path)
}

// Parse decodes and validates a manifest; name is only used in error messages
func Parse(data []byte, format Format, name string) (*Manifest, error) {
	var (
		m   Manifest
		err error
	)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	default:
		return nil, errs.ErrManifestFormat.WithArgs(string(format))
	}
	if err != nil {
		return nil, errs.ErrManifestDecode.WithArgs(name).Wrap(err)
	}

	if err := m.Validate(); err != nil {
		return nil, errs.ErrManifestInvalid.WithArgs(name).Wrap(err)
	}

	return &m, nil
}

// Validate checks field constraints, exec command lines, that every referenced source is
// defined and that the resulting command tree is well formed
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return err
	}
	for _, s := range m.Sources {
		if s.Exec == "" {
			continue
		}
		if _, err := splitCommand(s.Exec); err != nil {
			return err
		}
	}

	stack := make([][]Command, 0, 1)
	stack = append(stack, m.Commands)
	for len(stack) > 0 {
		cmds := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range cmds {
			for _, o := range c.Options {
				if err := m.checkSource(o.Complete); err != nil {
					return err
				}
			}
			for _, a := range c.Arguments {
				if err := m.checkSource(a.Complete); err != nil {
					return err
				}
			}
			stack = append(stack, c.Commands)
		}
	}

	return m.Tree().Validate()
}

func (m *Manifest) checkSource(c *Complete) error {
	if c == nil || c.Source == "" {
		return nil
	}
	if _, ok := m.Sources[c.Source]; !ok {
		return errs.ErrUnknownSource.WithArgs(c.Source)
	}
	return nil
}
