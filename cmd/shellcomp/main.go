package main

import (
	"context"
	"os"
	"os/signal"
	"time"
)

// Config is the command line of shellcomp
type Config struct {
	Manifest   string        `goopt:"name:manifest;short:m;desc:Application manifest (.yaml, .yml, .toml or .json)"`
	Shells     []string      `goopt:"name:shell;short:s;default:bash;desc:Target shells"`
	Output     string        `goopt:"name:output;short:o;desc:Write the script to a file instead of stdout"`
	Executable string        `goopt:"name:executable;short:e;desc:Command completion is registered for (defaults to the manifest)"`
	Candidates string        `goopt:"name:candidates;short:c;desc:Candidate request in the form <shell>:<name>"`
	Timeout    time.Duration `goopt:"name:timeout;default:5s;desc:Timeout of a single on-the-fly source"`
	LogLevel   string        `goopt:"name:log-level;default:warn;desc:Log level (debug, info, warn, error)"`

	Generate struct{} `goopt:"kind:command;name:generate;desc:Print the completion script of a manifest"`
	Install  struct{} `goopt:"kind:command;name:install;desc:Install completion scripts into the user completion directories"`
	Complete struct{} `goopt:"kind:command;name:complete;desc:Print candidates of an exec source (words to complete follow --). Scripts ask the executable itself for them with --completion-candidates <shell>:<name> -- words, so it needs a wrapper calling this command"`
	Targets  struct{} `goopt:"kind:command;name:targets;desc:List the supported shells"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
