// Copyright (c) 2023 BVK Chaitanya

package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/bvk/pumpbot/envfile"
	"github.com/bvk/pumpbot/subcmds"
	"github.com/bvk/pumpbot/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

const envFileName = ".pumpbot.env"

func main() {
	// A .pumpbot.env in the current directory takes precedence over the one
	// in the home directory.
	searchPath := []envfile.Option{envfile.SearchCurrentDir()}
	if home, err := os.UserHomeDir(); err == nil {
		searchPath = append(searchPath, envfile.SearchDirs(home))
	}
	opts := append(searchPath, envfile.VariableNamePrefix(cmdutil.EnvPrefix))
	if _, err := envfile.UpdateEnv(envFileName, opts...); err != nil {
		log.Fatal(err)
	}

	logLevel := new(slog.LevelVar)
	flag.TextVar(logLevel, "log-level", logLevel, "minimum log level (DEBUG, INFO, WARN or ERROR)")
	flag.Parse()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	cmds := []cli.Command{
		new(subcmds.Pump),
		new(subcmds.Quote),
		new(subcmds.GetOrder),
	}
	if err := cli.Run(context.Background(), cmds, flag.Args()); err != nil {
		log.Fatal(err)
	}
}
