// Package main provides the Integron console, the terminal front-end for
// the workflow-automation service.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/integron/console/pkg/config"
	"github.com/integron/console/pkg/log"
)

func main() {
	cmd := &cli.Command{
		Name:                  "integron-console",
		Usage:                 "Author workflows and track their runs",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the console configuration file",
				Value:   "console.yaml",
				Sources: cli.EnvVars("INTEGRON_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Base URL of the Integron API",
				Sources: cli.EnvVars("INTEGRON_API_URL"),
			},
			&cli.StringFlag{
				Name:    "state-dir",
				Usage:   "Directory holding the persisted session",
				Sources: cli.EnvVars("INTEGRON_STATE_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			LoginCommand(),
			SignupCommand(),
			LogoutCommand(),
			OpenCommand(),
			ComposeCommand(),
			ConnectorsCommand(),
			WorkflowsCommand(),
			RunsCommand(),
			CredentialsCommand(),
			TemplatesCommand(),
			StatusCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with flag/env overrides and installs
// the logger.
func loadConfig(command *cli.Command) config.Config {
	cfg := config.LoadOrDefault(command.String("config"))

	if url := command.String("api-url"); url != "" {
		cfg.BaseURL = url
	}

	if dir := command.String("state-dir"); dir != "" {
		cfg.StateDir = dir
	}

	if level := command.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log.Setup(cfg.LogLevel)

	return cfg
}
