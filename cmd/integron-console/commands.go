package main

import (
	"context"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/integron/console/pkg/dashboard"
	"github.com/integron/console/pkg/gateway"
)

func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and persist the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true, Sources: cli.EnvVars("INTEGRON_EMAIL")},
			&cli.StringFlag{Name: "password", Required: true, Sources: cli.EnvVars("INTEGRON_PASSWORD")},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			if err := c.session.Login(ctx, command.String("email"), command.String("password")); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s\n", c.session.Current().Email)

			return nil
		},
	}
}

func SignupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "organization"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			form := gateway.SignupRequest{
				Name:         command.String("name"),
				Email:        command.String("email"),
				Password:     command.String("password"),
				Organization: command.String("organization"),
			}

			if err := c.session.Signup(ctx, form); err != nil {
				return err
			}

			fmt.Printf("Account created for %s\n", c.session.Current().Email)

			return nil
		},
	}
}

func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the persisted session",
		Action: func(_ context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))
			c.session.Logout()
			fmt.Println("Signed out")

			return nil
		},
	}
}

func OpenCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Load a view by name (dashboard, workflows, runs, credentials, templates)",
		ArgsUsage: "<view>",
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			if err := c.requireAuth(); err != nil {
				return err
			}

			view := command.Args().First()
			if view == "" {
				return fmt.Errorf("view name required, one of %v", c.router.Views())
			}

			if err := c.router.Open(ctx, view); err != nil {
				return err
			}

			if view == "dashboard" {
				s := c.dash.Summary()
				fmt.Printf("workflows=%d active=%d runs=%d success_rate=%d%%\n",
					s.WorkflowCount, s.ActiveCount, s.RunCount, s.SuccessRate)
			}

			return nil
		},
	}
}

func WorkflowsCommand() *cli.Command {
	return &cli.Command{
		Name:  "workflows",
		Usage: "List and manage workflows",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List workflows",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					if err := c.workflows.Load(ctx); err != nil {
						return err
					}

					for _, workflow := range c.workflows.Items() {
						fmt.Printf("%s\t%s\t%s\t%d steps\n",
							workflow.ID, workflow.Name, workflow.Status, len(workflow.Steps))
					}

					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "Trigger a workflow execution",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					run, err := c.workflows.Run(ctx, command.Args().First())
					if err != nil {
						return err
					}

					fmt.Printf("Run %s started (%s)\n", run.ID, run.Status)

					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a workflow (asks for confirmation)",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					err := c.workflows.Delete(ctx, command.Args().First())
					if errors.Is(err, dashboard.ErrDeclined) {
						fmt.Println("Aborted")

						return nil
					}

					return err
				},
			},
			{
				Name:      "activate",
				Usage:     "Enable a workflow's triggers",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					return c.workflows.Activate(ctx, command.Args().First())
				},
			},
			{
				Name:      "deactivate",
				Usage:     "Pause a workflow",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					return c.workflows.Deactivate(ctx, command.Args().First())
				},
			},
			{
				Name:      "stats",
				Usage:     "Show execution statistics for a workflow",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					stats, err := c.workflows.Stats(ctx, command.Args().First())
					if err != nil {
						return err
					}

					fmt.Printf("total=%d success=%d failed=%d\n",
						stats.TotalRuns, stats.SuccessfulRuns, stats.FailedRuns)

					return nil
				},
			},
		},
	}
}

func RunsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect execution runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent runs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "workflow", Usage: "Filter by workflow id"},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					var err error
					if workflowID := command.String("workflow"); workflowID != "" {
						err = c.runs.LoadForWorkflow(ctx, workflowID)
					} else {
						err = c.runs.Load(ctx)
					}

					if err != nil {
						return err
					}

					for _, run := range c.runs.Items() {
						fmt.Printf("%s\t%s\t%s\n", run.ID, run.WorkflowID, run.Status)
					}

					return nil
				},
			},
			{
				Name:      "logs",
				Usage:     "Show the logs of a run",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					logs, err := c.runs.Logs(ctx, command.Args().First())
					if err != nil {
						return err
					}

					for _, line := range logs {
						fmt.Printf("%s [%s] %s\n", line.Timestamp.Format("15:04:05"), line.Level, line.Message)
					}

					return nil
				},
			},
		},
	}
}

func CredentialsCommand() *cli.Command {
	return &cli.Command{
		Name:  "credentials",
		Usage: "Manage service credentials",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List credentials (metadata only)",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					if err := c.credentials.Load(ctx); err != nil {
						return err
					}

					for _, credential := range c.credentials.Items() {
						fmt.Printf("%s\t%s\t%s\t%s\n",
							credential.ID, credential.Name, credential.Service, credential.CredentialType)
					}

					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Store a new credential",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "service", Required: true},
					&cli.StringFlag{Name: "type", Value: "api_key"},
					&cli.StringFlag{Name: "data", Usage: "Secret payload as JSON"},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					created, err := c.credentials.Create(ctx, dashboard.CredentialForm{
						Name:    command.String("name"),
						Service: command.String("service"),
						Type:    command.String("type"),
						Data:    command.String("data"),
					})
					if err != nil {
						return err
					}

					fmt.Printf("Credential %s stored\n", created.ID)

					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a credential (asks for confirmation)",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, command *cli.Command) error {
					c := newConsole(loadConfig(command))

					if err := c.requireAuth(); err != nil {
						return err
					}

					err := c.credentials.Delete(ctx, command.Args().First())
					if errors.Is(err, dashboard.ErrDeclined) {
						fmt.Println("Aborted")

						return nil
					}

					return err
				},
			},
		},
	}
}

func TemplatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "Browse workflow templates",
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			if err := c.requireAuth(); err != nil {
				return err
			}

			if err := c.templates.Load(ctx); err != nil {
				return err
			}

			for _, template := range c.templates.Items() {
				fmt.Printf("%s\t%s\t%s\n", template.ID, template.Name, template.Category)
			}

			return nil
		},
	}
}

func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show service health and status",
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			health, err := c.client.Health(ctx)
			if err != nil {
				return err
			}

			status, err := c.client.SystemStatus(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s (v%s): %d workflows, %d active\n",
				health.Status, health.Version, status.WorkflowsCount, status.ActiveWorkflows)

			return nil
		},
	}
}
